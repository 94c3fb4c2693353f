package transport

import (
	"go.uber.org/zap"

	"github.com/luma/comms/server"
	"github.com/luma/comms/storage"
)

type Options struct {
	// Host to listen on
	Host string

	// Port to listen on. 0 picks a free port, see HTTP.Addr()
	Port int

	// Reuseport controls setting SO_REUSEPORT on the listener
	Reuseport bool

	// Debug puts gin into debug mode. This is only useful in local debugging
	Debug bool

	Server *server.Server

	Store storage.Store

	Log *zap.Logger
}
