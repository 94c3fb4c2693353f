package env

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	// ServerIP is the address the server hands to clients in its handshake
	ServerIP string `env:"COMMS_SERVER_IP,default=10.0.0.1"`

	LogLevel    zapcore.Level `env:"COMMS_LOG_LEVEL,default=info"`
	LogEncoding string        `env:"COMMS_LOG_ENCODING,default=json"`

	DebugHTTP bool `env:"COMMS_DEBUG_HTTP"`
}

func LoadConfig(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return loadConfig(ctx, envconfig.OsLookuper())
}

func loadConfig(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	config := Config{}

	if err := envconfig.ProcessWith(ctx, &config, lookuper); err != nil {
		return nil, err
	}

	return &config, nil
}
