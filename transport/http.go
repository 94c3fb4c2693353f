package transport

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	reuseport "github.com/kavu/go_reuseport"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	ShutdownTimeout = 5 * time.Second
)

// HTTP serves the control surface of a comms server.
type HTTP struct {
	addr      string
	reuseport bool

	handler http.Handler
	server  *http.Server

	mu       sync.Mutex
	listener net.Listener

	stopWaiter sync.WaitGroup
	serveErr   error

	log *zap.Logger
}

func NewHTTP(options Options) *HTTP {
	return &HTTP{
		addr:      net.JoinHostPort(options.Host, strconv.Itoa(options.Port)),
		reuseport: options.Reuseport,
		handler:   NewRouter(options.Server, options.Store, options.Log, options.Debug),
		log:       options.Log,
	}
}

// Start listens and serves in the background. It returns once the listener
// is bound.
func (h *HTTP) Start(ctx context.Context) error {
	listener, err := h.listen()
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.listener = listener
	h.server = &http.Server{
		Handler:     h.handler,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	h.mu.Unlock()

	h.log.Info("Listening", zap.String("addr", listener.Addr().String()),
		zap.Bool("reuseport", h.reuseport))

	h.stopWaiter.Add(1)
	go func() {
		defer h.stopWaiter.Done()

		if err := h.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.log.Error("Http server errored", zap.Error(err))
			h.serveErr = err
		}
	}()

	return nil
}

// Addr is the address the server is bound to, or "" before Start.
func (h *HTTP) Addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.listener == nil {
		return ""
	}

	return h.listener.Addr().String()
}

// Close gracefully shuts the server down, giving in flight requests
// ShutdownTimeout to complete.
func (h *HTTP) Close() (err error) {
	h.mu.Lock()
	srv := h.server
	h.server = nil
	h.mu.Unlock()

	if srv == nil {
		return nil
	}

	h.log.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	srv.SetKeepAlivesEnabled(false)

	if serr := srv.Shutdown(ctx); serr != nil {
		h.log.Error("Http server forced to shutdown", zap.Error(serr))
		err = multierr.Append(err, serr)
		err = multierr.Append(err, srv.Close())
	}

	h.stopWaiter.Wait()

	return multierr.Append(err, h.serveErr)
}

func (h *HTTP) listen() (net.Listener, error) {
	if h.reuseport {
		return reuseport.Listen("tcp", h.addr)
	}

	return net.Listen("tcp", h.addr)
}
