package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/luma/comms/server"
	"github.com/luma/comms/storage"
	"github.com/luma/comms/transport"
)

var (
	// The host to listen on
	host string

	// The port to listen for http requests on
	httpPort int

	reuse bool
)

func init() {
	flags := ServeCmd.PersistentFlags()

	flags.IntVarP(&httpPort, "port", "p", 7362, "The port to listen to HTTP requests on")
	flags.StringVarP(&host, "host", "a", "0.0.0.0", "The host to listen on")
	flags.BoolVar(&reuse, "reuseport", true, "Set SO_REUSEPORT on the listener")
}

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a comms server over HTTP",
	Long: `Serve a comms server over HTTP

Usage
	comms serve

	curl -XPOST localhost:7362/connections/197.0.0.1 -d '{"name":"TestClient","limit":2}'
	curl -XPOST localhost:7362/connections/197.0.0.1/messages -d '{"type":"POST","load":"hi"}'
	curl localhost:7362/connections
`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx, signalStop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer signalStop()

		conf, log, err := setup(ctx)
		if err != nil {
			return err
		}

		store := storage.NewInmemoryStore()
		defer func() {
			err = multierr.Append(err, store.Close())
		}()

		// Connection changes are only logged, the store is the source of truth
		go func() {
			for update := range store.ListenToUpdates() {
				log.Debug("Connection changed",
					zap.ByteString("addr", update.Key),
					zap.ByteString("status", update.Value))
			}
		}()

		srv := server.New(server.Options{
			IP:    conf.ServerIP,
			Store: store,
			Log:   log.Named("server"),
		})

		h := transport.NewHTTP(transport.Options{
			Host:      host,
			Port:      httpPort,
			Reuseport: reuse,
			Debug:     conf.DebugHTTP,
			Server:    srv,
			Store:     store,
			Log:       log.Named("transport"),
		})

		if err := h.Start(ctx); err != nil {
			return err
		}

		log.Info("Serving",
			zap.Any("config", conf),
			zap.String("host", host),
			zap.Int("port", httpPort))

		// Listen for the interrupt signal.
		<-ctx.Done()

		// Restore default behavior on the interrupt signal and notify user of shutdown.
		signalStop()
		log.Info("Shutting down gracefully, press Ctrl+C again to force")

		srv.CloseAll()

		if err := h.Close(); err != nil {
			log.Error("HTTP server forced to shutdown", zap.Error(err))
			return err
		}

		log.Info("Exiting")
		return nil
	},
}
