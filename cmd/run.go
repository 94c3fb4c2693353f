package cmd

import (
	"github.com/spf13/cobra"

	"github.com/luma/comms/protocol"
	"github.com/luma/comms/server"
)

var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demonstration session",
	Long: `Opens a connection to 197.0.0.1 for a client with a limit of two Posts,
sends it one Post, then closes every connection. Any error is fatal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, log, err := setup(cmd.Context())
		if err != nil {
			return err
		}

		srv := server.New(server.Options{IP: conf.ServerIP, Log: log.Named("server")})

		if err := srv.OpenPeer("197.0.0.1", "TestClient", 2); err != nil {
			return err
		}

		if _, err := srv.Send("197.0.0.1", protocol.NewPost("Hello from the other side!")); err != nil {
			return err
		}

		srv.CloseAll()

		return nil
	},
}
