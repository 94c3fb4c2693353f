package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luma/comms/cmd/gen"
	"github.com/luma/comms/internal/env"
)

var (
	// Overrides COMMS_SERVER_IP when set
	serverIP string
)

var RootCmd = &cobra.Command{
	Use:   "comms",
	Short: "An in-process server/client messaging protocol",
	Long: `comms models a server that opens connections to named clients and
routes Handshake, Post and Get messages to them. Clients accept a limited
number of Posts; a client error halts its connection.`,
	SilenceUsage: true,
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&serverIP, "ip", "", "The address of the server, overrides COMMS_SERVER_IP")

	RootCmd.AddCommand(
		ServeCmd,
		RunCmd,
		SimulateCmd,
		ScriptCmd,
		VersionCmd,
		gen.RootCmd,
	)
}

// Execute runs the root command and exits non-zero on the first error.
func Execute() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// setup loads the config and builds the logger every command shares.
func setup(ctx context.Context) (*env.Config, *zap.Logger, error) {
	conf, err := env.LoadConfig(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("Failed to load config: %w", err)
	}

	if serverIP != "" {
		conf.ServerIP = serverIP
	}

	log, err := env.MakeLogger(conf)
	if err != nil {
		return nil, nil, fmt.Errorf("Failed to build logger: %w", err)
	}

	return conf, log, nil
}
