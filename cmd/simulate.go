package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/luma/comms/protocol"
	"github.com/luma/comms/server"
	"github.com/luma/comms/storage"
)

var (
	simPeers int
	simLimit uint32
	simHalt  int
)

func init() {
	flags := SimulateCmd.Flags()

	flags.IntVar(&simPeers, "peers", 5, "The number of peers to open connections to")
	flags.Uint32Var(&simLimit, "limit", 1, "The Post limit of every peer")
	flags.IntVar(&simHalt, "halt", 2, "The number of peers to drive past their limit")
}

var SimulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Open a set of peers and halt some of them",
	Long: `Opens --peers connections to 197.0.0.1, 197.0.0.2, ... and sends one more
Post than their limit to the first --halt of them. Prints the status of every
connection and the number of halted connections.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if simPeers < 0 || simHalt < 0 || simHalt > simPeers {
			return fmt.Errorf("--halt must be between 0 and --peers (%d)", simPeers)
		}

		conf, log, err := setup(cmd.Context())
		if err != nil {
			return err
		}

		store := storage.NewInmemoryStore()
		defer func() {
			err = multierr.Append(err, store.Close())
		}()

		srv := server.New(server.Options{IP: conf.ServerIP, Store: store, Log: log.Named("server")})

		for i := 0; i < simPeers; i++ {
			addr := peerAddr(i)
			if err := srv.OpenPeer(addr, addr, simLimit); err != nil {
				return err
			}
		}

		for i := 0; i < simHalt; i++ {
			if err := haltPeer(srv, peerAddr(i), simLimit); err != nil {
				return err
			}
		}

		status, err := store.Backup()
		if err != nil {
			return err
		}

		log.Info("Simulation finished",
			zap.Int("peers", simPeers),
			zap.Int("halted", srv.CountHalted()))

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, string(status))
		fmt.Fprintf(out, "halted: %d\n", srv.CountHalted())

		return nil
	},
}

func peerAddr(i int) string {
	return fmt.Sprintf("197.0.0.%d", i+1)
}

// haltPeer fills the peer up to its limit, then sends the Post that halts it.
func haltPeer(srv *server.Server, addr string, limit uint32) error {
	for n := uint32(0); n < limit; n++ {
		if _, err := srv.Send(addr, protocol.NewPost("Push the limit")); err != nil {
			return err
		}
	}

	if _, err := srv.Send(addr, protocol.NewPost("Too much")); err == nil {
		return fmt.Errorf("peer '%s' accepted a Post past its limit", addr)
	}

	return nil
}
