package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/luma/comms/internal/script"
	"github.com/luma/comms/server"
)

var keepGoing bool

func init() {
	ScriptCmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false,
		"Record protocol errors in the transcript and carry on")
}

var ScriptCmd = &cobra.Command{
	Use:   "script FILE",
	Short: "Run a scripted session against a fresh server",
	Long: `Run a scripted session against a fresh server. Use - to read from stdin.

Script lines
	open <addr> <name> <limit>
	send <addr> HANDSHAKE|POST|GET [load]
	halted
	status
	close-all
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, log, err := setup(cmd.Context())
		if err != nil {
			return err
		}

		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}

		srv := server.New(server.Options{IP: conf.ServerIP, Log: log.Named("server")})

		return script.Run(cmd.Context(), r, script.Options{
			Server:    srv,
			Output:    cmd.OutOrStdout(),
			KeepGoing: keepGoing,
			Log:       log.Named("script"),
		})
	},
}
