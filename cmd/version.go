package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luma/comms/internal/meta"
)

var versionJSON bool

func init() {
	VersionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print the build info as JSON")
}

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of comms",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := meta.GetInfo()

		if !versionJSON {
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		}

		b, err := json.Marshal(info)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}
