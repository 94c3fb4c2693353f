package gen

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generators for comms documentation",
	Long:  `Generators for comms documentation`,
}

func init() {
	RootCmd.AddCommand(ManPagesCmd, MarkdownCmd)
}
