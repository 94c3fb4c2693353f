package gen

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/luma/comms/internal/meta"
)

// Layout of meta.BuildTimeUTC
const buildTimeLayout = "2006/01/02 15:04:05"

var (
	docsDir    string
	manSection string
)

var ManPagesCmd = &cobra.Command{
	Use:   "man",
	Short: "Generate man pages for comms",
	Long: `Writes one man page per comms command to --dir, which is created if
needed. Pages are dated with the build time when the binary carries one.`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		header := &doc.GenManHeader{
			Section: manSection,
			Manual:  "comms Manual",
			Source:  "comms " + meta.Version,
			Date:    buildDate(),
		}

		return generate(cmd, "man pages", func(root *cobra.Command) error {
			return doc.GenManTree(root, header, docsDir)
		})
	},
}

var MarkdownCmd = &cobra.Command{
	Use:   "markdown",
	Short: "Generate markdown reference pages for comms",
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		return generate(cmd, "markdown pages", func(root *cobra.Command) error {
			return doc.GenMarkdownTree(root, docsDir)
		})
	},
}

func generate(cmd *cobra.Command, what string, gen func(root *cobra.Command) error) error {
	out := cmd.OutOrStdout()

	if err := ensureDir(out, docsDir); err != nil {
		return err
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	fmt.Fprintf(out, "Writing comms %s to %s\n", what, docsDir)

	if err := gen(root); err != nil {
		return fmt.Errorf("Failed to generate %s: %w", what, err)
	}

	return nil
}

func ensureDir(out io.Writer, dir string) error {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintf(out, "Creating %s\n", dir)
		return os.MkdirAll(dir, 0750)
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("'%s' is not a directory", dir)
	}

	return nil
}

func buildDate() *time.Time {
	if meta.BuildTimeUTC == "" {
		return nil
	}

	t, err := time.Parse(buildTimeLayout, meta.BuildTimeUTC)
	if err != nil {
		return nil
	}

	return &t
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&docsDir, "dir", "man", "the directory to write the pages to")

	if err := RootCmd.MarkPersistentFlagDirname("dir"); err != nil {
		panic(err)
	}

	ManPagesCmd.Flags().StringVar(&manSection, "section", "1", "the man section of the pages")
}
