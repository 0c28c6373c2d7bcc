package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/gedcheck/cmd"
	"github.com/thoreinstein/gedcheck/internal/model"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, build date and supported character sets of gedcheck.`,
	Run: func(c *cobra.Command, _ []string) {
		w := c.OutOrStdout()
		fmt.Fprintf(w, "gedcheck version %s\n", cmd.Version)
		fmt.Fprintf(w, "  commit:   %s\n", cmd.Commit)
		fmt.Fprintf(w, "  built:    %s\n", cmd.Date)
		fmt.Fprintf(w, "  go:       %s\n", cmd.GoVersion())
		fmt.Fprintf(w, "  charsets: %s\n", strings.Join(model.SupportedCharacterSetNames(), ", "))
	},
}
