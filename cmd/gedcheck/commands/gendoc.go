package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/gedcheck/internal/errors"
	"github.com/thoreinstein/gedcheck/internal/paths"
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown documentation for the CLI",
	Hidden: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		outputDir, _ := cmd.Flags().GetString("dir")
		if outputDir == "" {
			return errors.NewUserError(errors.New("output directory is required"), "Pass --dir <path>")
		}

		if err := paths.EnsureDir(outputDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}

		if err := doc.GenMarkdownTreeCustom(rootCmd, outputDir, docFrontmatter, docLink); err != nil {
			return errors.Wrap(err, "generating markdown")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Documentation generated in %s\n", outputDir)
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringP("dir", "d", "", "Output directory for documentation")
	rootCmd.AddCommand(genDocCmd)
}

// docFrontmatter titles gedcheck_config_show.md as "config show".
func docFrontmatter(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	title := strings.TrimPrefix(strings.ReplaceAll(base, "_", " "), "gedcheck ")

	return fmt.Sprintf(`---
title: %q
description: %q
---
`, title, "Reference for gedcheck "+title)
}

func docLink(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/reference/" + strings.ToLower(base) + "/"
}
