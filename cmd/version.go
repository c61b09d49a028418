/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/longkey1/translitc/internal/version"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show translitc build information",
	Long: `Show the translitc version, the git commit and build time it was built from,
and the Go toolchain and platform.

Use --short for the bare version number, or --json for scripts and bug reports.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printVersion(cmd.OutOrStdout(), versionShort, versionJSON)
	},
}

func printVersion(w io.Writer, short, asJSON bool) error {
	switch {
	case asJSON:
		return writeJSON(w, version.Get())
	case short:
		_, err := fmt.Fprintln(w, version.Short())
		return err
	default:
		_, err := fmt.Fprintln(w, version.Info())
		return err
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "Show only version number")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build information as JSON")
}
