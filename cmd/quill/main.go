package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quill",
		Short: "Quill derive engine and tooling",
		Long: `Quill synthesizes implementation code from record declarations.
Given a parsed record descriptor it derives a fluent builder or a structured
debug printer, inferring the generic bounds the generated code needs.`,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
