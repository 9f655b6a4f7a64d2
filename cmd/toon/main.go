// Command toon converts between TOON, JSON, and YAML, and infers a JSON
// Schema from any of the three.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnomei/serde-toon-sub001/version"
)

func main() {
	cfg := NewConfig()

	rootCmd := &cobra.Command{
		Use:     "toon [flags] <file> [file2 ...]",
		Short:   "Convert between TOON, JSON, and YAML",
		Version: version.Version,
		Long: `toon converts documents between TOON (Token-Oriented Object Notation),
JSON, and YAML by file extension: ".toon" inputs decode, ".json"/".yaml"/".yml"
inputs encode to TOON, and other extensions are rejected. Use "-" to read
from stdin as TOON.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			if err := setupLogging(cfg); err != nil {
				return err
			}

			return run(cfg, args)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	cfg.RegisterPersistentFlags(rootCmd.PersistentFlags())

	if err := cfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	rootCmd.AddCommand(newSchemaCommand())
	rootCmd.AddCommand(newVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// setupLogging builds the slog handler from the ambient log flags and
// installs it as the default logger, returning any construction error.
func setupLogging(cfg *Config) error {
	handler, err := cfg.Log.NewHandler(os.Stderr)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "toon %s (%s, %s/%s, revision %s)\n",
				orUnknown(version.Version), version.GoVersion, version.GoOS, version.GoArch, version.Revision)

			return nil
		},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}

	return s
}
