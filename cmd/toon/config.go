package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bnomei/serde-toon-sub001/log"
	"github.com/bnomei/serde-toon-sub001/toon"
)

// Flags holds CLI flag names for the root command, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Output       string
	Indent       string
	Delimiter    string
	KeyFolding   string
	FlattenDepth string
	ExpandPaths  string
	NoStrict     string
	Stats        string
}

// Config holds CLI flag values for the root command, plus the embedded
// ambient [log.Config] used for the --log-level/--log-format flags.
type Config struct {
	Flags Flags
	Log   *log.Config

	Output       string
	Indent       int
	Delimiter    string
	KeyFolding   string
	FlattenDepth int
	ExpandPaths  string
	NoStrict     bool
	Stats        bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Output:       "output",
			Indent:       "indent",
			Delimiter:    "delimiter",
			KeyFolding:   "keyFolding",
			FlattenDepth: "flattenDepth",
			ExpandPaths:  "expandPaths",
			NoStrict:     "no-strict",
			Stats:        "stats",
		},
		Log: log.NewConfig(),
	}
}

// RegisterFlags adds the conversion flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
	flags.IntVar(&c.Indent, c.Flags.Indent, toon.DefaultIndent,
		"indentation width in spaces")
	flags.StringVar(&c.Delimiter, c.Flags.Delimiter, ",",
		`array/row delimiter: "," "\t" or "|"`)
	flags.StringVar(&c.KeyFolding, c.Flags.KeyFolding, "off",
		`key folding mode for encoding: "off" or "safe"`)
	flags.IntVar(&c.FlattenDepth, c.Flags.FlattenDepth, 0,
		"maximum segments joined by key folding (0 means unbounded)")
	flags.StringVar(&c.ExpandPaths, c.Flags.ExpandPaths, "off",
		`dotted-key expansion mode for decoding: "off" or "safe"`)
	flags.BoolVar(&c.NoStrict, c.Flags.NoStrict, false,
		"decode leniently: allow tabs and non-exact indentation")
	flags.BoolVar(&c.Stats, c.Flags.Stats, false,
		"append a size summary of input versus output after the converted document")
}

// RegisterPersistentFlags adds flags shared across subcommands, currently
// the ambient logging flags, to flags.
func (c *Config) RegisterPersistentFlags(flags *pflag.FlagSet) {
	c.Log.RegisterFlags(flags)
}

// RegisterCompletions registers shell completions for the root command's
// flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	fixed := map[string][]string{
		c.Flags.Delimiter:   {",", "\t", "|"},
		c.Flags.KeyFolding:  {"off", "safe"},
		c.Flags.ExpandPaths: {"off", "safe"},
	}

	for name, values := range fixed {
		if err := cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)); err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	if err := cmd.RegisterFlagCompletionFunc(c.Flags.Indent, noFileComp); err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Indent, err)
	}

	return c.Log.RegisterCompletions(cmd)
}

// EncodeOptions builds [toon.EncodeOptions] from the flag values in c.
func (c *Config) EncodeOptions() (toon.EncodeOptions, error) {
	delim, err := toon.ParseDelimiter(c.Delimiter)
	if err != nil {
		return toon.EncodeOptions{}, err
	}

	folding, err := toon.ParseKeyFolding(c.KeyFolding)
	if err != nil {
		return toon.EncodeOptions{}, err
	}

	return toon.EncodeOptions{
		Indent:       c.Indent,
		Delimiter:    delim,
		KeyFolding:   folding,
		FlattenDepth: c.FlattenDepth,
	}, nil
}

// DecodeOptions builds [toon.DecodeOptions] from the flag values in c.
func (c *Config) DecodeOptions() (toon.DecodeOptions, error) {
	expand, err := toon.ParseExpandPaths(c.ExpandPaths)
	if err != nil {
		return toon.DecodeOptions{}, err
	}

	return toon.DecodeOptions{
		Indent:      c.Indent,
		Strict:      !c.NoStrict,
		ExpandPaths: expand,
	}, nil
}
