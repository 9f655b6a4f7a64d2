package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnomei/serde-toon-sub001/schema"
	"github.com/bnomei/serde-toon-sub001/toon"
)

// newSchemaCommand builds the "toon schema" subcommand, which infers a JSON
// Schema from one or more TOON, JSON, or YAML documents.
func newSchemaCommand() *cobra.Command {
	cfg := schema.NewConfig()

	cmd := &cobra.Command{
		Use:           "schema <file> [file2 ...]",
		Short:         "Infer a JSON Schema from TOON, JSON, or YAML documents",
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return runSchema(cfg, args)
		},
	}

	cfg.RegisterFlags(cmd.Flags())

	if err := cfg.RegisterCompletions(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

func runSchema(cfg *schema.Config, paths []string) error {
	values := make([]toon.Value, 0, len(paths))

	for _, path := range paths {
		data, err := readInput(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		v, err := decodeForSchema(path, data)
		if err != nil {
			return &schema.DecodeError{Name: path, Err: err}
		}

		values = append(values, v)
	}

	gen := cfg.NewGenerator()

	result, err := gen.Generate(values...)
	if err != nil {
		return fmt.Errorf("%w: %w", schema.ErrReadInput, err)
	}

	out, closeOut, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	b, err := json.MarshalIndent(result, "", strings.Repeat(" ", max(cfg.Indent, 1)))
	if err != nil {
		return fmt.Errorf("%w: %w", schema.ErrWriteOutput, err)
	}

	_, err = fmt.Fprintln(out, string(b))
	if err != nil {
		return fmt.Errorf("%w: %w", schema.ErrWriteOutput, err)
	}

	return nil
}

// decodeForSchema decodes path's content into a [toon.Value] tree using the
// same extension-driven dispatch as the top-level converter, except that
// ".toon" and unrecognized/"-" inputs both decode as TOON.
func decodeForSchema(path string, data []byte) (toon.Value, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return decodeJSON(data)
	case ".yaml", ".yml":
		return schema.DecodeYAML(data)
	default:
		return toon.Decode(string(data), toon.DefaultDecodeOptions())
	}
}
