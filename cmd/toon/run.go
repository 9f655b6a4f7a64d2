package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnomei/serde-toon-sub001/schema"
	"github.com/bnomei/serde-toon-sub001/toon"
)

// ErrUnsupportedExtension indicates an input file's extension is not one of
// the recognized formats (.toon, .json, .yaml, .yml). The file's content is
// not inspected to guess a format.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// run converts each of paths according to its extension, writing output per
// the config's --output and --stats flags.
func run(cfg *Config, paths []string) error {
	encOpts, err := cfg.EncodeOptions()
	if err != nil {
		return err
	}

	decOpts, err := cfg.DecodeOptions()
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	for _, path := range paths {
		if err := convertOne(path, encOpts, decOpts, cfg.Stats, out); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	return nil
}

// convertOne reads path, decides a direction from its extension, and writes
// the converted form to out, followed by a stats summary when stats is set.
func convertOne(path string, encOpts toon.EncodeOptions, decOpts toon.DecodeOptions, stats bool, out io.Writer) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}

	value, direction, err := convert(path, data, encOpts, decOpts)
	if err != nil {
		return err
	}

	rendered, err := renderResult(value)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(out, rendered); err != nil {
		return err
	}

	if stats {
		return writeStats(out, path, direction, string(data), rendered)
	}

	return nil
}

// renderResult converts a conversion result (an encoded TOON string or a
// decoded [toon.Value]) into the text that would be written to output.
func renderResult(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}

	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	return string(b), nil
}

// direction names what convert did, for --stats summaries.
type direction string

const (
	directionEncode direction = "encode"
	directionDecode direction = "decode"
)

// convert dispatches on path's extension and returns either an encoded TOON
// string (direction encode) or a decoded [toon.Value] (direction decode).
// The name "-" has no extension and is always decoded as TOON; any other
// unrecognized extension fails with [ErrUnsupportedExtension]. The content
// is never sniffed.
func convert(path string, data []byte, encOpts toon.EncodeOptions, decOpts toon.DecodeOptions) (any, direction, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toon":
		v, err := toon.Decode(string(data), decOpts)
		return v, directionDecode, err
	case ".json":
		v, err := decodeJSON(data)
		if err != nil {
			return nil, directionEncode, err
		}

		s, err := toon.Encode(v, encOpts)
		return s, directionEncode, err
	case ".yaml", ".yml":
		v, err := schema.DecodeYAML(data)
		if err != nil {
			return nil, directionEncode, err
		}

		s, err := toon.Encode(v, encOpts)
		return s, directionEncode, err
	case "":
		if path == "-" {
			v, err := toon.Decode(string(data), decOpts)
			return v, directionDecode, err
		}

		return nil, directionEncode, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	default:
		return nil, directionEncode, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
}

// decodeJSON parses JSON text into a [toon.Value] tree, preserving object
// key order via [json.Decoder]'s token stream.
func decodeJSON(data []byte) (toon.Value, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (toon.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	return jsonTokenToValue(dec, tok)
}

func jsonTokenToValue(dec *json.Decoder, tok json.Token) (toon.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected json delimiter %q", t)
		}
	case json.Number:
		return jsonNumberToValue(t)
	case nil, bool, string:
		return t, nil
	default:
		return nil, fmt.Errorf("unexpected json token %T", tok)
	}
}

func jsonNumberToValue(n json.Number) (toon.Value, error) {
	if i, err := n.Int64(); err == nil {
		return toon.Int(i), nil
	}

	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid json number %q: %w", n.String(), err)
	}

	return toon.Float(f), nil
}

func decodeJSONObject(dec *json.Decoder) (toon.Value, error) {
	obj := toon.NewObject()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected json object key, got %T", keyTok)
		}

		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}

		if err := obj.Insert(key, val); err != nil {
			return nil, err
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return obj, nil
}

func decodeJSONArray(dec *json.Decoder) (toon.Value, error) {
	arr := make([]toon.Value, 0)

	for dec.More() {
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}

		arr = append(arr, val)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return arr, nil
}

// readInput reads path's contents, treating "-" as stdin.
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// openOutput opens path for writing, treating "-" as stdout. The returned
// close function is always safe to call.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open output: %w", err)
	}

	return f, func() { _ = f.Close() }, nil
}
