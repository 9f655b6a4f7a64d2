package schema

import (
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/bnomei/serde-toon-sub001/toon"
)

// Sentinel errors returned by the generator.
var (
	ErrInvalidOption = errors.New("invalid option")
	ErrReadInput     = errors.New("read input")
	ErrWriteOutput   = errors.New("write output")
)

// Generator produces a JSON Schema from one or more decoded value trees.
type Generator struct {
	title       string
	description string
	id          string
	strict      bool
}

// Option configures a Generator.
type Option func(*Generator)

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// WithTitle sets the schema title.
func WithTitle(title string) Option {
	return func(g *Generator) { g.title = title }
}

// WithDescription sets the schema description.
func WithDescription(desc string) Option {
	return func(g *Generator) { g.description = desc }
}

// WithID sets the schema $id.
func WithID(id string) Option {
	return func(g *Generator) { g.id = id }
}

// WithStrict sets additionalProperties to false on objects.
func WithStrict(strict bool) Option {
	return func(g *Generator) { g.strict = strict }
}

// Generate produces a JSON Schema from one or more decoded value trees,
// merging them with union semantics when more than one is given.
func (g *Generator) Generate(values ...toon.Value) (*jsonschema.Schema, error) {
	var result *jsonschema.Schema

	switch len(values) {
	case 0:
		result = &jsonschema.Schema{}
	default:
		schemas := make([]*jsonschema.Schema, len(values))
		for i, v := range values {
			schemas[i] = g.inferSchema(v)
		}

		result = schemas[0]

		for i := 1; i < len(schemas); i++ {
			result = mergeSchemas(result, schemas[i])
		}
	}

	result.Schema = "http://json-schema.org/draft-07/schema#"

	if g.title != "" {
		result.Title = g.title
	}

	if g.description != "" {
		result.Description = g.description
	}

	if g.id != "" {
		result.ID = g.id
	}

	if (result.Type == typeObject || result.Properties != nil) && result.AdditionalProperties == nil {
		if g.strict {
			result.AdditionalProperties = FalseSchema()
		} else {
			result.AdditionalProperties = TrueSchema()
		}
	}

	return result, nil
}

// DecodeError wraps a decode failure for one of several named inputs with
// the input's identifying name (typically a file path or "-" for stdin).
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
