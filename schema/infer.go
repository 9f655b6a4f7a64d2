package schema

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/bnomei/serde-toon-sub001/toon"
)

// JSON Schema type constants.
const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// inferType returns the JSON Schema type string for v. Returns an empty
// string for nil (maximally permissive).
func inferType(v toon.Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		return typeBoolean
	case toon.Number:
		if val.IsFloat() {
			return typeNumber
		}

		return typeInteger
	case string:
		return typeString
	case []toon.Value:
		return typeArray
	case *toon.Object:
		return typeObject
	default:
		return ""
	}
}

// inferSchema builds a schema for v, recursing into object properties and
// array items.
func (g *Generator) inferSchema(v toon.Value) *jsonschema.Schema {
	switch val := v.(type) {
	case *toon.Object:
		return g.inferObject(val)
	case []toon.Value:
		return g.inferArray(val)
	default:
		t := inferType(v)
		if t == "" {
			return &jsonschema.Schema{}
		}

		return &jsonschema.Schema{Type: t}
	}
}

func (g *Generator) inferObject(obj *toon.Object) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       typeObject,
		Properties: make(map[string]*jsonschema.Schema, obj.Len()),
	}

	if g.strict {
		s.AdditionalProperties = FalseSchema()
	} else {
		s.AdditionalProperties = TrueSchema()
	}

	var order []string

	obj.Range(func(key string, value toon.Value) bool {
		s.Properties[key] = g.inferSchema(value)
		order = append(order, key)
		s.Required = append(s.Required, key)

		return true
	})

	s.PropertyOrder = order

	if len(s.Properties) == 0 {
		s.Properties = nil
		s.PropertyOrder = nil
		s.Required = nil
	}

	return s
}

func (g *Generator) inferArray(items []toon.Value) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: typeArray}

	if len(items) == 0 {
		return s
	}

	elemSchemas := make([]*jsonschema.Schema, len(items))
	for i, item := range items {
		elemSchemas[i] = g.inferSchema(item)
	}

	result := elemSchemas[0]
	for i := 1; i < len(elemSchemas); i++ {
		result = mergeSchemas(result, elemSchemas[i])
	}

	s.Items = result

	return s
}

// widenType returns the widened type when merging two type strings.
// Returns empty string (no constraint) for incompatible types.
func widenType(a, b string) string {
	if a == b {
		return a
	}

	if a == "" {
		return b
	}

	if b == "" {
		return a
	}

	if (a == typeInteger && b == typeNumber) || (a == typeNumber && b == typeInteger) {
		return typeNumber
	}

	return ""
}
