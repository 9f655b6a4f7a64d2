package schema

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/bnomei/serde-toon-sub001/toon"
)

// ErrInvalidYAML reports that an input could not be parsed as YAML.
var ErrInvalidYAML = errors.New("invalid yaml")

// DecodeYAML parses data as a single YAML document and converts it to a
// [toon.Value] tree, preserving mapping key order. Anchors and aliases are
// resolved by walking the document; an alias with no matching anchor
// decodes to null. Only the first document of a multi-document stream is
// used, matching [toon.Decode]'s single-document contract.
func DecodeYAML(data []byte) (toon.Value, error) {
	file, err := parser.ParseBytes(data, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, nil
	}

	doc := file.Docs[0]
	anchors := buildAnchorMap(doc.Body)

	return convertNode(doc.Body, anchors)
}

// buildAnchorMap walks node and collects every anchor definition it
// contains.
func buildAnchorMap(node ast.Node) map[string]ast.Node {
	anchors := make(map[string]ast.Node)
	ast.Walk(&anchorVisitor{anchors: anchors}, node)

	return anchors
}

type anchorVisitor struct {
	anchors map[string]ast.Node
}

// Visit implements [ast.Visitor].
func (v *anchorVisitor) Visit(node ast.Node) ast.Visitor {
	if anchor, ok := node.(*ast.AnchorNode); ok {
		v.anchors[anchor.Name.String()] = anchor.Value
	}

	return v
}

// resolveAlias resolves an alias node using the anchor map; an
// unresolvable alias decodes to null.
func resolveAlias(node ast.Node, anchors map[string]ast.Node) ast.Node {
	alias, ok := node.(*ast.AliasNode)
	if !ok {
		return node
	}

	if resolved, found := anchors[alias.Value.String()]; found {
		return resolved
	}

	return nil
}

// unwrapNode resolves TagNode and AnchorNode wrappers to the underlying
// value node.
func unwrapNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

// convertNode converts a YAML AST node to a [toon.Value], recursively.
func convertNode(node ast.Node, anchors map[string]ast.Node) (toon.Value, error) {
	node = resolveAlias(node, anchors)
	node = unwrapNode(node)

	if node == nil {
		return nil, nil
	}

	switch n := node.(type) {
	case *ast.MappingNode:
		return convertMapping(n.Values, anchors)
	case *ast.MappingValueNode:
		return convertMapping([]*ast.MappingValueNode{n}, anchors)
	case *ast.SequenceNode:
		return convertSequence(n, anchors)
	default:
		return convertScalar(node)
	}
}

func convertMapping(values []*ast.MappingValueNode, anchors map[string]ast.Node) (toon.Value, error) {
	obj := toon.NewObjectWithCapacity(len(values))

	for _, mvn := range values {
		if _, ok := mvn.Key.(*ast.MergeKeyNode); ok {
			if err := mergeInto(obj, mvn.Value, anchors); err != nil {
				return nil, err
			}

			continue
		}

		val, err := convertNode(mvn.Value, anchors)
		if err != nil {
			return nil, err
		}

		obj.Set(mvn.Key.String(), val)
	}

	return obj, nil
}

// mergeInto folds a YAML merge key's (<<) referent mapping or sequence of
// mappings into obj, never overwriting a key obj already carries.
func mergeInto(obj *toon.Object, node ast.Node, anchors map[string]ast.Node) error {
	node = resolveAlias(node, anchors)
	node = unwrapNode(node)

	switch n := node.(type) {
	case *ast.MappingNode:
		return mergeMappingValues(obj, n.Values, anchors)
	case *ast.SequenceNode:
		for _, item := range n.Values {
			item = resolveAlias(item, anchors)
			item = unwrapNode(item)

			mn, ok := item.(*ast.MappingNode)
			if !ok {
				continue
			}

			if err := mergeMappingValues(obj, mn.Values, anchors); err != nil {
				return err
			}
		}
	}

	return nil
}

func mergeMappingValues(obj *toon.Object, values []*ast.MappingValueNode, anchors map[string]ast.Node) error {
	for _, mvn := range values {
		key := mvn.Key.String()
		if obj.Has(key) {
			continue
		}

		val, err := convertNode(mvn.Value, anchors)
		if err != nil {
			return err
		}

		obj.Set(key, val)
	}

	return nil
}

func convertSequence(seq *ast.SequenceNode, anchors map[string]ast.Node) (toon.Value, error) {
	items := make([]toon.Value, len(seq.Values))

	for i, v := range seq.Values {
		val, err := convertNode(v, anchors)
		if err != nil {
			return nil, err
		}

		items[i] = val
	}

	return items, nil
}

func convertScalar(node ast.Node) (toon.Value, error) {
	sn, ok := node.(ast.ScalarNode)
	if !ok {
		return nil, nil
	}

	switch v := sn.GetValue().(type) {
	case nil:
		return nil, nil
	case bool:
		return v, nil
	case int:
		return toon.Int(int64(v)), nil
	case int64:
		return toon.Int(v), nil
	case uint64:
		return toon.Uint(v), nil
	case float64:
		return toon.Float(v), nil
	case string:
		return v, nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}
