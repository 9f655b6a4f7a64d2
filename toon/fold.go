package toon

import (
	"fmt"
	"strings"
)

// FoldChain walks val as long as it is a single-entry [*Object], joining
// keys with "." one segment at a time regardless of what the final
// segment's value turns out to be (scalar, array, or object) — the chain
// only stops once val is no longer itself a single-entry object. It stops
// collapsing when: val is no longer a single-entry object, the next
// segment would not be a safe bare key under delim, the next segment
// contains a literal ".", or flattenDepth segments have already been
// joined (flattenDepth <= 0 means unbounded). A key that is not itself
// fold-eligible is never extended. It returns the key to emit (key,
// possibly extended) and the value to render under it.
//
// Folding is off entirely unless folding == [KeyFoldingSafe]; callers
// should not call FoldChain otherwise.
func FoldChain(key string, val Value, delim Delimiter, flattenDepth int) (string, Value) {
	if !foldEligible(key, delim) {
		return key, val
	}

	segments := 1

	for {
		obj, ok := val.(*Object)
		if !ok || obj.Len() != 1 {
			return key, val
		}

		if flattenDepth > 0 && segments >= flattenDepth {
			return key, val
		}

		childKey := obj.Keys()[0]
		if !foldEligible(childKey, delim) {
			return key, val
		}

		childVal, _ := obj.Get(childKey)
		key = key + "." + childKey
		val = childVal
		segments++
	}
}

// foldEligible reports whether a key segment may participate in key
// folding: it must be a safe bare key under delim, and it must not itself
// contain a literal ".", since that would make the folded path ambiguous
// to split back apart. This is the operational form of "quoted keys never
// fold": any key that needed quoting (because it wasn't bare-key-safe)
// fails this check and the chain stops collapsing there.
func foldEligible(key string, delim Delimiter) bool {
	return IsBareKeySafe(key, delim) && !strings.ContainsRune(key, '.')
}

// ExpandObjectPaths returns a copy of obj with every top-level key that
// matches the safe-bare-dotted-key pattern split on "." into nested
// objects, recursively. A segment collision — a split path landing on a
// key that already holds a different, non-mergeable value — is a
// [StructureError].
func ExpandObjectPaths(obj *Object) (*Object, error) {
	if obj == nil {
		return obj, nil
	}

	out := NewObjectWithCapacity(obj.Len())

	for _, key := range obj.Keys() {
		val, _ := obj.Get(key)

		val, err := expandValuePaths(val)
		if err != nil {
			return nil, err
		}

		segments := splitExpandableKey(key)
		if segments == nil {
			if err := insertOrConflict(out, key, val); err != nil {
				return nil, err
			}

			continue
		}

		if err := insertPath(out, segments, val); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func expandValuePaths(v Value) (Value, error) {
	switch val := v.(type) {
	case *Object:
		return ExpandObjectPaths(val)
	case []Value:
		out := make([]Value, len(val))

		for i, item := range val {
			expanded, err := expandValuePaths(item)
			if err != nil {
				return nil, err
			}

			out[i] = expanded
		}

		return out, nil
	default:
		return v, nil
	}
}

// splitExpandableKey returns key's dot-separated segments if key contains
// at least one "." and every segment is individually safe to have been
// produced by folding (non-empty, no structural character, not a keyword,
// does not parse as a number, does not start with a digit). It returns nil
// if key should be left as a single flat key.
func splitExpandableKey(key string) []string {
	if !strings.Contains(key, ".") {
		return nil
	}

	segments := strings.Split(key, ".")

	for _, seg := range segments {
		if !isExpandSegmentSafe(seg) {
			return nil
		}
	}

	return segments
}

func isExpandSegmentSafe(seg string) bool {
	if seg == "" {
		return false
	}

	if IsKeyword(seg) || looksLikeNumber(seg) {
		return false
	}

	if seg[0] >= '0' && seg[0] <= '9' {
		return false
	}

	for _, r := range seg {
		if IsStructuralChar(r) || r == ' ' || r == '\t' || r < 0x20 || r == '"' || r == '.' {
			return false
		}
	}

	return true
}

func insertPath(out *Object, segments []string, leaf Value) error {
	if len(segments) == 1 {
		return insertOrConflict(out, segments[0], leaf)
	}

	head := segments[0]

	existing, ok := out.Get(head)
	if !ok {
		child := NewObject()
		if err := insertPath(child, segments[1:], leaf); err != nil {
			return err
		}

		return out.Insert(head, child)
	}

	childObj, ok := existing.(*Object)
	if !ok {
		return &StructureError{Message: fmt.Sprintf("path segment %q conflicts with an existing scalar value", head)}
	}

	return insertPath(childObj, segments[1:], leaf)
}

func insertOrConflict(out *Object, key string, val Value) error {
	if out.Has(key) {
		return &StructureError{Message: fmt.Sprintf("duplicate key %q after path expansion", key)}
	}

	return out.Insert(key, val)
}
