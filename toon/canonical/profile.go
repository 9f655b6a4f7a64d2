package canonical

import "github.com/bnomei/serde-toon-sub001/toon"

// Delimiter is the set of array/row delimiters the canonical profile
// recognizes.
type Delimiter uint8

const (
	// DelimiterComma is the canonical default delimiter.
	DelimiterComma Delimiter = iota
	// DelimiterTab separates elements with a tab character.
	DelimiterTab
	// DelimiterPipe separates elements with a pipe character.
	DelimiterPipe
)

// Byte returns d's single-byte representation.
func (d Delimiter) Byte() byte {
	switch d {
	case DelimiterTab:
		return '\t'
	case DelimiterPipe:
		return '|'
	default:
		return ','
	}
}

// toToonDelimiter converts d to its [toon.Delimiter] equivalent, for reuse
// of the scalar/quoting helpers in the parent package.
func (d Delimiter) toToonDelimiter() toon.Delimiter {
	switch d {
	case DelimiterTab:
		return toon.DelimiterTab
	case DelimiterPipe:
		return toon.DelimiterPipe
	default:
		return toon.DelimiterComma
	}
}

// Profile fixes the structural rules a document must follow to take the
// canonical fast path: an exact indentation width and a single delimiter
// used throughout the document (no per-field delimiter override markers).
type Profile struct {
	// IndentSpaces is the exact number of spaces per nesting level.
	IndentSpaces int
	// Delimiter is the array/row delimiter used throughout the document.
	Delimiter Delimiter
}

// DefaultProfile returns the canonical profile used when none is
// specified: two-space indentation, comma delimiter.
func DefaultProfile() Profile {
	return Profile{IndentSpaces: 2, Delimiter: DelimiterComma}
}

// DecodeOptions returns the [toon.DecodeOptions] a caller should fall back
// to when a document fails [ValidateCanonical]: the same indentation, in
// strict mode, with no key-folding re-expansion (the canonical profile
// never produces folded keys). No delimiter is set, since the general
// decoder reads each array's delimiter from its header.
func (p Profile) DecodeOptions() toon.DecodeOptions {
	return toon.DecodeOptions{
		Indent: p.IndentSpaces,
		Strict: true,
	}
}

// EncodeOptions returns the [toon.EncodeOptions] matching p, for encoding a
// value back out in the same shape a canonical document would have used.
func (p Profile) EncodeOptions() toon.EncodeOptions {
	return toon.EncodeOptions{
		Indent:    p.IndentSpaces,
		Delimiter: p.Delimiter.toToonDelimiter(),
	}
}
