// Package toon implements Token-Oriented Object Notation: a textual,
// JSON-equivalent encoding designed to be compact and cheap to tokenize.
// Structure is conveyed by indentation (like an outline language), arrays
// carry an explicit length marker (name[N]: ...), and arrays of uniform
// objects may be rendered in a tabular form (a header row plus
// delimiter-separated data rows).
//
// Encode walks a [Value] tree and renders TOON text; Decode parses TOON
// text back into a [Value] tree. Both are synchronous, pure transformations
// over in-memory buffers: neither performs I/O, and neither can be
// cancelled mid-call. The package's only concurrency is the optional
// worker-pool fan-out in [github.com/bnomei/serde-toon-sub001/parallel],
// which changes timing, never output bytes.
//
// The [canonical] subpackage offers a zero-copy arena-backed decode path
// under a fixed, strict profile for callers that want to avoid allocating
// a full [Value] tree.
package toon
