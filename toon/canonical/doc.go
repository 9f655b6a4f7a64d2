// Package canonical implements the zero-copy fast decode path for TOON
// documents that already conform to a fixed, canonical profile: two-space
// indentation, strict whitespace rules, and (by default) a comma
// delimiter. It trades the general decoder's flexibility (tabs, custom
// indent widths, key folding, path expansion) for a single allocation-light
// pass that parses straight into an [ArenaView] of spans over the
// original input, instead of building a tree of [toon.Value].
//
// Use [DecodeCanonical] to obtain an [ArenaView] referencing the input
// string's bytes, [ValidateCanonical] to check conformance without
// keeping the result, or [DecodeCanonicalValue] to materialize the result
// as a [toon.Value] for interop with the rest of this module. Any document
// that does not match the canonical profile exactly — including one that
// would decode successfully under the general decoder's lenient or
// configurable modes — is rejected with a [Violation].
package canonical
