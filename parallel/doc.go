// Package parallel provides an optional, order-preserving worker-pool
// capability that the codec may opt into for large collections.
//
// Encoding and decoding are synchronous, pure transformations by default
// (see the toon package). This package exists so that normalize, encode,
// and decode can fan independent per-item work out across goroutines
// without changing their output: [Map] always returns results in the same
// order as its input, and callers that never cross [Threshold] never pay
// for a goroutine.
package parallel
