// Package schema generates a best-effort JSON Schema (Draft 7) from a
// decoded [toon.Value] tree on a best-effort basis, inferring types from
// the tree's structure.
//
// The generated schemas are designed to fail open -- a document is never
// assumed to be a complete representation of the schema its values belong
// to. The goal is to produce schemas that guide consumers of a document,
// not strictly validate one.
//
// # Design Principles
//
//  1. Fail open: generated schemas should help, not block. Default
//     additionalProperties to true. Never mark a property required unless
//     it was present in every input processed. Use permissive type unions
//     when uncertain.
//
//  2. Best-effort: extract as much schema information as possible purely
//     from value structure. There is no annotation system -- TOON and its
//     CLI's other accepted inputs carry no comments to mine (see
//     Non-goals: preserving source comments).
//
//  3. Union semantics: when processing multiple inputs, produce a schema
//     representing the union of all of them. Conflicting types widen to
//     the most general type.
//
// # Pipeline
//
// [Generator.Generate] processes one or more already-decoded [toon.Value]
// trees:
//
//  1. Infer: each value is walked recursively. Booleans, numbers, and
//     strings map to their JSON Schema types. Null values emit no type
//     constraint (maximally permissive). Objects recurse into properties,
//     in source key order. Arrays infer an items schema by merging the
//     schemas of all their elements.
//
//  2. Merge multiple inputs: schemas are generated independently per
//     input and then merged with union semantics. Properties are unioned;
//     conflicting types are widened (integer + number becomes number;
//     incompatible types drop the type constraint entirely). Required is
//     intersected. additionalProperties merges fail-open.
//
//  3. Emit: the root schema is stamped with the Draft 7 $schema URI and
//     any title/description/$id from [Option] values, and
//     additionalProperties on the root object defaults to [TrueSchema]
//     ([FalseSchema] under [WithStrict]).
//
// # Errors
//
// The package defines sentinel errors for use with [errors.Is]:
// [ErrInvalidOption], [ErrReadInput], and [ErrWriteOutput].
//
// # CLI Integration
//
// [Config] bridges CLI flags to the library, following the
// RegisterFlags/RegisterCompletions/NewGenerator pattern used elsewhere in
// this module's CLI-adjacent packages.
package schema
