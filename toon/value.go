package toon

import (
	"math"

	"github.com/bnomei/serde-toon-sub001/parallel"
)

// parallelThreshold is the item count at which Normalize opts into the
// parallel worker pool. It equals [parallel.Threshold], which the encoder's
// and decoder's tabular-row paths use. Matches the reference
// implementation's PARALLEL_THRESHOLD.
const parallelThreshold = 256

// Normalize returns a copy of v with non-finite floats folded to Null,
// negative-zero floats folded to the integer zero, and the same
// normalization applied recursively through arrays and objects. Calling
// Normalize twice is idempotent: Encode(v) == Encode(Normalize(v)) for any
// v already produced by Normalize.
func Normalize(v Value) Value {
	switch val := v.(type) {
	case Number:
		return normalizeNumber(val)
	case *Object:
		return normalizeObject(val)
	case []Value:
		return normalizeArray(val)
	default:
		return v
	}
}

func normalizeNumber(n Number) Value {
	if n.IsFloat() {
		f := n.f
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}

		if f == 0 {
			return Int(0)
		}

		return n
	}

	return n
}

func normalizeObject(o *Object) *Object {
	if o.Len() == 0 {
		return o
	}

	keys := o.Keys()
	if len(keys) >= parallelThreshold {
		values := make([]Value, len(keys))
		for i, k := range keys {
			v, _ := o.Get(k)
			values[i] = v
		}

		normalized := parallel.Map(values, Normalize)
		out := NewObjectWithCapacity(len(keys))

		for i, k := range keys {
			out.Set(k, normalized[i])
		}

		return out
	}

	out := NewObjectWithCapacity(len(keys))

	for _, k := range keys {
		v, _ := o.Get(k)
		out.Set(k, Normalize(v))
	}

	return out
}

func normalizeArray(arr []Value) []Value {
	if len(arr) == 0 {
		return arr
	}

	if len(arr) >= parallelThreshold {
		return parallel.Map(arr, Normalize)
	}

	out := make([]Value, len(arr))
	for i, v := range arr {
		out[i] = Normalize(v)
	}

	return out
}

// Equal reports whether two normalized values are structurally equal:
// same kind, same scalar value, same array elements in order, same object
// keys (in order) each mapping to equal values. Callers comparing
// arbitrary (non-normalized) trees should call Normalize first, matching
// the round-trip property that decode(encode(v)) == v only holds for v
// free of NaN/Inf/-0.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)

		return ok && av == bv
	case string:
		bv, ok := b.(string)

		return ok && av == bv
	case Number:
		bv, ok := b.(Number)

		return ok && av.Equal(bv)
	case []Value:
		bv, ok := b.([]Value)
		if !ok || len(av) != len(bv) {
			return false
		}

		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}

		return true
	case *Object:
		bv, ok := b.(*Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}

		bKeys := bv.Keys()

		for i, k := range av.Keys() {
			if bKeys[i] != k {
				return false
			}

			aVal, _ := av.Get(k)
			bVal, _ := bv.Get(k)

			if !Equal(aVal, bVal) {
				return false
			}
		}

		return true
	default:
		return false
	}
}
