package toon

import "fmt"

// Value is the dynamic tree the encoder renders and the decoder produces.
// A Value is one of: nil (Null), bool, [Number], string, []Value (Array),
// or *Object (Object). Insertion order on Object is semantically
// significant for encoding.
type Value = any

// Object is an insertion-ordered string-keyed map. Unlike a plain
// map[string]Value, it remembers the order keys were added so that encoding
// reproduces the source order, and it can reject duplicate keys the way the
// decoder must.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty Object ready for use.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// NewObjectWithCapacity returns an empty Object pre-sized for n entries.
func NewObjectWithCapacity(n int) *Object {
	return &Object{keys: make([]string, 0, n), vals: make(map[string]Value, n)}
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}

	return len(o.keys)
}

// Keys returns the keys in insertion order. The returned slice must not be
// mutated by callers.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}

	return o.keys
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}

	v, ok := o.vals[key]

	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}

	_, ok := o.vals[key]

	return ok
}

// Set inserts or overwrites key with value, appending it to the key order
// only if it is new. Used on the encode-building side, where callers are
// trusted not to introduce duplicates they didn't intend.
func (o *Object) Set(key string, value Value) {
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}

	o.vals[key] = value
}

// Insert adds key with value, returning an error if key is already present.
// This is the decode-side entry point: duplicate keys within one object
// are a decode error, not a silent overwrite.
func (o *Object) Insert(key string, value Value) error {
	if _, exists := o.vals[key]; exists {
		return fmt.Errorf("%w: duplicate key %q", ErrStructure, key)
	}

	o.keys = append(o.keys, key)
	o.vals[key] = value

	return nil
}

// Range calls fn for each entry in insertion order, stopping early if fn
// returns false.
func (o *Object) Range(fn func(key string, value Value) bool) {
	if o == nil {
		return
	}

	for _, k := range o.keys {
		if !fn(k, o.vals[k]) {
			return
		}
	}
}

// Clone returns a shallow copy of o: the key order and top-level value
// references are copied, but nested Objects/Arrays are not deep-copied.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}

	clone := NewObjectWithCapacity(len(o.keys))
	clone.keys = append(clone.keys, o.keys...)

	for k, v := range o.vals {
		clone.vals[k] = v
	}

	return clone
}
