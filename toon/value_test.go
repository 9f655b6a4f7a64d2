package toon_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnomei/serde-toon-sub001/toon"
)

func TestNormalizeFoldsNonFiniteFloatsToNull(t *testing.T) {
	t.Parallel()

	assert.Nil(t, toon.Normalize(toon.Float(math.NaN())))
	assert.Nil(t, toon.Normalize(toon.Float(math.Inf(1))))
	assert.Nil(t, toon.Normalize(toon.Float(math.Inf(-1))))
}

func TestNormalizeFoldsNegativeZeroToIntZero(t *testing.T) {
	t.Parallel()

	got := toon.Normalize(toon.Float(math.Copysign(0, -1)))

	n, ok := got.(toon.Number)
	assert.True(t, ok)
	assert.True(t, n.IsInt())
	assert.Equal(t, int64(0), n.Int64())
}

func TestNormalizeRecursesThroughArraysAndObjects(t *testing.T) {
	t.Parallel()

	obj := toon.NewObject()
	obj.Set("bad", toon.Float(math.NaN()))
	obj.Set("list", []toon.Value{toon.Float(math.Inf(1)), toon.Int(1)})

	got := toon.Normalize(obj).(*toon.Object)

	bad, _ := got.Get("bad")
	assert.Nil(t, bad)

	list, _ := got.Get("list")
	arr := list.([]toon.Value)
	assert.Nil(t, arr[0])
	assert.True(t, toon.Equal(toon.Int(1), arr[1]))
}

func TestEqualScalarsAndContainers(t *testing.T) {
	t.Parallel()

	assert.True(t, toon.Equal(nil, nil))
	assert.False(t, toon.Equal(nil, false))
	assert.True(t, toon.Equal("a", "a"))
	assert.False(t, toon.Equal("a", "b"))
	assert.True(t, toon.Equal(toon.Int(1), toon.Int(1)))
	assert.True(t, toon.Equal([]toon.Value{toon.Int(1)}, []toon.Value{toon.Int(1)}))
	assert.False(t, toon.Equal([]toon.Value{toon.Int(1)}, []toon.Value{toon.Int(1), toon.Int(2)}))

	a := toon.NewObject()
	a.Set("x", toon.Int(1))
	b := toon.NewObject()
	b.Set("x", toon.Int(1))
	assert.True(t, toon.Equal(a, b))

	c := toon.NewObject()
	c.Set("y", toon.Int(1))
	assert.False(t, toon.Equal(a, c))
}

func TestEqualObjectKeyOrderMatters(t *testing.T) {
	t.Parallel()

	a := toon.NewObject()
	a.Set("x", toon.Int(1))
	a.Set("y", toon.Int(2))

	b := toon.NewObject()
	b.Set("y", toon.Int(2))
	b.Set("x", toon.Int(1))

	assert.False(t, toon.Equal(a, b))
}

func TestNormalizeLargeObjectUsesParallelPath(t *testing.T) {
	t.Parallel()

	obj := toon.NewObjectWithCapacity(300)
	for i := 0; i < 300; i++ {
		obj.Set("k"+strconv.Itoa(i), toon.Float(math.NaN()))
	}

	got := toon.Normalize(obj).(*toon.Object)
	assert.Equal(t, 300, got.Len())

	got.Range(func(_ string, v toon.Value) bool {
		assert.Nil(t, v)

		return true
	})
}
