package toon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnomei/serde-toon-sub001/toon"
)

func TestNumberKinds(t *testing.T) {
	t.Parallel()

	n := toon.Int(-7)
	assert.True(t, n.IsInt())
	assert.False(t, n.IsUint())
	assert.Equal(t, int64(-7), n.Int64())
	assert.Equal(t, float64(-7), n.Float64())

	u := toon.Uint(42)
	assert.True(t, u.IsUint())
	assert.Equal(t, uint64(42), u.Uint64())

	f := toon.Float(3.5)
	assert.True(t, f.IsFloat())
	assert.Equal(t, 3.5, f.Float64())
}

func TestNumberEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, toon.Int(1).Equal(toon.Int(1)))
	assert.False(t, toon.Int(1).Equal(toon.Uint(1)))
	assert.False(t, toon.Int(1).Equal(toon.Int(2)))
	assert.True(t, toon.Float(1.5).Equal(toon.Float(1.5)))
}
