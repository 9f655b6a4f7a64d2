package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnomei/serde-toon-sub001/schema"
	"github.com/bnomei/serde-toon-sub001/toon"
)

func TestDecodeYAMLScalars(t *testing.T) {
	t.Parallel()

	v, err := schema.DecodeYAML([]byte("name: test\ncount: 3\nratio: 1.5\nenabled: true\nmissing: null\n"))
	require.NoError(t, err)

	obj, ok := v.(*toon.Object)
	require.True(t, ok)

	name, _ := obj.Get("name")
	assert.Equal(t, "test", name)

	count, _ := obj.Get("count")
	n, ok := count.(toon.Number)
	require.True(t, ok)
	assert.True(t, n.IsInt())
	assert.Equal(t, int64(3), n.Int64())

	missing, ok := obj.Get("missing")
	require.True(t, ok)
	assert.Nil(t, missing)
}

func TestDecodeYAMLPreservesOrder(t *testing.T) {
	t.Parallel()

	v, err := schema.DecodeYAML([]byte("z: 1\na: 2\nm: 3\n"))
	require.NoError(t, err)

	obj := v.(*toon.Object)
	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())
}

func TestDecodeYAMLNestedAndSequence(t *testing.T) {
	t.Parallel()

	v, err := schema.DecodeYAML([]byte("parent:\n  child: value\nitems:\n  - one\n  - two\n"))
	require.NoError(t, err)

	obj := v.(*toon.Object)

	parent, _ := obj.Get("parent")
	parentObj, ok := parent.(*toon.Object)
	require.True(t, ok)

	child, _ := parentObj.Get("child")
	assert.Equal(t, "value", child)

	items, _ := obj.Get("items")
	itemsArr, ok := items.([]toon.Value)
	require.True(t, ok)
	assert.Equal(t, []toon.Value{"one", "two"}, itemsArr)
}

func TestDecodeYAMLAnchorsAndAliases(t *testing.T) {
	t.Parallel()

	input := "defaults: &defaults\n  timeout: 30\n  retries: 3\nproduction:\n  <<: *defaults\n  timeout: 60\n"

	v, err := schema.DecodeYAML([]byte(input))
	require.NoError(t, err)

	obj := v.(*toon.Object)

	production, _ := obj.Get("production")
	prodObj, ok := production.(*toon.Object)
	require.True(t, ok)

	timeout, _ := prodObj.Get("timeout")
	n := timeout.(toon.Number)
	assert.Equal(t, int64(60), n.Int64())

	retries, ok := prodObj.Get("retries")
	require.True(t, ok)
	rn := retries.(toon.Number)
	assert.Equal(t, int64(3), rn.Int64())
}

func TestDecodeYAMLInvalid(t *testing.T) {
	t.Parallel()

	_, err := schema.DecodeYAML([]byte(":\n  invalid: [yaml\n"))
	require.Error(t, err)
	require.ErrorIs(t, err, schema.ErrInvalidYAML)
}
