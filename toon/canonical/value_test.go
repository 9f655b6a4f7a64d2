package canonical_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnomei/serde-toon-sub001/toon"
	"github.com/bnomei/serde-toon-sub001/toon/canonical"
)

func TestDecodeCanonicalValueMatchesGeneralDecoder(t *testing.T) {
	t.Parallel()

	input := "name: Ada\nage: 30\ntags[2]: a,b\n"

	want, err := toon.Decode(input, toon.DecodeOptions{Indent: 2, Strict: true})
	require.NoError(t, err)

	got, err := canonical.DecodeCanonicalValue(input, canonical.DefaultProfile())
	require.NoError(t, err)

	assert.True(t, toon.Equal(want, got), "canonical decode %#v did not match general decode %#v", got, want)
}

func TestArenaViewToValueNestedObject(t *testing.T) {
	t.Parallel()

	view, err := canonical.DecodeCanonical("user:\n  name: Ada\n  active: true\n", canonical.DefaultProfile())
	require.NoError(t, err)

	val, err := view.ToValue()
	require.NoError(t, err)

	obj, ok := val.(*toon.Object)
	require.True(t, ok)

	user, ok := obj.Get("user")
	require.True(t, ok)

	userObj, ok := user.(*toon.Object)
	require.True(t, ok)

	name, ok := userObj.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Ada", name)
}

func TestArenaViewToValueEmptyDocument(t *testing.T) {
	t.Parallel()

	view, err := canonical.DecodeCanonical("", canonical.DefaultProfile())
	require.NoError(t, err)

	val, err := view.ToValue()
	require.NoError(t, err)

	obj, ok := val.(*toon.Object)
	require.True(t, ok)
	assert.Equal(t, 0, obj.Len())
}

func TestProfileEncodeDecodeOptionsRoundTrip(t *testing.T) {
	t.Parallel()

	profile := canonical.Profile{IndentSpaces: 4, Delimiter: canonical.DelimiterPipe}

	encOpts := profile.EncodeOptions()
	assert.Equal(t, 4, encOpts.Indent)
	assert.Equal(t, toon.DelimiterPipe, encOpts.Delimiter)

	decOpts := profile.DecodeOptions()
	assert.Equal(t, 4, decOpts.Indent)
	assert.True(t, decOpts.Strict)
}
