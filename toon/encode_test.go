package toon_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnomei/serde-toon-sub001/stringtest"
	"github.com/bnomei/serde-toon-sub001/toon"
)

func TestEncodeScalarRoot(t *testing.T) {
	t.Parallel()

	got, err := toon.Encode(toon.Int(42), toon.DefaultEncodeOptions())
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}

func TestEncodeEmptyObjectRoot(t *testing.T) {
	t.Parallel()

	got, err := toon.Encode(toon.NewObject(), toon.DefaultEncodeOptions())
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestEncodeSimpleObject(t *testing.T) {
	t.Parallel()

	obj := toon.NewObject()
	obj.Set("name", "Ada")
	obj.Set("active", true)

	got, err := toon.Encode(obj, toon.DefaultEncodeOptions())
	require.NoError(t, err)
	assert.Equal(t, "name: Ada\nactive: true", got)
}

func TestEncodeNestedObject(t *testing.T) {
	t.Parallel()

	inner := toon.NewObject()
	inner.Set("name", "Ada")

	obj := toon.NewObject()
	obj.Set("user", inner)

	got, err := toon.Encode(obj, toon.DefaultEncodeOptions())
	require.NoError(t, err)
	assert.Equal(t, stringtest.JoinLF("user:", "  name: Ada"), got)
}

func TestEncodeInlineScalarArray(t *testing.T) {
	t.Parallel()

	obj := toon.NewObject()
	obj.Set("items", []toon.Value{toon.Int(1), toon.Int(2), toon.Int(3)})

	got, err := toon.Encode(obj, toon.DefaultEncodeOptions())
	require.NoError(t, err)
	assert.Equal(t, "items[3]: 1,2,3", got)
}

func TestEncodeInlineArrayWithPipeDelimiter(t *testing.T) {
	t.Parallel()

	obj := toon.NewObject()
	obj.Set("items", []toon.Value{toon.Int(1), toon.Int(2), toon.Int(3)})

	opts := toon.DefaultEncodeOptions()
	opts.Delimiter = toon.DelimiterPipe

	got, err := toon.Encode(obj, opts)
	require.NoError(t, err)
	assert.Equal(t, "items[3|]: 1|2|3", got)
}

func TestEncodeTabularArray(t *testing.T) {
	t.Parallel()

	row1 := toon.NewObject()
	row1.Set("id", toon.Int(1))
	row1.Set("name", "Ada")

	row2 := toon.NewObject()
	row2.Set("id", toon.Int(2))
	row2.Set("name", "Grace")

	obj := toon.NewObject()
	obj.Set("rows", []toon.Value{row1, row2})

	got, err := toon.Encode(obj, toon.DefaultEncodeOptions())
	require.NoError(t, err)
	assert.Equal(t, stringtest.JoinLF("rows[2]{id,name}:", "  1,Ada", "  2,Grace"), got)
}

func TestEncodeLargeTabularArrayUsesParallelPath(t *testing.T) {
	t.Parallel()

	const n = 300

	rows := make([]toon.Value, n)

	for i := range rows {
		row := toon.NewObject()
		row.Set("id", toon.Int(int64(i)))
		rows[i] = row
	}

	obj := toon.NewObject()
	obj.Set("rows", rows)

	got, err := toon.Encode(obj, toon.DefaultEncodeOptions())
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, n+1)
	assert.Equal(t, "rows[300]{id}:", lines[0])
	assert.Equal(t, "  0", lines[1])
	assert.Equal(t, "  299", lines[n])
}

func TestEncodeBlockArrayOfMixedItems(t *testing.T) {
	t.Parallel()

	obj := toon.NewObject()
	obj.Set("items", []toon.Value{toon.Int(1), []toon.Value{toon.Int(2), toon.Int(3)}})

	got, err := toon.Encode(obj, toon.DefaultEncodeOptions())
	require.NoError(t, err)
	assert.Equal(t, stringtest.JoinLF("items[2]:", "  - 1", "  - [2]: 2,3"), got)
}

func TestEncodeSingleItemObjectArrayIsTabular(t *testing.T) {
	t.Parallel()

	// A one-element array of objects has no other row to conflict with,
	// so detectTabularFields accepts it trivially and the encoder
	// prefers the more compact tabular form over a dash block.
	item := toon.NewObject()
	item.Set("id", toon.Int(1))
	item.Set("name", "Ada")

	obj := toon.NewObject()
	obj.Set("users", []toon.Value{item})

	got, err := toon.Encode(obj, toon.DefaultEncodeOptions())
	require.NoError(t, err)
	assert.Equal(t, stringtest.JoinLF("users[1]{id,name}:", "  1,Ada"), got)
}

func TestEncodeDashMergedObjectListItem(t *testing.T) {
	t.Parallel()

	// Differing key sets across items rule out the tabular form, so each
	// item renders as a dash-introduced block with its first field
	// merged onto the dash line and the rest indented beneath it.
	item1 := toon.NewObject()
	item1.Set("id", toon.Int(1))
	item1.Set("name", "Ada")

	item2 := toon.NewObject()
	item2.Set("id", toon.Int(2))
	item2.Set("extra", "x")

	obj := toon.NewObject()
	obj.Set("users", []toon.Value{item1, item2})

	got, err := toon.Encode(obj, toon.DefaultEncodeOptions())
	require.NoError(t, err)
	assert.Equal(t, stringtest.JoinLF(
		"users[2]:",
		"  - id: 1",
		"    name: Ada",
		"  - id: 2",
		"    extra: x",
	), got)
}

func TestEncodeQuotesAmbiguousStrings(t *testing.T) {
	t.Parallel()

	obj := toon.NewObject()
	obj.Set("value", "42")
	obj.Set("flag", "true")

	got, err := toon.Encode(obj, toon.DefaultEncodeOptions())
	require.NoError(t, err)
	assert.Equal(t, "value: \"42\"\nflag: \"true\"", got)
}

func TestEncodeKeyFoldingSafe(t *testing.T) {
	t.Parallel()

	leaf := toon.NewObject()
	leaf.Set("value", toon.Int(1))

	mid := toon.NewObject()
	mid.Set("meta", leaf)

	obj := toon.NewObject()
	obj.Set("data", mid)

	opts := toon.DefaultEncodeOptions()
	opts.KeyFolding = toon.KeyFoldingSafe

	got, err := toon.Encode(obj, opts)
	require.NoError(t, err)
	assert.Equal(t, "data.meta.value: 1", got)
}

// TestEncodeKeyFoldingSafeFoldsThroughToArray matches the scenario folding
// a chain of single-key objects all the way down to an array field, not
// just down to a scalar.
func TestEncodeKeyFoldingSafeFoldsThroughToArray(t *testing.T) {
	t.Parallel()

	items := toon.NewObject()
	items.Set("items", []toon.Value{toon.Int(1), toon.Int(2)})

	meta := toon.NewObject()
	meta.Set("meta", items)

	obj := toon.NewObject()
	obj.Set("data", meta)

	opts := toon.DefaultEncodeOptions()
	opts.KeyFolding = toon.KeyFoldingSafe
	opts.FlattenDepth = 3

	got, err := toon.Encode(obj, opts)
	require.NoError(t, err)
	assert.Equal(t, "data.meta.items[2]: 1,2", got)
}

func TestEncodeNormalizesNegativeZeroFloat(t *testing.T) {
	t.Parallel()

	obj := toon.NewObject()
	obj.Set("x", toon.Float(math.Copysign(0, -1)))

	got, err := toon.Encode(obj, toon.DefaultEncodeOptions())
	require.NoError(t, err)
	assert.Equal(t, "x: 0", got)
}

func TestEncodeToBytes(t *testing.T) {
	t.Parallel()

	got, err := toon.EncodeToBytes(toon.Int(7), toon.DefaultEncodeOptions())
	require.NoError(t, err)
	assert.Equal(t, []byte("7"), got)
}
