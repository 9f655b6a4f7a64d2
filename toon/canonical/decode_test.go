package canonical_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnomei/serde-toon-sub001/toon/canonical"
)

func TestDecodeCanonicalSimpleObject(t *testing.T) {
	t.Parallel()

	view, err := canonical.DecodeCanonical("name: Ada\nactive: true\n", canonical.DefaultProfile())
	require.NoError(t, err)

	root, ok := view.Root()
	require.True(t, ok)
	assert.Equal(t, canonical.KindObject, root.Kind)

	pairs := view.NodePairs(root)
	require.Len(t, pairs, 2)

	key0, ok := view.GetStr(pairs[0].Key)
	require.True(t, ok)
	assert.Equal(t, "name", key0)

	val0, ok := view.GetStr(view.Nodes[pairs[0].Value].DataIndex)
	require.True(t, ok)
	assert.Equal(t, "Ada", val0)

	assert.Equal(t, canonical.KindBool, view.Nodes[pairs[1].Value].Kind)
	assert.True(t, view.Nodes[pairs[1].Value].Bool)
}

func TestDecodeCanonicalNestedObject(t *testing.T) {
	t.Parallel()

	input := "user:\n  name: Ada\n  age: 30\n"

	view, err := canonical.DecodeCanonical(input, canonical.DefaultProfile())
	require.NoError(t, err)

	root, ok := view.Root()
	require.True(t, ok)

	pairs := view.NodePairs(root)
	require.Len(t, pairs, 1)

	userNode := view.Nodes[pairs[0].Value]
	assert.Equal(t, canonical.KindObject, userNode.Kind)
	assert.Len(t, view.NodePairs(userNode), 2)
}

func TestDecodeCanonicalInlineArray(t *testing.T) {
	t.Parallel()

	view, err := canonical.DecodeCanonical("items[3]: 1,2,3\n", canonical.DefaultProfile())
	require.NoError(t, err)

	root, ok := view.Root()
	require.True(t, ok)

	pairs := view.NodePairs(root)
	require.Len(t, pairs, 1)

	arr := view.Nodes[pairs[0].Value]
	assert.Equal(t, canonical.KindArray, arr.Kind)

	children := view.NodeChildren(arr)
	require.Len(t, children, 3)

	for i, childIdx := range children {
		numStr, ok := view.GetNumStr(view.Nodes[childIdx].DataIndex)
		require.True(t, ok)
		assert.Equal(t, []string{"1", "2", "3"}[i], numStr)
	}
}

func TestDecodeCanonicalTabularArray(t *testing.T) {
	t.Parallel()

	input := "rows[2]{id,name}:\n  1,Ada\n  2,Grace\n"

	view, err := canonical.DecodeCanonical(input, canonical.DefaultProfile())
	require.NoError(t, err)

	root, ok := view.Root()
	require.True(t, ok)

	pairs := view.NodePairs(root)
	require.Len(t, pairs, 1)

	arr := view.Nodes[pairs[0].Value]
	assert.Equal(t, canonical.KindArray, arr.Kind)

	rows := view.NodeChildren(arr)
	require.Len(t, rows, 2)

	row0 := view.Nodes[rows[0]]
	rowPairs := view.NodePairs(row0)
	require.Len(t, rowPairs, 2)

	name, ok := view.GetStr(rowPairs[0].Key)
	require.True(t, ok)
	assert.Equal(t, "id", name)
}

func TestDecodeCanonicalDashMergedListItem(t *testing.T) {
	t.Parallel()

	input := "users[1]:\n  - id: 1\n    name: Ada\n"

	view, err := canonical.DecodeCanonical(input, canonical.DefaultProfile())
	require.NoError(t, err)

	root, ok := view.Root()
	require.True(t, ok)

	pairs := view.NodePairs(root)
	require.Len(t, pairs, 1)

	arr := view.Nodes[pairs[0].Value]
	items := view.NodeChildren(arr)
	require.Len(t, items, 1)

	item := view.Nodes[items[0]]
	assert.Equal(t, canonical.KindObject, item.Kind)
	assert.Len(t, view.NodePairs(item), 2)
}

func TestDecodeCanonicalEmptyDocument(t *testing.T) {
	t.Parallel()

	view, err := canonical.DecodeCanonical("", canonical.DefaultProfile())
	require.NoError(t, err)

	root, ok := view.Root()
	require.True(t, ok)
	assert.Equal(t, canonical.KindObject, root.Kind)
	assert.Empty(t, view.NodePairs(root))
}

func TestDecodeCanonicalRejectsTabIndentation(t *testing.T) {
	t.Parallel()

	_, err := canonical.DecodeCanonical("user:\n\tname: Ada\n", canonical.DefaultProfile())
	require.Error(t, err)

	var violation *canonical.Violation
	require.ErrorAs(t, err, &violation)
	assert.Positive(t, violation.Line)
}

func TestDecodeCanonicalRejectsDelimiterOverrideMarker(t *testing.T) {
	t.Parallel()

	_, err := canonical.DecodeCanonical("items[3|]: 1|2|3\n", canonical.DefaultProfile())
	require.Error(t, err)

	var violation *canonical.Violation
	require.ErrorAs(t, err, &violation)
}

func TestDecodeCanonicalRejectsMalformedNumber(t *testing.T) {
	t.Parallel()

	_, err := canonical.DecodeCanonical("count: 01\n", canonical.DefaultProfile())
	require.Error(t, err)
}

func TestDecodeCanonicalRejectsArityMismatch(t *testing.T) {
	t.Parallel()

	_, err := canonical.DecodeCanonical("items[3]: 1,2\n", canonical.DefaultProfile())
	require.Error(t, err)
}

func TestValidateCanonicalAcceptsConformingDocument(t *testing.T) {
	t.Parallel()

	err := canonical.ValidateCanonical("a: 1\nb: 2\n", canonical.DefaultProfile())
	assert.NoError(t, err)
}

func TestViolationErrorFormatting(t *testing.T) {
	t.Parallel()

	withLine := &canonical.Violation{Line: 3, Column: 5, Message: "bad thing"}
	assert.Equal(t, "line 3 col 5: bad thing", withLine.Error())

	withoutLine := &canonical.Violation{Message: "bad thing"}
	assert.Equal(t, "bad thing", withoutLine.Error())
}
