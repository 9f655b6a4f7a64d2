package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRejectsTabIndentation(t *testing.T) {
	t.Parallel()

	_, err := Scan("a:\n\tb: 1\n", DefaultProfile())
	require.Error(t, err)

	var violation *Violation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, 2, violation.Line)
}

func TestScanRejectsNonCanonicalIndentWidth(t *testing.T) {
	t.Parallel()

	_, err := Scan("a:\n   b: 1\n", DefaultProfile())
	require.Error(t, err)
}

func TestScanComputesLineStarts(t *testing.T) {
	t.Parallel()

	result, err := Scan("a: 1\nb: 2\n", DefaultProfile())
	require.NoError(t, err)
	require.Len(t, result.LineStarts, 3)
	assert.Equal(t, 0, result.LineStarts[0])
	assert.Equal(t, 5, result.LineStarts[1])
}

func TestRawLineStartsNoTrailingNewline(t *testing.T) {
	t.Parallel()

	starts := rawLineStarts("ab\ncd")
	assert.Equal(t, []int{0, 3}, starts)
}
