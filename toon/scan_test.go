package toon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnomei/serde-toon-sub001/toon"
)

// A trailing "\n" produces one extra blank line after the last real line,
// since ScanLines splits on "\n" the way strings.Split would.

func TestScanLinesBasic(t *testing.T) {
	t.Parallel()

	result, err := toon.ScanLines("a: 1\n  b: 2", 2, true)
	require.NoError(t, err)
	require.Len(t, result.Lines, 2)

	assert.Equal(t, "a: 1", result.Lines[0].Content)
	assert.Equal(t, 0, result.Lines[0].Level)

	assert.Equal(t, "b: 2", result.Lines[1].Content)
	assert.Equal(t, 1, result.Lines[1].Level)
	assert.Equal(t, 2, result.Lines[1].Indent)
}

func TestScanLinesTrailingNewlineAddsBlankLine(t *testing.T) {
	t.Parallel()

	result, err := toon.ScanLines("a: 1\n", 2, true)
	require.NoError(t, err)
	require.Len(t, result.Lines, 2)
	assert.True(t, result.Lines[1].Blank)
	assert.Equal(t, 1, result.NonBlank)
}

func TestScanLinesBlankLinesCounted(t *testing.T) {
	t.Parallel()

	result, err := toon.ScanLines("a: 1\n\nb: 2", 2, true)
	require.NoError(t, err)
	require.Len(t, result.Lines, 3)
	assert.True(t, result.Lines[1].Blank)
	assert.Equal(t, 2, result.NonBlank)
}

func TestScanLinesStrictRejectsTabs(t *testing.T) {
	t.Parallel()

	_, err := toon.ScanLines("a:\n\tb: 1", 2, true)
	require.Error(t, err)

	var indentErr *toon.IndentError
	require.ErrorAs(t, err, &indentErr)
	assert.Equal(t, 2, indentErr.Position.Line)
}

func TestScanLinesLenientAcceptsTabs(t *testing.T) {
	t.Parallel()

	result, err := toon.ScanLines("a:\n\tb: 1", 2, false)
	require.NoError(t, err)
	require.Len(t, result.Lines, 2)
	assert.Equal(t, 1, result.Lines[1].Level)
}

func TestScanLinesStrictRejectsPartialIndent(t *testing.T) {
	t.Parallel()

	_, err := toon.ScanLines("a:\n   b: 1", 2, true)
	require.Error(t, err)
}

func TestScanLinesRejectsZeroIndentSize(t *testing.T) {
	t.Parallel()

	_, err := toon.ScanLines("a: 1", 0, true)
	require.Error(t, err)
}

func TestScanLinesHandlesCRLF(t *testing.T) {
	t.Parallel()

	result, err := toon.ScanLines("a: 1\r\nb: 2", 2, true)
	require.NoError(t, err)
	require.Len(t, result.Lines, 2)
	assert.Equal(t, "a: 1", result.Lines[0].Content)
	assert.Equal(t, "b: 2", result.Lines[1].Content)
}
