package canonical

import (
	"fmt"

	"github.com/bnomei/serde-toon-sub001/toon"
)

// ScanResult wraps the shared line scanner's output for the canonical
// profile: strict indentation under profile.IndentSpaces. LineStarts[i] is
// the byte offset of raw line i+1 (1-indexed, matching [toon.Line.Num]) in
// the original input, letting the arena parser recover each line's
// content offset as LineStarts[num-1] + line.Indent without re-scanning.
// This is safe only because canonical [Scan] always runs in strict mode:
// indentation is spaces-only, so indent columns equal indent bytes.
type ScanResult struct {
	Lines      []toon.Line
	NonBlank   int
	LineStarts []int
}

// Scan splits input into lines under profile, reusing [toon.ScanLines] in
// strict mode (tabs in indentation and partial indent columns are
// rejected) since the canonical profile never tolerates either.
func Scan(input string, profile Profile) (ScanResult, error) {
	result, err := toon.ScanLines(input, profile.IndentSpaces, true)
	if err != nil {
		return ScanResult{}, violationFrom(err)
	}

	return ScanResult{Lines: result.Lines, NonBlank: result.NonBlank, LineStarts: rawLineStarts(input)}, nil
}

// rawLineStarts returns the byte offset of the start of each '\n'-delimited
// raw line in input, indexed the same way as [toon.Line.Num] (1-indexed).
func rawLineStarts(input string) []int {
	starts := []int{0}

	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return starts
}

// lineContentOffset returns the byte offset of line.Content within the
// input that produced scan.
func (scan ScanResult) lineContentOffset(line toon.Line) int {
	if line.Num-1 >= len(scan.LineStarts) {
		return 0
	}

	return scan.LineStarts[line.Num-1] + line.Indent
}

// violationFrom converts a toon package error into a [Violation], carrying
// its line/column through for the concrete error types that embed a
// [toon.Position].
func violationFrom(err error) *Violation {
	pos, ok := positionOf(err)
	if !ok {
		return &Violation{Message: err.Error()}
	}

	return &Violation{Line: pos.Line, Column: pos.Column, Message: err.Error()}
}

func positionOf(err error) (toon.Position, bool) {
	switch e := err.(type) {
	case *toon.IndentError:
		return e.Position, true
	case *toon.StructureError:
		return e.Position, true
	case *toon.LengthMismatchError:
		return e.Position, true
	case *toon.FieldError:
		return e.Position, true
	case *toon.ScalarError:
		return e.Position, true
	case *toon.DelimiterError:
		return e.Position, true
	default:
		return toon.Position{}, false
	}
}

// Violation is a canonical-profile conformance failure: either the input
// is not valid TOON at all, or it is valid but uses a feature (tabs,
// non-canonical indent width, a delimiter other than profile.Delimiter)
// that the fast path does not support.
type Violation struct {
	Line    int
	Column  int
	Message string
}

func (v *Violation) Error() string {
	if v.Line > 0 {
		return fmt.Sprintf("line %d col %d: %s", v.Line, v.Column, v.Message)
	}

	return v.Message
}
