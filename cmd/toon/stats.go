package main

import (
	"fmt"
	"io"
	"strings"
)

// docStats is the --stats heuristic: character and whitespace-delimited
// word counts of the input versus the converted output, plus the
// resulting size delta. It is a CLI-only estimate, not a core codec
// guarantee — two documents with the same structure can still differ in
// token count depending on key length, number formatting, and delimiter.
type docStats struct {
	inputChars  int
	inputWords  int
	outputChars int
	outputWords int
}

func newDocStats(input, output string) docStats {
	return docStats{
		inputChars:  len(input),
		inputWords:  len(strings.Fields(input)),
		outputChars: len(output),
		outputWords: len(strings.Fields(output)),
	}
}

// savingsPercent returns how much smaller output is than input, as a
// percentage of input's character count. Negative means output grew.
func (s docStats) savingsPercent() float64 {
	if s.inputChars == 0 {
		return 0
	}

	return 100 * float64(s.inputChars-s.outputChars) / float64(s.inputChars)
}

// writeStats prints a one-line summary of input versus output for path.
func writeStats(out io.Writer, path string, dir direction, input, output string) error {
	st := newDocStats(input, output)

	_, err := fmt.Fprintf(out,
		"%s: %s -> chars %d->%d (%.1f%%), words %d->%d\n",
		path, dir, st.inputChars, st.outputChars, st.savingsPercent(), st.inputWords, st.outputWords)

	return err
}
