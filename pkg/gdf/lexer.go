package gdf

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// maxLineLength bounds a single physical line read by ReadLines.
const maxLineLength = 1 << 20

// Line is one physical line of GDF input together with its
// whitespace-separated tokens. Number is 1-based and counts blank lines.
type Line struct {
	Number int
	Text   string
	Tokens []string
}

// Blank reports whether the line carries no tokens
func (l Line) Blank() bool {
	return len(l.Tokens) == 0
}

func newLine(number int, text string) Line {
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	return Line{
		Number: number,
		Text:   text,
		Tokens: strings.Fields(text),
	}
}

// Lines splits text into lines lazily. The sequence can be ranged over any
// number of times and always yields the same lines. A trailing newline does
// not produce an extra empty line.
func Lines(text string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		number := 0
		for raw := range strings.Lines(text) {
			number++
			if !yield(newLine(number, raw)) {
				return
			}
		}
	}
}

// ReadLines is the streaming counterpart of Lines. It reads from r as the
// sequence is consumed, so unlike Lines it can only be ranged over once.
// A read failure is yielded as the final element.
func ReadLines(r io.Reader) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

		number := 0
		for scanner.Scan() {
			number++
			if !yield(newLine(number, scanner.Text()), nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Line{Number: number + 1}, err)
		}
	}
}
