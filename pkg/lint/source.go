package lint

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
)

// SourceLine is one raw line of a file.
// Text includes the line terminator when the file has one.
type SourceLine struct {
	Number int
	Text   []byte
}

// ReadLines returns a lazy, forward-only sequence of the lines in r.
// Lines are numbered from 1. A final line without a terminator is still
// yielded. Read errors other than io.EOF are yielded once and end the sequence.
func ReadLines(r io.Reader) iter.Seq2[SourceLine, error] {
	return func(yield func(SourceLine, error) bool) {
		br := bufio.NewReader(r)
		for n := 1; ; n++ {
			text, err := br.ReadBytes('\n')
			if len(text) > 0 {
				if !yield(SourceLine{Number: n, Text: text}, nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(SourceLine{}, fmt.Errorf("read line %d: %w", n, err))
				return
			}
		}
	}
}

// FileLines returns a lazy sequence of the lines of the file at path.
// The file is opened when iteration starts and closed when iteration ends,
// including when the consumer stops early.
func FileLines(path string) iter.Seq2[SourceLine, error] {
	return func(yield func(SourceLine, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(SourceLine{}, err)
			return
		}
		defer func() { _ = f.Close() }()

		for line, err := range ReadLines(f) {
			if !yield(line, err) {
				return
			}
		}
	}
}

// LinesOf returns a sequence over already-split lines, numbered from 1.
// Each element should carry its own terminator.
func LinesOf(texts ...string) iter.Seq2[SourceLine, error] {
	return func(yield func(SourceLine, error) bool) {
		for i, text := range texts {
			if !yield(SourceLine{Number: i + 1, Text: []byte(text)}, nil) {
				return
			}
		}
	}
}
