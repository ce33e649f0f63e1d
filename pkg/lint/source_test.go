package lint

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, seq func(func(SourceLine, error) bool)) []SourceLine {
	t.Helper()
	var out []SourceLine
	for line, err := range seq {
		require.NoError(t, err)
		out = append(out, line)
	}
	return out
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "terminated", input: "a\nb\n", want: []string{"a\n", "b\n"}},
		{name: "unterminated last line", input: "a\nb", want: []string{"a\n", "b"}},
		{name: "blank lines kept", input: "\n\nx\n", want: []string{"\n", "\n", "x\n"}},
		{name: "CRLF preserved", input: "a\r\nb\r\n", want: []string{"a\r\n", "b\r\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, ReadLines(strings.NewReader(tt.input)))
			require.Len(t, got, len(tt.want))
			for i, line := range got {
				assert.Equal(t, i+1, line.Number)
				assert.Equal(t, tt.want[i], string(line.Text))
			}
		})
	}
}

func TestReadLines_Error(t *testing.T) {
	boom := errors.New("boom")
	var gotErr error
	for _, err := range ReadLines(iotest.ErrReader(boom)) {
		gotErr = err
	}
	require.ErrorIs(t, gotErr, boom)
}

func TestReadLines_StopsEarly(t *testing.T) {
	var n int
	for range ReadLines(strings.NewReader("a\nb\nc\n")) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestFileLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nb.py")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0600))

	got := collect(t, FileLines(path))
	require.Len(t, got, 2)
	assert.Equal(t, "two\n", string(got[1].Text))
}

func TestFileLines_Missing(t *testing.T) {
	var gotErr error
	for _, err := range FileLines(filepath.Join(t.TempDir(), "missing.py")) {
		gotErr = err
	}
	require.ErrorIs(t, gotErr, os.ErrNotExist)
}

func TestLinesOf(t *testing.T) {
	got := collect(t, LinesOf("x\n", "y\n"))
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[1].Number)
	assert.Equal(t, "y\n", string(got[1].Text))
}
