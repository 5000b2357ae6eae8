package writer

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestValidSplit(t *testing.T) {
	for _, count := range []int{1, 2, 4, 8, 64} {
		assert.True(t, ValidSplit(count), "count %d", count)
	}
	for _, count := range []int{-2, 0, 3, 6, 12} {
		assert.False(t, ValidSplit(count), "count %d", count)
	}
}

func TestSplitLines(t *testing.T) {
	assert.Empty(t, SplitLines(""))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\nb"))
}

func TestDistribute(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		count int
		want  []string
	}{
		{name: "single output", text: "00\n01\n02", count: 1, want: []string{"00\n01\n02"}},
		{name: "two outputs", text: "l1\nl2\nl3\nl4", count: 2, want: []string{"l1\nl3", "l2\nl4"}},
		{name: "uneven line count", text: "l1\nl2\nl3", count: 2, want: []string{"l1\nl3", "l2"}},
		{name: "more outputs than lines", text: "l1\nl2", count: 4, want: []string{"l1", "l2", "", ""}},
		{name: "four outputs", text: "0\n1\n2\n3\n4\n5\n6\n7", count: 4, want: []string{"0\n4", "1\n5", "2\n6", "3\n7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buffers := make([]*bytes.Buffer, tt.count)
			writers := make([]io.Writer, tt.count)
			for i := range buffers {
				buffers[i] = &bytes.Buffer{}
				writers[i] = buffers[i]
			}

			assert.NoError(t, Distribute(tt.text, writers))
			for i, buf := range buffers {
				assert.Equal(t, tt.want[i], buf.String())
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestDistributeErrors(t *testing.T) {
	assert.Error(t, Distribute("a", nil))
	assert.Error(t, Distribute("a", []io.Writer{failingWriter{}}))
	assert.ErrorContains(t, Distribute("a\nb", []io.Writer{&bytes.Buffer{}, failingWriter{}}), "disk full")
}
