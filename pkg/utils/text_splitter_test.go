package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInputSingleChunk(t *testing.T) {
	chunks := SplitText("short text", 100, 20)
	assert.Equal(t, []string{"short text"}, chunks)
}

func TestSplitTextChunksOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 30) // 300 chars
	chunks := SplitText(text, 100, 20)

	assert.True(t, len(chunks) > 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 100)
	}
	// Consecutive chunks share the overlap region.
	tail := chunks[0][len(chunks[0])-20:]
	assert.True(t, strings.HasPrefix(chunks[1], tail))
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("x", 250)
	chunks := SplitText(text, 100, 20)

	last := chunks[len(chunks)-1]
	assert.True(t, strings.HasSuffix(text, last))
}

func TestSplitTextOverlapLargerThanChunkSize(t *testing.T) {
	text := strings.Repeat("y", 50)
	// Degenerate config must not loop forever.
	chunks := SplitText(text, 10, 15)
	assert.NotEmpty(t, chunks)
}
