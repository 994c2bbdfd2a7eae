package prompt

import (
	"fmt"
	"strings"
	"testing"

	"studyflow-be/internal/constant"
	"studyflow-be/pkg/llm"
	"studyflow-be/pkg/rag/retriever"

	"github.com/stretchr/testify/assert"
)

func TestBuildSectionOrder(t *testing.T) {
	docs := []retriever.Document{
		{SourceName: "syllabus.pdf", Content: "Midterm: Oct 12"},
		{SourceName: "notes.txt", Content: "Recursion basics"},
	}
	history := []llm.Message{
		{Role: "user", Content: "hi"},
		{Role: "model", Content: "hello"},
	}

	built := NewContextualBuilder("when is the midterm?", history, docs).Build()

	historyIdx := strings.Index(built, "Conversation so far:")
	materialIdx := strings.Index(built, "Course material:")
	questionIdx := strings.Index(built, "Question: when is the midterm?")
	suffixIdx := strings.Index(built, constant.ChatInstructionSuffix)
	markerIdx := strings.LastIndex(built, constant.AnswerMarker)

	assert.True(t, historyIdx >= 0 && historyIdx < materialIdx)
	assert.True(t, materialIdx < questionIdx)
	assert.True(t, questionIdx < suffixIdx)
	assert.True(t, suffixIdx < markerIdx)
	assert.True(t, strings.HasSuffix(built, constant.AnswerMarker))
}

func TestBuildSeparatesDocuments(t *testing.T) {
	docs := []retriever.Document{
		{Content: "first chunk"},
		{Content: "second chunk"},
	}

	built := NewContextualBuilder("q", nil, docs).Build()
	assert.Contains(t, built, "first chunk"+constant.ContextSeparator+"second chunk")
}

func TestBuildKeepsOnlyLastEightTurns(t *testing.T) {
	var history []llm.Message
	for i := 0; i < 12; i++ {
		history = append(history, llm.Message{Role: "user", Content: fmt.Sprintf("turn-%d", i)})
	}

	built := NewContextualBuilder("q", history, []retriever.Document{{Content: "doc"}}).Build()

	assert.NotContains(t, built, "turn-3")
	assert.Contains(t, built, "turn-4")
	assert.Contains(t, built, "turn-11")
}

func TestBuildOmitsHistorySectionWhenEmpty(t *testing.T) {
	built := NewContextualBuilder("q", nil, []retriever.Document{{Content: "doc"}}).Build()
	assert.NotContains(t, built, "Conversation so far:")
}

func TestBuildLabelsRoles(t *testing.T) {
	history := []llm.Message{
		{Role: "user", Content: "what is recursion?"},
		{Role: "model", Content: "a function calling itself"},
	}

	built := NewContextualBuilder("q", history, []retriever.Document{{Content: "doc"}}).Build()
	assert.Contains(t, built, "Student: what is recursion?")
	assert.Contains(t, built, "Assistant: a function calling itself")
}
