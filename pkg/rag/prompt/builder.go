package prompt

import (
	"strings"

	"studyflow-be/internal/constant"
	"studyflow-be/pkg/llm"
	"studyflow-be/pkg/rag/retriever"
)

// maxHistoryTurns bounds how much conversation is replayed into the prompt.
// Older turns are dropped, newest kept.
const maxHistoryTurns = 8

// ContextualBuilder assembles the chatbot prompt from conversation history,
// retrieved course material and the student's question.
type ContextualBuilder struct {
	query     string
	history   []llm.Message
	documents []retriever.Document
}

func NewContextualBuilder(query string, history []llm.Message, documents []retriever.Document) *ContextualBuilder {
	return &ContextualBuilder{
		query:     query,
		history:   history,
		documents: documents,
	}
}

// Build produces the full prompt. Sections appear in a fixed order: history,
// course material, question, instruction suffix, answer marker.
func (b *ContextualBuilder) Build() string {
	var prompt strings.Builder

	b.writeHistory(&prompt)
	b.writeCourseMaterial(&prompt)
	b.writeQuestion(&prompt)

	prompt.WriteString(constant.ChatInstructionSuffix)
	prompt.WriteString("\n\n")
	prompt.WriteString(constant.AnswerMarker)

	return prompt.String()
}

func (b *ContextualBuilder) writeHistory(prompt *strings.Builder) {
	history := b.history
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	if len(history) == 0 {
		return
	}

	prompt.WriteString("Conversation so far:\n")
	for _, msg := range history {
		label := "Student"
		if msg.Role != constant.ChatMessageRoleUser {
			label = "Assistant"
		}
		prompt.WriteString(label)
		prompt.WriteString(": ")
		prompt.WriteString(msg.Content)
		prompt.WriteString("\n")
	}
	prompt.WriteString("\n")
}

func (b *ContextualBuilder) writeCourseMaterial(prompt *strings.Builder) {
	prompt.WriteString("Course material:\n")

	blocks := make([]string, len(b.documents))
	for i, doc := range b.documents {
		var block strings.Builder
		if doc.SourceName != "" {
			block.WriteString("[")
			block.WriteString(doc.SourceName)
			block.WriteString("]\n")
		}
		block.WriteString(doc.Content)
		blocks[i] = block.String()
	}

	prompt.WriteString(strings.Join(blocks, constant.ContextSeparator))
	prompt.WriteString("\n\n")
}

func (b *ContextualBuilder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString("Question: ")
	prompt.WriteString(b.query)
	prompt.WriteString("\n\n")
}
