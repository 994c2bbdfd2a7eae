package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"studyflow-be/internal/constant"
	"studyflow-be/internal/dto"
	"studyflow-be/internal/pkg/logger"
	"studyflow-be/pkg/llm"
	"studyflow-be/pkg/llm/fallback"
	"studyflow-be/pkg/rag/retriever"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

type fakeRetriever struct {
	documents []retriever.Document
	err       error
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query, classId string, config retriever.Config) ([]retriever.Document, error) {
	return f.documents, f.err
}

type fakeGenerator struct {
	calls    int
	prompt   string
	response string
	err      error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.response, f.err
}

func TestAskReturnsFriendlyAnswerWhenNoDocuments(t *testing.T) {
	generator := &fakeGenerator{response: "never used"}
	svc := NewChatbotService(&fakeRetriever{}, generator, nopLogger{})

	res, err := svc.Ask(context.Background(), &dto.AskChatbotRequest{
		Query:   "when is the exam?",
		ClassId: "cs101",
	})
	require.NoError(t, err)
	assert.Equal(t, constant.NoDocumentsAnswer, res.Answer)
	assert.Equal(t, 0, generator.calls, "generation must be skipped without documents")
}

func TestAskReturnsRetrievalError(t *testing.T) {
	svc := NewChatbotService(&fakeRetriever{err: errors.New("embedding api down")}, &fakeGenerator{}, nopLogger{})

	_, err := svc.Ask(context.Background(), &dto.AskChatbotRequest{
		Query:   "when is the exam?",
		ClassId: "cs101",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding api down")
}

func TestAskExtractsAnswerFromGeneration(t *testing.T) {
	docs := []retriever.Document{
		{SourceName: "syllabus.pdf", Content: "Midterm: Oct 12", Score: 0.9},
	}
	raw := `[{"generated_text": "...prompt echo...\n\nAnswer: The midterm is on October 12."}]`
	svc := NewChatbotService(&fakeRetriever{documents: docs}, &fakeGenerator{response: raw}, nopLogger{})

	res, err := svc.Ask(context.Background(), &dto.AskChatbotRequest{
		Query:   "when is the midterm?",
		ClassId: "cs101",
	})
	require.NoError(t, err)
	assert.Equal(t, "The midterm is on October 12.", res.Answer)
	assert.Equal(t, []string{"syllabus.pdf"}, res.Sources)
}

func TestAskDegradesToExcerptWhenExhausted(t *testing.T) {
	docs := []retriever.Document{
		{SourceName: "syllabus.pdf", Content: "Midterm: Oct 12, worth 30% of the grade.", Score: 0.9},
		{SourceName: "notes.txt", Content: "Lecture 3 covers recursion.", Score: 0.7},
	}
	generator := &fakeGenerator{err: fmt.Errorf("%w: last 503", fallback.ErrExhausted)}
	svc := NewChatbotService(&fakeRetriever{documents: docs}, generator, nopLogger{})

	res, err := svc.Ask(context.Background(), &dto.AskChatbotRequest{
		Query:   "when is the midterm?",
		ClassId: "cs101",
	})
	require.NoError(t, err, "exhaustion must degrade, not fail")
	assert.Contains(t, res.Answer, "Midterm: Oct 12")
	assert.Contains(t, res.Answer, constant.ServiceUnavailablePrefix)
}

func TestAskPropagatesNonExhaustionErrors(t *testing.T) {
	docs := []retriever.Document{{SourceName: "a.pdf", Content: "x"}}
	generator := &fakeGenerator{err: context.Canceled}
	svc := NewChatbotService(&fakeRetriever{documents: docs}, generator, nopLogger{})

	_, err := svc.Ask(context.Background(), &dto.AskChatbotRequest{
		Query:   "q",
		ClassId: "cs101",
	})
	assert.True(t, errors.Is(err, context.Canceled))
}
