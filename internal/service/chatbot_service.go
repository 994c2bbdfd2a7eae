package service

import (
	"context"
	"errors"
	"strings"

	"studyflow-be/internal/constant"
	"studyflow-be/internal/dto"
	"studyflow-be/internal/pkg/logger"
	"studyflow-be/pkg/llm"
	"studyflow-be/pkg/llm/extract"
	"studyflow-be/pkg/llm/fallback"
	"studyflow-be/pkg/rag/prompt"
	"studyflow-be/pkg/rag/retriever"
)

// excerptLimit caps the document excerpt embedded in the degraded answer.
const excerptLimit = 500

// Generator is the slice of the fallback driver the chatbot needs. Narrowed
// for testability.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error)
}

// DocumentRetriever is the retrieval dependency of the chatbot.
type DocumentRetriever interface {
	Retrieve(ctx context.Context, query string, classId string, config retriever.Config) ([]retriever.Document, error)
}

type IChatbotService interface {
	Ask(ctx context.Context, req *dto.AskChatbotRequest) (*dto.AskChatbotResponse, error)
}

type chatbotService struct {
	retriever DocumentRetriever
	generator Generator
	logger    logger.ILogger
}

func NewChatbotService(docRetriever DocumentRetriever, generator Generator, log logger.ILogger) IChatbotService {
	return &chatbotService{
		retriever: docRetriever,
		generator: generator,
		logger:    log,
	}
}

// Ask answers a student question from their class materials. Once retrieval
// has found documents the pipeline never fails outward: generation errors
// degrade to an excerpt-based answer instead of an error response.
func (s *chatbotService) Ask(ctx context.Context, req *dto.AskChatbotRequest) (*dto.AskChatbotResponse, error) {
	documents, err := s.retriever.Retrieve(ctx, req.Query, req.ClassId, retriever.DefaultConfig())
	if err != nil {
		// Retrieval failure means no grounding at all; this is the one
		// fatal path in the pipeline.
		s.logger.Error("Chatbot", "Retrieval failed", map[string]interface{}{
			"class_id": req.ClassId,
			"error":    err.Error(),
		})
		return nil, err
	}

	if len(documents) == 0 {
		s.logger.Info("Chatbot", "No relevant documents found", map[string]interface{}{
			"class_id": req.ClassId,
		})
		return &dto.AskChatbotResponse{Answer: constant.NoDocumentsAnswer}, nil
	}

	history := toLLMMessages(req.ConversationHistory)
	promptText := prompt.NewContextualBuilder(req.Query, history, documents).Build()

	raw, err := s.generator.Generate(ctx, promptText)
	if err != nil {
		if errors.Is(err, fallback.ErrExhausted) {
			s.logger.Warn("Chatbot", "All candidates exhausted, serving degraded answer", map[string]interface{}{
				"class_id": req.ClassId,
			})
			return &dto.AskChatbotResponse{
				Answer:  degradedAnswer(documents[0]),
				Sources: sourceNames(documents),
			}, nil
		}
		return nil, err
	}

	return &dto.AskChatbotResponse{
		Answer:  extract.Answer(raw, constant.AnswerMarker),
		Sources: sourceNames(documents),
	}, nil
}

func toLLMMessages(turns []dto.ChatTurn) []llm.Message {
	messages := make([]llm.Message, len(turns))
	for i, t := range turns {
		messages[i] = llm.Message{Role: t.Role, Content: t.Content}
	}
	return messages
}

// degradedAnswer serves the best-matching excerpt when no model is reachable.
// The student still gets something grounded in their own materials.
func degradedAnswer(doc retriever.Document) string {
	excerpt := doc.Content
	if len(excerpt) > excerptLimit {
		excerpt = excerpt[:excerptLimit] + "..."
	}

	var sb strings.Builder
	sb.WriteString(constant.ServiceUnavailablePrefix)
	sb.WriteString("\n\n")
	if doc.SourceName != "" {
		sb.WriteString("From ")
		sb.WriteString(doc.SourceName)
		sb.WriteString(":\n")
	}
	sb.WriteString(excerpt)
	return sb.String()
}

func sourceNames(documents []retriever.Document) []string {
	seen := make(map[string]bool)
	var names []string
	for _, doc := range documents {
		if doc.SourceName == "" || seen[doc.SourceName] {
			continue
		}
		seen[doc.SourceName] = true
		names = append(names, doc.SourceName)
	}
	return names
}
