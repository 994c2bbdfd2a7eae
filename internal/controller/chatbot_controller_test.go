package controller

import (
	"context"
	"testing"

	"studyflow-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatbotService struct {
	req *dto.AskChatbotRequest
}

func (f *fakeChatbotService) Ask(ctx context.Context, req *dto.AskChatbotRequest) (*dto.AskChatbotResponse, error) {
	f.req = req
	return &dto.AskChatbotResponse{Answer: "ok"}, nil
}

func TestAskBindsCamelCaseFields(t *testing.T) {
	svc := &fakeChatbotService{}
	app := fiber.New()
	NewChatbotController(svc).RegisterRoutes(app.Group("/api"), passthroughProtect)

	status := postJSON(t, app, "/api/chatbot/v1/ask",
		`{"query": "when is the exam?", "classId": "cs101", "conversationHistory": [{"role": "user", "content": "hi"}]}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "cs101", svc.req.ClassId)
	require.Len(t, svc.req.ConversationHistory, 1)
	assert.Equal(t, "user", svc.req.ConversationHistory[0].Role)
}

func TestAskRejectsMissingClassId(t *testing.T) {
	svc := &fakeChatbotService{}
	app := fiber.New()
	NewChatbotController(svc).RegisterRoutes(app.Group("/api"), passthroughProtect)

	status := postJSON(t, app, "/api/chatbot/v1/ask",
		`{"query": "when is the exam?"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
