package controller

import (
	"context"
	"testing"

	"studyflow-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalysisService struct {
	req *dto.AnalysisRequest
}

func (f *fakeAnalysisService) Analyze(ctx context.Context, req *dto.AnalysisRequest) (*dto.AnalysisResponse, error) {
	f.req = req
	return &dto.AnalysisResponse{Result: map[string]interface{}{"ok": true}}, nil
}

func TestAnalyzeAcceptsObjectShapedData(t *testing.T) {
	svc := &fakeAnalysisService{}
	app := fiber.New()
	NewAnalysisController(svc).RegisterRoutes(app.Group("/api"), passthroughProtect)

	status := postJSON(t, app, "/api/analysis/v1/analyze",
		`{"type": "schedule_analysis", "data": {"events": [{"title": "Lab"}]}}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"events": [{"title": "Lab"}]}`, string(svc.req.Data))
}
