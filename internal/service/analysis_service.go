package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studyflow-be/internal/constant"
	"studyflow-be/internal/dto"
	"studyflow-be/internal/pkg/logger"
	"studyflow-be/pkg/llm"
	"studyflow-be/pkg/llm/extract"
)

type IAnalysisService interface {
	Analyze(ctx context.Context, req *dto.AnalysisRequest) (*dto.AnalysisResponse, error)
}

type analysisService struct {
	generator Generator
	logger    logger.ILogger
}

func NewAnalysisService(generator Generator, log logger.ILogger) IAnalysisService {
	return &analysisService{
		generator: generator,
		logger:    log,
	}
}

// Analyze runs one of the structured-output prompts over the submitted data.
// The model reply is coerced into a JSON object; a reply that resists parsing
// is passed through under "rawResponse" rather than failing the request.
func (s *analysisService) Analyze(ctx context.Context, req *dto.AnalysisRequest) (*dto.AnalysisResponse, error) {
	data := promptData(req.Data)

	var promptText string
	switch req.Type {
	case dto.AnalysisTypeSyllabusTasks:
		promptText = fmt.Sprintf(constant.SyllabusTasksPrompt, data, fmt.Sprintf("%d", time.Now().Year()))
	case dto.AnalysisTypeScheduleAnalysis:
		promptText = fmt.Sprintf(constant.ScheduleAnalysisPrompt, data)
	default:
		return nil, fmt.Errorf("unknown analysis type: %s", req.Type)
	}

	raw, err := s.generator.Generate(ctx, promptText, analysisOptions(req.Config)...)
	if err != nil {
		s.logger.Error("Analysis", "Generation failed", map[string]interface{}{
			"type":  req.Type,
			"error": err.Error(),
		})
		return nil, err
	}

	return &dto.AnalysisResponse{Result: extract.StructuredJSON(raw)}, nil
}

// promptData renders the request payload for the prompt: a JSON string is
// unwrapped to its text, any other shape goes in as-is.
func promptData(data json.RawMessage) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return string(data)
}

func analysisOptions(cfg *dto.AnalysisConfig) []llm.Option {
	if cfg == nil {
		return nil
	}

	var opts []llm.Option
	if cfg.Temperature != nil {
		opts = append(opts, llm.WithTemperature(*cfg.Temperature))
	}
	if cfg.MaxOutputTokens != nil {
		opts = append(opts, llm.WithMaxTokens(*cfg.MaxOutputTokens))
	}
	if cfg.TopK != nil {
		opts = append(opts, llm.WithTopK(*cfg.TopK))
	}
	if cfg.TopP != nil {
		opts = append(opts, llm.WithTopP(*cfg.TopP))
	}
	return opts
}
