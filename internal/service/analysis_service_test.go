package service

import (
	"context"
	"encoding/json"
	"testing"

	"studyflow-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeParsesFencedJSON(t *testing.T) {
	generator := &fakeGenerator{response: "```json\n{\"tasks\": [{\"title\": \"Essay\"}]}\n```"}
	svc := NewAnalysisService(generator, nopLogger{})

	res, err := svc.Analyze(context.Background(), &dto.AnalysisRequest{
		Type: dto.AnalysisTypeSyllabusTasks,
		Data: json.RawMessage(`"Week 3: Essay due"`),
	})
	require.NoError(t, err)
	assert.Contains(t, res.Result, "tasks")
}

func TestAnalyzeAcceptsObjectData(t *testing.T) {
	generator := &fakeGenerator{response: `{"workload": "heavy"}`}
	svc := NewAnalysisService(generator, nopLogger{})

	res, err := svc.Analyze(context.Background(), &dto.AnalysisRequest{
		Type: dto.AnalysisTypeScheduleAnalysis,
		Data: json.RawMessage(`{"events": [{"title": "Lab", "due": "2026-03-01"}]}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "heavy", res.Result["workload"])
	assert.Contains(t, generator.prompt, `"title": "Lab"`)
}

func TestAnalyzePassesThroughUnparseableOutput(t *testing.T) {
	generator := &fakeGenerator{response: "I refuse to answer in JSON."}
	svc := NewAnalysisService(generator, nopLogger{})

	res, err := svc.Analyze(context.Background(), &dto.AnalysisRequest{
		Type: dto.AnalysisTypeScheduleAnalysis,
		Data: json.RawMessage(`"some tasks"`),
	})
	require.NoError(t, err)
	assert.Equal(t, "I refuse to answer in JSON.", res.Result["rawResponse"])
}

func TestAnalyzeRejectsUnknownType(t *testing.T) {
	svc := NewAnalysisService(&fakeGenerator{}, nopLogger{})

	_, err := svc.Analyze(context.Background(), &dto.AnalysisRequest{
		Type: "mind_reading",
		Data: json.RawMessage(`"x"`),
	})
	assert.Error(t, err)
}
