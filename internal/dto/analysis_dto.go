package dto

import "encoding/json"

const (
	AnalysisTypeSyllabusTasks    = "syllabus_tasks"
	AnalysisTypeScheduleAnalysis = "schedule_analysis"
)

// AnalysisConfig tunes generation per request. Nil fields fall back to
// provider defaults.
type AnalysisConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty"`
	TopK            *int     `json:"topK,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
}

type AnalysisRequest struct {
	Type string `json:"type" validate:"required,oneof=syllabus_tasks schedule_analysis"`
	// Data is the raw payload to analyze: an object for schedule analysis,
	// or a string holding the syllabus text.
	Data   json.RawMessage `json:"data" validate:"required"`
	Config *AnalysisConfig `json:"config,omitempty"`
}

// AnalysisResponse carries whatever JSON the model produced. When the model
// output could not be parsed, Result holds {"rawResponse": "..."} instead.
type AnalysisResponse struct {
	Result map[string]interface{} `json:"result"`
}
