package factory

import (
	"studyflow-be/pkg/llm/fallback"
	"studyflow-be/pkg/llm/huggingface"
	"studyflow-be/pkg/llm/ollama"
)

type CandidateConfig struct {
	HuggingFaceKey     string
	HuggingFaceBaseURL string
	HuggingFaceModels  []string // ordered, highest priority first
	OllamaBaseURL      string
	OllamaChatModel    string
}

// NewCandidates builds the ordered fallback list for answer generation:
// hosted models in configured priority order, then the local Ollama model as
// the last resort when one is configured.
func NewCandidates(cfg CandidateConfig) []fallback.Candidate {
	var candidates []fallback.Candidate

	for _, model := range cfg.HuggingFaceModels {
		candidates = append(candidates, fallback.Candidate{
			ID:       model,
			Provider: huggingface.NewHuggingFaceProvider(cfg.HuggingFaceKey, cfg.HuggingFaceBaseURL, model),
		})
	}

	if cfg.OllamaBaseURL != "" && cfg.OllamaChatModel != "" {
		candidates = append(candidates, fallback.Candidate{
			ID:       "ollama/" + cfg.OllamaChatModel,
			Provider: ollama.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaChatModel),
		})
	}

	return candidates
}

// NewAnalysisCandidates returns the two-candidate list used by the analysis
// endpoints.
func NewAnalysisCandidates(cfg CandidateConfig) []fallback.Candidate {
	candidates := NewCandidates(cfg)
	if len(candidates) > 2 {
		candidates = candidates[:2]
	}
	return candidates
}
