package fallback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"studyflow-be/pkg/llm"
)

// ErrExhausted is returned when every candidate in the list failed. Callers
// are expected to degrade gracefully rather than surface this to the client.
var ErrExhausted = errors.New("all model candidates exhausted")

// Candidate is one external generative-model endpoint in the ordered
// fallback list.
type Candidate struct {
	ID       string
	Provider llm.LLMProvider
}

// RetryPolicy parameterizes the driver per pipeline so the chat and analysis
// endpoints share one retry loop.
type RetryPolicy struct {
	MaxAttempts    int
	Delay          time.Duration
	Retryable      func(status int) bool
	PollReadiness  bool
	ReadinessDelay time.Duration
}

// ChatPolicy retries overload responses (429/503) up to 3 times with a fixed
// 2s delay and probes readiness before the first request to each candidate.
func ChatPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
		Retryable: func(status int) bool {
			return status == http.StatusServiceUnavailable || status == http.StatusTooManyRequests
		},
		PollReadiness:  true,
		ReadinessDelay: 2 * time.Second,
	}
}

// AnalysisPolicy retries on 503 only and skips the readiness probe.
func AnalysisPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
		Retryable: func(status int) bool {
			return status == http.StatusServiceUnavailable
		},
	}
}

// Driver tries each candidate in priority order under a single retry policy.
type Driver struct {
	candidates []Candidate
	policy     RetryPolicy
	logger     *log.Logger
}

func NewDriver(candidates []Candidate, policy RetryPolicy, logger *log.Logger) *Driver {
	return &Driver{
		candidates: candidates,
		policy:     policy,
		logger:     logger,
	}
}

// Chat runs the candidate list against the given history. A retryable status
// is attempted up to MaxAttempts times with a fixed delay; any other failure
// moves straight to the next candidate. When the list is exhausted the last
// error is returned wrapped in ErrExhausted.
func (d *Driver) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if len(d.candidates) == 0 {
		return "", ErrExhausted
	}

	var lastErr error
	for _, candidate := range d.candidates {
		if d.policy.PollReadiness {
			d.waitForReadiness(ctx, candidate)
		}

		for attempt := 1; attempt <= d.policy.MaxAttempts; attempt++ {
			response, err := candidate.Provider.Chat(ctx, history, opts...)
			if err == nil {
				d.logger.Printf("[FALLBACK] Candidate %s succeeded (attempt %d)", candidate.ID, attempt)
				return response, nil
			}
			lastErr = err

			status := llm.StatusCode(err)
			if d.policy.Retryable != nil && d.policy.Retryable(status) && attempt < d.policy.MaxAttempts {
				d.logger.Printf("[FALLBACK] Candidate %s overloaded (status %d), retrying in %s (attempt %d/%d)",
					candidate.ID, status, d.policy.Delay, attempt, d.policy.MaxAttempts)
				if err := sleep(ctx, d.policy.Delay); err != nil {
					return "", err
				}
				continue
			}

			d.logger.Printf("[FALLBACK] Candidate %s failed: %v, moving to next candidate", candidate.ID, err)
			break
		}
	}

	return "", fmt.Errorf("%w: %v", ErrExhausted, lastErr)
}

// Generate wraps a single prompt into a user message and runs Chat.
func (d *Driver) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return d.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

// waitForReadiness probes candidates that expose a status endpoint and waits
// a fixed delay when the model reports it is still loading. Probe failures
// are not fatal; the retry loop handles a cold model anyway.
func (d *Driver) waitForReadiness(ctx context.Context, candidate Candidate) {
	prober, ok := candidate.Provider.(llm.ReadinessProber)
	if !ok {
		return
	}

	ready, err := prober.Ready(ctx)
	if err != nil {
		d.logger.Printf("[FALLBACK] Readiness probe for %s failed: %v", candidate.ID, err)
		return
	}
	if !ready {
		d.logger.Printf("[FALLBACK] Candidate %s is loading, waiting %s", candidate.ID, d.policy.ReadinessDelay)
		_ = sleep(ctx, d.policy.ReadinessDelay)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
