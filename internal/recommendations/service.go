package recommendations

import (
	"context"
	"errors"
	"time"

	"formulator-backend/internal/llm"
	"formulator-backend/internal/shared/metrics"
	"formulator-backend/internal/shared/telemetry"
)

// Service turns a profile into one completion call.
type Service struct {
	client llm.Client
	now    func() time.Time
}

// configurable is implemented by clients that know up front whether they
// hold a credential.
type configurable interface {
	Configured() bool
}

// NewService builds a Service on top of client.
func NewService(client llm.Client) *Service {
	return &Service{client: client, now: time.Now}
}

// Generate validates req, calls the model once and returns its text
// unmodified. Failures are returned as *Error.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	metrics.IncRecommendationStarted()

	result, err := s.generate(ctx, req)
	if err != nil {
		categorized := classify(err)
		metrics.IncRecommendationFailed(string(categorized.Category))
		return Result{}, categorized
	}

	metrics.IncRecommendationSucceeded()
	return result, nil
}

// Ready reports a missing client or credential as a categorized *Error
// without touching the network.
func (s *Service) Ready() error {
	if err := s.ready(); err != nil {
		return classify(err)
	}
	return nil
}

func (s *Service) ready() error {
	if s == nil || s.client == nil {
		return errors.New("recommendation service not configured")
	}
	if c, ok := s.client.(configurable); ok && !c.Configured() {
		return llm.ErrMissingAPIKey
	}
	return nil
}

func (s *Service) generate(ctx context.Context, req Request) (Result, error) {
	if err := s.ready(); err != nil {
		return Result{}, err
	}
	if err := req.validate(); err != nil {
		return Result{}, err
	}

	telemetry.Info("recommendation.generate", map[string]any{
		"skin_type": req.SkinType,
		"concerns":  req.Concerns,
		"has_photo": req.HasPhoto(),
	})

	messages, err := BuildMessages(req)
	if err != nil {
		return Result{}, err
	}

	start := s.now()
	completion, err := s.client.Complete(ctx, messages)
	metrics.ObserveGatewayDurationMs(float64(s.now().Sub(start).Microseconds()) / 1000.0)
	if err != nil {
		var statusErr *llm.StatusError
		if errors.As(err, &statusErr) {
			telemetry.Error("AI gateway error", map[string]any{
				"status": statusErr.StatusCode,
				"body":   statusErr.Body,
			})
		} else if !errors.Is(err, llm.ErrMissingAPIKey) {
			telemetry.Error("recommendation.gateway_failed", map[string]any{"error": err.Error()})
		}
		return Result{}, err
	}

	telemetry.Info("recommendation.generated", map[string]any{
		"model":       completion.Model,
		"has_content": completion.Content != nil,
	})
	return Result{Recommendation: completion.Content}, nil
}
