package recommendations

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formulator-backend/internal/llm"
)

type fakeLLM struct {
	calls    int
	messages []llm.Message
	out      llm.Completion
	err      error
}

func (f *fakeLLM) Complete(ctx context.Context, messages []llm.Message) (llm.Completion, error) {
	f.calls++
	f.messages = messages
	return f.out, f.err
}

func strPtr(s string) *string { return &s }

func TestGenerateReturnsContentVerbatim(t *testing.T) {
	fake := &fakeLLM{out: llm.Completion{Content: strPtr("  ## Morning\nX  ")}}
	svc := NewService(fake)

	result, err := svc.Generate(context.Background(), Request{SkinType: "dry", Concerns: []string{"Acne & Breakouts"}})
	require.NoError(t, err)
	assert.Equal(t, "  ## Morning\nX  ", result.Text())
	assert.Equal(t, 1, fake.calls)
	assert.Len(t, fake.messages, 2)
}

func TestGenerateMapsProviderFailures(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category Category
		status   int
		message  string
	}{
		{"missing key", llm.ErrMissingAPIKey, CategoryConfigurationError, http.StatusInternalServerError, MessageConfiguration},
		{"rate limited", &llm.StatusError{StatusCode: 429}, CategoryRateLimited, http.StatusTooManyRequests, MessageRateLimited},
		{"quota", &llm.StatusError{StatusCode: 402}, CategoryQuotaExceeded, http.StatusPaymentRequired, MessageQuotaExceeded},
		{"upstream 503", &llm.StatusError{StatusCode: 503, Body: "down"}, CategoryProviderError, http.StatusInternalServerError, "AI gateway error: 503"},
		{"transport", errors.New("dial tcp: connection refused"), CategoryProviderError, http.StatusInternalServerError, "dial tcp: connection refused"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeLLM{err: tc.err}
			_, err := NewService(fake).Generate(context.Background(), Request{SkinType: "oily", Concerns: []string{"Redness"}})

			var categorized *Error
			require.ErrorAs(t, err, &categorized)
			assert.Equal(t, tc.category, categorized.Category)
			assert.Equal(t, tc.status, categorized.Status)
			assert.Equal(t, tc.message, categorized.Message)
			assert.Equal(t, 1, fake.calls, "no retries")
		})
	}
}

func TestGenerateRejectsIncompleteProfile(t *testing.T) {
	fake := &fakeLLM{}
	svc := NewService(fake)

	_, err := svc.Generate(context.Background(), Request{Concerns: []string{"Redness"}})
	var categorized *Error
	require.ErrorAs(t, err, &categorized)
	assert.Equal(t, http.StatusInternalServerError, categorized.Status)

	_, err = svc.Generate(context.Background(), Request{SkinType: "dry", Concerns: []string{" "}})
	require.Error(t, err)
	assert.Equal(t, 0, fake.calls)
}

func TestCategoryForStatus(t *testing.T) {
	assert.Equal(t, CategoryRateLimited, CategoryForStatus(429))
	assert.Equal(t, CategoryQuotaExceeded, CategoryForStatus(402))
	assert.Equal(t, CategoryProviderError, CategoryForStatus(500))
	assert.Equal(t, CategoryProviderError, CategoryForStatus(400))
}

type unconfiguredLLM struct{ fakeLLM }

func (u *unconfiguredLLM) Configured() bool { return false }

func TestGenerateReportsMissingKeyBeforeValidation(t *testing.T) {
	client := &unconfiguredLLM{}
	svc := NewService(client)

	_, err := svc.Generate(context.Background(), Request{})

	var categorized *Error
	require.ErrorAs(t, err, &categorized)
	assert.Equal(t, CategoryConfigurationError, categorized.Category)
	assert.Equal(t, MessageConfiguration, categorized.Message)
	assert.Zero(t, client.calls)
	assert.Error(t, svc.Ready())
	assert.NoError(t, NewService(&fakeLLM{}).Ready())
}
