package recommendations

import (
	"errors"
	"fmt"
	"net/http"

	"formulator-backend/internal/llm"
)

// Category classifies a recommendation failure for the client.
type Category string

const (
	CategoryConfigurationError Category = "ConfigurationError"
	CategoryRateLimited        Category = "RateLimited"
	CategoryQuotaExceeded      Category = "QuotaExceeded"
	CategoryProviderError      Category = "ProviderError"
)

const (
	MessageConfiguration = "AI_GATEWAY_API_KEY is not configured"
	MessageRateLimited   = "Rate limit exceeded. Please try again in a moment."
	MessageQuotaExceeded = "AI usage limit reached. Please add credits to continue."
	MessageDefault       = "Failed to generate recommendation"
)

// Error is a categorized failure carrying the HTTP status and the message
// shown to the user.
type Error struct {
	Category Category
	Status   int
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusForCategory returns the HTTP status a category is reported with.
func StatusForCategory(c Category) int {
	switch c {
	case CategoryRateLimited:
		return http.StatusTooManyRequests
	case CategoryQuotaExceeded:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// CategoryForStatus maps a proxy response status back to its category.
func CategoryForStatus(status int) Category {
	switch status {
	case http.StatusTooManyRequests:
		return CategoryRateLimited
	case http.StatusPaymentRequired:
		return CategoryQuotaExceeded
	default:
		return CategoryProviderError
	}
}

func newError(c Category, message string, err error) *Error {
	if message == "" {
		message = MessageDefault
	}
	return &Error{Category: c, Status: StatusForCategory(c), Message: message, Err: err}
}

// classify maps a provider failure to the client-facing error.
func classify(err error) *Error {
	var categorized *Error
	if errors.As(err, &categorized) {
		return categorized
	}
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return newError(CategoryConfigurationError, MessageConfiguration, err)
	}
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusTooManyRequests:
			return newError(CategoryRateLimited, MessageRateLimited, err)
		case http.StatusPaymentRequired:
			return newError(CategoryQuotaExceeded, MessageQuotaExceeded, err)
		default:
			return newError(CategoryProviderError, fmt.Sprintf("AI gateway error: %d", statusErr.StatusCode), err)
		}
	}
	return newError(CategoryProviderError, err.Error(), err)
}
