package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"formulator-backend/internal/llm"
)

const (
	DefaultURL   = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultModel = "google/gemini-2.5-flash"

	completionsPath = "/chat/completions"

	// Upper bound on error bodies kept for logging.
	maxErrorBody = 4 << 10
)

// Options configures a gateway Client.
type Options struct {
	APIKey     string
	URL        string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client implements llm.Client against an OpenAI-compatible chat completions
// endpoint. It makes exactly one request per call.
type Client struct {
	apiKey string
	model  string
	api    openai.Client
}

// NewClient constructs a gateway client. An empty API key is accepted; calls
// then fail with llm.ErrMissingAPIKey.
func NewClient(opts Options) *Client {
	url := strings.TrimSpace(opts.URL)
	if url == "" {
		url = DefaultURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	apiKey := strings.TrimSpace(opts.APIKey)

	return &Client{
		apiKey: apiKey,
		model:  model,
		api: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL(url)),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0),
		),
	}
}

// baseURL turns a full chat completions endpoint into the base the SDK
// appends "chat/completions" to.
func baseURL(endpoint string) string {
	endpoint = strings.TrimRight(endpoint, "/")
	return strings.TrimSuffix(endpoint, completionsPath) + "/"
}

// Model returns the model id sent with every request.
func (c *Client) Model() string {
	return c.model
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Complete sends messages and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, messages []llm.Message) (llm.Completion, error) {
	if !c.Configured() {
		return llm.Completion{}, llm.ErrMissingAPIKey
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: toParams(messages),
	}
	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return llm.Completion{}, &llm.StatusError{StatusCode: apiErr.StatusCode, Body: errorBody(apiErr)}
		}
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return llm.Completion{}, fmt.Errorf("gateway request timeout: %w", err)
		}
		return llm.Completion{}, fmt.Errorf("gateway request: %w", err)
	}

	out := llm.Completion{Model: resp.Model}
	if len(resp.Choices) > 0 && resp.Choices[0].Message.JSON.Content.Valid() {
		content := resp.Choices[0].Message.Content
		out.Content = &content
	}
	return out, nil
}

func toParams(messages []llm.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// errorBody returns the raw upstream body, which the SDK rewinds onto the
// response before handing back the error.
func errorBody(apiErr *openai.Error) string {
	if apiErr.Response == nil || apiErr.Response.Body == nil {
		return apiErr.RawJSON()
	}
	body, err := io.ReadAll(io.LimitReader(apiErr.Response.Body, maxErrorBody))
	if err != nil {
		return apiErr.RawJSON()
	}
	return string(body)
}

var _ llm.Client = (*Client)(nil)
