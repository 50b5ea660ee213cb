package recommendations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client calls a running recommendation proxy over HTTP.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient targets baseURL's /api/v1/recommendations. token, when set, is
// sent as a bearer credential.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + "/api/v1/recommendations",
		token:      strings.TrimSpace(token),
		httpClient: httpClient,
	}
}

// Recommend posts req and returns the proxy's result. Failures are *Error
// with the category inferred from the response status.
func (c *Client) Recommend(ctx context.Context, req Request) (Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Result{}, newError(CategoryProviderError, err.Error(), err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, newError(CategoryProviderError, err.Error(), err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, newError(CategoryProviderError, err.Error(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		category := CategoryForStatus(resp.StatusCode)
		if body.Error == MessageConfiguration {
			category = CategoryConfigurationError
		}
		return Result{}, &Error{
			Category: category,
			Status:   resp.StatusCode,
			Message:  orDefault(body.Error, MessageDefault),
		}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, newError(CategoryProviderError, fmt.Sprintf("decode recommendation: %v", err), err)
	}
	return result, nil
}
