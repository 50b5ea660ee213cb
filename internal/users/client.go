package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// SessionClient reads the session endpoint of a running API.
type SessionClient struct {
	endpoint   string
	httpClient *http.Client

	mu    sync.Mutex
	token string
}

func NewSessionClient(baseURL, token string, httpClient *http.Client) *SessionClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &SessionClient{
		endpoint:   strings.TrimRight(baseURL, "/") + "/api/v1/auth/session",
		token:      strings.TrimSpace(token),
		httpClient: httpClient,
	}
}

// SetToken replaces the bearer token sent with later fetches.
func (c *SessionClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

// Fetch returns the current session; User is nil when signed out.
func (c *SessionClient) Fetch(ctx context.Context) (Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return Session{}, err
	}
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("fetch session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Session{}, fmt.Errorf("fetch session: status %d", resp.StatusCode)
	}
	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return session, nil
}
