package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"formulator-backend/internal/llm"
)

type sentRequest struct {
	Model    string        `json:"model"`
	Messages []llm.Message `json:"messages"`
}

func jsonReply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestCompleteSendsModelAndBearer(t *testing.T) {
	var got sentRequest
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if r.Header.Get("Authorization") != "Bearer key-1" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		jsonReply(w, http.StatusOK, `{"model":"google/gemini-2.5-flash","choices":[{"message":{"role":"assistant","content":"X"}}]}`)
	}))
	defer srv.Close()

	client := NewClient(Options{APIKey: "key-1", URL: srv.URL + "/v1/chat/completions"})
	out, err := client.Complete(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "sys"},
		{Role: llm.RoleUser, Content: "usr"},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out.Content == nil || *out.Content != "X" {
		t.Fatalf("unexpected content %v", out.Content)
	}
	if path != "/v1/chat/completions" {
		t.Fatalf("unexpected path %q", path)
	}
	if got.Model != DefaultModel {
		t.Fatalf("expected default model, got %q", got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "usr" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
}

func TestBaseURLStripsCompletionsPath(t *testing.T) {
	cases := map[string]string{
		"https://ai.gateway.lovable.dev/v1/chat/completions":  "https://ai.gateway.lovable.dev/v1/",
		"https://ai.gateway.lovable.dev/v1/chat/completions/": "https://ai.gateway.lovable.dev/v1/",
		"http://127.0.0.1:9000":                               "http://127.0.0.1:9000/",
	}
	for in, want := range cases {
		if got := baseURL(in); got != want {
			t.Fatalf("baseURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCompleteMissingKeySkipsNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(Options{URL: srv.URL})
	if client.Configured() {
		t.Fatalf("expected unconfigured client")
	}
	_, err := client.Complete(context.Background(), nil)
	if !errors.Is(err, llm.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if called {
		t.Fatalf("expected no request")
	}
}

func TestCompleteReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusPaymentRequired, `{"error":"out of credits"}`)
	}))
	defer srv.Close()

	_, err := NewClient(Options{APIKey: "k", URL: srv.URL}).Complete(context.Background(), nil)
	var statusErr *llm.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusPaymentRequired || statusErr.Body != `{"error":"out of credits"}` {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
	if statusErr.Error() != "AI gateway error: 402" {
		t.Fatalf("unexpected message %q", statusErr.Error())
	}
}

func TestCompleteDoesNotRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		jsonReply(w, http.StatusTooManyRequests, `slow down`)
	}))
	defer srv.Close()

	_, err := NewClient(Options{APIKey: "k", URL: srv.URL}).Complete(context.Background(), nil)
	var statusErr *llm.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 StatusError, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected exactly one request, got %d", n)
	}
}

func TestCompleteWithoutChoicesHasNoContent(t *testing.T) {
	for _, body := range []string{
		`{"choices":[]}`,
		`{"choices":[{"message":{"role":"assistant"}}]}`,
		`{"choices":[{"message":{"role":"assistant","content":null}}]}`,
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			jsonReply(w, http.StatusOK, body)
		}))

		out, err := NewClient(Options{APIKey: "k", URL: srv.URL}).Complete(context.Background(), nil)
		srv.Close()
		if err != nil {
			t.Fatalf("Complete(%s): %v", body, err)
		}
		if out.Content != nil {
			t.Fatalf("expected nil content for %s, got %q", body, *out.Content)
		}
	}
}

func TestCompleteKeepsEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":""}}]}`)
	}))
	defer srv.Close()

	out, err := NewClient(Options{APIKey: "k", URL: srv.URL}).Complete(context.Background(), nil)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out.Content == nil || *out.Content != "" {
		t.Fatalf("expected empty content, got %v", out.Content)
	}
}

func TestCompleteMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusOK, `<html>`)
	}))
	defer srv.Close()

	_, err := NewClient(Options{APIKey: "k", URL: srv.URL}).Complete(context.Background(), nil)
	if err == nil {
		t.Fatalf("expected parse error")
	}
}
