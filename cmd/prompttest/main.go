package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"formulator-backend/internal/llm"
	"formulator-backend/internal/llm/gateway"
	"formulator-backend/internal/recommendations"
	"formulator-backend/internal/shared/config"
)

type output struct {
	Model          string        `json:"model"`
	Messages       []llm.Message `json:"messages"`
	Recommendation *string       `json:"recommendation,omitempty"`
}

func main() {
	cfg := config.Load()

	req, send, outPath, model := parseFlags(cfg, os.Args[1:])

	messages, err := recommendations.BuildMessages(req)
	if err != nil {
		exitErr(fmt.Sprintf("build prompt: %v", err))
	}
	out := output{Model: model, Messages: messages}

	if send {
		client := gateway.NewClient(gateway.Options{
			APIKey:  cfg.GatewayAPIKey,
			URL:     cfg.GatewayURL,
			Model:   model,
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		})
		result, err := recommendations.NewService(client).Generate(context.Background(), req)
		if err != nil {
			exitErr(fmt.Sprintf("generate: %v", err))
		}
		out.Recommendation = result.Recommendation
	}

	pretty, err := prettyJSON(out)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func prettyJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
