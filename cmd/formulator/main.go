package main

// Run the formulator wizard against a local API:
//   go run ./cmd/formulator -api http://localhost:8080 -token $TOKEN

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"formulator-backend/internal/recommendations"
	"formulator-backend/internal/shared/telemetry"
	"formulator-backend/internal/users"
	"formulator-backend/internal/wizard"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "Formulator API base URL")
	variant := flag.String("variant", "extended", "Wizard variant: extended or minimal")
	token := flag.String("token", "", "Session token from /api/v1/auth/google/start")
	imagePath := flag.String("image", "", "Skin photo to attach on the details step (optional)")
	logLevel := flag.String("log-level", "error", "Log level")
	flag.Parse()

	cleanup := telemetry.Init(*logLevel)
	defer cleanup()

	cfg, err := variantConfig(*variant)
	if err != nil {
		exitErr(err.Error())
	}

	rec := recommendations.NewClient(*apiURL, *token, nil)
	var auth wizard.Authenticator
	var session *users.SessionClient
	if cfg.RequireAuth {
		session = users.NewSessionClient(*apiURL, *token, nil)
		auth = sessionAuth{client: session}
	}
	ctrl := wizard.NewController(cfg, rec, auth)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := ctrl.Sync(ctx); err != nil {
		exitErr(fmt.Sprintf("check session: %v", err))
	}

	t := &terminal{
		ctrl:      ctrl,
		in:        bufio.NewScanner(os.Stdin),
		out:       os.Stdout,
		readFile:  os.ReadFile,
		imagePath: strings.TrimSpace(*imagePath),
		signInURL: strings.TrimRight(*apiURL, "/") + "/api/v1/auth/google/start",
		pollEvery: time.Second,
	}
	if session != nil {
		t.setToken = session.SetToken
	}
	if err := t.run(ctx); err != nil {
		if errors.Is(err, errSignInRequired) {
			os.Exit(2)
		}
		exitErr(err.Error())
	}
}

func variantConfig(name string) (wizard.Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "extended":
		return wizard.Extended(), nil
	case "minimal":
		return wizard.Minimal(), nil
	default:
		return wizard.Config{}, fmt.Errorf("unsupported variant: %s", name)
	}
}

// sessionAuth adapts the API's session endpoint to wizard.Authenticator.
type sessionAuth struct {
	client *users.SessionClient
}

func (a sessionAuth) Status(ctx context.Context) (wizard.AuthStatus, error) {
	session, err := a.client.Fetch(ctx)
	if err != nil {
		return wizard.AuthStatus{}, err
	}
	return wizard.AuthStatus{SignedIn: session.SignedIn(), Loading: session.Loading}, nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
