package wizard

import (
	"context"
	"sync"

	"formulator-backend/internal/recommendations"
	"formulator-backend/internal/shared/telemetry"
)

// Recommender submits a profile to the recommendation proxy.
type Recommender interface {
	Recommend(ctx context.Context, req recommendations.Request) (recommendations.Result, error)
}

// AuthStatus is the sign-in state reported by an Authenticator.
type AuthStatus struct {
	SignedIn bool
	Loading  bool
}

// Authenticator reports whether a user is signed in.
type Authenticator interface {
	Status(ctx context.Context) (AuthStatus, error)
}

// Controller owns one wizard session. Events are applied one at a time; the
// proxy call runs outside the lock while the state is submitting, and every
// navigation event received meanwhile is ignored by Transition.
type Controller struct {
	cfg  Config
	rec  Recommender
	auth Authenticator

	mu    sync.Mutex
	state State
}

// NewController starts a session. auth may be nil when cfg does not require
// sign-in.
func NewController(cfg Config, rec Recommender, auth Authenticator) *Controller {
	cfg = cfg.normalize()
	return &Controller{cfg: cfg, rec: rec, auth: auth, state: New(cfg)}
}

// Config returns the variant this controller runs.
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Dispatch applies e. When e starts a submission, Dispatch blocks until the
// proxy answers and returns the resolved state.
func (c *Controller) Dispatch(ctx context.Context, e Event) State {
	c.mu.Lock()
	prev := c.state
	c.state = Transition(c.cfg, prev, e)
	next := c.state.clone()
	c.mu.Unlock()

	if prev.Phase == PhaseSubmitting || next.Phase != PhaseSubmitting {
		return next
	}
	return c.submit(ctx, next.Profile)
}

func (c *Controller) submit(ctx context.Context, p Profile) State {
	var resolution Event
	if c.rec == nil {
		resolution = SubmissionFailed{}
	} else {
		result, err := c.rec.Recommend(ctx, NewRequest(p))
		if err != nil {
			telemetry.Warn("wizard.submission_failed", map[string]any{"error": err.Error()})
			resolution = SubmissionFailed{Err: err}
		} else {
			resolution = SubmissionSucceeded{Text: result.Text()}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Transition(c.cfg, c.state, resolution)
	return c.state.clone()
}

// Sync refreshes the auth gate from the Authenticator.
func (c *Controller) Sync(ctx context.Context) (State, error) {
	if c.auth == nil {
		return c.Dispatch(ctx, AuthChanged{SignedIn: !c.cfg.RequireAuth}), nil
	}
	status, err := c.auth.Status(ctx)
	if err != nil {
		return c.State(), err
	}
	return c.Dispatch(ctx, AuthChanged{SignedIn: status.SignedIn, Loading: status.Loading}), nil
}
