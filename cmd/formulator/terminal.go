package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"formulator-backend/internal/wizard"
)

var errSignInRequired = errors.New("sign-in required")

type terminal struct {
	ctrl      *wizard.Controller
	in        *bufio.Scanner
	out       io.Writer
	readFile  func(string) ([]byte, error)
	imagePath string
	signInURL string
	// setToken, when set, takes a session token pasted at the sign-in prompt.
	setToken func(string)
	// pollEvery spaces session checks while the server is still resolving
	// the session.
	pollEvery time.Duration

	imageTried bool
}

func (t *terminal) run(ctx context.Context) error {
	cfg := t.ctrl.Config()
	s := t.ctrl.State()
	for {
		s = t.attachPendingImage(ctx, cfg, s)
		t.render(cfg, s)
		if s.Notice != "" {
			s = t.ctrl.Dispatch(ctx, wizard.DismissNotice{})
		}
		if s.Gated {
			next, err := t.awaitSignIn(ctx, s)
			if err != nil {
				return err
			}
			s = next
			continue
		}

		fmt.Fprint(t.out, "> ")
		if !t.in.Scan() {
			return t.in.Err()
		}
		line := strings.TrimSpace(t.in.Text())
		if line == "q" || line == "quit" {
			return nil
		}
		e, ok := t.parse(cfg, s, line)
		if !ok {
			fmt.Fprintln(t.out, "Unrecognized input.")
			continue
		}
		if _, isNext := e.(wizard.Next); isNext && s.Step == cfg.DataSteps && wizard.CanAdvance(cfg, s) {
			fmt.Fprintln(t.out, "Analyzing...")
		}
		s = t.ctrl.Dispatch(ctx, e)
	}
}

// awaitSignIn blocks until the session may have changed and re-reads it.
// A loading session is polled; otherwise the user signs in out of band and
// pastes the issued token or presses Enter. Closed input leaves the gate up
// and returns errSignInRequired.
func (t *terminal) awaitSignIn(ctx context.Context, s wizard.State) (wizard.State, error) {
	if s.AuthLoading {
		fmt.Fprintln(t.out, "Checking your session...")
		select {
		case <-ctx.Done():
			return s, ctx.Err()
		case <-time.After(t.pollEvery):
		}
	} else {
		fmt.Fprintf(t.out, "Please sign in to use the formulator: %s\n", t.signInURL)
		fmt.Fprint(t.out, "Paste your token or press Enter once signed in, q to quit. ")
		if !t.in.Scan() {
			if err := t.in.Err(); err != nil {
				return s, err
			}
			return s, errSignInRequired
		}
		line := strings.TrimSpace(t.in.Text())
		if line == "q" || line == "quit" {
			return s, errSignInRequired
		}
		if line != "" && t.setToken != nil {
			t.setToken(line)
		}
	}

	next, err := t.ctrl.Sync(ctx)
	if err != nil {
		fmt.Fprintf(t.out, "Could not check your session: %v\n", err)
		return t.ctrl.State(), nil
	}
	return next, nil
}

// attachPendingImage selects the -image file the first time the details
// step is shown.
func (t *terminal) attachPendingImage(ctx context.Context, cfg wizard.Config, s wizard.State) wizard.State {
	if t.imagePath == "" || t.imageTried || s.Phase != wizard.PhaseStep || s.Step != wizard.StepDetails || cfg.DataSteps < wizard.StepDetails {
		return s
	}
	t.imageTried = true
	return t.selectImage(ctx, t.imagePath)
}

func (t *terminal) selectImage(ctx context.Context, path string) wizard.State {
	data, err := t.readFile(path)
	if err != nil {
		fmt.Fprintf(t.out, "Could not read %s: %v\n", path, err)
		return t.ctrl.State()
	}
	return t.ctrl.Dispatch(ctx, wizard.SelectImage{Name: filepath.Base(path), Data: data})
}

func (t *terminal) parse(cfg wizard.Config, s wizard.State, line string) (wizard.Event, bool) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	if s.Phase == wizard.PhaseResult {
		if cmd == "r" {
			return wizard.Reset{}, true
		}
		return nil, false
	}

	switch cmd {
	case "n":
		return wizard.Next{}, true
	case "b":
		return wizard.Back{}, true
	}

	if s.Step == wizard.StepDetails && cfg.DataSteps >= wizard.StepDetails {
		switch cmd {
		case "p":
			return wizard.SetCurrentProducts{Text: arg}, true
		case "a":
			return wizard.SetAllergies{Text: arg}, true
		case "i":
			if arg == "" {
				return nil, false
			}
			data, err := t.readFile(arg)
			if err != nil {
				fmt.Fprintf(t.out, "Could not read %s: %v\n", arg, err)
				return nil, false
			}
			return wizard.SelectImage{Name: filepath.Base(arg), Data: data}, true
		case "x":
			return wizard.ClearImage{}, true
		}
		return nil, false
	}

	idx, err := strconv.Atoi(cmd)
	if err != nil || idx < 1 {
		return nil, false
	}
	options := stepOptions(s.Step)
	if idx > len(options) {
		return nil, false
	}
	value := options[idx-1]
	switch s.Step {
	case wizard.StepSkinType:
		return wizard.SelectSkinType{Value: wizard.SkinTypes[idx-1].Value}, true
	case wizard.StepConcerns:
		return wizard.ToggleConcern{Concern: value}, true
	case wizard.StepAge:
		return wizard.SelectAge{Value: value}, true
	case wizard.StepLifestyle:
		return wizard.SelectLifestyle{Value: value}, true
	case wizard.StepEnvironment:
		return wizard.SelectEnvironment{Value: value}, true
	}
	return nil, false
}

func stepOptions(step int) []string {
	switch step {
	case wizard.StepSkinType:
		out := make([]string, 0, len(wizard.SkinTypes))
		for _, o := range wizard.SkinTypes {
			out = append(out, fmt.Sprintf("%s - %s", o.Label, o.Description))
		}
		return out
	case wizard.StepConcerns:
		return wizard.Concerns
	case wizard.StepAge:
		return wizard.AgeRanges
	case wizard.StepLifestyle:
		return wizard.Lifestyles
	case wizard.StepEnvironment:
		return wizard.Environments
	default:
		return nil
	}
}

func (t *terminal) render(cfg wizard.Config, s wizard.State) {
	fmt.Fprintf(t.out, "\n%s (%d%%)\n", wizard.ProgressText(cfg, s), wizard.ProgressPercent(cfg, s))
	if s.Notice != "" {
		fmt.Fprintf(t.out, "! %s\n", s.Notice)
	}
	if s.Gated {
		return
	}
	fmt.Fprintln(t.out, wizard.StepTitle(cfg, s.Step))

	if s.Phase == wizard.PhaseResult {
		for _, sec := range wizard.Sections(s.Result) {
			if sec.Title != "" {
				fmt.Fprintf(t.out, "\n## %s\n", sec.Title)
			}
			if sec.Body != "" {
				fmt.Fprintln(t.out, sec.Body)
			}
		}
		fmt.Fprintln(t.out, "\n[r] start over  [q] quit")
		return
	}

	if s.Step == wizard.StepDetails && cfg.DataSteps >= wizard.StepDetails {
		p := s.Profile
		fmt.Fprintf(t.out, "  Current products: %s\n", orNone(p.CurrentProducts))
		fmt.Fprintf(t.out, "  Allergies: %s\n", orNone(p.Allergies))
		if s.HasImage() {
			img := p.Image
			fmt.Fprintf(t.out, "  Photo: %s (%s, %dx%d)\n", img.Name, img.MIME, img.Width, img.Height)
		} else {
			fmt.Fprintln(t.out, "  Photo: none")
		}
		fmt.Fprintln(t.out, "[p <text>] products  [a <text>] allergies  [i <path>] photo  [x] remove photo")
	} else {
		for i, opt := range stepOptions(s.Step) {
			mark := " "
			if selected(s, i) {
				mark = "x"
			}
			fmt.Fprintf(t.out, "  [%s] %d. %s\n", mark, i+1, opt)
		}
	}

	next := "next"
	if s.Step == cfg.DataSteps {
		next = "get my routine"
	}
	if s.Step > 1 {
		fmt.Fprintf(t.out, "[b] back  [n] %s  [q] quit\n", next)
	} else {
		fmt.Fprintf(t.out, "[n] %s  [q] quit\n", next)
	}
}

func selected(s wizard.State, i int) bool {
	p := s.Profile
	switch s.Step {
	case wizard.StepSkinType:
		return p.SkinType == wizard.SkinTypes[i].Value
	case wizard.StepConcerns:
		for _, c := range p.Concerns {
			if c == wizard.Concerns[i] {
				return true
			}
		}
	case wizard.StepAge:
		return p.Age == wizard.AgeRanges[i]
	case wizard.StepLifestyle:
		return p.Lifestyle == wizard.Lifestyles[i]
	case wizard.StepEnvironment:
		return p.Environment == wizard.Environments[i]
	}
	return false
}

func orNone(v string) string {
	if strings.TrimSpace(v) == "" {
		return "none"
	}
	return v
}
