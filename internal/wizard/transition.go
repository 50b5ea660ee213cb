package wizard

import "strings"

const defaultFailureNotice = "Failed to generate recommendation"

// Transition applies e to s and returns the next state. It performs no I/O;
// events that are not allowed in the current state return s unchanged.
func Transition(cfg Config, s State, e Event) State {
	cfg = cfg.normalize()
	next := s.clone()

	switch ev := e.(type) {
	case AuthChanged:
		return authChanged(cfg, next, ev)
	case DismissNotice:
		next.Notice = ""
		return next
	case SubmissionSucceeded:
		if s.Phase != PhaseSubmitting {
			return s
		}
		next.Phase = PhaseResult
		next.Step = cfg.ResultStep()
		next.Result = ev.Text
		return next
	case SubmissionFailed:
		if s.Phase != PhaseSubmitting {
			return s
		}
		next.Phase = PhaseStep
		next.Notice = failureNotice(ev.Err)
		return next
	case Reset:
		if s.Phase != PhaseResult {
			return s
		}
		fresh := New(cfg)
		fresh.Gated = s.Gated
		fresh.AuthLoading = s.AuthLoading
		return fresh
	}

	if s.Gated || s.Phase != PhaseStep {
		return s
	}

	switch ev := e.(type) {
	case SelectSkinType:
		if s.Step != StepSkinType || !isSkinType(ev.Value) {
			return s
		}
		next.Profile.SkinType = ev.Value
	case ToggleConcern:
		if s.Step != StepConcerns || !contains(Concerns, ev.Concern) {
			return s
		}
		next.Profile.Concerns = toggle(next.Profile.Concerns, ev.Concern, cfg.ConcernCap)
	case SelectAge:
		if !cfg.extended() || s.Step != StepAge || !contains(AgeRanges, ev.Value) {
			return s
		}
		next.Profile.Age = ev.Value
	case SelectLifestyle:
		if !cfg.extended() || s.Step != StepLifestyle || !contains(Lifestyles, ev.Value) {
			return s
		}
		next.Profile.Lifestyle = ev.Value
	case SelectEnvironment:
		if !cfg.extended() || s.Step != StepEnvironment || !contains(Environments, ev.Value) {
			return s
		}
		next.Profile.Environment = ev.Value
	case SetCurrentProducts:
		if !cfg.extended() || s.Step != StepDetails {
			return s
		}
		next.Profile.CurrentProducts = ev.Text
	case SetAllergies:
		if !cfg.extended() || s.Step != StepDetails {
			return s
		}
		next.Profile.Allergies = ev.Text
	case SelectImage:
		if !cfg.extended() || s.Step != StepDetails {
			return s
		}
		img, notice := decodeImage(cfg, ev.Name, ev.Data)
		if notice != "" {
			next.Notice = notice
			return next
		}
		next.Profile.Image = &img
	case ClearImage:
		next.Profile.Image = nil
	case Back:
		if s.Step <= 1 {
			return s
		}
		next.Step--
		next.Notice = ""
	case Next:
		if !CanAdvance(cfg, s) {
			return s
		}
		next.Notice = ""
		if s.Step < cfg.DataSteps {
			next.Step++
		} else {
			next.Phase = PhaseSubmitting
		}
	default:
		return s
	}
	return next
}

// toggle removes c when selected, otherwise appends it while under cap.
func toggle(selected []string, c string, limit int) []string {
	for i, existing := range selected {
		if existing == c {
			return append(selected[:i:i], selected[i+1:]...)
		}
	}
	if len(selected) >= limit {
		return selected
	}
	return append(selected, c)
}

func authChanged(cfg Config, s State, ev AuthChanged) State {
	s.AuthLoading = ev.Loading
	if !cfg.RequireAuth {
		s.Gated = false
		return s
	}
	if !ev.SignedIn {
		s.Gated = true
		return s
	}
	if !s.Gated {
		return s
	}
	if s.Phase == PhaseSubmitting {
		s.Gated = false
		return s
	}
	fresh := New(cfg)
	fresh.Gated = false
	fresh.AuthLoading = ev.Loading
	return fresh
}

func failureNotice(err error) string {
	if err == nil {
		return defaultFailureNotice
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return defaultFailureNotice
}
