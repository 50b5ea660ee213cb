package wizard

import (
	"fmt"
	"math"
	"strings"
)

// ProgressText renders "Step i of N", counting the result step.
func ProgressText(cfg Config, s State) string {
	return fmt.Sprintf("Step %d of %d", s.Step, cfg.ResultStep())
}

// ProgressPercent is the rounded share of steps reached.
func ProgressPercent(cfg Config, s State) int {
	return int(math.Round(float64(s.Step) / float64(cfg.ResultStep()) * 100))
}

// StepTitle is the question shown on a step.
func StepTitle(cfg Config, step int) string {
	switch {
	case step == StepSkinType:
		return "What's your skin type?"
	case step == StepConcerns:
		return fmt.Sprintf("What are your main skin concerns? (select up to %d)", cfg.ConcernCap)
	case step == cfg.ResultStep():
		return "Your personalized routine"
	case step == StepAge:
		return "What is your age range?"
	case step == StepLifestyle:
		return "Which best describes your lifestyle?"
	case step == StepEnvironment:
		return "What environment do you live in?"
	case step == StepDetails:
		return "Anything else we should know?"
	default:
		return ""
	}
}

// Section is one heading-delimited block of a recommendation.
type Section struct {
	Title string
	Body  string
}

// Sections splits markdown text on headings. Text before the first heading
// becomes an untitled section; empty sections are dropped.
func Sections(text string) []Section {
	var out []Section
	current := Section{}
	var body []string

	flush := func() {
		current.Body = strings.TrimSpace(strings.Join(body, "\n"))
		if current.Title != "" || current.Body != "" {
			out = append(out, current)
		}
		body = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			flush()
			current = Section{Title: strings.TrimSpace(strings.TrimLeft(trimmed, "#"))}
			continue
		}
		body = append(body, line)
	}
	flush()
	return out
}
