package wizard

// Phase is the coarse position of the wizard.
type Phase int

const (
	PhaseStep Phase = iota
	PhaseSubmitting
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmitting:
		return "submitting"
	case PhaseResult:
		return "result"
	default:
		return "step"
	}
}

// Image is a decoded skin photo kept for local preview only.
type Image struct {
	Name   string
	MIME   string
	Width  int
	Height int
	Data   []byte
}

// Profile holds the answers collected so far.
type Profile struct {
	SkinType        string
	Concerns        []string
	Age             string
	Lifestyle       string
	Environment     string
	CurrentProducts string
	Allergies       string
	Image           *Image
}

// State is everything the wizard renders.
type State struct {
	Step    int
	Phase   Phase
	Profile Profile
	Result  string
	// Notice is a transient user-facing message, cleared by DismissNotice.
	Notice string

	Gated       bool
	AuthLoading bool
}

// New returns the initial state for cfg.
func New(cfg Config) State {
	return State{Step: 1, Gated: cfg.RequireAuth}
}

// Submitting reports whether a recommendation request is in flight.
func (s State) Submitting() bool {
	return s.Phase == PhaseSubmitting
}

// HasImage reports whether a photo is attached.
func (s State) HasImage() bool {
	return s.Profile.Image != nil
}

func (s State) clone() State {
	out := s
	out.Profile.Concerns = append([]string(nil), s.Profile.Concerns...)
	if s.Profile.Image != nil {
		img := *s.Profile.Image
		img.Data = append([]byte(nil), img.Data...)
		out.Profile.Image = &img
	}
	return out
}

// CanAdvance reports whether the current step's required answers are set.
func CanAdvance(cfg Config, s State) bool {
	cfg = cfg.normalize()
	if s.Gated || s.Phase != PhaseStep {
		return false
	}
	p := s.Profile
	switch s.Step {
	case StepSkinType:
		return p.SkinType != ""
	case StepConcerns:
		return len(p.Concerns) > 0
	case StepAge:
		return !cfg.extended() || p.Age != ""
	case StepLifestyle:
		return !cfg.extended() || p.Lifestyle != ""
	case StepEnvironment:
		return !cfg.extended() || p.Environment != ""
	default:
		return s.Step <= cfg.DataSteps
	}
}
