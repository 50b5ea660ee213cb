package wizard

// MaxImageBytes is the largest accepted skin photo.
const MaxImageBytes = 5 * 1024 * 1024

// Config parameterizes a wizard variant.
type Config struct {
	// Extended selects the six-step flow with age, lifestyle, environment
	// and details. Otherwise the wizard asks skin type and concerns only.
	Extended bool
	// DataSteps is the number of input steps; the result step follows them.
	// It is derived from Extended when the config is used.
	DataSteps   int
	ConcernCap  int
	RequireAuth bool
	MaxImage    int64
}

// Minimal is the two-question variant: skin type then concerns.
func Minimal() Config {
	return Config{DataSteps: StepConcerns, ConcernCap: 3, MaxImage: MaxImageBytes}
}

// Extended adds age, lifestyle, environment and a details step, and requires
// a signed-in user.
func Extended() Config {
	return Config{Extended: true, DataSteps: StepDetails, ConcernCap: 4, RequireAuth: true, MaxImage: MaxImageBytes}
}

// ResultStep is the terminal display step.
func (c Config) ResultStep() int {
	return c.normalize().DataSteps + 1
}

func (c Config) extended() bool {
	return c.Extended
}

// normalize pins DataSteps to the variant's last input step.
func (c Config) normalize() Config {
	if c.Extended {
		c.DataSteps = StepDetails
	} else {
		c.DataSteps = StepConcerns
	}
	return c
}

// Step numbers shared by both variants; the remaining ones exist only in the
// extended variant.
const (
	StepSkinType    = 1
	StepConcerns    = 2
	StepAge         = 3
	StepLifestyle   = 4
	StepEnvironment = 5
	StepDetails     = 6
)
