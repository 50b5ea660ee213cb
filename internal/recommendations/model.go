package recommendations

import "strings"

// PhotoProvided is the only value a client sends for skinImage; image bytes
// never leave the client.
const PhotoProvided = "provided"

// Request is the profile submitted by the formulator wizard.
type Request struct {
	SkinType        string   `json:"skinType"`
	Concerns        []string `json:"concerns"`
	Age             string   `json:"age,omitempty"`
	Lifestyle       string   `json:"lifestyle,omitempty"`
	Environment     string   `json:"environment,omitempty"`
	CurrentProducts string   `json:"currentProducts,omitempty"`
	Allergies       string   `json:"allergies,omitempty"`
	SkinImage       *string  `json:"skinImage"`
}

// HasPhoto reports whether the client attached a photo.
func (r Request) HasPhoto() bool {
	return r.SkinImage != nil && *r.SkinImage == PhotoProvided
}

// Result is the proxy's success body. Recommendation stays nil when the model
// answered without content, which serializes as {}.
type Result struct {
	Recommendation *string `json:"recommendation,omitempty"`
}

// Text returns the recommendation or "" when absent.
func (r Result) Text() string {
	if r.Recommendation == nil {
		return ""
	}
	return *r.Recommendation
}

func (r Request) validate() error {
	if strings.TrimSpace(r.SkinType) == "" {
		return newError(CategoryProviderError, "skinType is required", nil)
	}
	for _, c := range r.Concerns {
		if strings.TrimSpace(c) != "" {
			return nil
		}
	}
	return newError(CategoryProviderError, "concerns must include at least one entry", nil)
}
