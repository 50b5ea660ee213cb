package wizard

import "formulator-backend/internal/recommendations"

// NewRequest serializes a profile for the recommendation proxy. Only a
// presence flag stands in for the photo.
func NewRequest(p Profile) recommendations.Request {
	req := recommendations.Request{
		SkinType:        p.SkinType,
		Concerns:        append([]string(nil), p.Concerns...),
		Age:             p.Age,
		Lifestyle:       p.Lifestyle,
		Environment:     p.Environment,
		CurrentProducts: p.CurrentProducts,
		Allergies:       p.Allergies,
	}
	if p.Image != nil {
		flag := recommendations.PhotoProvided
		req.SkinImage = &flag
	}
	return req
}
