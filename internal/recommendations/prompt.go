package recommendations

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"

	"formulator-backend/internal/llm"
)

const systemTemplate = `You are a skincare advisor at SKINLABS, a premium skincare technology brand. You create personalized skincare routines based on individual skin profiles.

You are not a licensed dermatologist and must never claim to be one. You do not diagnose conditions. If the profile suggests a medical skin condition, recommend consulting a dermatologist.

Your recommendations should:
- Be science-backed and evidence-based
- Include specific product types (cleanser, toner, serum, moisturizer, SPF, treatment)
- Explain why each product suits the listed concerns
- Include both morning and evening routines
- Mention key ingredients to look for and ingredients to avoid
- Be warm, professional, and encouraging

Format your response in markdown with a heading for each section.`

const userTemplate = `Create a personalized skincare routine for this profile.

Skin type: {{.skinType}}
Concerns: {{.concerns}}
Age range: {{.age}}
Lifestyle: {{.lifestyle}}
Environment: {{.environment}}
Current products: {{.currentProducts}}
Allergies or sensitivities: {{.allergies}}
Photo: {{.photo}}

Provide:
1. A complete morning routine (4-5 steps)
2. A complete evening routine (4-5 steps)
3. Key ingredients to look for based on their concerns
4. One weekly treatment recommendation

Never recommend an ingredient listed under allergies. Be specific with product recommendations from our SKINLABS collection when possible.`

const (
	notSpecified  = "Not specified"
	noneSpecified = "None specified"
	photoMissing  = "No photo provided"
	photoAttached = "Photo provided (not analysed)"
)

var chatTemplate = prompts.NewChatPromptTemplate([]prompts.MessageFormatter{
	prompts.NewSystemMessagePromptTemplate(systemTemplate, nil),
	prompts.NewHumanMessagePromptTemplate(userTemplate, []string{
		"skinType", "concerns", "age", "lifestyle", "environment", "currentProducts", "allergies", "photo",
	}),
})

// BuildMessages renders the system and user messages for req.
func BuildMessages(req Request) ([]llm.Message, error) {
	photo := photoMissing
	if req.HasPhoto() {
		photo = photoAttached
	}
	values := map[string]any{
		"skinType":        strings.TrimSpace(req.SkinType),
		"concerns":        strings.Join(req.Concerns, ", "),
		"age":             orDefault(req.Age, notSpecified),
		"lifestyle":       orDefault(req.Lifestyle, notSpecified),
		"environment":     orDefault(req.Environment, notSpecified),
		"currentProducts": orDefault(req.CurrentProducts, noneSpecified),
		"allergies":       orDefault(req.Allergies, noneSpecified),
		"photo":           photo,
	}

	formatted, err := chatTemplate.FormatMessages(values)
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	out := make([]llm.Message, 0, len(formatted))
	for _, m := range formatted {
		role := llm.RoleUser
		if m.GetType() == llms.ChatMessageTypeSystem {
			role = llm.RoleSystem
		}
		out = append(out, llm.Message{Role: role, Content: m.GetContent()})
	}
	return out, nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
