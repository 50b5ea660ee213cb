package wizard

// Option is a selectable answer with display text.
type Option struct {
	Value       string
	Label       string
	Description string
}

// SkinTypes is the step-1 catalog.
var SkinTypes = []Option{
	{Value: "dry", Label: "Dry", Description: "Tight, flaky, lacks moisture"},
	{Value: "oily", Label: "Oily", Description: "Shiny, prone to breakouts"},
	{Value: "combination", Label: "Combination", Description: "Oily T-zone, dry cheeks"},
	{Value: "sensitive", Label: "Sensitive", Description: "Easily irritated, reactive"},
	{Value: "normal", Label: "Normal", Description: "Balanced, few imperfections"},
}

// Concerns is the step-2 catalog, in display order.
var Concerns = []string{
	"Acne & Breakouts",
	"Fine Lines & Wrinkles",
	"Dark Spots",
	"Uneven Texture",
	"Redness",
	"Dullness",
	"Large Pores",
	"Dehydration",
}

var AgeRanges = []string{"Under 20", "20-29", "30-39", "40-49", "50-59", "60+"}

var Lifestyles = []string{
	"Sedentary / Indoors",
	"Active / Sporty",
	"High Stress",
	"Frequent Travel",
	"Outdoor Work",
}

var Environments = []string{
	"Urban / Polluted",
	"Dry / Arid",
	"Humid / Tropical",
	"Cold / Windy",
	"Temperate",
}

func isSkinType(v string) bool {
	for _, o := range SkinTypes {
		if o.Value == v {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
