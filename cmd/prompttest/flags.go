package main

import (
	"flag"
	"os"

	"formulator-backend/internal/recommendations"
	"formulator-backend/internal/shared/config"
)

func parseFlags(cfg config.Config, args []string) (req recommendations.Request, send bool, outPath, model string) {
	fs := flag.NewFlagSet("prompttest", flag.ExitOnError)
	fs.SetOutput(os.Stderr)

	skinType := fs.String("skin-type", "combination", "Skin type")
	concerns := fs.String("concerns", "Dullness", "Comma-separated concerns")
	age := fs.String("age", "", "Age range")
	lifestyle := fs.String("lifestyle", "", "Lifestyle")
	environment := fs.String("environment", "", "Environment")
	products := fs.String("products", "", "Current products")
	allergies := fs.String("allergies", "", "Allergies or sensitivities")
	photo := fs.Bool("photo", false, "Mark a photo as provided")
	fs.BoolVar(&send, "send", false, "Send the prompt to the AI gateway")
	fs.StringVar(&outPath, "out", "", "Path to write JSON output (optional)")
	fs.StringVar(&model, "model", cfg.Model, "AI model")
	_ = fs.Parse(args)

	req = recommendations.Request{
		SkinType:        *skinType,
		Concerns:        splitList(*concerns),
		Age:             *age,
		Lifestyle:       *lifestyle,
		Environment:     *environment,
		CurrentProducts: *products,
		Allergies:       *allergies,
	}
	if *photo {
		provided := recommendations.PhotoProvided
		req.SkinImage = &provided
	}
	return req, send, outPath, model
}
