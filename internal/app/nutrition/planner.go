/*
Package nutrition implements the two features of the main page: the Nutrition
Calculator (image in, nutrition table out) and the Diet Planner (age group,
conditions and free text in, meal plan out).
*/
package nutrition

import (
	"context"

	"nutrigen/internal/app/gateway"
	"nutrigen/internal/pkg/errs"
)

// Generator is the part of the gateway the planner depends on.
type Generator interface {
	GenerateDietPlan(ctx context.Context, prompt, userText string) string
	GenerateNutritionAnalysis(ctx context.Context, image gateway.Part, prompt string) string
}

// Planner validates feature input and forwards it to the model with the fixed prompts.
type Planner struct {
	gen Generator
}

// NewPlanner returns a Planner backed by gen.
func NewPlanner(gen Generator) *Planner {
	return &Planner{gen: gen}
}

// PlanDiet validates dr and returns the model's diet plan text.
// Model failures come back as "Error: ..." text, not as an error.
func (p *Planner) PlanDiet(ctx context.Context, dr DietRequest) (string, *errs.CustomError) {
	if customErr := dr.Validate(); customErr != nil {
		return "", customErr
	}

	return p.gen.GenerateDietPlan(ctx, BuildDietPrompt(dr), dr.Input), nil
}

// AnalyzeImage validates the upload and returns the model's nutrition breakdown.
// The model is not called when the upload is missing or invalid.
func (p *Planner) AnalyzeImage(ctx context.Context, u *Upload) (string, *errs.CustomError) {
	image, customErr := PrepImage(u)
	if customErr != nil {
		return "", customErr
	}

	return p.gen.GenerateNutritionAnalysis(ctx, image, NutritionPrompt), nil
}
