package nutrition

import (
	"slices"

	"nutrigen/internal/pkg/errs"
)

// AgeGroups lists the selectable age categories in display order.
var AgeGroups = []string{"Child", "Teenager", "Adult", "Senior"}

// Diseases lists the selectable conditions in display order. "None" is a valid choice.
var Diseases = []string{"Diabetes", "Hypertension", "Heart Disease", "Asthma", "High Cholesterol", "None"}

// DefaultAgeGroup is preselected in the diet form.
const DefaultAgeGroup = "Child"

// DietRequest is one Diet Planner submission.
type DietRequest struct {
	AgeGroup string   `json:"ageGroup"`
	Diseases []string `json:"diseases"`
	Input    string   `json:"input"`
}

// Validate checks the age group and every selected condition against the fixed lists.
// An empty condition list and empty input are accepted.
func (dr DietRequest) Validate() *errs.CustomError {
	if !slices.Contains(AgeGroups, dr.AgeGroup) {
		return errs.NewError(errs.ErrInvalidAgeGroup)
	}

	for _, d := range dr.Diseases {
		if !slices.Contains(Diseases, d) {
			return errs.NewError(errs.ErrInvalidDisease, d)
		}
	}

	return nil
}
