package nutrition

import (
	"fmt"
	"strings"
)

// NutritionPrompt instructs the model to tabulate the food items found in an image.
const NutritionPrompt = `You are an expert Nutritionist. As a skilled nutritionist, you're required to analyze the food items
in the image and determine the total nutrition value.
Additionally, you need to furnish a breakdown of each food item along with its respective content.

Food item, Serving size, Total Cal., Protein (g), Fat,
Carb (g), Fiber (g), Vit B-12, Vit B-6,
Iron, Zinc, Manganese.

Use a table to show the above information.`

// DietInstruction tells the model how to read the free-text input.
// Whether the input is an ingredient list or a calorie target is left to the model.
const DietInstruction = `You are an expert Nutritionist.
If the input contains a list of items like fruits or vegetables, you have to provide a diet plan and suggest
breakfast, lunch, and dinner based on the given items.
If the input contains numbers, you need to suggest a diet plan for breakfast, lunch, and dinner within
the given number of calories for the whole day.

Return the response using markdown.`

// BuildDietPrompt renders the single prompt sent ahead of the user's text.
func BuildDietPrompt(dr DietRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		"You are an expert Nutritionist. Considering the age group '%s' and the following diseases: %s,\n",
		dr.AgeGroup, strings.Join(dr.Diseases, ", "))
	b.WriteString("prepare a diet plan based on the given input.\n\n")
	b.WriteString(DietInstruction)
	b.WriteString("\n\nInput:\n")
	b.WriteString(dr.Input)

	return b.String()
}
