package nutrition

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrigen/internal/app/gateway"
	"nutrigen/internal/pkg/errs"
)

type recordingGenerator struct {
	reply string

	dietCalls  []dietCall
	imageCalls []imageCall
}

type dietCall struct {
	prompt, userText string
}

type imageCall struct {
	image  gateway.Part
	prompt string
}

func (g *recordingGenerator) GenerateDietPlan(_ context.Context, prompt, userText string) string {
	g.dietCalls = append(g.dietCalls, dietCall{prompt, userText})
	return g.reply
}

func (g *recordingGenerator) GenerateNutritionAnalysis(_ context.Context, image gateway.Part, prompt string) string {
	g.imageCalls = append(g.imageCalls, imageCall{image, prompt})
	return g.reply
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestPlanDiet_EmbedsSelectionsAndReturnsVerbatim(t *testing.T) {
	gen := &recordingGenerator{reply: "**Breakfast**: oats\n\n| Meal | kcal |\n|---|---|"}
	p := NewPlanner(gen)

	out, customErr := p.PlanDiet(context.Background(), DietRequest{
		AgeGroup: "Adult",
		Diseases: []string{"None"},
		Input:    "2000",
	})

	require.Nil(t, customErr)
	assert.Equal(t, gen.reply, out)
	require.Len(t, gen.dietCalls, 1)

	prompt := gen.dietCalls[0].prompt
	assert.Contains(t, prompt, "'Adult'")
	assert.Contains(t, prompt, "the following diseases: None,")
	assert.Contains(t, prompt, DietInstruction)
	assert.True(t, strings.HasSuffix(prompt, "Input:\n2000"))
	assert.Equal(t, "2000", gen.dietCalls[0].userText)
}

func TestBuildDietPrompt_JoinsDiseases(t *testing.T) {
	prompt := BuildDietPrompt(DietRequest{
		AgeGroup: "Senior",
		Diseases: []string{"Diabetes", "Heart Disease"},
		Input:    "rice, lentils, spinach",
	})

	assert.Contains(t, prompt, "age group 'Senior'")
	assert.Contains(t, prompt, "Diabetes, Heart Disease")
	assert.Less(t, strings.Index(prompt, "Diabetes"), strings.Index(prompt, DietInstruction))
	assert.Less(t, strings.Index(prompt, DietInstruction), strings.Index(prompt, "rice, lentils, spinach"))
}

func TestPlanDiet_ValidationStopsBeforeModel(t *testing.T) {
	tests := []struct {
		name string
		req  DietRequest
		code int
	}{
		{"unknown age group", DietRequest{AgeGroup: "Toddler"}, errs.ErrInvalidAgeGroup},
		{"empty age group", DietRequest{}, errs.ErrInvalidAgeGroup},
		{"unknown disease", DietRequest{AgeGroup: "Adult", Diseases: []string{"Flu"}}, errs.ErrInvalidDisease},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &recordingGenerator{}
			_, customErr := NewPlanner(gen).PlanDiet(context.Background(), tt.req)

			require.NotNil(t, customErr)
			assert.Equal(t, tt.code, customErr.Code)
			assert.Empty(t, gen.dietCalls)
		})
	}
}

func TestDietRequest_ValidateMessage(t *testing.T) {
	customErr := DietRequest{AgeGroup: "Adult", Diseases: []string{"Flu"}}.Validate()
	require.NotNil(t, customErr)
	assert.Equal(t, "Unknown condition selected: Flu.", customErr.Message)

	assert.Nil(t, DietRequest{AgeGroup: "Child"}.Validate())
}

func TestAnalyzeImage_NoFileDoesNotCallModel(t *testing.T) {
	gen := &recordingGenerator{reply: "unused"}

	out, customErr := NewPlanner(gen).AnalyzeImage(context.Background(), nil)

	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrNoFileUploaded, customErr.Code)
	assert.Equal(t, "No file is uploaded!", customErr.Message)
	assert.Empty(t, out)
	assert.Empty(t, gen.imageCalls)
}

func TestAnalyzeImage_SendsImageThenPrompt(t *testing.T) {
	gen := &recordingGenerator{reply: "| Food item | Serving size |"}

	out, customErr := NewPlanner(gen).AnalyzeImage(context.Background(), &Upload{
		FileName: "lunch.PNG",
		MIMEType: "image/png",
		Data:     pngHeader,
	})

	require.Nil(t, customErr)
	assert.Equal(t, gen.reply, out)
	require.Len(t, gen.imageCalls, 1)
	assert.Equal(t, gateway.BlobPart("image/png", pngHeader), gen.imageCalls[0].image)
	assert.Equal(t, NutritionPrompt, gen.imageCalls[0].prompt)
}

func TestPrepImage(t *testing.T) {
	jpeg := []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")

	tests := []struct {
		name     string
		upload   *Upload
		wantMIME string
		wantCode int
	}{
		{"jpeg", &Upload{FileName: "a.jpeg", MIMEType: "image/jpeg", Data: jpeg}, "image/jpeg", 0},
		{"jpg alias mime", &Upload{FileName: "a.jpg", MIMEType: "image/jpg", Data: jpeg}, "image/jpeg", 0},
		{"sniffed png", &Upload{FileName: "a.png", MIMEType: "application/octet-stream", Data: pngHeader}, "image/png", 0},
		{"sniffed missing type", &Upload{FileName: "a.jpg", Data: jpeg}, "image/jpeg", 0},
		{"gif rejected", &Upload{FileName: "a.gif", MIMEType: "image/gif", Data: []byte("GIF89a")}, "", errs.ErrUnsupportedImage},
		{"no extension", &Upload{FileName: "photo", MIMEType: "image/png", Data: pngHeader}, "", errs.ErrUnsupportedImage},
		{"extension disagrees", &Upload{FileName: "a.png", MIMEType: "image/jpeg", Data: jpeg}, "", errs.ErrUnsupportedImage},
		{"too large", &Upload{FileName: "a.png", MIMEType: "image/png", Data: make([]byte, MaxImageSize+1)}, "", errs.ErrImageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part, customErr := PrepImage(tt.upload)
			if tt.wantCode != 0 {
				require.NotNil(t, customErr)
				assert.Equal(t, tt.wantCode, customErr.Code)
				return
			}

			require.Nil(t, customErr)
			assert.Equal(t, tt.wantMIME, part.MIMEType)
			assert.Equal(t, tt.upload.Data, part.Data)
		})
	}
}

func TestPrepImage_TooLargeMessage(t *testing.T) {
	_, customErr := PrepImage(&Upload{FileName: "a.png", MIMEType: "image/png", Data: make([]byte, MaxImageSize+1)})
	require.NotNil(t, customErr)
	assert.Equal(t, "Image is too large (max 10 MB).", customErr.Message)
}
