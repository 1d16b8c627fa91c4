/*
Package gateway is the boundary between the application and the external
generative-language service.

Callers hand over an ordered list of parts (text, or binary data with a MIME type) and
get back the model's text. Every failure of the upstream call (network, auth,
malformed or empty response) is collapsed into one textual "Error: ..." result: the
features are best-effort assists and never fail the page that asked for them.
*/
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"nutrigen/internal/pkg/logx"
)

// ErrorPrefix starts every failure text returned by Gateway.
const ErrorPrefix = "Error: "

// Part is one element of a model request: either Text, or Data with its MIMEType.
type Part struct {
	Text     string
	MIMEType string
	Data     []byte
}

// IsBlob reports whether p carries binary data rather than text.
func (p Part) IsBlob() bool {
	return p.MIMEType != ""
}

// TextPart returns a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// BlobPart returns a binary part such as an image.
func BlobPart(mimeType string, data []byte) Part {
	return Part{MIMEType: mimeType, Data: data}
}

// Generator is the single capability the external model offers.
type Generator interface {
	// Generate sends parts as one user turn and returns the model's text.
	// Failures are reported as *UpstreamError.
	Generate(ctx context.Context, parts []Part) (string, error)
}

// UpstreamError wraps any failure of the external model call.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Gateway issues the application's two request shapes against a Generator.
type Gateway struct {
	gen     Generator
	timeout time.Duration
	logger  zerolog.Logger
}

// New returns a Gateway over gen. A zero timeout leaves calls unbounded apart from ctx.
func New(gen Generator, timeout time.Duration) *Gateway {
	return &Gateway{
		gen:     gen,
		timeout: timeout,
		logger:  logx.Component("gateway"),
	}
}

// GenerateDietPlan sends the prompt and the raw user text as two text parts.
func (g *Gateway) GenerateDietPlan(ctx context.Context, prompt, userText string) string {
	return g.generate(ctx, "diet_plan", []Part{TextPart(prompt), TextPart(userText)})
}

// GenerateNutritionAnalysis sends the image part followed by the prompt.
func (g *Gateway) GenerateNutritionAnalysis(ctx context.Context, image Part, prompt string) string {
	return g.generate(ctx, "nutrition_analysis", []Part{image, TextPart(prompt)})
}

func (g *Gateway) generate(ctx context.Context, operation string, parts []Part) string {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := g.gen.Generate(ctx, parts)
	if err != nil {
		g.logger.Error().
			Err(err).
			Str("operation", operation).
			Dur("latency", time.Since(start)).
			Msg("Generative model call failed")
		return fmt.Sprintf("%s%v", ErrorPrefix, err)
	}

	g.logger.Info().
		Str("operation", operation).
		Int("response_chars", len(text)).
		Dur("latency", time.Since(start)).
		Msg("Generative model call completed")
	return text
}
