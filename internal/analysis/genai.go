package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/PizzaHomicide/sedai/internal/domain"
	"github.com/PizzaHomicide/sedai/internal/log"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured
const DefaultModel = "gemini-2.5-flash"

// generator is the single model call the analyzer depends on
type generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

type genaiGenerator struct {
	client *genai.Client
}

func (g genaiGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return resp.Text(), nil
}

// GenAIAnalyzer asks a Gemini model for the analysis
type GenAIAnalyzer struct {
	gen   generator
	model string
}

// NewGenAIAnalyzer creates an analyzer backed by the Gemini API
func NewGenAIAnalyzer(ctx context.Context, apiKey, model string) (*GenAIAnalyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newAnalyzer(genaiGenerator{client: client}, model), nil
}

func newAnalyzer(gen generator, model string) *GenAIAnalyzer {
	if model == "" {
		model = DefaultModel
	}
	return &GenAIAnalyzer{gen: gen, model: model}
}

// Analyze returns the model's markdown critique, FallbackText if the call failed or EmptyText if the model had
// nothing to say
func (a *GenAIAnalyzer) Analyze(ctx context.Context, buckets []domain.YearBucket) string {
	prompt := BuildPrompt(BuildSummary(buckets))

	log.Debug("Requesting taste analysis", "model", a.model, "years", len(buckets), "prompt_length", len(prompt))
	text, err := a.gen.Generate(ctx, a.model, prompt)
	if err != nil {
		log.Error("Taste analysis failed", "model", a.model, "error", err)
		return FallbackText
	}

	if strings.TrimSpace(text) == "" {
		log.Warn("Taste analysis came back empty", "model", a.model)
		return EmptyText
	}
	return text
}

// New picks the analyzer for the given settings.  Without an API key, or if the client cannot be built, analysis
// falls back to NoopAnalyzer.
func New(ctx context.Context, apiKey, model string) Analyzer {
	if apiKey == "" {
		log.Info("No analysis API key configured, taste analysis disabled")
		return NoopAnalyzer{}
	}

	analyzer, err := NewGenAIAnalyzer(ctx, apiKey, model)
	if err != nil {
		log.Error("Failed to create taste analyzer", "error", err)
		return NoopAnalyzer{}
	}
	return analyzer
}
