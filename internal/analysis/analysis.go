// Package analysis asks a language model for a light-hearted read of a user's anime taste.
package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/PizzaHomicide/sedai/internal/domain"
)

const (
	// MaxTitlesPerYear bounds how many titles of each year are sent to the model
	MaxTitlesPerYear = 15

	// FallbackText replaces the analysis whenever the model cannot be reached
	FallbackText = "Sorry, the AI critic is currently taking a nap. Please try again later."
	// EmptyText is used when the model answers with nothing
	EmptyText = "Could not generate analysis."
)

// Analyzer turns a grouped collection into a short markdown critique.  Implementations never fail: errors are
// reported as fallback text.
type Analyzer interface {
	Analyze(ctx context.Context, buckets []domain.YearBucket) string
}

// BuildSummary condenses buckets to one "{year}: {titles}" line per year, years ascending.  Only the first
// MaxTitlesPerYear titles of a year are kept.
func BuildSummary(buckets []domain.YearBucket) string {
	sorted := make([]domain.YearBucket, len(buckets))
	copy(sorted, buckets)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	var sb strings.Builder
	for _, bucket := range sorted {
		subjects := bucket.Subjects
		if len(subjects) > MaxTitlesPerYear {
			subjects = subjects[:MaxTitlesPerYear]
		}

		titles := make([]string, len(subjects))
		for i, s := range subjects {
			titles[i] = s.DisplayName()
		}

		fmt.Fprintf(&sb, "%s: %s\n", bucket.Year, strings.Join(titles, ", "))
	}
	return sb.String()
}

// BuildPrompt wraps a summary from BuildSummary in the critic instructions
func BuildPrompt(summary string) string {
	return `You are an expert anime critic and otaku culture historian.
Below is a list of anime a user has watched, grouped by year.

Data:
` + summary + `
Please provide a concise but fun "Otaku Personality Analysis" (max 200 words).
1. Identify their favorite genres or themes based on the list.
2. Comment on their "Anime Generation" (e.g., are they a 2000s nostalgic, a modern watcher, or eclectic?).
3. Roast them slightly if their taste is very generic, or praise them if they found hidden gems.
4. Return the response in Markdown.
`
}

// NoopAnalyzer is used when no model is configured
type NoopAnalyzer struct{}

func (NoopAnalyzer) Analyze(context.Context, []domain.YearBucket) string {
	return FallbackText
}
