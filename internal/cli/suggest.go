// Package cli provides a lightweight CLI framework with nested subcommand
// dispatch, typed options, colored help, and "did you mean?" suggestions.
package cli

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/rybkr/cmdtree/internal/i18n"
)

// Suggestion defaults.
const (
	DefaultMaxSuggestions = 3
	DefaultMinSimilarity  = 0.4
)

// SuggestConfig tunes which near-matches are offered for an unknown command.
type SuggestConfig struct {
	MaxSuggestions int     // caps the number of suggestions returned
	MinSimilarity  float64 // matches scoring below this are dropped, in [0,1]
	IncludeAliases bool    // whether aliases join the candidate pool
}

// DefaultSuggestConfig returns the configuration used when none is given.
func DefaultSuggestConfig() SuggestConfig {
	return SuggestConfig{
		MaxSuggestions: DefaultMaxSuggestions,
		MinSimilarity:  DefaultMinSimilarity,
	}
}

// Similarity returns 1 - levenshtein(a, b) / max(len(a), len(b)), comparing
// case-insensitively and measuring length in runes. Two empty strings are
// identical.
func Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// Suggestion is a candidate name with its similarity to the input.
type Suggestion struct {
	Name  string
	Score float64
}

// Suggester ranks candidate command names against a misspelled input.
type Suggester struct {
	cfg     SuggestConfig
	catalog *i18n.Catalog
}

// NewSuggester returns a Suggester for cfg. A nil catalog uses English.
// Out-of-range settings are clamped; a non-positive MaxSuggestions falls
// back to DefaultMaxSuggestions.
func NewSuggester(cfg SuggestConfig, catalog *i18n.Catalog) *Suggester {
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = DefaultMaxSuggestions
	}
	cfg.MinSimilarity = min(max(cfg.MinSimilarity, 0), 1)
	if catalog == nil {
		catalog = i18n.Default()
	}
	return &Suggester{cfg: cfg, catalog: catalog}
}

// Config returns the effective configuration.
func (s *Suggester) Config() SuggestConfig {
	return s.cfg
}

// Rank scores every candidate, drops those below MinSimilarity, and returns
// at most MaxSuggestions matches, best first. Equal scores keep the
// candidates' original order.
func (s *Suggester) Rank(input string, candidates []string) []Suggestion {
	ranked := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		if score := Similarity(input, c); score >= s.cfg.MinSimilarity {
			ranked = append(ranked, Suggestion{Name: c, Score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > s.cfg.MaxSuggestions {
		ranked = ranked[:s.cfg.MaxSuggestions]
	}
	return ranked
}

// FindSimilarCommands returns the names Rank would return.
func (s *Suggester) FindSimilarCommands(input string, candidates []string) []string {
	ranked := s.Rank(input, candidates)
	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Name
	}
	return names
}

// GenerateSuggestionMessage returns the user-facing "not found" text for
// input, listing each suggestion on its own indented line.
func (s *Suggester) GenerateSuggestionMessage(input string, candidates []string) string {
	return s.message(input, s.FindSimilarCommands(input, candidates))
}

func (s *Suggester) message(input string, suggestions []string) string {
	if len(suggestions) == 0 {
		return s.catalog.Sprintf(i18n.NotFoundNone, input)
	}
	var b strings.Builder
	b.WriteString(s.catalog.Sprintf(i18n.NotFoundSuggest, input))
	for _, name := range suggestions {
		b.WriteString("\n  ")
		b.WriteString(name)
	}
	return b.String()
}
