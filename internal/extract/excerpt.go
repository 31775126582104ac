package extract

import (
	"strings"

	"journalmind/internal/lexical"
)

const (
	minExcerptLength = 30
	maxExcerptLength = 300

	// The "ideal" band earns a length bonus.
	idealExcerptMin = 50
	idealExcerptMax = 150
)

// selectKeyExcerpt picks the single most meaningful sentence. The reflection
// text is preferred over the capture text when both are non-empty; ties keep
// the first candidate encountered.
func (e *Extractor) selectKeyExcerpt(primary, secondary string) string {
	source := primary
	if strings.TrimSpace(secondary) != "" {
		source = secondary
	}
	if strings.TrimSpace(source) == "" {
		return ""
	}

	best := ""
	bestScore := -1
	for _, sentence := range e.analyzer.Sentences(source) {
		length := len([]rune(sentence.Text))
		if length < minExcerptLength || length > maxExcerptLength {
			continue
		}
		score := e.scoreExcerpt(sentence.Text, length)
		if score > bestScore {
			best = sentence.Text
			bestScore = score
		}
	}
	return best
}

// scoreExcerpt applies the weighted excerpt heuristic:
// +2 per meaningful-vocabulary term, +3 for a first-person insight marker,
// +4 for a causal/insight connective, +2 for a question, +2 per personal
// name in the sentence, +1 for the ideal length band.
func (e *Extractor) scoreExcerpt(sentence string, length int) int {
	lower := strings.ToLower(sentence)
	score := 0

	score += 2 * len(e.lex.MeaningfulTermsIn(sentence, 0))

	for _, marker := range e.lex.InsightMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			score += 3
			break
		}
	}
	for _, connective := range e.lex.CausalConnectives {
		if strings.Contains(lower, strings.ToLower(connective)) {
			score += 4
			break
		}
	}
	if strings.HasSuffix(strings.TrimRight(sentence, `"')`), "?") {
		score += 2
	}
	for _, entity := range e.analyzer.NamedEntities(sentence) {
		if entity.Class == lexical.EntityPerson {
			score += 2
		}
	}
	if length >= idealExcerptMin && length <= idealExcerptMax {
		score++
	}
	return score
}
