package connections

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"journalmind/internal/contextutil"
	"journalmind/internal/embedding"
	"journalmind/internal/journal"
	"journalmind/internal/lexical"
	"journalmind/internal/lexicon"
)

const (
	// minSharedKeywords gates pass-1 thematic connections.
	minSharedKeywords = 2
	// thematicDivisor scales shared-keyword count into confidence.
	thematicDivisor = 5.0
	// questionAnswerConfidence is fixed for question-answer connections.
	questionAnswerConfidence = 0.6
	// evolutionMinOverlap / evolutionMaxOverlap bound the shared/union
	// ratio: below is unrelated, above is restatement rather than
	// evolution.
	evolutionMinOverlap = 0.2
	evolutionMaxOverlap = 0.6
	// evolutionMinDays is the minimum calendar-day gap for evolution.
	evolutionMinDays = 1
	// similarityThreshold gates pass-2 embedding connections.
	similarityThreshold = 0.65
	// recencyWindowDays restricts pass 2 to recent entries.
	recencyWindowDays = 90
	// maxThemeTerms caps the terms quoted in a thematic description.
	maxThemeTerms = 3
)

// LocalDetector finds connections with keyword heuristics (pass 1) and
// embedding similarity (pass 2). It performs no network I/O: the embedding
// provider is a local lookup and may be nil, which disables pass 2.
type LocalDetector struct {
	mu       sync.RWMutex
	lex      *lexicon.Lexicon
	provider embedding.Provider
	now      func() time.Time
}

// NewLocalDetector creates a local detector. provider may be nil.
func NewLocalDetector(lex *lexicon.Lexicon, provider embedding.Provider) *LocalDetector {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &LocalDetector{
		lex:      lex,
		provider: provider,
		now:      time.Now,
	}
}

// Reload swaps the lexicon tables. In-flight detections keep the tables they
// started with.
func (d *LocalDetector) Reload(lex *lexicon.Lexicon) {
	if lex == nil {
		lex = lexicon.Default()
	}
	d.mu.Lock()
	d.lex = lex
	d.mu.Unlock()
}

func (d *LocalDetector) lexicon() *lexicon.Lexicon {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lex
}

// Detect runs both passes over every unordered pair of entries. It is a
// pure function of its input set, modulo the 90-day recency clock.
func (d *LocalDetector) Detect(ctx context.Context, entries []journal.Entry) ([]journal.Connection, error) {
	logger := contextutil.LoggerFromContext(ctx)

	active := make([]journal.Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Deleted {
			active = append(active, e)
		}
	}
	if len(active) < 2 {
		return []journal.Connection{}, nil
	}

	lex := d.lexicon()
	keywords := make([]map[string]struct{}, len(active))
	for i, e := range active {
		keywords[i] = keywordSet(entryText(e), lex)
	}

	connections := []journal.Connection{}
	connected := make(map[string]struct{})

	// Pass 1: pairwise heuristics. Each check runs independently, so one
	// pair can produce several connections.
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			shared := sharedKeywords(keywords[i], keywords[j])

			if c, ok := d.thematic(active[i], active[j], shared, lex); ok {
				connections = append(connections, c)
				connected[pairKey(active[i].ID, active[j].ID)] = struct{}{}
			}
			if c, ok := d.questionAnswer(active[i], active[j], shared); ok {
				connections = append(connections, c)
				connected[pairKey(active[i].ID, active[j].ID)] = struct{}{}
			}
			if c, ok := d.evolution(active[i], active[j], shared, unionSize(keywords[i], keywords[j])); ok {
				connections = append(connections, c)
				connected[pairKey(active[i].ID, active[j].ID)] = struct{}{}
			}
		}
	}

	semantic := d.semanticPass(active, connected)
	connections = append(connections, semantic...)

	logger.InfoContext(ctx, "local detection completed",
		"entries", len(active),
		"connections", len(connections),
		"semantic", len(semantic),
	)
	return connections, nil
}

// thematic emits a connection when two entries share at least two keywords.
// Confidence is min(shared/5, 1). The description quotes up to three
// meaningful theme terms, falling back to raw shared keywords.
func (d *LocalDetector) thematic(a, b journal.Entry, shared []string, lex *lexicon.Lexicon) (journal.Connection, bool) {
	if len(shared) < minSharedKeywords {
		return journal.Connection{}, false
	}

	confidence := float64(len(shared)) / thematicDivisor
	if confidence > 1 {
		confidence = 1
	}

	terms := lex.MeaningfulTermsIn(a.Text+" "+b.Text, maxThemeTerms)
	if len(terms) == 0 {
		terms = shared
		if len(terms) > maxThemeTerms {
			terms = terms[:maxThemeTerms]
		}
	}

	return d.newConnection(earlier(a, b), later(a, b), journal.ConnectionThematic,
		fmt.Sprintf("Shared themes: %s", strings.Join(terms, ", ")), confidence), true
}

// questionAnswer emits a connection when exactly one entry is a question,
// they share at least one keyword, and the candidate answer strictly
// postdates the question.
func (d *LocalDetector) questionAnswer(a, b journal.Entry, shared []string) (journal.Connection, bool) {
	if len(shared) < 1 || a.IsQuestion() == b.IsQuestion() {
		return journal.Connection{}, false
	}

	question, answer := a, b
	if b.IsQuestion() {
		question, answer = b, a
	}
	if !answer.CreatedAt.After(question.CreatedAt) {
		return journal.Connection{}, false
	}

	return d.newConnection(question, answer, journal.ConnectionQuestionAnswer,
		"A later entry that may answer this question", questionAnswerConfidence), true
}

// evolution emits a connection when keyword overlap sits in the evolution
// band and at least one calendar day separates the entries. The earlier
// entry is always the source.
func (d *LocalDetector) evolution(a, b journal.Entry, shared []string, union int) (journal.Connection, bool) {
	if union == 0 {
		return journal.Connection{}, false
	}
	ratio := float64(len(shared)) / float64(union)
	if ratio < evolutionMinOverlap || ratio > evolutionMaxOverlap {
		return journal.Connection{}, false
	}
	if daysBetween(a.CreatedAt, b.CreatedAt) < evolutionMinDays {
		return journal.Connection{}, false
	}

	confidence := 0.5 + ratio
	if confidence > 1 {
		confidence = 1
	}

	return d.newConnection(earlier(a, b), later(a, b), journal.ConnectionEvolution,
		"A theme that evolved over time", confidence), true
}

// semanticPass computes document-embedding similarity for recent entry
// pairs not already connected in pass 1. Document vectors are computed once
// per entry; entries without an embedding are skipped silently.
func (d *LocalDetector) semanticPass(active []journal.Entry, connected map[string]struct{}) []journal.Connection {
	if d.provider == nil {
		return nil
	}

	cutoff := d.now().AddDate(0, 0, -recencyWindowDays)
	var recent []journal.Entry
	for _, e := range active {
		if e.CreatedAt.After(cutoff) {
			recent = append(recent, e)
		}
	}
	if len(recent) < 2 {
		return nil
	}

	vectors := make(map[string][]float32, len(recent))
	for _, e := range recent {
		if vec, ok := embedding.DocumentVector(d.provider, entryText(e)); ok {
			vectors[e.ID] = vec
		}
	}

	var out []journal.Connection
	for i := 0; i < len(recent); i++ {
		for j := i + 1; j < len(recent); j++ {
			if _, done := connected[pairKey(recent[i].ID, recent[j].ID)]; done {
				continue
			}
			vecI, okI := vectors[recent[i].ID]
			vecJ, okJ := vectors[recent[j].ID]
			if !okI || !okJ {
				continue
			}
			sim, ok := embedding.Cosine(vecI, vecJ)
			if !ok || sim < similarityThreshold {
				continue
			}
			out = append(out, d.newConnection(earlier(recent[i], recent[j]), later(recent[i], recent[j]),
				journal.ConnectionThematic, "Reflections with closely related meaning", sim))
		}
	}
	return out
}

func (d *LocalDetector) newConnection(source, target journal.Entry, t journal.ConnectionType, description string, confidence float64) journal.Connection {
	return journal.Connection{
		ID:             uuid.New().String(),
		SourceEntryID:  source.ID,
		TargetEntryID:  target.ID,
		SourceSequence: source.Sequence,
		TargetSequence: target.Sequence,
		Type:           t,
		Description:    description,
		Confidence:     confidence,
		IsUserCreated:  false,
		CreatedAt:      d.now(),
	}
}

// pairKey is an order-independent key for an entry pair.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// daysBetween returns the absolute calendar-day difference, not a fractional
// 24-hour count: 23:50 to 00:10 the next day is one day apart.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(bd.Sub(ad).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// entryText is the analyzable text of an entry: capture plus reflection,
// with markdown stripped.
func entryText(e journal.Entry) string {
	text := lexical.PlainText(e.Text)
	if e.Reflection != "" {
		text += "\n" + lexical.PlainText(e.Reflection)
	}
	return text
}

func earlier(a, b journal.Entry) journal.Entry {
	if b.CreatedAt.Before(a.CreatedAt) {
		return b
	}
	return a
}

func later(a, b journal.Entry) journal.Entry {
	if b.CreatedAt.Before(a.CreatedAt) {
		return a
	}
	return b
}
