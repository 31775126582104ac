package connections

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"journalmind/internal/contextutil"
	"journalmind/internal/journal"
)

const (
	// maxRemoteConnections caps how many connections the model is asked for
	// and how many are accepted from its reply.
	maxRemoteConnections = 5
	// previewLength truncates each entry before it goes into the prompt.
	previewLength = 200
)

// Completer produces a completion for a prompt. *llm.Client satisfies it.
type Completer interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// RemoteDetector asks a language model to find connections across the whole
// journal. Results are cached: repeated Detect calls return the cached list
// until Regenerate or ClearCache. Model failures degrade to an empty list
// and never disturb the cache.
type RemoteDetector struct {
	completer Completer
	now       func() time.Time

	mu          sync.Mutex
	cached      []journal.Connection
	generatedAt *time.Time
}

// NewRemoteDetector creates a remote detector backed by the given completer.
func NewRemoteDetector(completer Completer) *RemoteDetector {
	return &RemoteDetector{
		completer: completer,
		now:       time.Now,
	}
}

// Detect returns the cached connections when present, otherwise generates a
// fresh set and caches it.
func (d *RemoteDetector) Detect(ctx context.Context, entries []journal.Entry) ([]journal.Connection, error) {
	d.mu.Lock()
	if d.cached != nil {
		out := append([]journal.Connection(nil), d.cached...)
		d.mu.Unlock()
		return out, nil
	}
	d.mu.Unlock()
	return d.Regenerate(ctx, entries)
}

// Regenerate always asks the model, replacing the cache on success. On any
// failure the previous cache survives and an empty list is returned.
func (d *RemoteDetector) Regenerate(ctx context.Context, entries []journal.Entry) ([]journal.Connection, error) {
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
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})

	reply, err := d.completer.Chat(ctx, buildPrompt(active))
	if err != nil {
		logger.WarnContext(ctx, "remote detection failed", "error", err)
		return []journal.Connection{}, nil
	}

	connections, err := d.parseReply(reply, active)
	if err != nil {
		logger.WarnContext(ctx, "remote reply unparseable", "error", err)
		return []journal.Connection{}, nil
	}

	now := d.now()
	d.mu.Lock()
	d.cached = connections
	d.generatedAt = &now
	d.mu.Unlock()

	logger.InfoContext(ctx, "remote detection completed", "connections", len(connections))
	return append([]journal.Connection(nil), connections...), nil
}

// Cached returns the cached connections, or nil when nothing is cached.
func (d *RemoteDetector) Cached() []journal.Connection {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cached == nil {
		return nil
	}
	return append([]journal.Connection(nil), d.cached...)
}

// LastGeneratedAt returns when the cache was last filled, or nil.
func (d *RemoteDetector) LastGeneratedAt() *time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.generatedAt == nil {
		return nil
	}
	t := *d.generatedAt
	return &t
}

// ClearCache drops the cached connections.
func (d *RemoteDetector) ClearCache() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cached = nil
	d.generatedAt = nil
}

// buildPrompt lists entries chronologically, each tagged with its sequence
// number and truncated to a short preview.
func buildPrompt(entries []journal.Entry) string {
	var b strings.Builder
	b.WriteString("You are analyzing a personal journal. Below are entries in chronological order, each tagged [n].\n\n")
	for _, e := range entries {
		preview := strings.TrimSpace(e.Text)
		// Rune-aware so a multibyte character is never split mid-sequence.
		if runes := []rune(preview); len(runes) > previewLength {
			preview = string(runes[:previewLength])
		}
		kind := e.Kind
		if kind == "" {
			kind = journal.KindReflection
		}
		fmt.Fprintf(&b, "[%d] (%s, %s) %s\n", e.Sequence, kind, e.CreatedAt.Format("2006-01-02"), preview)
	}
	fmt.Fprintf(&b, `
Find up to %d meaningful connections between pairs of entries. Respond with
only a JSON array, no other text. Each element:
{"source": <n>, "target": <n>, "type": "<type>", "description": "<one sentence>", "confidence": <0.0-1.0>}
Allowed types: thematic, evolution, causal, contrasting, pattern, temporal.
`, maxRemoteConnections)
	return b.String()
}

type remoteConnection struct {
	Source      int     `json:"source"`
	Target      int     `json:"target"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// parseReply extracts the JSON array from the model reply, tolerating prose
// around it. Connections referencing unknown sequence numbers are dropped,
// unknown types coerce to thematic, and confidence is clamped to [0, 1].
func (d *RemoteDetector) parseReply(reply string, entries []journal.Entry) ([]journal.Connection, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array in reply")
	}

	var raw []remoteConnection
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode connections: %w", err)
	}

	bySequence := make(map[int]journal.Entry, len(entries))
	for _, e := range entries {
		bySequence[e.Sequence] = e
	}

	connections := []journal.Connection{}
	for _, rc := range raw {
		if len(connections) >= maxRemoteConnections {
			break
		}
		source, okS := bySequence[rc.Source]
		target, okT := bySequence[rc.Target]
		if !okS || !okT || rc.Source == rc.Target {
			continue
		}

		t := journal.ConnectionType(rc.Type)
		if !journal.ValidConnectionType(t) || t == journal.ConnectionQuestionAnswer {
			t = journal.ConnectionThematic
		}
		confidence := rc.Confidence
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}

		connections = append(connections, journal.Connection{
			ID:             uuid.New().String(),
			SourceEntryID:  source.ID,
			TargetEntryID:  target.ID,
			SourceSequence: source.Sequence,
			TargetSequence: target.Sequence,
			Type:           t,
			Description:    rc.Description,
			Confidence:     confidence,
			IsUserCreated:  false,
			CreatedAt:      d.now(),
		})
	}
	return connections, nil
}
