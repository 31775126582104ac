package connections

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"journalmind/internal/journal"
)

type fakeCompleter struct {
	reply string
	err   error
	calls int
	// prompts records every prompt received.
	prompts []string
}

func (f *fakeCompleter) Chat(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func remoteEntries() []journal.Entry {
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return []journal.Entry{
		{ID: "e1", Text: "Started a morning walk habit.", Sequence: 1, CreatedAt: base},
		{ID: "e2", Text: "The walks are clearing my head.", Sequence: 2, CreatedAt: base.AddDate(0, 0, 3)},
		{ID: "e3", Text: "Skipped the walk and regretted it.", Sequence: 3, CreatedAt: base.AddDate(0, 0, 7)},
	}
}

func TestRemoteDetectParsesReply(t *testing.T) {
	completer := &fakeCompleter{
		reply: `Here are the connections I found:
[
  {"source": 1, "target": 2, "type": "evolution", "description": "The habit took hold.", "confidence": 0.8},
  {"source": 1, "target": 3, "type": "pattern", "description": "Walks shape the mood.", "confidence": 0.7}
]
Let me know if you need more.`,
	}
	d := NewRemoteDetector(completer)

	conns, err := d.Detect(context.Background(), remoteEntries())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(conns) != 2 {
		t.Fatalf("expected 2 connections, got %d", len(conns))
	}
	if conns[0].SourceEntryID != "e1" || conns[0].TargetEntryID != "e2" {
		t.Errorf("expected e1 -> e2, got %s -> %s", conns[0].SourceEntryID, conns[0].TargetEntryID)
	}
	if conns[0].Type != journal.ConnectionEvolution {
		t.Errorf("expected evolution, got %s", conns[0].Type)
	}
	if conns[0].Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %v", conns[0].Confidence)
	}
	if conns[1].SourceSequence != 1 || conns[1].TargetSequence != 3 {
		t.Errorf("expected sequences 1 -> 3, got %d -> %d", conns[1].SourceSequence, conns[1].TargetSequence)
	}
}

func TestRemoteDetectPromptContents(t *testing.T) {
	completer := &fakeCompleter{reply: "[]"}
	d := NewRemoteDetector(completer)

	entries := remoteEntries()
	entries[1].Deleted = true
	if _, err := d.Detect(context.Background(), entries); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(completer.prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(completer.prompts))
	}
	prompt := completer.prompts[0]
	if !strings.Contains(prompt, "[1]") || !strings.Contains(prompt, "[3]") {
		t.Errorf("expected sequence tags in prompt:\n%s", prompt)
	}
	if strings.Contains(prompt, "clearing my head") {
		t.Error("deleted entry leaked into the prompt")
	}
	if strings.Contains(prompt, "questionAnswer") {
		t.Error("prompt must not offer the questionAnswer type")
	}
}

func TestRemoteDetectPromptPreviewKeepsRunesIntact(t *testing.T) {
	completer := &fakeCompleter{reply: "[]"}
	d := NewRemoteDetector(completer)

	entries := remoteEntries()
	// 210 multibyte runes; the preview cut must land on a rune boundary.
	entries[0].Text = strings.Repeat("é", 210)
	if _, err := d.Detect(context.Background(), entries); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	prompt := completer.prompts[0]
	if !utf8.ValidString(prompt) {
		t.Fatal("prompt contains a split multibyte rune")
	}
	if got := strings.Count(prompt, "é"); got != previewLength {
		t.Errorf("expected preview of %d runes, got %d", previewLength, got)
	}
}

func TestRemoteDetectDropsUnknownSequences(t *testing.T) {
	completer := &fakeCompleter{
		reply: `[
  {"source": 1, "target": 9, "type": "thematic", "description": "made up", "confidence": 0.9},
  {"source": 2, "target": 2, "type": "thematic", "description": "self link", "confidence": 0.9},
  {"source": 2, "target": 3, "type": "thematic", "description": "real", "confidence": 0.9}
]`,
	}
	d := NewRemoteDetector(completer)

	conns, err := d.Detect(context.Background(), remoteEntries())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(conns) != 1 {
		t.Fatalf("expected 1 connection after dropping invalid ones, got %d", len(conns))
	}
	if conns[0].Description != "real" {
		t.Errorf("kept the wrong connection: %q", conns[0].Description)
	}
}

func TestRemoteDetectCoercesTypeAndClampsConfidence(t *testing.T) {
	completer := &fakeCompleter{
		reply: `[
  {"source": 1, "target": 2, "type": "vibes", "description": "odd type", "confidence": 1.7},
  {"source": 2, "target": 3, "type": "questionAnswer", "description": "reserved type", "confidence": -0.3}
]`,
	}
	d := NewRemoteDetector(completer)

	conns, err := d.Detect(context.Background(), remoteEntries())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(conns) != 2 {
		t.Fatalf("expected 2 connections, got %d", len(conns))
	}
	for _, c := range conns {
		if c.Type != journal.ConnectionThematic {
			t.Errorf("expected coercion to thematic, got %s", c.Type)
		}
	}
	if conns[0].Confidence != 1.0 {
		t.Errorf("expected confidence clamped to 1.0, got %v", conns[0].Confidence)
	}
	if conns[1].Confidence != 0.0 {
		t.Errorf("expected confidence clamped to 0.0, got %v", conns[1].Confidence)
	}
}

func TestRemoteDetectCapsConnectionCount(t *testing.T) {
	var items []string
	for i := 0; i < 8; i++ {
		items = append(items, fmt.Sprintf(
			`{"source": 1, "target": 2, "type": "thematic", "description": "c%d", "confidence": 0.5}`, i))
	}
	completer := &fakeCompleter{reply: "[" + strings.Join(items, ",") + "]"}
	d := NewRemoteDetector(completer)

	conns, err := d.Detect(context.Background(), remoteEntries())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(conns) != maxRemoteConnections {
		t.Fatalf("expected %d connections, got %d", maxRemoteConnections, len(conns))
	}
}

func TestRemoteDetectFailureDegradesToEmpty(t *testing.T) {
	completer := &fakeCompleter{err: fmt.Errorf("model offline")}
	d := NewRemoteDetector(completer)

	conns, err := d.Detect(context.Background(), remoteEntries())
	if err != nil {
		t.Fatalf("expected nil error on model failure, got %v", err)
	}
	if conns == nil || len(conns) != 0 {
		t.Fatalf("expected empty slice, got %v", conns)
	}
	if d.Cached() != nil {
		t.Error("failure must not populate the cache")
	}
	if d.LastGeneratedAt() != nil {
		t.Error("failure must not set the generation timestamp")
	}
}

func TestRemoteDetectGarbageReplyDegradesToEmpty(t *testing.T) {
	completer := &fakeCompleter{reply: "I could not find anything useful."}
	d := NewRemoteDetector(completer)

	conns, err := d.Detect(context.Background(), remoteEntries())
	if err != nil {
		t.Fatalf("expected nil error on unparseable reply, got %v", err)
	}
	if len(conns) != 0 {
		t.Fatalf("expected no connections, got %d", len(conns))
	}
}

func TestRemoteDetectUsesCache(t *testing.T) {
	completer := &fakeCompleter{
		reply: `[{"source": 1, "target": 2, "type": "thematic", "description": "walks", "confidence": 0.5}]`,
	}
	d := NewRemoteDetector(completer)
	entries := remoteEntries()

	if _, err := d.Detect(context.Background(), entries); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if _, err := d.Detect(context.Background(), entries); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if completer.calls != 1 {
		t.Fatalf("expected 1 model call across cached Detects, got %d", completer.calls)
	}

	if _, err := d.Regenerate(context.Background(), entries); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	if completer.calls != 2 {
		t.Fatalf("expected Regenerate to bypass the cache, got %d calls", completer.calls)
	}

	d.ClearCache()
	if d.Cached() != nil {
		t.Error("expected empty cache after ClearCache")
	}
	if d.LastGeneratedAt() != nil {
		t.Error("expected cleared generation timestamp")
	}
	if _, err := d.Detect(context.Background(), entries); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if completer.calls != 3 {
		t.Fatalf("expected Detect to regenerate after ClearCache, got %d calls", completer.calls)
	}
}

func TestRemoteDetectFailureKeepsOldCache(t *testing.T) {
	completer := &fakeCompleter{
		reply: `[{"source": 1, "target": 2, "type": "thematic", "description": "walks", "confidence": 0.5}]`,
	}
	d := NewRemoteDetector(completer)
	entries := remoteEntries()

	if _, err := d.Detect(context.Background(), entries); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	before := d.Cached()
	if len(before) != 1 {
		t.Fatalf("expected 1 cached connection, got %d", len(before))
	}

	completer.err = fmt.Errorf("model offline")
	conns, err := d.Regenerate(context.Background(), entries)
	if err != nil {
		t.Fatalf("expected nil error on model failure, got %v", err)
	}
	if len(conns) != 0 {
		t.Fatalf("expected empty result on failure, got %d", len(conns))
	}
	after := d.Cached()
	if len(after) != 1 || after[0].ID != before[0].ID {
		t.Fatal("failure must leave the previous cache intact")
	}
}

func TestRemoteDetectFewerThanTwoEntries(t *testing.T) {
	completer := &fakeCompleter{reply: "[]"}
	d := NewRemoteDetector(completer)

	conns, err := d.Detect(context.Background(), remoteEntries()[:1])
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if conns == nil || len(conns) != 0 {
		t.Fatalf("expected empty slice, got %v", conns)
	}
	if completer.calls != 0 {
		t.Fatalf("expected no model call for a single entry, got %d", completer.calls)
	}
}
