package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"journalmind/internal/lexicon"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(t *testing.T, key, value string) {
	t.Helper()
	t.Setenv(key, value)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"API_PORT", "DB_PATH", "CONTINUITY_STORE_PATH", "LEXICON_PATH",
		"VECTORS_PATH", "QDRANT_ENABLED", "QDRANT_VECTOR_SIZE",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		setEnv(t, key, "")
	}
	tmpDir := t.TempDir()
	setEnv(t, "DB_PATH", filepath.Join(tmpDir, "data", "journalmind.db"))
	setEnv(t, "CONTINUITY_STORE_PATH", filepath.Join(tmpDir, "data", "continuity.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "9100" {
		t.Errorf("expected default port 9100, got %q", cfg.APIPort)
	}
	if cfg.QdrantEnabled {
		t.Error("qdrant should be disabled by default")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("unexpected log defaults: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
	// Data directories are created up front.
	if _, err := os.Stat(filepath.Join(tmpDir, "data")); err != nil {
		t.Errorf("expected data directory to exist: %v", err)
	}
}

func TestLoadQdrantRequiresVectorSize(t *testing.T) {
	tmpDir := t.TempDir()
	setEnv(t, "DB_PATH", filepath.Join(tmpDir, "journalmind.db"))
	setEnv(t, "CONTINUITY_STORE_PATH", filepath.Join(tmpDir, "continuity.json"))
	setEnv(t, "QDRANT_ENABLED", "true")
	setEnv(t, "QDRANT_VECTOR_SIZE", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when QDRANT_VECTOR_SIZE is missing")
	}

	setEnv(t, "QDRANT_VECTOR_SIZE", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-integer QDRANT_VECTOR_SIZE")
	}

	setEnv(t, "QDRANT_VECTOR_SIZE", "300")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.QdrantVectorSize != 300 {
		t.Errorf("expected vector size 300, got %d", cfg.QdrantVectorSize)
	}
}

func TestLexiconWatcherWithoutPath(t *testing.T) {
	w, err := NewLexiconWatcher("", slog.Default())
	if err != nil {
		t.Fatalf("NewLexiconWatcher() error = %v", err)
	}
	defer w.Close()

	if w.Lexicon() == nil {
		t.Fatal("expected default lexicon")
	}
	if !w.Lexicon().IsStopWord("the") {
		t.Error("default lexicon should carry the built-in stop words")
	}
}

func TestLexiconWatcherReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	if err := os.WriteFile(path, []byte("stop_words: [zorp]\n"), 0o644); err != nil {
		t.Fatalf("failed to write lexicon file: %v", err)
	}

	w, err := NewLexiconWatcher(path, slog.Default())
	if err != nil {
		t.Fatalf("NewLexiconWatcher() error = %v", err)
	}
	defer w.Close()

	if !w.Lexicon().IsStopWord("zorp") {
		t.Fatal("expected custom stop word from lexicon file")
	}

	reloaded := make(chan struct{}, 1)
	w.OnReload(func(*lexicon.Lexicon) {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})

	if err := os.WriteFile(path, []byte("stop_words: [blib]\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite lexicon file: %v", err)
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for lexicon reload")
	}
	if !w.Lexicon().IsStopWord("blib") {
		t.Error("expected reloaded stop word")
	}
}
