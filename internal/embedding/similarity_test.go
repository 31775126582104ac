package embedding

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func fixtureProvider() *StaticProvider {
	return NewStaticProvider(3, map[string][]float32{
		"work":   {1, 0, 0},
		"rest":   {0, 1, 0},
		"sleep":  {0, 0.9, 0.1},
		"stress": {0.9, 0.1, 0},
	})
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name   string
		a, b   []float32
		want   float64
		wantOK bool
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1, wantOK: true},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0, wantOK: true},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1, wantOK: true},
		{name: "zero magnitude", a: []float32{0, 0}, b: []float32{1, 1}, want: 0, wantOK: true},
		{name: "mismatched dims", a: []float32{1, 0}, b: []float32{1, 0, 0}, wantOK: false},
		{name: "absent vector", a: nil, b: []float32{1, 0}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Cosine(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-6 {
				t.Fatalf("Cosine = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestDocumentVectorAveragesKnownWords(t *testing.T) {
	p := fixtureProvider()

	vec, ok := DocumentVector(p, "Work and rest.")
	if !ok {
		t.Fatal("expected a document vector")
	}
	// "and" has no vector; mean of work and rest only.
	want := []float32{0.5, 0.5, 0}
	for i := range want {
		if math.Abs(float64(vec[i]-want[i])) > 1e-6 {
			t.Fatalf("component %d = %f, want %f", i, vec[i], want[i])
		}
	}
}

func TestDocumentVectorAbsentWhenNoWordKnown(t *testing.T) {
	p := fixtureProvider()

	if _, ok := DocumentVector(p, "completely unknown vocabulary"); ok {
		t.Fatal("expected no document vector, not a zero vector")
	}
	if _, ok := DocumentVector(p, "   "); ok {
		t.Fatal("expected no document vector for blank text")
	}
}

func TestLoadVectorFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vectors.txt")
	content := "3 2\nwork 1.0 0.0\nrest 0.0 1.0\nbroken 1.0\nsleep 0.5 0.5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	p, err := LoadVectorFile(path)
	if err != nil {
		t.Fatalf("LoadVectorFile failed: %v", err)
	}
	if p.Dimension() != 2 {
		t.Fatalf("expected dimension 2, got %d", p.Dimension())
	}
	if p.Len() != 3 {
		t.Fatalf("row with wrong dimension should be skipped; got %d rows", p.Len())
	}
	if _, ok := p.Embed("WORK"); !ok {
		t.Fatal("lookup should be case-insensitive")
	}
	if _, ok := p.Embed("broken"); ok {
		t.Fatal("malformed row should be absent")
	}
}

func TestLoadVectorFileMissing(t *testing.T) {
	if _, err := LoadVectorFile(filepath.Join(t.TempDir(), "none.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
