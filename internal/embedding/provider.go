// Package embedding provides word vectors and document similarity. A word
// either has a vector or it does not; the "no embedding" case is first-class
// and is never collapsed to a zero vector, because a zero vector would read
// as "maximally dissimilar" instead of "incomparable".
package embedding

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Provider maps a word to a fixed-dimension vector. Implementations must be
// safe for concurrent reads.
type Provider interface {
	// Embed returns the vector for a word. ok is false when the word has no
	// embedding (unknown or foreign words).
	Embed(word string) (vec []float32, ok bool)

	// Dimension returns the vector dimension.
	Dimension() int
}

// StaticProvider serves vectors from an in-memory table. It backs both the
// file-loaded provider and test fixtures.
type StaticProvider struct {
	dim     int
	vectors map[string][]float32
}

// NewStaticProvider creates a provider over a fixed table. Lookup is by
// lowercase word.
func NewStaticProvider(dim int, vectors map[string][]float32) *StaticProvider {
	table := make(map[string][]float32, len(vectors))
	for word, vec := range vectors {
		if len(vec) == dim {
			table[strings.ToLower(word)] = vec
		}
	}
	return &StaticProvider{dim: dim, vectors: table}
}

// Embed returns the vector for word, or ok=false when absent.
func (p *StaticProvider) Embed(word string) ([]float32, bool) {
	vec, ok := p.vectors[strings.ToLower(word)]
	return vec, ok
}

// Dimension returns the vector dimension.
func (p *StaticProvider) Dimension() int {
	return p.dim
}

// Len returns the number of words in the table.
func (p *StaticProvider) Len() int {
	return len(p.vectors)
}

// LoadVectorFile reads a word2vec-style text file: an optional "count dim"
// header line, then one "word v1 v2 ... vn" row per line. Rows whose
// dimension disagrees with the first row are skipped.
func LoadVectorFile(path string) (*StaticProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	vectors := make(map[string][]float32)
	dim := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	first := true
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if first {
			first = false
			// word2vec text format opens with "count dim".
			if len(fields) == 2 {
				if _, err1 := strconv.Atoi(fields[0]); err1 == nil {
					if d, err2 := strconv.Atoi(fields[1]); err2 == nil {
						dim = d
						continue
					}
				}
			}
		}
		if len(fields) < 2 {
			continue
		}
		word := strings.ToLower(fields[0])
		vec := make([]float32, 0, len(fields)-1)
		valid := true
		for _, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				valid = false
				break
			}
			vec = append(vec, float32(v))
		}
		if !valid {
			continue
		}
		if dim == 0 {
			dim = len(vec)
		}
		if len(vec) != dim {
			continue
		}
		vectors[word] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vector file: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("vector file %s contains no usable rows", path)
	}

	return &StaticProvider{dim: dim, vectors: vectors}, nil
}
