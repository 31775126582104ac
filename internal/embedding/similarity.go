package embedding

import (
	"math"
	"strings"
	"unicode"
)

// DocumentVector averages the word vectors of every token in the lowercased
// document. ok is false when no token has a vector; such a document is
// incomparable and must be excluded from similarity scoring, not given a
// zero vector.
func DocumentVector(p Provider, text string) (vec []float32, ok bool) {
	words := splitWords(strings.ToLower(text))
	if len(words) == 0 {
		return nil, false
	}

	sum := make([]float64, p.Dimension())
	found := 0
	for _, word := range words {
		wv, has := p.Embed(word)
		if !has || len(wv) != len(sum) {
			continue
		}
		for i, v := range wv {
			sum[i] += float64(v)
		}
		found++
	}
	if found == 0 {
		return nil, false
	}

	vec = make([]float32, len(sum))
	for i, v := range sum {
		vec[i] = float32(v / float64(found))
	}
	return vec, true
}

// Cosine computes cosine similarity between two vectors. ok is false when
// either vector is absent or the dimensions disagree (the pair should be
// skipped). A zero-magnitude vector yields similarity 0.
func Cosine(a, b []float32) (sim float64, ok bool) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, false
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0, true
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), true
}

// splitWords breaks text into word tokens, keeping internal apostrophes.
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '’'
	})
}
