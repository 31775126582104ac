package connections

import (
	"sort"
	"strings"
	"unicode"

	"journalmind/internal/lexicon"
)

// minKeywordLength: keywords must be longer than 3 characters.
const minKeywordLength = 4

// keywordSet extracts the stop-word-filtered keyword set from entry text:
// unique lowercase words of length > 3 that are not on the stop list.
func keywordSet(text string, lex *lexicon.Lexicon) map[string]struct{} {
	set := make(map[string]struct{})
	var current strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’' {
			current.WriteRune(r)
			continue
		}
		addKeyword(set, current.String(), lex)
		current.Reset()
	}
	addKeyword(set, current.String(), lex)
	return set
}

func addKeyword(set map[string]struct{}, word string, lex *lexicon.Lexicon) {
	word = strings.Trim(word, "'’")
	if len(word) < minKeywordLength || lex.IsStopWord(word) {
		return
	}
	set[word] = struct{}{}
}

// sharedKeywords returns the sorted intersection of two keyword sets.
func sharedKeywords(a, b map[string]struct{}) []string {
	var shared []string
	for word := range a {
		if _, ok := b[word]; ok {
			shared = append(shared, word)
		}
	}
	sort.Strings(shared)
	return shared
}

// unionSize returns the size of the union of two keyword sets.
func unionSize(a, b map[string]struct{}) int {
	size := len(a)
	for word := range b {
		if _, ok := a[word]; !ok {
			size++
		}
	}
	return size
}
