package lexical

import "strings"

// irregularLemmas covers the high-frequency irregular forms journal text
// actually uses. Everything else goes through suffix stripping.
var irregularLemmas = map[string]string{
	"was": "be", "were": "be", "been": "be", "is": "be", "are": "be", "am": "be",
	"went": "go", "gone": "go", "goes": "go",
	"said": "say", "says": "say",
	"made": "make", "making": "make",
	"felt": "feel", "feelings": "feeling",
	"thought": "think", "thinking": "think",
	"ran": "run", "running": "run",
	"got": "get", "gotten": "get", "getting": "get",
	"told": "tell", "took": "take", "taken": "take", "taking": "take",
	"gave": "give", "given": "give", "giving": "give",
	"came": "come", "coming": "come",
	"saw": "see", "seen": "see",
	"knew": "know", "known": "know",
	"found": "find", "left": "leave", "kept": "keep",
	"spoke": "speak", "spoken": "speak", "wrote": "write", "written": "write", "writing": "write",
	"children": "child", "people": "person", "lives": "life",
	"better": "good", "best": "good", "worse": "bad", "worst": "bad",
}

// gerundNouns are -ing forms lexicalized as nouns. They keep their surface
// form instead of being stripped to a verb stem.
var gerundNouns = map[string]struct{}{
	"meeting": {}, "feeling": {}, "morning": {}, "evening": {}, "wedding": {},
	"building": {}, "meaning": {}, "something": {}, "nothing": {},
	"everything": {}, "anything": {},
}

var vowels = map[byte]struct{}{'a': {}, 'e': {}, 'i': {}, 'o': {}, 'u': {}}

// Lemmatize reduces an English word to a normalized lowercase base form.
// The rules are intentionally light: irregular table first, then plural and
// inflection suffix stripping with doubling repair. Words that resist
// stripping come back lowercased unchanged.
func Lemmatize(word string) string {
	w := strings.ToLower(word)
	if lemma, ok := irregularLemmas[w]; ok {
		return lemma
	}
	if len(w) < 4 {
		return w
	}
	if _, ok := gerundNouns[w]; ok {
		return w
	}

	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "sses"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "xes") || strings.HasSuffix(w, "zes") || strings.HasSuffix(w, "ches") || strings.HasSuffix(w, "shes"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ing") && len(w) > 5:
		return repairStem(w[:len(w)-3])
	case strings.HasSuffix(w, "ied") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ed") && len(w) > 4:
		return repairStem(w[:len(w)-2])
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us") && !strings.HasSuffix(w, "is"):
		return w[:len(w)-1]
	}
	return w
}

// repairStem fixes stems left by -ing/-ed stripping: undoubles final
// consonants (running -> run) and restores a trailing 'e' after a
// consonant+vowel+consonant pattern (hoping -> hope).
func repairStem(stem string) string {
	if len(stem) < 3 {
		return stem
	}
	last := stem[len(stem)-1]
	prev := stem[len(stem)-2]
	if last == prev && last != 'l' && last != 's' {
		if _, isVowel := vowels[last]; !isVowel {
			return stem[:len(stem)-1]
		}
	}
	if _, lastVowel := vowels[last]; !lastVowel {
		_, prevVowel := vowels[prev]
		_, thirdVowel := vowels[stem[len(stem)-3]]
		// The vowel nucleus must be a single letter; a double vowel keeps
		// its stem (meet, sleep, dream).
		if prevVowel && !thirdVowel && vowelGroups(stem) == 1 && last != 'w' && last != 'x' && last != 'y' {
			// One-syllable consonant-vowel-consonant stem: restore the
			// dropped 'e' (hop -> hope, mak -> make).
			return stem + "e"
		}
	}
	return stem
}

// vowelGroups counts maximal runs of vowels, a rough syllable count.
func vowelGroups(w string) int {
	groups := 0
	inGroup := false
	for i := 0; i < len(w); i++ {
		if _, ok := vowels[w[i]]; ok {
			if !inGroup {
				groups++
				inGroup = true
			}
		} else {
			inGroup = false
		}
	}
	return groups
}
