package lexical

import "strings"

// closedClass holds function words: pronouns, determiners, prepositions,
// conjunctions, auxiliaries and common adverbs. They always tag as
// ClassOther.
var closedClass = map[string]struct{}{
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {}, "my": {}, "your": {},
	"his": {}, "its": {}, "our": {}, "their": {}, "mine": {}, "yours": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "a": {}, "an": {}, "the": {},
	"some": {}, "any": {}, "no": {}, "every": {}, "each": {}, "all": {}, "both": {},
	"in": {}, "on": {}, "at": {}, "by": {}, "for": {}, "with": {}, "about": {},
	"against": {}, "between": {}, "into": {}, "through": {}, "during": {},
	"before": {}, "after": {}, "above": {}, "below": {}, "from": {}, "up": {},
	"down": {}, "out": {}, "off": {}, "over": {}, "under": {}, "of": {}, "to": {},
	"and": {}, "but": {}, "or": {}, "nor": {}, "so": {}, "yet": {}, "if": {},
	"because": {}, "while": {}, "although": {}, "though": {}, "since": {},
	"be": {}, "have": {}, "do": {}, "will": {}, "would": {}, "shall": {},
	"should": {}, "can": {}, "could": {}, "may": {}, "might": {}, "must": {},
	"not": {}, "very": {}, "too": {}, "also": {}, "just": {}, "only": {},
	"then": {}, "there": {}, "here": {}, "when": {}, "where": {}, "why": {},
	"how": {}, "what": {}, "who": {}, "whom": {}, "whose": {}, "which": {},
	"again": {}, "once": {}, "never": {}, "always": {}, "often": {},
	"really": {}, "quite": {}, "still": {}, "even": {}, "now": {}, "today": {},
	"yesterday": {}, "tomorrow": {}, "maybe": {}, "perhaps": {},
}

// commonVerbs are frequent verb lemmas that suffix rules alone would
// misclassify as nouns.
var commonVerbs = map[string]struct{}{
	"go": {}, "say": {}, "make": {}, "know": {}, "think": {}, "take": {},
	"see": {}, "come": {}, "want": {}, "look": {}, "use": {}, "find": {},
	"give": {}, "tell": {}, "ask": {}, "work": {}, "seem": {}, "feel": {},
	"try": {}, "leave": {}, "call": {}, "need": {}, "keep": {}, "let": {},
	"begin": {}, "help": {}, "talk": {}, "turn": {}, "start": {}, "show": {},
	"hear": {}, "play": {}, "run": {}, "move": {}, "live": {}, "believe": {},
	"bring": {}, "happen": {}, "write": {}, "sit": {}, "stand": {}, "lose": {},
	"pay": {}, "meet": {}, "learn": {}, "change": {}, "lead": {}, "understand": {},
	"watch": {}, "follow": {}, "stop": {}, "speak": {}, "read": {}, "spend": {},
	"grow": {}, "open": {}, "walk": {}, "win": {}, "teach": {}, "offer": {},
	"remember": {}, "love": {}, "miss": {}, "wait": {}, "stay": {}, "visit": {},
	"wonder": {}, "hope": {}, "plan": {}, "promise": {}, "commit": {}, "intend": {},
	"realize": {}, "notice": {}, "decide": {}, "wish": {}, "worry": {}, "cry": {},
	"laugh": {}, "sleep": {}, "wake": {}, "eat": {}, "drink": {}, "cook": {},
	"buy": {}, "sell": {}, "build": {}, "break": {}, "fix": {}, "hold": {},
}

var adjectiveSuffixes = []string{
	"ful", "ous", "ive", "able", "ible", "ish", "less", "ant", "ent",
}

var verbSuffixes = []string{"ize", "ise", "ify", "ate"}

// classify assigns a coarse word class to a lemma. Closed-class words are
// ClassOther; known verbs and verb suffixes tag ClassVerb; adjective
// suffixes tag ClassAdjective; remaining content words default to ClassNoun,
// matching how journal vocabulary skews.
func (a *Analyzer) classify(lemma string) WordClass {
	if _, ok := closedClass[lemma]; ok {
		return ClassOther
	}
	if len(lemma) < 2 || hasDigit(lemma) {
		return ClassOther
	}
	if _, ok := commonVerbs[lemma]; ok {
		return ClassVerb
	}
	for _, suffix := range verbSuffixes {
		if strings.HasSuffix(lemma, suffix) && len(lemma) > len(suffix)+2 {
			return ClassVerb
		}
	}
	for _, suffix := range adjectiveSuffixes {
		if strings.HasSuffix(lemma, suffix) && len(lemma) > len(suffix)+2 {
			return ClassAdjective
		}
	}
	return ClassNoun
}

func hasDigit(w string) bool {
	for _, r := range w {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
