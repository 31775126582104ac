package lexicon

// The tables below are tuned for first-person journal text. They are data,
// not behavior: changing them changes which entities and themes surface, so
// overrides belong in a lexicon file, not in code.

var defaultStopWords = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
	"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
	"this", "but", "his", "by", "from", "they", "we", "say", "her", "she",
	"or", "an", "will", "my", "one", "all", "would", "there", "their", "what",
	"so", "up", "out", "if", "about", "who", "get", "which", "go", "me",
	"when", "make", "can", "like", "time", "no", "just", "him", "know", "take",
	"people", "into", "year", "your", "good", "some", "could", "them", "see", "other",
	"than", "then", "now", "look", "only", "come", "its", "over", "think", "also",
	"back", "after", "use", "two", "how", "our", "work", "first", "well", "way",
	"even", "new", "want", "because", "any", "these", "give", "day", "most", "us",
	"is", "was", "are", "been", "has", "had", "were", "said", "did", "having",
	"may", "am", "should", "too", "very", "really", "still", "much", "where", "here",
	"today", "yesterday", "tomorrow", "going", "went", "got", "getting", "thing", "things", "something",
	"anything", "everything", "nothing", "someone", "everyone", "myself", "yourself", "himself", "herself", "being",
	"doing", "made", "felt", "feel", "feeling", "little", "lot", "kind", "maybe", "around",
	"while", "before", "during", "again", "always", "never", "every", "each", "both", "more",
}

var defaultMeaningfulConcepts = []string{
	"growth", "change", "learning", "progress", "healing", "transformation",
	"family", "friendship", "relationship", "love", "connection", "trust",
	"fear", "anger", "joy", "sadness", "anxiety", "gratitude", "grief", "loneliness",
	"honesty", "integrity", "purpose", "meaning", "values", "faith", "courage",
	"challenge", "struggle", "conflict", "failure", "success", "resilience",
	"identity", "awareness", "reflection", "mindfulness", "acceptance",
	"balance", "boundaries", "forgiveness", "patience", "compassion",
	"career", "health", "creativity", "belonging", "freedom", "responsibility",
}

var defaultValenceKeywords = []ValenceEntry{
	{Valence: "grateful", Keywords: []string{"grateful", "thankful", "appreciate", "blessed", "lucky to have"}},
	{Valence: "frustrated", Keywords: []string{"frustrated", "frustrating", "annoyed", "irritated", "fed up", "furious"}},
	{Valence: "tender", Keywords: []string{"tender", "sweet", "gentle", "warmth", "dear", "cherish"}},
	{Valence: "worried", Keywords: []string{"worried", "worry", "anxious", "concerned", "nervous", "scared", "afraid"}},
	{Valence: "grieving", Keywords: []string{"grieving", "grief", "mourning", "passed away", "miss her", "miss him", "miss them"}},
	{Valence: "proud", Keywords: []string{"proud", "accomplished", "achievement"}},
	{Valence: "uncertain", Keywords: []string{"uncertain", "unsure", "confused", "don't know how", "not sure"}},
	{Valence: "hopeful", Keywords: []string{"hopeful", "hoping", "optimistic", "looking forward", "excited about"}},
	{Valence: "remorseful", Keywords: []string{"regret", "sorry", "guilty", "ashamed", "remorse", "apologize"}},
	{Valence: "peaceful", Keywords: []string{"peaceful", "calm", "content", "serene", "at ease", "settled"}},
}

var defaultRelationshipKeywords = []RelationshipEntry{
	{Category: "family", Keywords: []string{
		"mom", "mother", "dad", "father", "sister", "brother", "grandma",
		"grandmother", "grandpa", "grandfather", "aunt", "uncle", "cousin",
		"son", "daughter", "wife", "husband", "partner", "family",
	}},
	{Category: "friend", Keywords: []string{"friend", "best friend", "buddy", "roommate"}},
	{Category: "colleague", Keywords: []string{"colleague", "coworker", "co-worker", "teammate", "boss", "manager"}},
	{Category: "professional", Keywords: []string{"doctor", "therapist", "dentist", "lawyer", "accountant", "coach", "trainer"}},
	{Category: "community", Keywords: []string{"neighbor", "neighbour", "teacher", "mentor", "pastor", "landlord"}},
}

var defaultIntentionPhrases = []string{
	"I want to", "I need to", "I'm going to", "I will", "I commit to",
	"I promise", "I intend to", "my goal is", "I'm committed to",
	"I plan to", "I should", "I must",
}

var defaultInsightMarkers = []string{
	"I realize", "I realized", "I noticed", "I feel", "I think",
}

var defaultCausalConnectives = []string{
	"because", "which means", "I understand", "now I see",
}

var defaultIndirectQuestionPrefixes = []string{
	"I wonder", "I'm wondering", "I ask myself",
}

var defaultQuestionPhrases = []string{
	"the question is",
}

var defaultGivenNames = []string{
	"alex", "alice", "amy", "anna", "ben", "carlos", "carol", "chris",
	"claire", "dan", "daniel", "david", "elena", "emily", "emma", "eric",
	"grace", "hannah", "jack", "james", "jamie", "jen", "jennifer", "jessica",
	"john", "jordan", "jose", "julia", "kate", "kevin", "laura", "lily",
	"lisa", "luis", "maria", "mark", "marcus", "megan", "michael", "mike",
	"nina", "noah", "olivia", "paul", "peter", "priya", "rachel", "rob",
	"ryan", "sam", "sara", "sarah", "sofia", "steve", "tom", "wei",
}

var defaultPlaceSuffixes = []string{
	"park", "street", "avenue", "road", "lake", "river", "beach", "mountain",
	"valley", "square", "market", "library", "hospital", "church", "temple",
	"city", "town", "village", "island", "bay", "harbor", "garden", "trail",
}

var defaultOrgSuffixes = []string{
	"inc", "corp", "llc", "ltd", "company", "university", "college",
	"institute", "foundation", "agency", "labs", "studio",
}
