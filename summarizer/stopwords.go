package summarizer

// stopWordLists holds the stop-words of each supported language, lowercase.
var stopWordLists = map[string][]string{
	"pt": {
		"a", "à", "ao", "aos", "aquela", "aquelas", "aquele", "aqueles", "aquilo",
		"as", "às", "até", "com", "como", "contra", "da", "das", "de", "dela",
		"delas", "dele", "deles", "depois", "do", "dos", "e", "é", "ela", "elas",
		"ele", "eles", "em", "entre", "era", "eram", "essa", "essas", "esse",
		"esses", "esta", "está", "estão", "estas", "estava", "estavam", "este",
		"estes", "eu", "foi", "foram", "há", "isso", "isto", "já", "lhe", "lhes",
		"mais", "mas", "me", "mesmo", "meu", "meus", "minha", "minhas", "muito",
		"muitos", "na", "não", "nas", "nem", "no", "nos", "nós", "nossa",
		"nossas", "nosso", "nossos", "num", "numa", "o", "os", "ou", "para",
		"pela", "pelas", "pelo", "pelos", "por", "porque", "qual", "quando",
		"que", "quem", "se", "sem", "ser", "será", "seu", "seus", "só", "sua",
		"suas", "também", "te", "tem", "têm", "ter", "teu", "tua", "um", "uma",
		"umas", "uns", "você", "vocês", "vos", "onde", "pode", "podem", "sobre",
		"ainda", "assim", "cada", "então", "essa", "fazer", "feito", "forma",
		"isso", "lá", "local", "menos", "outra", "outras", "outro", "outros",
		"pois", "pouco", "quais", "quanto", "sempre", "seja", "sendo", "sido",
		"tal", "tanto", "toda", "todas", "todo", "todos", "tudo", "vai", "vez",
	},
	"en": {
		"a", "about", "after", "all", "also", "an", "and", "any", "are", "as",
		"at", "be", "because", "been", "before", "being", "between", "both",
		"but", "by", "can", "could", "did", "do", "does", "doing", "down",
		"each", "few", "for", "from", "further", "had", "has", "have", "having",
		"he", "her", "here", "hers", "him", "his", "how", "i", "if", "in",
		"into", "is", "it", "its", "itself", "just", "me", "more", "most", "my",
		"no", "nor", "not", "now", "of", "off", "on", "once", "only", "or",
		"other", "our", "ours", "out", "over", "own", "same", "she", "should",
		"so", "some", "such", "than", "that", "the", "their", "them", "then",
		"there", "these", "they", "this", "those", "through", "to", "too",
		"under", "until", "up", "very", "was", "we", "were", "what", "when",
		"where", "which", "while", "who", "whom", "why", "will", "with",
		"would", "you", "your", "yours",
	},
}

// stopWordSet builds a lookup set for a language.
func stopWordSet(lang string) map[string]struct{} {
	words := stopWordLists[lang]
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
