package reader

import (
	"unicode"
	"unicode/utf8"

	"github.com/revelaction/goldspan/corpus"
)

// SplitSentences is the rule-based fallback segmenter: a new sentence
// starts after every sentence-final punctuation mark followed by a
// space. The returned starts are ascending, begin at 0, and the
// resulting sentences cover the whole text contiguously, which is all
// the corpus model requires.
func SplitSentences(text string) []int {
	starts := []int{0}
	for i := 0; i+1 < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if text[i+1] == ' ' && i+2 < len(text) {
				starts = append(starts, i+2)
			}
		}
	}
	return starts
}

// Tokenize is the fallback tokenizer, used when the remote parsing
// service is not wired in: whitespace-separated runs with their
// sentence-local byte offsets. Lemma is the lowercased text, POS stays
// empty.
func Tokenize(text string) []corpus.Token {
	var tokens []corpus.Token
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, newToken(len(tokens), start, i, text[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, newToken(len(tokens), start, len(text), text[start:]))
	}
	return tokens
}

func newToken(index, start, end int, text string) corpus.Token {
	return corpus.Token{
		Index: index,
		Start: start,
		End:   end,
		Text:  text,
		Lemma: lowercase(text),
	}
}

func lowercase(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		b = utf8.AppendRune(b, unicode.ToLower(r))
		i += size
	}
	return string(b)
}
