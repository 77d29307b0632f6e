package contrasta

import (
	"sort"
	"strings"
	"unicode"
)

// Limits for the word statistics shown alongside a verdict.
const (
	TopWordsLimit  = 20
	CloudWordLimit = 200
)

// WordCount is a word and the number of times it occurs.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordWeight is a word cloud entry. Weight is relative to the most
// frequent word, which has weight 1.
type WordWeight struct {
	Word   string  `json:"word"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
}

// TopWords returns the n most frequent lowercase whitespace-separated
// tokens of text, by descending count. Tokens with equal counts keep the
// order in which they first appear. Stopwords are kept.
func TopWords(text string, n int) []WordCount {
	return topCounts(strings.Fields(strings.ToLower(text)), n)
}

// CloudWeights returns word cloud weights for text. Tokens are lowercased
// and split on whitespace, surrounding punctuation is trimmed, and
// stopwords and bare numbers are dropped. At most CloudWordLimit words are
// returned, most frequent first.
func CloudWeights(text string) []WordWeight {
	var words []string
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		w := strings.TrimFunc(tok, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w == "" || IsStopword(w) || isNumber(w) {
			continue
		}
		words = append(words, w)
	}

	counts := topCounts(words, CloudWordLimit)
	if len(counts) == 0 {
		return nil
	}

	top := float64(counts[0].Count)
	weights := make([]WordWeight, len(counts))
	for i, c := range counts {
		weights[i] = WordWeight{
			Word:   c.Word,
			Count:  c.Count,
			Weight: float64(c.Count) / top,
		}
	}
	return weights
}

// topCounts counts words and returns the n most frequent.
// Ties are broken by first occurrence.
func topCounts(words []string, n int) []WordCount {
	if len(words) == 0 || n <= 0 {
		return nil
	}

	index := make(map[string]int)
	var counts []WordCount
	for _, w := range words {
		if i, ok := index[w]; ok {
			counts[i].Count++
			continue
		}
		index[w] = len(counts)
		counts = append(counts, WordCount{Word: w, Count: 1})
	}

	// counts is in first-occurrence order, a stable sort keeps it for ties
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
