// Package sklearn decodes bag-of-words models exported from scikit-learn.
//
// Artifacts are JSON documents holding the fitted attributes of a
// CountVectorizer or TfidfVectorizer and of a linear model or
// MultinomialNB classifier.
package sklearn

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/contrasta"
)

// DefaultTokenPattern is scikit-learn's default token pattern.
const DefaultTokenPattern = `(?u)\b\w\w+\b`

var _ contrasta.Vectorizer = (*Vectorizer)(nil)

// VectorizerConfig holds the fitted attributes of a scikit-learn vectorizer.
type VectorizerConfig struct {
	Vocabulary   map[string]int `json:"vocabulary"`
	Lowercase    *bool          `json:"lowercase"`
	TokenPattern string         `json:"token_pattern"`
	NgramRange   []int          `json:"ngram_range"`
	Binary       bool           `json:"binary"`
	StopWords    []string       `json:"stop_words"`

	// TF-IDF attributes. IDF is empty for a plain CountVectorizer.
	IDF         []float64 `json:"idf"`
	Norm        string    `json:"norm"`
	SublinearTF bool      `json:"sublinear_tf"`
}

// Vectorizer maps text to term counts, or TF-IDF weights, over a fixed vocabulary.
type Vectorizer struct {
	vocabulary  map[string]int
	lowercase   bool
	tokenize    func(string) []string
	minN, maxN  int
	binary      bool
	stopWords   map[string]bool
	idf         []float64
	norm        string
	sublinearTF bool
}

// DecodeVectorizer decodes a JSON vectorizer artifact.
// Returns ECORRUPT if the artifact is malformed.
func DecodeVectorizer(data []byte) (*Vectorizer, error) {
	var c VectorizerConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, contrasta.Errorf(contrasta.ECORRUPT, "failed to decode vectorizer: %v", err)
	}
	return NewVectorizer(c)
}

// NewVectorizer validates c and returns a Vectorizer.
// Returns ECORRUPT if the configuration is inconsistent.
func NewVectorizer(c VectorizerConfig) (*Vectorizer, error) {
	if len(c.Vocabulary) == 0 {
		return nil, contrasta.Errorf(contrasta.ECORRUPT, "vectorizer vocabulary is empty")
	}
	seen := make([]bool, len(c.Vocabulary))
	for term, i := range c.Vocabulary {
		if i < 0 || i >= len(seen) || seen[i] {
			return nil, contrasta.Errorf(contrasta.ECORRUPT, "vectorizer term %q has invalid index %d", term, i)
		}
		seen[i] = true
	}

	v := &Vectorizer{
		vocabulary:  c.Vocabulary,
		lowercase:   c.Lowercase == nil || *c.Lowercase,
		minN:        1,
		maxN:        1,
		binary:      c.Binary,
		idf:         c.IDF,
		norm:        c.Norm,
		sublinearTF: c.SublinearTF,
	}

	if len(c.NgramRange) != 0 {
		if len(c.NgramRange) != 2 || c.NgramRange[0] < 1 || c.NgramRange[1] < c.NgramRange[0] {
			return nil, contrasta.Errorf(contrasta.ECORRUPT, "invalid ngram range %v", c.NgramRange)
		}
		v.minN, v.maxN = c.NgramRange[0], c.NgramRange[1]
	}

	if len(c.IDF) != 0 && len(c.IDF) != len(c.Vocabulary) {
		return nil, contrasta.Errorf(contrasta.ECORRUPT, "idf has %d weights for %d terms", len(c.IDF), len(c.Vocabulary))
	}

	switch c.Norm {
	case "", "l1", "l2":
	default:
		return nil, contrasta.Errorf(contrasta.ECORRUPT, "unsupported norm %q", c.Norm)
	}

	if len(c.StopWords) > 0 {
		v.stopWords = make(map[string]bool, len(c.StopWords))
		for _, w := range c.StopWords {
			v.stopWords[w] = true
		}
	}

	tokenize, err := tokenizer(c.TokenPattern)
	if err != nil {
		return nil, err
	}
	v.tokenize = tokenize

	return v, nil
}

// tokenizer returns the tokenizer for a scikit-learn token pattern.
// The default pattern is implemented directly because Go's \b only
// recognizes ASCII word characters. Other patterns have \w widened to
// Unicode letters and digits.
func tokenizer(pattern string) (func(string) []string, error) {
	if pattern == "" || pattern == DefaultTokenPattern {
		return wordTokens, nil
	}
	expr := strings.TrimPrefix(pattern, "(?u)")
	expr = strings.ReplaceAll(expr, `\w`, `[\p{L}\p{N}_]`)
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, contrasta.Errorf(contrasta.ECORRUPT, "invalid token pattern %q: %v", pattern, err)
	}
	return func(s string) []string {
		return re.FindAllString(s, -1)
	}, nil
}

// wordTokens returns runs of two or more word characters.
func wordTokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !isWordRune(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Features returns the vocabulary size.
func (v *Vectorizer) Features() int {
	return len(v.vocabulary)
}

// Transform returns the feature vector of text.
// Terms outside the vocabulary are ignored.
func (v *Vectorizer) Transform(text string) contrasta.SparseVector {
	if v.lowercase {
		text = strings.ToLower(text)
	}

	var tokens []string
	for _, tok := range v.tokenize(text) {
		if !v.stopWords[tok] {
			tokens = append(tokens, tok)
		}
	}

	x := make(contrasta.SparseVector)
	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			term := tokens[i]
			if n > 1 {
				term = strings.Join(tokens[i:i+n], " ")
			}
			if j, ok := v.vocabulary[term]; ok {
				x[j]++
			}
		}
	}

	for j, tf := range x {
		switch {
		case v.binary:
			tf = 1
		case v.sublinearTF:
			tf = 1 + math.Log(tf)
		}
		if len(v.idf) != 0 {
			tf *= v.idf[j]
		}
		x[j] = tf
	}

	normalize(x, v.norm)
	return x
}

// normalize scales x in place to unit l1 or l2 norm.
func normalize(x contrasta.SparseVector, norm string) {
	var total float64
	switch norm {
	case "l1":
		for _, w := range x {
			total += math.Abs(w)
		}
	case "l2":
		for _, w := range x {
			total += w * w
		}
		total = math.Sqrt(total)
	default:
		return
	}
	if total == 0 {
		return
	}
	for j := range x {
		x[j] /= total
	}
}
