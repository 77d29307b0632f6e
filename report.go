package contrasta

import (
	"context"
	"strings"
	"time"
)

// EmptyURLMessage is shown when an analysis is requested without a URL.
const EmptyURLMessage = "Por favor, introduce una URL válida."

// Report is everything shown to the reader for one analyzed article.
type Report struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	Author    string `json:"author"`

	Verdict Label  `json:"verdict"`
	Color   string `json:"color"`

	Cloud       []WordWeight `json:"cloud"`
	Frequencies []WordCount  `json:"frequencies"`

	ModelVersion string    `json:"modelVersion,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Assemble builds the Report for an article and its verdict.
// The word cloud drops stopwords while the frequency table keeps them.
func Assemble(article *Article, label Label) *Report {
	body := article.BodyText()
	return &Report{
		URL:         article.URL,
		Publisher:   article.Publisher,
		Title:       article.TitleText(),
		Author:      article.AuthorText(),
		Verdict:     label,
		Color:       label.Color(),
		Cloud:       CloudWeights(body),
		Frequencies: TopWords(body, TopWordsLimit),
	}
}

// ValidateURL trims raw and returns it.
// Returns EINVALID if nothing remains.
func ValidateURL(raw string) (string, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", Errorf(EINVALID, EmptyURLMessage)
	}
	return url, nil
}

// Analyzer runs the full analysis for an article URL.
type Analyzer interface {
	// Analyze fetches, extracts, classifies and assembles the report for url.
	// Returns EINVALID for an empty URL without touching the network.
	// Unsupported publishers are not an error.
	Analyze(ctx context.Context, url string) (*Report, error)
}

// ModelInvalidator drops a cached model so the next load fetches it again.
type ModelInvalidator interface {
	Invalidate()
}
