// Package pipeline runs the article analysis.
// It coordinates publisher resolution, fetching, extraction,
// classification and report assembly.
package pipeline

import (
	"context"

	"github.com/fwojciec/contrasta"
)

// Extractor fetches an article page and applies a publisher rule to it.
type Extractor struct {
	Fetcher contrasta.Fetcher
}

// Extract fetches url once and extracts its fields with rule.
// Fetch errors are returned as is. A missing field is not an error.
func (e *Extractor) Extract(ctx context.Context, url string, rule contrasta.ExtractionRule) (*contrasta.Article, error) {
	html, err := e.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	extraction, err := rule.Extract(html)
	if err != nil {
		return nil, err
	}

	return contrasta.NewArticle(url, rule.Publisher(), extraction), nil
}
