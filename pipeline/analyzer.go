package pipeline

import (
	"context"
	"time"

	"github.com/fwojciec/contrasta"
	"github.com/google/uuid"
)

// Ensure Analyzer implements contrasta.Analyzer.
var _ contrasta.Analyzer = (*Analyzer)(nil)

// Analyzer produces a Report for an article URL.
type Analyzer struct {
	Publishers contrasta.PublisherRegistry
	Fetcher    contrasta.Fetcher
	Models     contrasta.ModelLoader

	// NewID returns report identifiers. Defaults to random UUIDs.
	NewID func() string
	// Now returns the report timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Analyze validates url, extracts the article, classifies its body and
// assembles the report. Unsupported publishers skip the fetch and are
// classified on their placeholder text.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*contrasta.Report, error) {
	url, err := contrasta.ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	article, err := a.article(ctx, url)
	if err != nil {
		return nil, err
	}

	model, err := a.Models.Load(ctx)
	if err != nil {
		return nil, err
	}

	label, err := contrasta.Classify(article.BodyText(), model.Vectorizer, model.Classifier)
	if err != nil {
		return nil, err
	}

	report := contrasta.Assemble(article, label)
	report.ID = a.newID()
	report.ModelVersion = model.Version
	report.CreatedAt = a.now()
	return report, nil
}

func (a *Analyzer) article(ctx context.Context, url string) (*contrasta.Article, error) {
	rule := a.Publishers.Resolve(url)
	if rule == nil {
		return contrasta.UnsupportedArticle(url), nil
	}
	e := &Extractor{Fetcher: a.Fetcher}
	return e.Extract(ctx, url, rule)
}

func (a *Analyzer) newID() string {
	if a.NewID != nil {
		return a.NewID()
	}
	return uuid.NewString()
}

func (a *Analyzer) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
