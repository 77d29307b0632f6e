package mock

import (
	"context"

	"github.com/fwojciec/contrasta"
)

var _ contrasta.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of contrasta.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, url string) (*contrasta.Report, error)
}

func (a *Analyzer) Analyze(ctx context.Context, url string) (*contrasta.Report, error) {
	return a.AnalyzeFn(ctx, url)
}

var _ contrasta.ModelInvalidator = (*ModelInvalidator)(nil)

// ModelInvalidator is a mock implementation of contrasta.ModelInvalidator.
type ModelInvalidator struct {
	InvalidateFn func()
}

func (m *ModelInvalidator) Invalidate() {
	m.InvalidateFn()
}
