package mock

import "github.com/fwojciec/contrasta"

var _ contrasta.ExtractionRule = (*ExtractionRule)(nil)

// ExtractionRule is a mock implementation of contrasta.ExtractionRule.
type ExtractionRule struct {
	PublisherFn func() contrasta.Publisher
	ExtractFn   func(html string) (*contrasta.Extraction, error)
}

func (r *ExtractionRule) Publisher() contrasta.Publisher {
	return r.PublisherFn()
}

func (r *ExtractionRule) Extract(html string) (*contrasta.Extraction, error) {
	return r.ExtractFn(html)
}

var _ contrasta.PublisherRegistry = (*PublisherRegistry)(nil)

// PublisherRegistry is a mock implementation of contrasta.PublisherRegistry.
type PublisherRegistry struct {
	ResolveFn  func(url string) contrasta.ExtractionRule
	RegisterFn func(rule contrasta.ExtractionRule)
	ListFn     func() []contrasta.Publisher
}

func (r *PublisherRegistry) Resolve(url string) contrasta.ExtractionRule {
	return r.ResolveFn(url)
}

func (r *PublisherRegistry) Register(rule contrasta.ExtractionRule) {
	r.RegisterFn(rule)
}

func (r *PublisherRegistry) List() []contrasta.Publisher {
	return r.ListFn()
}
