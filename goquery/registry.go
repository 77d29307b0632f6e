package goquery

import (
	"sync"

	"github.com/fwojciec/contrasta"
)

var _ contrasta.PublisherRegistry = (*Registry)(nil)

// Registry maps article URLs to publisher extraction rules. Rules are
// matched by plain substring in registration order; the first match wins.
type Registry struct {
	mu    sync.RWMutex
	rules []contrasta.ExtractionRule
}

// NewRegistry creates a new Registry holding rules.
func NewRegistry(rules ...contrasta.ExtractionRule) *Registry {
	r := &Registry{}
	for _, rule := range rules {
		r.Register(rule)
	}
	return r
}

// NewDefaultRegistry creates a Registry with the built-in publisher rules.
func NewDefaultRegistry() (*Registry, error) {
	rules, err := DefaultRules()
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, rule := range rules {
		r.Register(rule)
	}
	return r, nil
}

// Resolve returns the rule of the first publisher whose pattern is
// contained in url. Returns nil if no publisher matches.
func (r *Registry) Resolve(url string) contrasta.ExtractionRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rule := range r.rules {
		if rule.Publisher().Matches(url) {
			return rule
		}
	}
	return nil
}

// Register adds a rule.
// If a rule is already registered for the publisher name, it is replaced
// in place and keeps its position.
func (r *Registry) Register(rule contrasta.ExtractionRule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := rule.Publisher().Name
	for i, existing := range r.rules {
		if existing.Publisher().Name == name {
			r.rules[i] = rule
			return
		}
	}
	r.rules = append(r.rules, rule)
}

// List returns the registered publishers in registration order.
func (r *Registry) List() []contrasta.Publisher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pubs := make([]contrasta.Publisher, 0, len(r.rules))
	for _, rule := range r.rules {
		pubs = append(pubs, rule.Publisher())
	}
	return pubs
}
