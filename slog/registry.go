package slog

import (
	"log/slog"

	"github.com/fwojciec/contrasta"
)

// Ensure LoggingRegistry implements contrasta.PublisherRegistry.
var _ contrasta.PublisherRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a PublisherRegistry with debug logging for publisher resolution.
type LoggingRegistry struct {
	next   contrasta.PublisherRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next contrasta.PublisherRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Resolve delegates to the wrapped registry and logs the matched publisher.
func (r *LoggingRegistry) Resolve(url string) contrasta.ExtractionRule {
	rule := r.next.Resolve(url)
	name := contrasta.UnsupportedName
	if rule != nil {
		name = rule.Publisher().Name
	}
	r.logger.Debug("publisher resolution",
		"url", url,
		"publisher", name,
	)
	return rule
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(rule contrasta.ExtractionRule) {
	r.next.Register(rule)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []contrasta.Publisher {
	return r.next.List()
}
