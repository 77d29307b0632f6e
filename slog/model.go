package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/contrasta"
)

// Ensure LoggingModelLoader implements contrasta.ModelLoader.
var _ contrasta.ModelLoader = (*LoggingModelLoader)(nil)

// LoggingModelLoader wraps a ModelLoader with logging.
type LoggingModelLoader struct {
	next   contrasta.ModelLoader
	logger *slog.Logger
}

// NewLoggingModelLoader creates a new LoggingModelLoader.
func NewLoggingModelLoader(next contrasta.ModelLoader, logger *slog.Logger) *LoggingModelLoader {
	return &LoggingModelLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the model version.
func (l *LoggingModelLoader) Load(ctx context.Context) (m *contrasta.Model, err error) {
	defer func(begin time.Time) {
		var version string
		var features int
		if m != nil {
			version = m.Version
			if m.Vectorizer != nil {
				features = m.Vectorizer.Features()
			}
		}
		l.logger.Info("model load",
			"version", version,
			"features", features,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx)
}
