package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/contrasta"
)

// Ensure LoggingAnalyzer implements contrasta.Analyzer.
var _ contrasta.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with logging.
type LoggingAnalyzer struct {
	next   contrasta.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next contrasta.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the verdict.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, url string) (r *contrasta.Report, err error) {
	defer func(begin time.Time) {
		if err != nil {
			a.logger.Warn("analysis failed",
				"url", url,
				"code", contrasta.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		a.logger.Info("analysis",
			"id", r.ID,
			"url", url,
			"publisher", r.Publisher,
			"verdict", r.Verdict.String(),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return a.next.Analyze(ctx, url)
}
