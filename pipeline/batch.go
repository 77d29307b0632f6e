package pipeline

import (
	"context"

	"github.com/fwojciec/contrasta"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of articles analyzed at once by a Batch.
const DefaultConcurrency = 4

// Batch analyzes several URLs concurrently.
type Batch struct {
	Analyzer    contrasta.Analyzer
	Concurrency int
}

// Result holds the outcome of analyzing one URL.
type Result struct {
	URL    string
	Report *contrasta.Report
	Err    error
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

type indexedResult struct {
	position int
	result   Result
}

// AnalyzeAll analyzes every URL and returns the results in input order.
// A failed URL does not stop the others; its error is kept in its Result.
// Progress events are delivered from the calling goroutine.
func (b *Batch) AnalyzeAll(ctx context.Context, urls []string, progress ProgressFunc) []Result {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan indexedResult, total)
	var g errgroup.Group
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			g.Go(func() error {
				report, err := b.Analyzer.Analyze(ctx, url)
				resultCh <- indexedResult{
					position: i,
					result:   Result{URL: url, Report: report, Err: err},
				}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]Result, total)
	var completed int
	for r := range resultCh {
		completed++
		results[r.position] = r.result
		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			URL:       r.result.URL,
		}
		if r.result.Err != nil {
			event.Type = ProgressFailed
			event.Error = r.result.Err
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return results
}
