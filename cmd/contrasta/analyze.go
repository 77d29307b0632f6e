package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/contrasta"
	"github.com/fwojciec/contrasta/lipgloss"
	"github.com/fwojciec/contrasta/pipeline"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	batch := &pipeline.Batch{Analyzer: deps.Analyzer, Concurrency: c.Concurrency}

	var progress pipeline.ProgressFunc
	if len(c.URLs) > 1 {
		progress = func(e pipeline.ProgressEvent) {
			switch e.Type {
			case pipeline.ProgressCompleted:
				fmt.Fprintf(deps.Stderr, "[%d/%d] %s\n", e.Completed, e.Total, e.URL)
			case pipeline.ProgressFailed:
				fmt.Fprintf(deps.Stderr, "[%d/%d] %s: %s\n", e.Completed, e.Total, e.URL, contrasta.ErrorMessage(e.Error))
			}
		}
	}
	results := batch.AnalyzeAll(deps.Ctx, c.URLs, progress)

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			if len(results) == 1 && !c.JSON {
				fmt.Fprintf(deps.Stderr, "error: %s\n", contrasta.ErrorMessage(r.Err))
				return r.Err
			}
		}
	}

	if c.JSON {
		if err := c.writeJSON(deps, results); err != nil {
			return err
		}
	} else {
		renderer := lipgloss.NewRenderer()
		first := true
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			if !first {
				fmt.Fprintln(deps.Stdout)
			}
			first = false
			if err := renderer.Render(deps.Stdout, r.Report); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(results))
	}
	return nil
}

// jsonResult is one entry of the JSON output.
type jsonResult struct {
	URL    string            `json:"url"`
	Report *contrasta.Report `json:"report,omitempty"`
	Error  string            `json:"error,omitempty"`
}

func (c *AnalyzeCmd) writeJSON(deps *Dependencies, results []pipeline.Result) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	out := make([]jsonResult, len(results))
	for i, r := range results {
		out[i] = jsonResult{URL: r.URL, Report: r.Report}
		if r.Err != nil {
			out[i].Error = contrasta.ErrorMessage(r.Err)
		}
	}
	return enc.Encode(out)
}
