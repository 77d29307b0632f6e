package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/contrasta"
	contrastahttp "github.com/fwojciec/contrasta/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Analyzer contrasta.Analyzer
	Models   contrasta.ModelInvalidator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals

	Serve   ServeCmd   `cmd:"" help:"Serve the web interface"`
	Analyze AnalyzeCmd `cmd:"" help:"Analyze articles and print the report"`
}

// Globals are the flags shared by every command.
type Globals struct {
	Verbose       bool          `short:"v" env:"CONTRASTA_VERBOSE" help:"Enable debug logging"`
	ModelURL      string        `name:"model-url" env:"CONTRASTA_MODEL_URL" help:"Classifier artifact URL"`
	VectorizerURL string        `name:"vectorizer-url" env:"CONTRASTA_VECTORIZER_URL" help:"Vectorizer artifact URL"`
	Publishers    string        `env:"CONTRASTA_PUBLISHERS" help:"YAML file with publisher rules (defaults to the built-in rules)"`
	Timeout       time.Duration `default:"30s" env:"CONTRASTA_TIMEOUT" help:"Timeout for each outbound request"`
	ModelTTL      time.Duration `name:"model-ttl" default:"1h" env:"CONTRASTA_MODEL_TTL" help:"How long a downloaded model is reused (0 keeps it until invalidated)"`
	Rate          float64       `default:"0" env:"CONTRASTA_RATE" help:"Article requests per second per host (0 disables the limit)"`
	UserAgent     string        `name:"user-agent" default:"${user_agent}" env:"CONTRASTA_USER_AGENT" help:"User-Agent sent with every request"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"CONTRASTA_ADDR" help:"Listen address"`
}

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := contrastahttp.NewServer(deps.Analyzer, deps.Models, deps.Logger)
	return srv.Run(deps.Ctx, c.Addr)
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URLs        []string `arg:"" name:"url" help:"Article URLs"`
	JSON        bool     `short:"j" help:"Print reports as JSON"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent analyses when several URLs are given"`
}
