package http

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/contrasta"
)

//go:embed templates/*.html
var templateFS embed.FS

// ShutdownTimeout bounds how long Serve waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// maxBodyBytes caps the size of form and JSON request bodies.
const maxBodyBytes = 1 << 20

// Cloud font sizes in pixels, for weights 0 and 1.
const (
	minFontSize = 12
	maxFontSize = 48
)

// Server serves the analysis page and the JSON API.
type Server struct {
	analyzer    contrasta.Analyzer
	invalidator contrasta.ModelInvalidator
	logger      *slog.Logger
	tmpl        *template.Template
	mux         *http.ServeMux
}

// NewServer creates a Server. invalidator may be nil, in which case the
// invalidation endpoint reports the model as not cached.
func NewServer(analyzer contrasta.Analyzer, invalidator contrasta.ModelInvalidator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		analyzer:    analyzer,
		invalidator: invalidator,
		logger:      logger,
		tmpl:        template.Must(template.ParseFS(templateFS, "templates/*.html")),
		mux:         http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /api/analyze", s.handleAPIAnalyze)
	s.mux.HandleFunc("POST /api/model/invalidate", s.handleInvalidate)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Run listens on addr and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully. Requests in flight are not cancelled with ctx and get up to
// ShutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// page is the data rendered by the index template.
type page struct {
	URL    string
	Error  string
	Report *contrasta.Report
	Cloud  []cloudWord
	Bars   []bar
}

type cloudWord struct {
	Word string
	Size int
}

type bar struct {
	Word    string
	Count   int
	Percent int
}

func newPage(url string, r *contrasta.Report) *page {
	p := &page{URL: url, Report: r}
	for _, w := range r.Cloud {
		p.Cloud = append(p.Cloud, cloudWord{
			Word: w.Word,
			Size: minFontSize + int(w.Weight*(maxFontSize-minFontSize)),
		})
	}
	if len(r.Frequencies) > 0 {
		top := r.Frequencies[0].Count
		for _, f := range r.Frequencies {
			p.Bars = append(p.Bars, bar{
				Word:    f.Word,
				Count:   f.Count,
				Percent: f.Count * 100 / top,
			})
		}
	}
	return p
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, &page{})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, &page{Error: "Formulario no válido."})
		return
	}
	url := r.PostFormValue("url")

	report, err := s.analyzer.Analyze(r.Context(), url)
	if err != nil {
		s.logError(r, err)
		s.render(w, errorStatus(err), &page{URL: url, Error: contrasta.ErrorMessage(err)})
		return
	}
	s.render(w, http.StatusOK, newPage(url, report))
}

// analyzeRequest is the body of POST /api/analyze.
type analyzeRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, r, contrasta.Errorf(contrasta.EINVALID, "Invalid JSON body."))
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	if s.invalidator == nil {
		s.writeJSON(w, http.StatusOK, map[string]bool{"invalidated": false})
		return
	}
	s.invalidator.Invalidate()
	s.logger.Info("model invalidated")
	s.writeJSON(w, http.StatusOK, map[string]bool{"invalidated": true})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) render(w http.ResponseWriter, status int, p *page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.html", p); err != nil {
		s.logger.Error("render page", "err", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// errorResponse is the JSON body of a failed API request.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.logError(r, err)
	s.writeJSON(w, errorStatus(err), &errorResponse{
		Error: contrasta.ErrorMessage(err),
		Code:  contrasta.ErrorCode(err),
	})
}

// logError logs errors that are not caused by the caller.
func (s *Server) logError(r *http.Request, err error) {
	if contrasta.ErrorCode(err) == contrasta.EINVALID {
		return
	}
	s.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"err", err,
	)
}

// errorStatus maps an application error code to an HTTP status.
func errorStatus(err error) int {
	switch contrasta.ErrorCode(err) {
	case contrasta.EINVALID:
		return http.StatusBadRequest
	case contrasta.ENOTFOUND:
		return http.StatusNotFound
	case contrasta.EUNAVAILABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
