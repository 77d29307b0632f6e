package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/contrasta"
	"github.com/fwojciec/contrasta/goquery"
	"github.com/fwojciec/contrasta/mock"
	"github.com/fwojciec/contrasta/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keywordModel classifies text as fabricated when it contains "bulo".
func keywordModel() *mock.ModelLoader {
	return &mock.ModelLoader{
		LoadFn: func(ctx context.Context) (*contrasta.Model, error) {
			return &contrasta.Model{
				Vectorizer: &mock.Vectorizer{
					TransformFn: func(text string) contrasta.SparseVector {
						if strings.Contains(strings.ToLower(text), "bulo") {
							return contrasta.SparseVector{0: 1}
						}
						return contrasta.SparseVector{}
					},
				},
				Classifier: &mock.Classifier{
					PredictFn: func(x contrasta.SparseVector) (int, error) {
						if x[0] > 0 {
							return 1, nil
						}
						return 0, nil
					},
				},
				Version: "test-model",
			}, nil
		},
	}
}

// recordingModel returns a model that records the text it classifies.
func recordingModel(got *string, class int) *mock.ModelLoader {
	return &mock.ModelLoader{
		LoadFn: func(ctx context.Context) (*contrasta.Model, error) {
			return &contrasta.Model{
				Vectorizer: &mock.Vectorizer{
					TransformFn: func(text string) contrasta.SparseVector {
						*got = text
						return contrasta.SparseVector{}
					},
				},
				Classifier: &mock.Classifier{
					PredictFn: func(x contrasta.SparseVector) (int, error) { return class, nil },
				},
			}, nil
		},
	}
}

func newAnalyzer(t *testing.T, fetcher contrasta.Fetcher, models contrasta.ModelLoader) *pipeline.Analyzer {
	t.Helper()
	registry, err := goquery.NewDefaultRegistry()
	require.NoError(t, err)
	return &pipeline.Analyzer{
		Publishers: registry,
		Fetcher:    fetcher,
		Models:     models,
		NewID:      func() string { return "report-1" },
		Now:        func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) },
	}
}

func staticFetcher(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return html, nil
		},
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("analyzes a complete elplural article", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div class="article-header"><h1> El Gobierno aprueba la ley </h1></div>
			<span class="author"><a href="/autor/ana">Ana Pérez</a></span>
			<div class="article-body">
				<p>El Congreso aprueba la ley.</p>
				<p>La ley entra en vigor mañana.</p>
			</div>
		</body></html>`
		a := newAnalyzer(t, staticFetcher(html), keywordModel())

		r, err := a.Analyze(context.Background(), "https://www.elplural.com/politica/ley")

		require.NoError(t, err)
		assert.Equal(t, "report-1", r.ID)
		assert.Equal(t, "elplural", r.Publisher)
		assert.Equal(t, "El Gobierno aprueba la ley", r.Title)
		assert.Equal(t, "Ana Pérez", r.Author)
		assert.Equal(t, contrasta.LabelGenuine, r.Verdict)
		assert.Equal(t, "green", r.Color)
		assert.Equal(t, "test-model", r.ModelVersion)
		assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), r.CreatedAt)
		require.NotEmpty(t, r.Frequencies)
		assert.Equal(t, contrasta.WordCount{Word: "la", Count: 2}, r.Frequencies[0])
		assert.NotEmpty(t, r.Cloud)
	})

	t.Run("completes when the title container is missing", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<span class="author"><a href="/autor/x">Redacción</a></span>
			<div class="article-body"><p>Es un bulo que circula por redes.</p></div>
		</body></html>`
		a := newAnalyzer(t, staticFetcher(html), keywordModel())

		r, err := a.Analyze(context.Background(), "https://www.elplural.com/sociedad/x")

		require.NoError(t, err)
		assert.Equal(t, contrasta.TitleNotFound, r.Title)
		assert.Equal(t, "Redacción", r.Author)
		assert.Equal(t, contrasta.LabelFabricated, r.Verdict)
		assert.Equal(t, "red", r.Color)
	})

	t.Run("classifies unsupported publishers without fetching", func(t *testing.T) {
		t.Parallel()

		var fetched atomic.Bool
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetched.Store(true)
				return "", nil
			},
		}
		var classified string
		a := newAnalyzer(t, fetcher, recordingModel(&classified, 0))

		r, err := a.Analyze(context.Background(), "https://www.example.com/foo")

		require.NoError(t, err)
		assert.False(t, fetched.Load())
		assert.Equal(t, contrasta.NotSupported, classified)
		assert.Equal(t, contrasta.NotSupported, r.Title)
		assert.Equal(t, contrasta.NotSupported, r.Author)
		assert.Equal(t, contrasta.UnsupportedName, r.Publisher)
		assert.Equal(t, contrasta.LabelGenuine, r.Verdict)
	})

	t.Run("classifies the eldiario placeholder when the body is missing", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1 class="title">Titular</h1></body></html>`
		var classified string
		a := newAnalyzer(t, staticFetcher(html), recordingModel(&classified, 1))

		r, err := a.Analyze(context.Background(), "https://www.eldiario.es/politica/x")

		require.NoError(t, err)
		assert.Equal(t, "Texto no encontrado", classified)
		assert.Equal(t, "Titular", r.Title)
		assert.Equal(t, contrasta.AuthorNotFound, r.Author)
		assert.Equal(t, contrasta.LabelFabricated, r.Verdict)
	})

	t.Run("rejects empty input without network access", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer(t, &mock.Fetcher{}, &mock.ModelLoader{})

		_, err := a.Analyze(context.Background(), "   ")

		require.Error(t, err)
		assert.Equal(t, contrasta.EINVALID, contrasta.ErrorCode(err))
		assert.Equal(t, contrasta.EmptyURLMessage, contrasta.ErrorMessage(err))
	})

	t.Run("trims surrounding whitespace from the URL", func(t *testing.T) {
		t.Parallel()

		var fetchedURL string
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetchedURL = url
				return "<html></html>", nil
			},
		}
		a := newAnalyzer(t, fetcher, keywordModel())

		r, err := a.Analyze(context.Background(), "  https://www.eldiario.es/a  ")

		require.NoError(t, err)
		assert.Equal(t, "https://www.eldiario.es/a", fetchedURL)
		assert.Equal(t, "https://www.eldiario.es/a", r.URL)
	})

	t.Run("propagates fetch errors without loading the model", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", contrasta.Errorf(contrasta.EUNAVAILABLE, "HTTP 503 for %s", url)
			},
		}
		var loaded atomic.Bool
		models := &mock.ModelLoader{
			LoadFn: func(ctx context.Context) (*contrasta.Model, error) {
				loaded.Store(true)
				return nil, errors.New("unexpected")
			},
		}
		a := newAnalyzer(t, fetcher, models)

		_, err := a.Analyze(context.Background(), "https://www.elplural.com/a")

		assert.Equal(t, contrasta.EUNAVAILABLE, contrasta.ErrorCode(err))
		assert.False(t, loaded.Load())
	})

	t.Run("propagates model errors", func(t *testing.T) {
		t.Parallel()

		models := &mock.ModelLoader{
			LoadFn: func(ctx context.Context) (*contrasta.Model, error) {
				return nil, contrasta.Errorf(contrasta.ECORRUPT, "failed to decode classifier")
			},
		}
		a := newAnalyzer(t, staticFetcher("<html></html>"), models)

		_, err := a.Analyze(context.Background(), "https://www.example.com/foo")

		assert.Equal(t, contrasta.ECORRUPT, contrasta.ErrorCode(err))
	})

	t.Run("returns the same verdict on repeated analyses", func(t *testing.T) {
		t.Parallel()

		html := `<div class="article-body"><p>Un bulo más.</p></div>`
		a := newAnalyzer(t, staticFetcher(html), keywordModel())

		first, err := a.Analyze(context.Background(), "https://www.elplural.com/a")
		require.NoError(t, err)
		second, err := a.Analyze(context.Background(), "https://www.elplural.com/a")
		require.NoError(t, err)

		assert.Equal(t, first.Verdict, second.Verdict)
		assert.Equal(t, first.Frequencies, second.Frequencies)
	})

	t.Run("generates unique IDs by default", func(t *testing.T) {
		t.Parallel()

		registry, err := goquery.NewDefaultRegistry()
		require.NoError(t, err)
		a := &pipeline.Analyzer{Publishers: registry, Models: keywordModel()}

		first, err := a.Analyze(context.Background(), "https://www.example.com/a")
		require.NoError(t, err)
		second, err := a.Analyze(context.Background(), "https://www.example.com/a")
		require.NoError(t, err)

		assert.Len(t, first.ID, 36)
		assert.NotEqual(t, first.ID, second.ID)
		assert.False(t, first.CreatedAt.IsZero())
	})
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("fetches once and applies the rule", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls.Add(1)
				return "<html>page</html>", nil
			},
		}
		rule := &mock.ExtractionRule{
			PublisherFn: func() contrasta.Publisher {
				return contrasta.Publisher{Name: "eldiario", Placeholders: contrasta.Placeholders{Body: "Texto no encontrado"}}
			},
			ExtractFn: func(html string) (*contrasta.Extraction, error) {
				assert.Equal(t, "<html>page</html>", html)
				return &contrasta.Extraction{Title: contrasta.Found("Titular")}, nil
			},
		}

		article, err := (&pipeline.Extractor{Fetcher: fetcher}).Extract(context.Background(), "https://www.eldiario.es/a", rule)

		require.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, "eldiario", article.Publisher)
		assert.Equal(t, "Titular", article.TitleText())
		assert.Equal(t, contrasta.AuthorNotFound, article.AuthorText())
		assert.Equal(t, "Texto no encontrado", article.BodyText())
	})

	t.Run("returns rule errors", func(t *testing.T) {
		t.Parallel()

		rule := &mock.ExtractionRule{
			ExtractFn: func(html string) (*contrasta.Extraction, error) {
				return nil, contrasta.Errorf(contrasta.EINVALID, "failed to parse HTML")
			},
		}

		_, err := (&pipeline.Extractor{Fetcher: staticFetcher("")}).Extract(context.Background(), "https://www.eldiario.es/a", rule)

		assert.Equal(t, contrasta.EINVALID, contrasta.ErrorCode(err))
	})
}
