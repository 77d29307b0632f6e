package goquery_test

import (
	"testing"

	"github.com/fwojciec/contrasta"
	"github.com/fwojciec/contrasta/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRule(t *testing.T, name string) *goquery.Rule {
	t.Helper()
	rules, err := goquery.DefaultRules()
	require.NoError(t, err)
	for _, r := range rules {
		if r.Publisher().Name == name {
			return r
		}
	}
	t.Fatalf("no default rule named %q", name)
	return nil
}

func TestRule_Extract_ElPlural(t *testing.T) {
	t.Parallel()

	t.Run("extracts title author and body", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<div class="article-header">
	<span class="kicker">Política</span>
	<h1>  El Gobierno aprueba la ley  </h1>
	<h1>Segundo titular</h1>
</div>
<span class="author"><a href="/autor/ana">Ana García</a></span>
<div class="article-body">
	<p> Primer párrafo. </p>
	<p></p>
	<p>Segundo <strong>párrafo</strong>.</p>
</div>
<div class="article-body"><p>Otro bloque</p></div>
</body>
</html>`

		got, err := defaultRule(t, "elplural").Extract(html)

		require.NoError(t, err)
		assert.Equal(t, contrasta.Found("El Gobierno aprueba la ley"), got.Title)
		assert.Equal(t, contrasta.Found("Ana García"), got.Author)
		assert.Equal(t, contrasta.Found("Primer párrafo. Segundo párrafo."), got.Body)
	})

	t.Run("reports missing title container without failing other fields", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1>Titular suelto</h1>
<span class="author"><a href="#">Ana</a></span>
<div class="article-body"><p>Texto</p></div>
</body></html>`

		got, err := defaultRule(t, "elplural").Extract(html)

		require.NoError(t, err)
		assert.False(t, got.Title.Found)
		assert.Equal(t, contrasta.Found("Ana"), got.Author)
		assert.Equal(t, contrasta.Found("Texto"), got.Body)
	})

	t.Run("reports container without heading as missing", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="article-header"><h2>No h1</h2></div></body></html>`

		got, err := defaultRule(t, "elplural").Extract(html)

		require.NoError(t, err)
		assert.False(t, got.Title.Found)
	})

	t.Run("reports author span without link as missing", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><span class="author">Redacción</span></body></html>`

		got, err := defaultRule(t, "elplural").Extract(html)

		require.NoError(t, err)
		assert.False(t, got.Author.Found)
	})

	t.Run("reports blank title and author as missing", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="article-header"><h1>   </h1></div>
<span class="author"><a href="#"></a></span>
<div class="article-body"><p>Texto</p></div>
</body></html>`

		got, err := defaultRule(t, "elplural").Extract(html)

		require.NoError(t, err)
		assert.False(t, got.Title.Found)
		assert.False(t, got.Author.Found)

		a := contrasta.NewArticle("https://www.elplural.com/x", defaultRule(t, "elplural").Publisher(), got)
		assert.Equal(t, contrasta.TitleNotFound, a.TitleText())
		assert.Equal(t, contrasta.AuthorNotFound, a.AuthorText())
	})

	t.Run("reports body container without paragraphs as missing", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="article-body"><div>sin párrafos</div></div></body></html>`

		got, err := defaultRule(t, "elplural").Extract(html)

		require.NoError(t, err)
		assert.False(t, got.Body.Found)
	})
}

func TestRule_Extract_ElDiario(t *testing.T) {
	t.Parallel()

	t.Run("extracts title author and body", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<h1 class="title">Titular de eldiario</h1>
<a href="/politica/">Política</a>
<a href="https://www.eldiario.es/autores/juan-perez/">Juan Pérez</a>
<section>
	<p class="article-text">Uno.</p>
	<p>Publicidad</p>
</section>
<p class="article-text">Dos.</p>
</body>
</html>`

		got, err := defaultRule(t, "eldiario").Extract(html)

		require.NoError(t, err)
		assert.Equal(t, contrasta.Found("Titular de eldiario"), got.Title)
		assert.Equal(t, contrasta.Found("Juan Pérez"), got.Author)
		assert.Equal(t, contrasta.Found("Uno. Dos."), got.Body)
	})

	t.Run("reports every field missing on an empty page", func(t *testing.T) {
		t.Parallel()

		got, err := defaultRule(t, "eldiario").Extract(`<html><body></body></html>`)

		require.NoError(t, err)
		assert.Equal(t, &contrasta.Extraction{}, got)
	})

	t.Run("uses its own body placeholder", func(t *testing.T) {
		t.Parallel()

		pub := defaultRule(t, "eldiario").Publisher()

		assert.Equal(t, "Texto no encontrado", pub.Placeholders.Body)
		assert.Equal(t, contrasta.TitleNotFound, pub.Placeholders.Title)
		assert.Equal(t, contrasta.AuthorNotFound, pub.Placeholders.Author)
	})
}

func TestNewRule(t *testing.T) {
	t.Parallel()

	valid := func() goquery.RuleConfig {
		return goquery.RuleConfig{
			Name:    "test",
			Pattern: "test.com",
			Title:   goquery.LocatorConfig{Select: "h1"},
			Author:  goquery.LocatorConfig{Select: ".author"},
			Body:    goquery.LocatorConfig{Container: "article", Select: "p"},
		}
	}

	t.Run("compiles a valid config", func(t *testing.T) {
		t.Parallel()

		r, err := goquery.NewRule(valid())

		require.NoError(t, err)
		assert.Equal(t, "test", r.Publisher().Name)
		assert.Equal(t, contrasta.BodyNotFound, r.Publisher().Placeholders.Body)
	})

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()

		c := valid()
		c.Name = ""
		_, err := goquery.NewRule(c)

		assert.Equal(t, contrasta.EINVALID, contrasta.ErrorCode(err))
	})

	t.Run("requires a pattern", func(t *testing.T) {
		t.Parallel()

		c := valid()
		c.Pattern = ""
		_, err := goquery.NewRule(c)

		assert.Equal(t, contrasta.EINVALID, contrasta.ErrorCode(err))
	})

	t.Run("requires every field selector", func(t *testing.T) {
		t.Parallel()

		c := valid()
		c.Author = goquery.LocatorConfig{}
		_, err := goquery.NewRule(c)

		require.Error(t, err)
		assert.Equal(t, contrasta.EINVALID, contrasta.ErrorCode(err))
		assert.Contains(t, contrasta.ErrorMessage(err), "author selector required")
	})

	t.Run("rejects invalid selectors", func(t *testing.T) {
		t.Parallel()

		c := valid()
		c.Body = goquery.LocatorConfig{Container: "div[", Select: "p"}
		_, err := goquery.NewRule(c)

		require.Error(t, err)
		assert.Equal(t, contrasta.EINVALID, contrasta.ErrorCode(err))
		assert.Contains(t, contrasta.ErrorMessage(err), "test")
	})
}
