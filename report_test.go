package contrasta_test

import (
	"testing"

	"github.com/fwojciec/contrasta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	t.Parallel()

	t.Run("builds display fields from the article", func(t *testing.T) {
		t.Parallel()

		pub := contrasta.Publisher{Name: "elplural", Pattern: "elplural.com"}
		article := contrasta.NewArticle("https://www.elplural.com/a", pub, &contrasta.Extraction{
			Title:  contrasta.Found("Titular"),
			Author: contrasta.Found("Ana"),
			Body:   contrasta.Found("the gobierno the gobierno the"),
		})

		r := contrasta.Assemble(article, contrasta.LabelFabricated)

		assert.Equal(t, "https://www.elplural.com/a", r.URL)
		assert.Equal(t, "elplural", r.Publisher)
		assert.Equal(t, "Titular", r.Title)
		assert.Equal(t, "Ana", r.Author)
		assert.Equal(t, contrasta.LabelFabricated, r.Verdict)
		assert.Equal(t, "red", r.Color)
	})

	t.Run("removes stopwords from the cloud only", func(t *testing.T) {
		t.Parallel()

		pub := contrasta.Publisher{Name: "elplural", Pattern: "elplural.com"}
		article := contrasta.NewArticle("https://www.elplural.com/a", pub, &contrasta.Extraction{
			Body: contrasta.Found("the gobierno the gobierno the"),
		})

		r := contrasta.Assemble(article, contrasta.LabelGenuine)

		require.Len(t, r.Frequencies, 2)
		assert.Equal(t, contrasta.WordCount{Word: "the", Count: 3}, r.Frequencies[0])
		require.Len(t, r.Cloud, 1)
		assert.Equal(t, "gobierno", r.Cloud[0].Word)
		assert.Equal(t, "green", r.Color)
	})

	t.Run("uses placeholder text for unsupported publishers", func(t *testing.T) {
		t.Parallel()

		r := contrasta.Assemble(contrasta.UnsupportedArticle("https://www.example.com/foo"), contrasta.LabelGenuine)

		assert.Equal(t, "Medio no soportado", r.Title)
		assert.Equal(t, "Medio no soportado", r.Author)
		assert.Equal(t, []contrasta.WordCount{
			{Word: "medio", Count: 1},
			{Word: "no", Count: 1},
			{Word: "soportado", Count: 1},
		}, r.Frequencies)
	})
}

func TestValidateURL(t *testing.T) {
	t.Parallel()

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		got, err := contrasta.ValidateURL("  https://www.eldiario.es/a \n")

		require.NoError(t, err)
		assert.Equal(t, "https://www.eldiario.es/a", got)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := contrasta.ValidateURL("   ")

		require.Error(t, err)
		assert.Equal(t, contrasta.EINVALID, contrasta.ErrorCode(err))
		assert.Equal(t, contrasta.EmptyURLMessage, contrasta.ErrorMessage(err))
	})
}
