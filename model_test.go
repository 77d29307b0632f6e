package contrasta_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/contrasta"
	"github.com/fwojciec/contrasta/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelFromClass(t *testing.T) {
	t.Parallel()

	assert.Equal(t, contrasta.LabelFabricated, contrasta.LabelFromClass(1))
	assert.Equal(t, contrasta.LabelGenuine, contrasta.LabelFromClass(0))
	assert.Equal(t, contrasta.LabelGenuine, contrasta.LabelFromClass(-1))
	assert.Equal(t, contrasta.LabelGenuine, contrasta.LabelFromClass(2))
}

func TestLabel_Display(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Bulo", contrasta.LabelFabricated.String())
	assert.Equal(t, "red", contrasta.LabelFabricated.Color())
	assert.Equal(t, "Verdadera", contrasta.LabelGenuine.String())
	assert.Equal(t, "green", contrasta.LabelGenuine.Color())
}

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("passes the transformed vector to the classifier", func(t *testing.T) {
		t.Parallel()

		vectorizer := &mock.Vectorizer{
			TransformFn: func(text string) contrasta.SparseVector {
				assert.Equal(t, "texto", text)
				return contrasta.SparseVector{3: 1}
			},
		}
		classifier := &mock.Classifier{
			PredictFn: func(x contrasta.SparseVector) (int, error) {
				assert.Equal(t, contrasta.SparseVector{3: 1}, x)
				return 1, nil
			},
		}

		label, err := contrasta.Classify("texto", vectorizer, classifier)

		require.NoError(t, err)
		assert.Equal(t, contrasta.LabelFabricated, label)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		vectorizer := &mock.Vectorizer{
			TransformFn: func(text string) contrasta.SparseVector {
				return contrasta.SparseVector{len(text): 1}
			},
		}
		classifier := &mock.Classifier{
			PredictFn: func(x contrasta.SparseVector) (int, error) {
				for i := range x {
					return i % 2, nil
				}
				return 0, nil
			},
		}

		first, err := contrasta.Classify("una noticia", vectorizer, classifier)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := contrasta.Classify("una noticia", vectorizer, classifier)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("returns classifier errors", func(t *testing.T) {
		t.Parallel()

		vectorizer := &mock.Vectorizer{
			TransformFn: func(text string) contrasta.SparseVector { return nil },
		}
		classifier := &mock.Classifier{
			PredictFn: func(x contrasta.SparseVector) (int, error) {
				return 0, errors.New("bad input")
			},
		}

		_, err := contrasta.Classify("x", vectorizer, classifier)

		require.Error(t, err)
	})
}
