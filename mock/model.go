package mock

import (
	"context"

	"github.com/fwojciec/contrasta"
)

var _ contrasta.Vectorizer = (*Vectorizer)(nil)

// Vectorizer is a mock implementation of contrasta.Vectorizer.
type Vectorizer struct {
	TransformFn func(text string) contrasta.SparseVector
	FeaturesFn  func() int
}

func (v *Vectorizer) Transform(text string) contrasta.SparseVector {
	return v.TransformFn(text)
}

func (v *Vectorizer) Features() int {
	return v.FeaturesFn()
}

var _ contrasta.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of contrasta.Classifier.
type Classifier struct {
	PredictFn  func(x contrasta.SparseVector) (int, error)
	FeaturesFn func() int
}

func (c *Classifier) Predict(x contrasta.SparseVector) (int, error) {
	return c.PredictFn(x)
}

func (c *Classifier) Features() int {
	return c.FeaturesFn()
}

var _ contrasta.ModelLoader = (*ModelLoader)(nil)

// ModelLoader is a mock implementation of contrasta.ModelLoader.
type ModelLoader struct {
	LoadFn func(ctx context.Context) (*contrasta.Model, error)
}

func (l *ModelLoader) Load(ctx context.Context) (*contrasta.Model, error) {
	return l.LoadFn(ctx)
}
