package contrasta

import (
	"context"
	"time"
)

// Label is the verdict produced by the classifier.
type Label int

// Classification labels.
const (
	LabelGenuine Label = iota
	LabelFabricated
)

// FabricatedClass is the classifier output that marks an article as fabricated.
const FabricatedClass = 1

// LabelFromClass maps a raw classifier prediction to a Label.
// Only FabricatedClass maps to LabelFabricated.
func LabelFromClass(class int) Label {
	if class == FabricatedClass {
		return LabelFabricated
	}
	return LabelGenuine
}

// String returns the verdict as shown to readers.
func (l Label) String() string {
	if l == LabelFabricated {
		return "Bulo"
	}
	return "Verdadera"
}

// Color returns the indicator color for the verdict.
func (l Label) Color() string {
	if l == LabelFabricated {
		return "red"
	}
	return "green"
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// SparseVector maps feature indexes to weights. Absent indexes are zero.
type SparseVector map[int]float64

// Vectorizer turns text into a feature vector using a learned vocabulary.
type Vectorizer interface {
	// Transform tokenizes text and returns its feature vector.
	// Tokens outside the vocabulary contribute nothing.
	Transform(text string) SparseVector

	// Features returns the width of the vectors produced by Transform.
	Features() int
}

// Classifier predicts a class from a feature vector.
type Classifier interface {
	// Predict returns the predicted class value.
	Predict(x SparseVector) (int, error)

	// Features returns the vector width the classifier was trained on.
	Features() int
}

// Model bundles a vectorizer with the classifier trained on its output.
type Model struct {
	Vectorizer Vectorizer
	Classifier Classifier

	// Version identifies the artifacts the model was built from.
	Version string

	LoadedAt time.Time
}

// ModelLoader provides the model used for classification.
type ModelLoader interface {
	// Load returns a ready to use model.
	// Returns EUNAVAILABLE if an artifact cannot be downloaded and
	// ECORRUPT if an artifact cannot be decoded.
	Load(ctx context.Context) (*Model, error)
}

// Classify vectorizes text and returns the classifier's verdict.
// The result depends only on text and the model, so repeated calls agree.
func Classify(text string, v Vectorizer, c Classifier) (Label, error) {
	class, err := c.Predict(v.Transform(text))
	if err != nil {
		return LabelGenuine, err
	}
	return LabelFromClass(class), nil
}
