package sklearn

import (
	"encoding/json"
	"math"

	"github.com/fwojciec/contrasta"
)

// Classifier kinds understood by DecodeClassifier.
const (
	KindLinear        = "linear"
	KindMultinomialNB = "multinomial_nb"
)

// ClassifierConfig holds the fitted attributes of a scikit-learn classifier.
// Linear models (LogisticRegression, LinearSVC, SGDClassifier,
// PassiveAggressiveClassifier) use Coef and Intercept; MultinomialNB uses
// ClassLogPrior and FeatureLogProb.
type ClassifierConfig struct {
	Kind    string `json:"kind"`
	Classes []int  `json:"classes"`

	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`

	ClassLogPrior  []float64   `json:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
}

// DecodeClassifier decodes a JSON classifier artifact.
// Returns ECORRUPT if the artifact is malformed or of an unknown kind.
func DecodeClassifier(data []byte) (contrasta.Classifier, error) {
	var c ClassifierConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, contrasta.Errorf(contrasta.ECORRUPT, "failed to decode classifier: %v", err)
	}

	switch c.Kind {
	case KindLinear:
		return NewLinearClassifier(c.Classes, c.Coef, c.Intercept)
	case KindMultinomialNB:
		return NewNaiveBayes(c.Classes, c.ClassLogPrior, c.FeatureLogProb)
	default:
		return nil, contrasta.Errorf(contrasta.ECORRUPT, "unsupported classifier kind %q", c.Kind)
	}
}

// matrixWidth returns the common row width of m.
func matrixWidth(name string, m [][]float64) (int, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return 0, contrasta.Errorf(contrasta.ECORRUPT, "%s is empty", name)
	}
	width := len(m[0])
	for i, row := range m {
		if len(row) != width {
			return 0, contrasta.Errorf(contrasta.ECORRUPT, "%s row %d has %d columns, want %d", name, i, len(row), width)
		}
	}
	return width, nil
}

// dot returns the product of a sparse vector with a dense row.
func dot(x contrasta.SparseVector, row []float64) (float64, error) {
	var sum float64
	for j, w := range x {
		if j < 0 || j >= len(row) {
			return 0, contrasta.Errorf(contrasta.EINVALID, "feature index %d out of range", j)
		}
		sum += w * row[j]
	}
	return sum, nil
}

var _ contrasta.Classifier = (*LinearClassifier)(nil)

// LinearClassifier predicts with a linear decision function.
// Binary models have a single coefficient row and predict the second class
// when the decision value is positive. Multiclass models pick the class
// with the highest decision value.
type LinearClassifier struct {
	classes   []int
	coef      [][]float64
	intercept []float64
	width     int
}

// NewLinearClassifier validates the fitted attributes of a linear model.
func NewLinearClassifier(classes []int, coef [][]float64, intercept []float64) (*LinearClassifier, error) {
	width, err := matrixWidth("coef", coef)
	if err != nil {
		return nil, err
	}
	if len(classes) < 2 {
		return nil, contrasta.Errorf(contrasta.ECORRUPT, "linear classifier needs at least 2 classes, got %d", len(classes))
	}
	rows := len(classes)
	if rows == 2 {
		rows = 1
	}
	if len(coef) != rows {
		return nil, contrasta.Errorf(contrasta.ECORRUPT, "coef has %d rows for %d classes", len(coef), len(classes))
	}
	if len(intercept) != rows {
		return nil, contrasta.Errorf(contrasta.ECORRUPT, "intercept has %d values for %d classes", len(intercept), len(classes))
	}
	return &LinearClassifier{
		classes:   classes,
		coef:      coef,
		intercept: intercept,
		width:     width,
	}, nil
}

// Features returns the number of coefficients per class.
func (c *LinearClassifier) Features() int {
	return c.width
}

// Predict returns the class with the best decision value.
func (c *LinearClassifier) Predict(x contrasta.SparseVector) (int, error) {
	best, bestScore := 0, math.Inf(-1)
	for i, row := range c.coef {
		score, err := dot(x, row)
		if err != nil {
			return 0, err
		}
		score += c.intercept[i]
		if len(c.coef) == 1 {
			if score > 0 {
				return c.classes[1], nil
			}
			return c.classes[0], nil
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return c.classes[best], nil
}

var _ contrasta.Classifier = (*NaiveBayes)(nil)

// NaiveBayes is a multinomial naive Bayes classifier.
type NaiveBayes struct {
	classes        []int
	classLogPrior  []float64
	featureLogProb [][]float64
	width          int
}

// NewNaiveBayes validates the fitted attributes of a MultinomialNB model.
func NewNaiveBayes(classes []int, classLogPrior []float64, featureLogProb [][]float64) (*NaiveBayes, error) {
	width, err := matrixWidth("feature_log_prob", featureLogProb)
	if err != nil {
		return nil, err
	}
	if len(classes) < 2 {
		return nil, contrasta.Errorf(contrasta.ECORRUPT, "naive Bayes needs at least 2 classes, got %d", len(classes))
	}
	if len(classLogPrior) != len(classes) || len(featureLogProb) != len(classes) {
		return nil, contrasta.Errorf(contrasta.ECORRUPT, "naive Bayes has %d priors and %d rows for %d classes",
			len(classLogPrior), len(featureLogProb), len(classes))
	}
	return &NaiveBayes{
		classes:        classes,
		classLogPrior:  classLogPrior,
		featureLogProb: featureLogProb,
		width:          width,
	}, nil
}

// Features returns the number of features per class.
func (c *NaiveBayes) Features() int {
	return c.width
}

// Predict returns the class with the highest joint log likelihood.
// Ties go to the class listed first.
func (c *NaiveBayes) Predict(x contrasta.SparseVector) (int, error) {
	best, bestScore := 0, math.Inf(-1)
	for i, row := range c.featureLogProb {
		score, err := dot(x, row)
		if err != nil {
			return 0, err
		}
		score += c.classLogPrior[i]
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return c.classes[best], nil
}
