package sklearn

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/contrasta"
)

// Default artifact locations.
const (
	DefaultVectorizerURL = "https://raw.githubusercontent.com/Evalen-software/modelo/main/vectorize.json"
	DefaultClassifierURL = "https://raw.githubusercontent.com/Evalen-software/modelo/main/model.json"
)

var _ contrasta.ModelLoader = (*Loader)(nil)

// Loader downloads and decodes the vectorizer and classifier artifacts.
// Every call to Load downloads both artifacts again.
type Loader struct {
	downloader    contrasta.Downloader
	vectorizerURL string
	classifierURL string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewLoader creates a Loader for the given artifact URLs.
// Empty URLs fall back to the defaults.
func NewLoader(d contrasta.Downloader, vectorizerURL, classifierURL string) *Loader {
	if vectorizerURL == "" {
		vectorizerURL = DefaultVectorizerURL
	}
	if classifierURL == "" {
		classifierURL = DefaultClassifierURL
	}
	return &Loader{
		downloader:    d,
		vectorizerURL: vectorizerURL,
		classifierURL: classifierURL,
		Now:           time.Now,
	}
}

// Load downloads both artifacts in sequence and builds the model.
// Returns EUNAVAILABLE if a download fails and ECORRUPT if an artifact
// cannot be decoded or the two artifacts disagree on the feature count.
func (l *Loader) Load(ctx context.Context) (*contrasta.Model, error) {
	vdata, err := l.download(ctx, "vectorizer", l.vectorizerURL)
	if err != nil {
		return nil, err
	}
	cdata, err := l.download(ctx, "classifier", l.classifierURL)
	if err != nil {
		return nil, err
	}

	vectorizer, err := DecodeVectorizer(vdata)
	if err != nil {
		return nil, err
	}
	classifier, err := DecodeClassifier(cdata)
	if err != nil {
		return nil, err
	}

	if vectorizer.Features() != classifier.Features() {
		return nil, contrasta.Errorf(contrasta.ECORRUPT,
			"classifier expects %d features but vectorizer produces %d",
			classifier.Features(), vectorizer.Features())
	}

	return &contrasta.Model{
		Vectorizer: vectorizer,
		Classifier: classifier,
		Version:    Version(vdata, cdata),
		LoadedAt:   l.Now(),
	}, nil
}

func (l *Loader) download(ctx context.Context, name, url string) ([]byte, error) {
	data, err := l.downloader.Download(ctx, url)
	if err != nil {
		if contrasta.ErrorCode(err) == contrasta.EUNAVAILABLE {
			return nil, err
		}
		return nil, contrasta.Errorf(contrasta.EUNAVAILABLE, "failed to download %s from %s: %v", name, url, err)
	}
	return data, nil
}

// Version returns a digest identifying a pair of artifacts.
func Version(vectorizer, classifier []byte) string {
	h := xxhash.New()
	_, _ = h.Write(vectorizer)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(classifier)
	return fmt.Sprintf("%016x", h.Sum64())
}
