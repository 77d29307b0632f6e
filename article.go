package contrasta

import "strings"

// Placeholder text shown when a field could not be extracted.
const (
	TitleNotFound   = "Título no encontrado"
	AuthorNotFound  = "Autor no encontrado"
	BodyNotFound    = "Contenido no encontrado"
	NotSupported    = "Medio no soportado"
	UnsupportedName = "unsupported"
)

// Field is an optionally present value extracted from an article.
// The zero value is a missing field.
type Field struct {
	Value string
	Found bool
}

// Found returns a present Field holding v.
func Found(v string) Field {
	return Field{Value: v, Found: true}
}

// Or returns the field value, or placeholder if the field is missing or
// blank.
func (f Field) Or(placeholder string) string {
	if !f.Found || strings.TrimSpace(f.Value) == "" {
		return placeholder
	}
	return f.Value
}

// Placeholders holds the text substituted for each missing article field.
type Placeholders struct {
	Title  string `yaml:"title" json:"title"`
	Author string `yaml:"author" json:"author"`
	Body   string `yaml:"body" json:"body"`
}

// DefaultPlaceholders returns the placeholders used by publishers that do
// not override them.
func DefaultPlaceholders() Placeholders {
	return Placeholders{
		Title:  TitleNotFound,
		Author: AuthorNotFound,
		Body:   BodyNotFound,
	}
}

// Merge returns p with every empty entry replaced by the one in defaults.
func (p Placeholders) Merge(defaults Placeholders) Placeholders {
	if p.Title == "" {
		p.Title = defaults.Title
	}
	if p.Author == "" {
		p.Author = defaults.Author
	}
	if p.Body == "" {
		p.Body = defaults.Body
	}
	return p
}

// Extraction holds the raw result of applying an ExtractionRule to a page.
type Extraction struct {
	Title  Field
	Author Field
	Body   Field
}

// Article is a news article extracted for a single analysis.
// The Text accessors never return an empty value: missing fields are
// replaced with the publisher's placeholders.
type Article struct {
	URL          string
	Publisher    string
	Title        Field
	Author       Field
	Body         Field
	Placeholders Placeholders
}

// NewArticle builds an Article from an extraction made with rule.
func NewArticle(url string, pub Publisher, e *Extraction) *Article {
	return &Article{
		URL:          url,
		Publisher:    pub.Name,
		Title:        e.Title,
		Author:       e.Author,
		Body:         e.Body,
		Placeholders: pub.Placeholders.Merge(DefaultPlaceholders()),
	}
}

// UnsupportedArticle returns the Article for a URL that no publisher rule
// matches. Every field reads as NotSupported.
func UnsupportedArticle(url string) *Article {
	return &Article{
		URL:       url,
		Publisher: UnsupportedName,
		Placeholders: Placeholders{
			Title:  NotSupported,
			Author: NotSupported,
			Body:   NotSupported,
		},
	}
}

// TitleText returns the title or its placeholder.
func (a *Article) TitleText() string {
	return a.Title.Or(a.Placeholders.Title)
}

// AuthorText returns the author or its placeholder.
func (a *Article) AuthorText() string {
	return a.Author.Or(a.Placeholders.Author)
}

// BodyText returns the body text or its placeholder.
// This is the text handed to the classifier.
func (a *Article) BodyText() string {
	return a.Body.Or(a.Placeholders.Body)
}
