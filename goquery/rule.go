// Package goquery implements publisher extraction rules on top of goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/contrasta"
)

var _ contrasta.ExtractionRule = (*Rule)(nil)

// LocatorConfig describes where a field lives in a publisher's page.
// When Container is set, only the first element matching it is searched.
type LocatorConfig struct {
	Container string `yaml:"container,omitempty"`
	Select    string `yaml:"select"`
}

// locator is a compiled LocatorConfig.
type locator struct {
	container goquery.Matcher
	target    goquery.Matcher
}

func compileLocator(field string, c LocatorConfig) (locator, error) {
	var l locator
	if c.Select == "" {
		return l, contrasta.Errorf(contrasta.EINVALID, "%s selector required", field)
	}
	target, err := cascadia.Compile(c.Select)
	if err != nil {
		return l, contrasta.Errorf(contrasta.EINVALID, "invalid %s selector %q: %v", field, c.Select, err)
	}
	l.target = target
	if c.Container != "" {
		container, err := cascadia.Compile(c.Container)
		if err != nil {
			return l, contrasta.Errorf(contrasta.EINVALID, "invalid %s container %q: %v", field, c.Container, err)
		}
		l.container = container
	}
	return l, nil
}

// scope returns the selection searched for the target.
// The result is empty when the container is missing.
func (l locator) scope(doc *goquery.Document) *goquery.Selection {
	if l.container == nil {
		return doc.Selection
	}
	return doc.FindMatcher(l.container).First()
}

// first returns the trimmed text of the first target element.
// An element holding only whitespace counts as missing.
func (l locator) first(doc *goquery.Document) contrasta.Field {
	scope := l.scope(doc)
	if scope.Length() == 0 {
		return contrasta.Field{}
	}
	sel := scope.FindMatcher(l.target).First()
	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return contrasta.Field{}
	}
	return contrasta.Found(text)
}

// join returns the trimmed text of every target element joined by single
// spaces in document order. Empty elements are skipped.
func (l locator) join(doc *goquery.Document) contrasta.Field {
	scope := l.scope(doc)
	if scope.Length() == 0 {
		return contrasta.Field{}
	}
	var parts []string
	scope.FindMatcher(l.target).Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return contrasta.Field{}
	}
	return contrasta.Found(strings.Join(parts, " "))
}

// RuleConfig is the declarative form of a publisher's extraction rule.
type RuleConfig struct {
	Name         string                 `yaml:"name"`
	Pattern      string                 `yaml:"pattern"`
	Title        LocatorConfig          `yaml:"title"`
	Author       LocatorConfig          `yaml:"author"`
	Body         LocatorConfig          `yaml:"body"`
	Placeholders contrasta.Placeholders `yaml:"placeholders,omitempty"`
}

// Rule extracts article fields for one publisher using CSS selectors.
// The title and author are taken from the first matching element; the
// body joins every matching paragraph.
type Rule struct {
	publisher contrasta.Publisher
	title     locator
	author    locator
	body      locator
}

// NewRule compiles a RuleConfig.
// Returns EINVALID if a required value is missing or a selector is invalid.
func NewRule(c RuleConfig) (*Rule, error) {
	if c.Name == "" {
		return nil, contrasta.Errorf(contrasta.EINVALID, "publisher name required")
	}
	if c.Pattern == "" {
		return nil, contrasta.Errorf(contrasta.EINVALID, "publisher %q: pattern required", c.Name)
	}

	r := &Rule{
		publisher: contrasta.Publisher{
			Name:         c.Name,
			Pattern:      c.Pattern,
			Placeholders: c.Placeholders.Merge(contrasta.DefaultPlaceholders()),
		},
	}

	var err error
	if r.title, err = compileLocator("title", c.Title); err != nil {
		return nil, publisherError(c.Name, err)
	}
	if r.author, err = compileLocator("author", c.Author); err != nil {
		return nil, publisherError(c.Name, err)
	}
	if r.body, err = compileLocator("body", c.Body); err != nil {
		return nil, publisherError(c.Name, err)
	}
	return r, nil
}

func publisherError(name string, err error) error {
	return contrasta.Errorf(contrasta.EINVALID, "publisher %q: %s", name, contrasta.ErrorMessage(err))
}

// Publisher returns the publisher this rule applies to.
func (r *Rule) Publisher() contrasta.Publisher {
	return r.publisher
}

// LocateTitle returns the article headline.
func (r *Rule) LocateTitle(doc *goquery.Document) contrasta.Field {
	return r.title.first(doc)
}

// LocateAuthor returns the article byline.
func (r *Rule) LocateAuthor(doc *goquery.Document) contrasta.Field {
	return r.author.first(doc)
}

// LocateBody returns the article paragraphs joined into a single text.
func (r *Rule) LocateBody(doc *goquery.Document) contrasta.Field {
	return r.body.join(doc)
}

// Extract parses raw HTML and locates each field independently.
func (r *Rule) Extract(html string) (*contrasta.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, contrasta.Errorf(contrasta.EINVALID, "failed to parse HTML: %v", err)
	}

	return &contrasta.Extraction{
		Title:  r.LocateTitle(doc),
		Author: r.LocateAuthor(doc),
		Body:   r.LocateBody(doc),
	}, nil
}
