package contrasta

import "strings"

// Publisher describes a supported news site.
type Publisher struct {
	// Name identifies the publisher (e.g., "elplural").
	Name string

	// Pattern is matched as a plain substring of the article URL.
	Pattern string

	// Placeholders override the default missing-field text.
	Placeholders Placeholders
}

// Matches reports whether url belongs to the publisher.
func (p Publisher) Matches(url string) bool {
	return p.Pattern != "" && strings.Contains(url, p.Pattern)
}

// ExtractionRule extracts article fields from a publisher's HTML.
type ExtractionRule interface {
	// Publisher returns the publisher this rule applies to.
	Publisher() Publisher

	// Extract parses raw HTML and locates the title, author and body.
	// Each field is located independently; a missing field is reported
	// as not found rather than as an error. An error is returned only
	// when the HTML cannot be parsed at all.
	Extract(html string) (*Extraction, error)
}

// PublisherRegistry maps article URLs to extraction rules.
type PublisherRegistry interface {
	// Resolve returns the rule of the first registered publisher whose
	// pattern is contained in url. Returns nil if the URL is unsupported.
	Resolve(url string) ExtractionRule

	// Register appends a rule. Rules are matched in registration order.
	Register(rule ExtractionRule)

	// List returns the registered publishers in registration order.
	List() []Publisher
}
