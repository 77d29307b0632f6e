// Package contrasta checks news articles from supported Spanish publishers
// for signs of fabrication. It fetches an article, extracts its title,
// author and body with per-publisher selector rules, classifies the body
// with a pretrained bag-of-words model, and reports the verdict together
// with word frequency statistics.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sklearn/, lipgloss/).
package contrasta
