// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package htmltext converts HTML fragments from manifest metadata to plain text.
package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Stripper converts HTML markup to plain text.
type Stripper interface {
	StripHTML(markup string) string
}

// GoqueryStripper parses markup with goquery and returns the concatenated
// text of all nodes, trimmed of surrounding whitespace.
type GoqueryStripper struct{}

// StripHTML implements Stripper. Markup that cannot be read is returned
// trimmed but otherwise unchanged.
func (GoqueryStripper) StripHTML(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.TrimSpace(markup)
	}
	return strings.TrimSpace(doc.Text())
}

// StripFunc adapts a plain function to Stripper.
type StripFunc func(markup string) string

// StripHTML calls f.
func (f StripFunc) StripHTML(markup string) string {
	return f(markup)
}
