// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/archive-timeline/internal/htmltext"
	"github.com/pdiddy/archive-timeline/internal/httputil"
)

// Image descent levels, outermost first.
const (
	LevelCanvas         = "canvas"
	LevelAnnotationPage = "annotation page"
	LevelAnnotation     = "annotation"
	LevelBody           = "body"
)

// descriptionLabel is the English metadata label that holds the description.
const descriptionLabel = "description"

// LevelError reports the nesting level at which the image descent found
// nothing. It matches ErrMissingLevel under errors.Is.
type LevelError struct {
	Level string
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingLevel, e.Level)
}

// Is reports whether target is ErrMissingLevel.
func (e *LevelError) Is(target error) bool {
	return target == ErrMissingLevel
}

// Fields holds what Extract pulls from a detail manifest. Empty strings
// mean the field was absent.
type Fields struct {
	Description string
	ImageURL    string

	// ImageErr explains an empty ImageURL.
	ImageErr error
}

// Complete reports whether both description and image URL were found.
func (f Fields) Complete() bool {
	return f.Description != "" && f.ImageURL != ""
}

// ParseItem decodes a detail manifest. Only a body that is not a JSON
// object fails, wrapping ErrDecode.
func ParseItem(data []byte) (*Item, error) {
	var it Item
	if err := json.Unmarshal(data, &it); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &it, nil
}

// Fetch retrieves and decodes the detail manifest at url. Transport
// failures wrap ErrFetch; malformed bodies wrap ErrDecode.
func Fetch(ctx context.Context, f httputil.Fetcher, url string) (*Item, error) {
	body, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return ParseItem(body)
}

// Extract pulls the description and full-size image URL from it.
func Extract(it *Item, s htmltext.Stripper) Fields {
	var f Fields
	f.Description = Description(it, s)
	f.ImageURL, f.ImageErr = ImageURL(it)
	return f
}

// Description returns the plain text of the first metadata entry labelled
// exactly ["description"] in English. Only that entry is considered, even
// when its value is empty.
func Description(it *Item, s htmltext.Stripper) string {
	if it == nil {
		return ""
	}
	for _, m := range it.Metadata {
		if !m.Label.Is("en", descriptionLabel) {
			continue
		}
		markup := m.Value.First("en")
		if markup == "" {
			return ""
		}
		return strings.TrimSpace(s.StripHTML(markup))
	}
	return ""
}

// ImageURL descends items[0].items[0].items[0].body.id. Only the first
// element of each level is inspected; an empty or malformed level yields
// a *LevelError naming it.
func ImageURL(it *Item) (string, error) {
	if it == nil {
		return "", &LevelError{Level: LevelCanvas}
	}
	canvas, err := first(it.Items, LevelCanvas)
	if err != nil {
		return "", err
	}
	page, err := firstChild(canvas, LevelAnnotationPage)
	if err != nil {
		return "", err
	}
	annoRaw, err := firstChild(page, LevelAnnotation)
	if err != nil {
		return "", err
	}
	var anno Annotation
	if err := json.Unmarshal(annoRaw, &anno); err != nil || anno.Body == nil || anno.Body.ID == "" {
		return "", &LevelError{Level: LevelBody}
	}
	return anno.Body.ID, nil
}

// firstChild returns the first element of parent's "items" array.
func firstChild(parent json.RawMessage, level string) (json.RawMessage, error) {
	var node struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(parent, &node); err != nil {
		return nil, &LevelError{Level: level}
	}
	children, _ := rawArray(node.Items)
	return first(children, level)
}

func first[T any](s []T, level string) (T, error) {
	var zero T
	if len(s) == 0 {
		return zero, &LevelError{Level: level}
	}
	return s[0], nil
}
