// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest reads IIIF Presentation documents: the collection manifest
// that lists archive items, and the per-item manifests that carry each item's
// description and image reference.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	// ErrInvalidCollection reports a collection document without an "items" array.
	ErrInvalidCollection = errors.New("manifest has no 'items' array")

	// ErrFetch marks a detail manifest that could not be retrieved.
	ErrFetch = errors.New("fetch failed")

	// ErrDecode marks a detail manifest whose body is not valid JSON of the expected shape.
	ErrDecode = errors.New("invalid json")

	// ErrMissingLevel reports that the image descent stopped early.
	ErrMissingLevel = errors.New("missing level")
)

// LanguageMap maps a language code to its strings, as in IIIF label and value.
type LanguageMap map[string][]string

// First returns the first string for lang, or "" when there is none.
func (m LanguageMap) First(lang string) string {
	if vals := m[lang]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Is reports whether the strings for lang are exactly want.
func (m LanguageMap) Is(lang string, want ...string) bool {
	vals, ok := m[lang]
	if !ok || len(vals) != len(want) {
		return false
	}
	for i := range vals {
		if vals[i] != want[i] {
			return false
		}
	}
	return true
}

// Collection is the top-level collection document. Items is nil when the
// document has no "items" array. Entries that do not have the expected
// shape are left out of Items but still counted by Len.
type Collection struct {
	Items *[]CollectionEntry

	malformed int
}

// CollectionEntry is one item listed in a collection.
type CollectionEntry struct {
	ID    string      `json:"id"`
	Label LanguageMap `json:"label"`
}

// Item is a detail manifest for a single archive item. Metadata holds the
// well-formed entries only. Items keeps the canvases undecoded; ImageURL
// decodes one level at a time.
type Item struct {
	Metadata []MetadataEntry
	Items    []json.RawMessage
}

// MetadataEntry is one label/value pair from an item's metadata block.
type MetadataEntry struct {
	Label LanguageMap `json:"label"`
	Value LanguageMap `json:"value"`
}

// Annotation links a canvas to a content resource.
type Annotation struct {
	Body *Resource `json:"body"`
}

// Resource is the content resource of an annotation; ID is the image URL.
type Resource struct {
	ID string `json:"id"`
}

// UnmarshalJSON decodes each collection entry on its own so that one odd
// entry does not reject the collection. A missing, null, or non-array
// "items" leaves Items nil.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var raw struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Collection{}
	entries, ok := rawArray(raw.Items)
	if !ok {
		return nil
	}
	items := make([]CollectionEntry, 0, len(entries))
	for _, e := range entries {
		var entry CollectionEntry
		if err := json.Unmarshal(e, &entry); err != nil {
			c.malformed++
			continue
		}
		items = append(items, entry)
	}
	c.Items = &items
	return nil
}

// UnmarshalJSON requires a JSON object but tolerates any shape inside it:
// metadata entries that do not decode are dropped, and a non-array
// "metadata" or "items" is treated as absent.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		Metadata json.RawMessage `json:"metadata"`
		Items    json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*it = Item{}
	if entries, ok := rawArray(raw.Metadata); ok {
		for _, e := range entries {
			var m MetadataEntry
			if err := json.Unmarshal(e, &m); err != nil {
				continue
			}
			it.Metadata = append(it.Metadata, m)
		}
	}
	it.Items, _ = rawArray(raw.Items)
	return nil
}

// rawArray splits a JSON array into its elements. It reports false for
// absent, null, or non-array input.
func rawArray(data json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, false
	}
	return elems, true
}
