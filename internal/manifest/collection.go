// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/pdiddy/archive-timeline/internal/era"
	"github.com/pdiddy/archive-timeline/pkg/types"
)

// ParseCollection decodes a collection document. Only input that is not a
// JSON object fails; the "items" check is left to Filter.
func ParseCollection(data []byte) (*Collection, error) {
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing collection: %w", err)
	}
	return &c, nil
}

// Len returns the number of entries in the collection.
func (c *Collection) Len() int {
	if c == nil || c.Items == nil {
		return 0
	}
	return len(*c.Items) + c.malformed
}

// Filter selects the entries whose English title contains a year and that
// carry a detail URL, preserving collection order. Entries are not
// deduplicated. It fails with ErrInvalidCollection when the collection has
// no "items" field.
func Filter(c *Collection) ([]types.CollectionItemRef, error) {
	if c == nil || c.Items == nil {
		return nil, ErrInvalidCollection
	}

	refs := []types.CollectionItemRef{}
	for _, entry := range *c.Items {
		title := entry.Label.First("en")
		if title == "" {
			continue
		}
		year, ok := era.FindYear(title)
		if !ok {
			continue
		}
		if entry.ID == "" {
			continue
		}
		refs = append(refs, types.CollectionItemRef{
			Title:     title,
			Year:      year,
			DetailURL: entry.ID,
		})
	}
	return refs, nil
}
