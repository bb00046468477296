// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the archive-timeline pipeline:
// the worklist entries produced when filtering a collection manifest, the
// enriched events written to the output file, and per-stage configuration.
package types

// CollectionItemRef is one collection entry that passed the year filter and
// still needs its detail manifest fetched.
type CollectionItemRef struct {
	// Title is the first English label of the collection entry.
	Title string `json:"title" yaml:"title"`

	// Year is the first plausible year found in Title.
	Year int `json:"year" yaml:"year"`

	// DetailURL is the item manifest URL (the entry's "id").
	DetailURL string `json:"detail_url" yaml:"detail_url"`
}

// Event is a fully enriched timeline record. Field order matches the
// serialized output: title, description, year, era, image_url.
type Event struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Year        int    `json:"year" yaml:"year"`
	Era         string `json:"era" yaml:"era"`
	ImageURL    string `json:"image_url" yaml:"image_url"`
}
