// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/archive-timeline/internal/manifest"
	"github.com/pdiddy/archive-timeline/pkg/types"
)

// Reasons recorded for dropped items.
const (
	ReasonFetch              = "fetch failed"
	ReasonParse              = "invalid json"
	ReasonMissingDescription = "missing description"
	ReasonMissingImage       = "missing image"
)

// Summary holds the outcome of a scrape run.
type Summary struct {
	CollectionItems    int       `yaml:"collection_items"`
	Candidates         int       `yaml:"candidates"`
	Fetched            int       `yaml:"fetched"`
	Written            int       `yaml:"written"`
	FetchFailed        int       `yaml:"fetch_failed"`
	ParseFailed        int       `yaml:"parse_failed"`
	MissingDescription int       `yaml:"missing_description"`
	MissingImage       int       `yaml:"missing_image"`
	Dropped            []Dropped `yaml:"dropped,omitempty"`
}

// Dropped identifies one candidate that produced no event.
type Dropped struct {
	Title     string `yaml:"title"`
	DetailURL string `yaml:"detail_url"`
	Reason    string `yaml:"reason"`
}

// Incomplete returns the number of fetched items that lacked a description
// or an image URL.
func (s Summary) Incomplete() int {
	return s.Fetched - s.Written
}

// HasDrops reports whether any candidate produced no event.
func (s Summary) HasDrops() bool {
	return s.Written < s.Candidates
}

func (s *Summary) fail(ref types.CollectionItemRef, reason string) {
	s.Dropped = append(s.Dropped, Dropped{Title: ref.Title, DetailURL: ref.DetailURL, Reason: reason})
}

// incomplete records a fetched item missing a field and returns the reason.
func (s *Summary) incomplete(ref types.CollectionItemRef, f manifest.Fields) string {
	var reasons []string
	if f.Description == "" {
		s.MissingDescription++
		reasons = append(reasons, ReasonMissingDescription)
	}
	if f.ImageURL == "" {
		s.MissingImage++
		reason := ReasonMissingImage
		if f.ImageErr != nil {
			reason += " (" + f.ImageErr.Error() + ")"
		}
		reasons = append(reasons, reason)
	}
	reason := strings.Join(reasons, ", ")
	s.fail(ref, reason)
	return reason
}

// WriteReport writes summary to path as YAML.
func WriteReport(path string, summary Summary) error {
	data, err := yaml.Marshal(&summary)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// ReadReport reads a summary previously written by WriteReport.
func ReadReport(path string) (Summary, error) {
	var summary Summary
	data, err := os.ReadFile(path)
	if err != nil {
		return summary, fmt.Errorf("reading report %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return summary, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return summary, nil
}
