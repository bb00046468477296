// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the scrape: load the collection manifest, keep the
// items whose title carries a year, fetch each item's detail manifest,
// assemble timeline events, and write them out.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/archive-timeline/internal/era"
	"github.com/pdiddy/archive-timeline/internal/htmltext"
	"github.com/pdiddy/archive-timeline/internal/httputil"
	"github.com/pdiddy/archive-timeline/internal/manifest"
	"github.com/pdiddy/archive-timeline/pkg/types"
)

// Defaults for the scrape settings.
const (
	// DefaultCollectionFile is the collection manifest read from the working directory.
	DefaultCollectionFile = "photograph-collection-data.jsonld"

	// DefaultOutputFile receives the enriched events.
	DefaultOutputFile = "events.json"

	// DefaultRequestDelay is the pause after each decoded detail manifest.
	DefaultRequestDelay = 100 * time.Millisecond
)

// titleWidth is how much of a title the progress line shows.
const titleWidth = 40

// Runner drives one scrape. Items are fetched strictly one after another.
type Runner struct {
	cfg      types.ScrapeConfig
	fetcher  httputil.Fetcher
	stripper htmltext.Stripper
	w        io.Writer
	sleep    func(time.Duration)
}

// New returns a Runner that fetches with f, strips description markup with
// s, and writes progress lines to w.
func New(cfg types.ScrapeConfig, f httputil.Fetcher, s htmltext.Stripper, w io.Writer) *Runner {
	if cfg.CollectionFile == "" {
		cfg.CollectionFile = DefaultCollectionFile
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}
	if w == nil {
		w = io.Discard
	}
	return &Runner{
		cfg:      cfg,
		fetcher:  f,
		stripper: s,
		w:        w,
		sleep:    time.Sleep,
	}
}

// Run executes load, filter, enrich, and persist in order. It returns an
// error only for fatal conditions: an unreadable or malformed collection,
// a collection without items, or an unwritable output file. Nothing is
// written when it fails.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	fmt.Fprintf(r.w, "loading collection: %s\n", r.cfg.CollectionFile)
	coll, err := Load(r.cfg.CollectionFile)
	if err != nil {
		return summary, err
	}

	refs, err := manifest.Filter(coll)
	if err != nil {
		return summary, fmt.Errorf("%s: %w", r.cfg.CollectionFile, err)
	}
	summary.CollectionItems = coll.Len()
	summary.Candidates = len(refs)
	fmt.Fprintf(r.w, "found %d total items in the collection\n", summary.CollectionItems)
	fmt.Fprintf(r.w, "filtered to %d items with a year in their title\n", summary.Candidates)

	events := r.Enrich(ctx, refs, &summary)

	if err := Persist(r.cfg.OutputFile, events); err != nil {
		return summary, err
	}
	fmt.Fprintf(r.w, "\nSummary: %d written, %d fetch failed, %d parse failed, %d incomplete (candidates: %d)\n",
		summary.Written, summary.FetchFailed, summary.ParseFailed, summary.Incomplete(), summary.Candidates)
	fmt.Fprintf(r.w, "wrote %d events to %s\n", len(events), r.cfg.OutputFile)

	if r.cfg.ReportFile != "" {
		if err := WriteReport(r.cfg.ReportFile, summary); err != nil {
			fmt.Fprintf(r.w, "warning: report write failed: %v\n", err)
		}
	}
	return summary, nil
}

// Enrich fetches each ref's detail manifest in order and returns the events
// that have both a description and an image URL. Failed or incomplete items
// are logged, counted in summary, and dropped. The request delay follows
// every item whose manifest was fetched and decoded, except the last.
func (r *Runner) Enrich(ctx context.Context, refs []types.CollectionItemRef, summary *Summary) []types.Event {
	events := []types.Event{}
	for i, ref := range refs {
		fmt.Fprintf(r.w, "fetching %d/%d: %s\n", i+1, len(refs), truncate(ref.Title, titleWidth))

		item, err := manifest.Fetch(ctx, r.fetcher, ref.DetailURL)
		if err != nil {
			if errors.Is(err, manifest.ErrDecode) {
				fmt.Fprintf(r.w, "  error: could not parse json from %s: %v\n", ref.DetailURL, err)
				summary.ParseFailed++
				summary.fail(ref, ReasonParse)
			} else {
				fmt.Fprintf(r.w, "  error: could not fetch %s: %v\n", ref.DetailURL, err)
				summary.FetchFailed++
				summary.fail(ref, ReasonFetch)
			}
			continue
		}
		summary.Fetched++

		fields := manifest.Extract(item, r.stripper)
		if fields.Complete() {
			events = append(events, types.Event{
				Title:       ref.Title,
				Description: fields.Description,
				Year:        ref.Year,
				Era:         era.Label(ref.Year),
				ImageURL:    fields.ImageURL,
			})
			summary.Written++
		} else {
			reason := summary.incomplete(ref, fields)
			fmt.Fprintf(r.w, "  skipped: %s (%s)\n", ref.DetailURL, reason)
		}

		if i < len(refs)-1 && r.cfg.RequestDelay > 0 {
			r.sleep(r.cfg.RequestDelay)
		}
	}
	return events
}

// Load reads and decodes the collection manifest at path.
func Load(path string) (*manifest.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading collection %s: %w", path, err)
	}
	coll, err := manifest.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return coll, nil
}

// Persist writes events to path as two-space indented JSON with non-ASCII
// characters and HTML-significant characters left unescaped. The file is
// written to a temporary sibling first and renamed into place.
func Persist(path string, events []types.Event) error {
	if events == nil {
		events = []types.Event{}
	}
	data, err := Encode(events)
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".events-*.tmp")
	if err != nil {
		return fmt.Errorf("writing output file %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing output file %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing output file %s: %w", path, closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing output file %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing output file %s: %w", path, err)
	}
	return nil
}

// Encode renders events in the output file format.
func Encode(events []types.Event) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
