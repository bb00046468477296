package types

import "time"

// HTTPConfig holds the settings of the detail-manifest fetcher.
type HTTPConfig struct {
	// Timeout bounds each detail-manifest request.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScrapeConfig holds settings for the scrape pipeline.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// CollectionFile is the collection manifest read at the start of a run.
	CollectionFile string `json:"collection_file" yaml:"collection_file"`

	// OutputFile receives the enriched events as indented JSON.
	OutputFile string `json:"output_file" yaml:"output_file"`

	// RequestDelay is the pause between consecutive detail fetches.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// ReportFile, when set, receives a YAML summary of the run.
	ReportFile string `json:"report_file,omitempty" yaml:"report_file,omitempty"`
}

// CatalogConfig holds settings for the SQLite event catalog.
type CatalogConfig struct {
	// Dir is the directory holding timeline.db.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default page size for listings (default 25).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
