// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/archive-timeline/internal/htmltext"
	"github.com/pdiddy/archive-timeline/internal/httputil"
	"github.com/pdiddy/archive-timeline/internal/pipeline"
	"github.com/pdiddy/archive-timeline/pkg/types"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Extract dated items from the collection into a timeline events file",
	Long: `Scrape loads the collection manifest, keeps items whose title contains a
year between 1800 and 2099, fetches each item's manifest one at a time for its
description and full-size image URL, and writes the complete events as
indented JSON. Items that fail to fetch or lack either field are logged and
left out; only an unreadable collection or an unwritable output aborts the run.`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	f := scrapeCmd.Flags()
	f.String("collection", pipeline.DefaultCollectionFile, "collection manifest to read")
	f.String("output", pipeline.DefaultOutputFile, "events file to write")
	f.Duration("timeout", httputil.DefaultTimeout, "timeout for each item manifest request")
	f.Duration("delay", pipeline.DefaultRequestDelay, "pause between consecutive item fetches")
	f.String("report", "", "write a YAML run summary to this file")

	viper.BindPFlag("scrape.collection_file", f.Lookup("collection"))
	viper.BindPFlag("scrape.output_file", f.Lookup("output"))
	viper.BindPFlag("scrape.timeout", f.Lookup("timeout"))
	viper.BindPFlag("scrape.request_delay", f.Lookup("delay"))
	viper.BindPFlag("scrape.report_file", f.Lookup("report"))

	rootCmd.AddCommand(scrapeCmd)
}

func scrapeConfig() types.ScrapeConfig {
	return types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("scrape.timeout"),
			UserAgent: httputil.DefaultUserAgent,
		},
		CollectionFile: viper.GetString("scrape.collection_file"),
		OutputFile:     viper.GetString("scrape.output_file"),
		RequestDelay:   viper.GetDuration("scrape.request_delay"),
		ReportFile:     viper.GetString("scrape.report_file"),
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg := scrapeConfig()
	fetcher := httputil.NewHTTPFetcher(nil, cfg.HTTPConfig)

	runner := pipeline.New(cfg, fetcher, htmltext.GoqueryStripper{}, cmd.OutOrStdout())
	_, err := runner.Run(context.Background())
	return err
}
