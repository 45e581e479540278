package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/scott324/STA-141B-Ticket-Comparison/browse"
	"github.com/scott324/STA-141B-Ticket-Comparison/config"
	"github.com/scott324/STA-141B-Ticket-Comparison/pacing"
	"github.com/scott324/STA-141B-Ticket-Comparison/pipeline"
	"github.com/scott324/STA-141B-Ticket-Comparison/targets"
	"github.com/scott324/STA-141B-Ticket-Comparison/ticketmaster"
	"github.com/scott324/STA-141B-Ticket-Comparison/vividseats"
)

func handleCollect(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("collect", flag.ExitOnError)
	output := fs.String("output", cfg.OutputCSV, "Output CSV path")
	headed := fs.Bool("headed", false, "Run the browser with a visible window")
	fs.Parse(args)

	if cfg.APIKey == "" {
		fmt.Fprintf(os.Stderr, "Error: no API key configured (set TICKETPRICES_API_KEY)\n")
		os.Exit(1)
	}

	client := ticketmaster.NewClient(cfg.APIKey, cfg.AttractionID, cfg.CountryCode,
		ticketmaster.WithPacing(pacing.Fixed(cfg.PageDelayDuration())),
	)

	headless := cfg.IsHeadless() && !*headed

	start := time.Now()
	table, err := pipeline.Collect(context.Background(), pipeline.Options{
		API: client,
		Window: ticketmaster.Window{
			Start: cfg.StartDateTime,
			End:   cfg.EndDateTime,
		},
		OpenSession: func(ctx context.Context) (browse.Session, error) {
			return browse.NewChromeSession(ctx, browse.ChromeOptions{
				Headless:  headless,
				UserAgent: cfg.UserAgent,
			})
		},
		EventPace: pacing.Fixed(cfg.EventDelayDuration()),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: collection run failed: %v\n", err)
		os.Exit(1)
	}

	if table.Len() == 0 {
		fmt.Println("No events found. Check API key, dates, or attraction ID.")
		return
	}

	if err := pipeline.Export(table, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Saved %d events to %s (runtime %s)\n",
		table.Len(), *output, time.Since(start).Round(time.Second))
}

func handleListings(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("listings", flag.ExitOnError)
	output := fs.String("output", "vividseats_nba.csv", "Output CSV path")
	team := fs.String("team", "Lakers", "Team label recorded on each row")
	fs.Parse(args)

	store, err := targets.NewStore(cfg.TargetsDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open targets store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	enabled, err := store.ListEnabled(targets.PlatformVividSeats)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to list targets: %v\n", err)
		os.Exit(1)
	}
	if len(enabled) == 0 {
		fmt.Println("No enabled listing targets. Run 'ticketprices targets seed' first.")
		return
	}

	urls := make([]string, 0, len(enabled))
	for _, t := range enabled {
		urls = append(urls, t.URL)
	}

	scraper := vividseats.New(cfg.UserAgent)
	table, err := pipeline.CollectListings(context.Background(), scraper, urls, *team)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: listing scrape failed: %v\n", err)
		os.Exit(1)
	}

	if err := pipeline.ExportListings(table, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Saved %d listing records to %s\n", table.Len(), *output)
}
