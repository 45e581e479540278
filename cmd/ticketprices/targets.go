package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/scott324/STA-141B-Ticket-Comparison/config"
	"github.com/scott324/STA-141B-Ticket-Comparison/targets"
)

func handleTargetsCommand(action string, cfg *config.Config, args []string) {
	store, err := targets.NewStore(cfg.TargetsDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open targets store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch action {
	case "list":
		handleTargetsList(store)
	case "add":
		handleTargetsAdd(store, args)
	case "delete":
		handleTargetsDelete(store, args)
	case "seed":
		handleTargetsSeed(store)
	case "help", "--help", "-h":
		printTargetsUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown targets command: %s\n\n", action)
		printTargetsUsage()
		os.Exit(1)
	}
}

func handleTargetsList(store *targets.Store) {
	all, err := store.List("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to list targets: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No targets configured. Run 'ticketprices targets seed' for the defaults.")
		return
	}

	fmt.Printf("%-36s %-13s %-22s %s\n", "ID", "PLATFORM", "NAME", "URL")
	fmt.Println("----------------------------------------------------------------------------------------------------")

	for _, t := range all {
		url := t.URL
		if len(url) > 60 {
			url = url[:57] + "..."
		}
		fmt.Printf("%-36s %-13s %-22s %s\n",
			t.TargetID.String(), t.Platform, t.Name, url)
	}
}

func handleTargetsAdd(store *targets.Store, args []string) {
	fs := flag.NewFlagSet("targets add", flag.ExitOnError)
	platform := fs.String("platform", "", "Target platform (ticketmaster or vividseats)")
	name := fs.String("name", "", "Target name")
	url := fs.String("url", "", "Target URL")
	attraction := fs.String("attraction", "", "Discovery API attraction ID (ticketmaster only)")
	fs.Parse(args)

	if *platform == "" {
		fmt.Fprintf(os.Stderr, "Error: --platform is required\n")
		fs.Usage()
		os.Exit(1)
	}
	if *url == "" {
		fmt.Fprintf(os.Stderr, "Error: --url is required\n")
		fs.Usage()
		os.Exit(1)
	}
	if *name == "" {
		fmt.Fprintf(os.Stderr, "Error: --name is required\n")
		fs.Usage()
		os.Exit(1)
	}

	target, err := store.Create(*platform, *name, *url, *attraction)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create target: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Created target: %s\n", target.TargetID.String())
	fmt.Printf("  Platform: %s\n", target.Platform)
	fmt.Printf("  Name: %s\n", target.Name)
	fmt.Printf("  URL: %s\n", target.URL)
}

func handleTargetsDelete(store *targets.Store, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Error: target ID is required\n")
		fmt.Fprintf(os.Stderr, "Usage: ticketprices targets delete <target-id>\n")
		os.Exit(1)
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid target ID: %v\n", err)
		os.Exit(1)
	}

	if err := store.Delete(id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to delete target: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Deleted target: %s\n", args[0])
}

func handleTargetsSeed(store *targets.Store) {
	if err := store.SeedDefaults(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to seed targets: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Seeded default targets")
}
