package main

import (
	"fmt"
	"os"

	"github.com/scott324/STA-141B-Ticket-Comparison/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	subcommand := os.Args[1]

	switch subcommand {
	case "collect":
		handleCollect(cfg, os.Args[2:])
	case "listings":
		handleListings(cfg, os.Args[2:])
	case "targets":
		if len(os.Args) < 3 {
			printTargetsUsage()
			os.Exit(1)
		}
		handleTargetsCommand(os.Args[2], cfg, os.Args[3:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("ticketprices - Ticket price collection across resale platforms")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ticketprices <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  collect    Fetch API events and scrape per-event minimum prices")
	fmt.Println("  listings   Scrape configured listing pages")
	fmt.Println("  targets    Manage scrape targets")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  TICKETPRICES_API_KEY     Ticketmaster Discovery API key")
	fmt.Println("  TICKETPRICES_USER_AGENT  Client identity for listing-page fetches")
	fmt.Println("  TICKETPRICES_DB          Path to the targets database (default: targets.db)")
}

func printTargetsUsage() {
	fmt.Println("ticketprices targets - Manage scrape targets")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ticketprices targets <action> [arguments]")
	fmt.Println()
	fmt.Println("Actions:")
	fmt.Println("  list       List all targets")
	fmt.Println("  add        Add a new target")
	fmt.Println("  delete     Delete a target")
	fmt.Println("  seed       Insert the default Lakers targets")
	fmt.Println("  help       Show this help message")
}
