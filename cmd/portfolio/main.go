package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "head":
		err = runHead(os.Args[2:], os.Stdout)
	case "version":
		fmt.Printf("portfolio %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`portfolio - gbengaoni.com site server and head metadata renderer

Usage:
  portfolio <command> [flags]

Commands:
  serve         Start the HTTP server
  head          Print the <head> fragment for a path
  version       Print the portfolio version
  help          Show this help message

Flags:
  -config FILE  YAML config file (default $PORTFOLIO_CONFIG)
  -path PATH    Page path for head (default "/")

Examples:
  portfolio serve -config portfolio.yaml
  portfolio head -path /about`)
}
