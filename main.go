package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/learnhub/internal/cli"
	"github.com/mrlokans/learnhub/internal/config"
	"github.com/mrlokans/learnhub/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-h", "--help", "help":
			printUsage()
			return
		case "version":
			fmt.Printf("learnhub %s (%s)\n", Version, Commit)
			return
		}
	}

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		if err := entrypoint.Run(cfg, Version); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	name := os.Args[1]
	cmd, err := newCommand(name, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		printUsage()
		os.Exit(1)
	}

	args := os.Args[2:]
	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newCommand resolves a subcommand name other than serve.
func newCommand(name string, cfg *config.Config) (command, error) {
	switch name {
	case "migrate":
		return cli.NewMigrateCommand(cfg), nil
	case "create-admin":
		return cli.NewCreateAdminCommand(cfg), nil
	default:
		return nil, fmt.Errorf("unknown command: %s", name)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve          Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  migrate        Create or update the database schema\n")
	fmt.Fprintf(os.Stderr, "  create-admin   Create an administrator account\n")
	fmt.Fprintf(os.Stderr, "  version        Print the build version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
