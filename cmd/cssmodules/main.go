package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const VERSION = "1.0.0"

const usage = `usage:
  cssmodules [flags] complete <file> <line> <column>
  cssmodules [flags] define <file> <line> <column>
  cssmodules [flags] serve

flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("cssmodules", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "./cssmodules.toml", "Path to config file")
	verbose := flags.Bool("verbose", false, "Enable verbose logging")
	version := flags.Bool("version", false, "Print version and exit")
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "cssmodules v%s\n", VERSION)
		return 0
	}

	// Setup logging. Logs always go to stderr so stdout carries only results.
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	cli, err := NewCLI(*configPath)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return 1
	}

	switch cmd := flags.Arg(0); cmd {
	case "complete", "define":
		if flags.NArg() != 4 {
			fmt.Fprintf(stderr, "%s requires three arguments: cssmodules %s <file> <line> <column>\n", cmd, cmd)
			return 2
		}
		if err := cli.Query(cmd, flags.Arg(1), flags.Arg(2), flags.Arg(3), stdout); err != nil {
			slog.Error("query failed", "command", cmd, "error", err)
			return 1
		}
		return 0
	case "serve":
		if err := cli.Serve(stdin, stdout); err != nil {
			slog.Error("server stopped", "error", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		flags.Usage()
		return 2
	}
}
