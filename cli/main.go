package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"ytslides/auth"
	"ytslides/config"
	"ytslides/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ytslides", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var input, title string
	fs.StringVar(&input, "input", "", "File containing YouTube URLs (one per line)")
	fs.StringVar(&input, "i", "", "Shorthand for --input")
	fs.StringVar(&title, "title", config.DefaultTitle, "Title for the presentation")
	fs.StringVar(&title, "t", config.DefaultTitle, "Shorthand for --title")
	fs.Usage = func() {
		fmt.Fprintf(stderr, `ytslides - Create Google Slides from YouTube videos

Usage:
  ytslides --input <file> [--title <title>]

Each non-empty line of the input file is a YouTube link; every link becomes
a slide with the video embedded and set to autoplay.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if input == "" {
		fmt.Fprintf(stderr, "Error: the following arguments are required: --input/-i\n")
		fs.Usage()
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if !flagSet(fs, "title", "t") {
		title = cfg.DefaultTitle
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver, err := pipeline.Setup(ctx, cfg, stdout)
	if err != nil {
		printError(stderr, err)
		return 1
	}
	defer driver.Close()

	if _, err := driver.Run(ctx, input, title); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

// flagSet reports whether any of names was given on the command line.
func flagSet(fs *flag.FlagSet, names ...string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				set = true
			}
		}
	})
	return set
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if errors.Is(err, auth.ErrClientSecretMissing) {
		fmt.Fprintf(w, "Download an OAuth client ID (Desktop app) from the Google Cloud console and save it as the client secret file.\n")
	}
}
