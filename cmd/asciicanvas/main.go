package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"asciicanvas/internal/app"
	"asciicanvas/internal/artist"
	"asciicanvas/internal/awsscan"
	"asciicanvas/internal/config"
	"asciicanvas/internal/console"
	"asciicanvas/internal/llmclient"
	"asciicanvas/internal/recommender"
	"asciicanvas/internal/safeio"
)

func main() {
	region := flag.String("region", "", "AWS region to scan in aws mode (defaults to the CLI's configured region)")
	style := flag.String("style", artist.StyleDetailed, "diagram style: detailed, compact or flowchart")
	out := flag.String("out", "", "batch-mode output file (overrides the second positional argument)")
	verbose := flag.Bool("verbose", false, "log provider requests to stderr")
	flag.Parse()

	if !artist.ValidStyle(*style) {
		log.Fatalf("unknown style %q (choose one of: %s)", *style, strings.Join(artist.Styles(), ", "))
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	ui := console.Default()

	gemini, err := llmclient.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.DesignModel)
	if err != nil {
		log.Fatal(err)
	}
	groq, err := llmclient.NewGroqClient(cfg.GroqAPIKey, cfg.DiagramModel)
	if err != nil {
		log.Fatal(err)
	}

	// Diagrams go to Groq first and fall back to the design model.
	fallback := llmclient.NewFallback(groq, gemini)
	fallback.OnFallback = func(err error) {
		ui.Warnf("Diagram provider error: %v", err)
		ui.Infof("Trying fallback provider...")
	}

	var designClient llmclient.Client = gemini
	var diagramClient llmclient.Client = fallback
	if *verbose {
		designClient = llmclient.WithLogging(designClient, nil)
		diagramClient = llmclient.WithLogging(diagramClient, nil)
	}

	a := &app.App{
		UI:           ui,
		Rec:          recommender.New(designClient),
		Art:          artist.New(diagramClient),
		DefaultStyle: *style,
		NewScanner: func() *awsscan.Scanner {
			return awsscan.New(nil, ui, *region)
		},
	}

	args := flag.Args()
	if len(args) == 0 {
		dir, err := safeio.NewOutputDir(cfg.OutputDir)
		if err != nil {
			log.Fatal(err)
		}
		a.Out = dir
		if err := a.Interactive(ctx); err != nil {
			os.Exit(1)
		}
		return
	}

	outputPath := *out
	if outputPath == "" && len(args) > 1 {
		outputPath = args[1]
	}
	if err := a.Batch(ctx, args[0], outputPath); err != nil {
		os.Exit(1)
	}
}
