// Package app sequences the interactive and batch workflows: description or
// AWS scan in, validated design, rendered diagram, optional save.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"asciicanvas/internal/artist"
	"asciicanvas/internal/awsscan"
	"asciicanvas/internal/console"
	"asciicanvas/internal/design"
	"asciicanvas/internal/recommender"
	"asciicanvas/internal/safeio"
)

const separator = "======================================================================"

// App wires the agents together. All collaborators are injected so the
// flows can run against fakes.
type App struct {
	UI  *console.Console
	Rec *recommender.Recommender
	Art *artist.Artist
	Out *safeio.OutputDir

	// DefaultStyle seeds the interactive style prompt and is used as-is in
	// batch mode. Empty means artist.StyleDetailed.
	DefaultStyle string

	// NewScanner builds a scanner bound to the UI and region; swapped for a
	// fake-backed one in tests.
	NewScanner func() *awsscan.Scanner
}

func (a *App) defaultStyle() string {
	if a.DefaultStyle == "" {
		return artist.StyleDetailed
	}
	return a.DefaultStyle
}

// Interactive runs the full prompted session.
func (a *App) Interactive(ctx context.Context) error {
	a.UI.Banner()

	var d *design.Design

	method := a.UI.AskChoice("How would you like to provide the system?", []string{"describe", "aws"}, "describe")
	if method == "aws" {
		scanner := a.NewScanner()
		if err := scanner.Scan(ctx); err != nil {
			a.UI.Errorf("AWS scan failed: %v", err)
			return err
		}
		d = scanner.ConvertToDesign()
	} else {
		description := a.UI.Multiline("📝 Describe your system or application:")
		if strings.TrimSpace(description) == "" {
			a.UI.Errorf("No description provided. Exiting.")
			return nil
		}

		a.UI.Infof("\n🤖 Agent 1: Analyzing your description and designing system architecture...")
		var err error
		d, err = a.Rec.Recommend(ctx, description)
		if err != nil {
			a.UI.Errorf("Error generating design: %v", err)
			return err
		}
	}

	a.showDesign(d)

	if a.UI.Confirm("Would you like to refine this design?", false) {
		feedback := a.UI.Multiline("What would you like to change?")
		a.UI.Infof("\n🤖 Refining design...")
		refined, err := a.Rec.Refine(ctx, d, feedback)
		if err != nil {
			a.UI.Errorf("Error refining design: %v", err)
			return err
		}
		d = refined
		a.UI.Successf("Design updated!")
		a.UI.Println()
	}

	a.UI.Infof("🎨 Agent 2: Creating ASCII art diagram...")
	style := a.UI.AskChoice("Choose diagram style", artist.Styles(), a.defaultStyle())

	diagram, err := a.Art.Render(ctx, d, style)
	if err != nil {
		a.UI.Errorf("Error generating ASCII diagram: %v", err)
		return err
	}

	a.UI.Println()
	a.UI.Println(separator)
	a.UI.Println(diagram)
	a.UI.Println(separator)
	a.UI.Println()

	if a.UI.Confirm("Would you like to save this diagram?", true) {
		filename := a.UI.Ask("Enter filename (or press Enter for auto-generated)", "")
		if filename != "" && !strings.HasSuffix(filename, ".txt") {
			filename += ".txt"
		}
		path, err := a.Out.Save(filename, []byte(diagram))
		if err != nil {
			a.UI.Errorf("Error saving diagram: %v", err)
			return err
		}
		a.UI.Successf("Diagram saved to: %s", path)
	}

	a.UI.Println()
	a.UI.Successf("✨ Done! Thank you for using ASCII Canvas AI")
	return nil
}

// Batch reads a description file, generates and renders, and writes the
// diagram to outputPath or standard output. A missing input file fails
// before any remote call.
func (a *App) Batch(ctx context.Context, inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		a.UI.Errorf("Error: cannot read input file: %v", err)
		return fmt.Errorf("app: read input: %w", err)
	}
	description := string(data)
	if strings.TrimSpace(description) == "" {
		a.UI.Errorf("Error: input file is empty")
		return recommender.ErrEmptyDescription
	}

	a.UI.Infof("Generating design...")
	d, err := a.Rec.Recommend(ctx, description)
	if err != nil {
		a.UI.Errorf("Error generating design: %v", err)
		return err
	}

	a.UI.Infof("Creating ASCII diagram...")
	diagram, err := a.Art.Render(ctx, d, a.defaultStyle())
	if err != nil {
		a.UI.Errorf("Error generating ASCII diagram: %v", err)
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(diagram), 0o644); err != nil {
			a.UI.Errorf("Error writing output file: %v", err)
			return fmt.Errorf("app: write output: %w", err)
		}
		a.UI.Successf("Saved to: %s", outputPath)
		return nil
	}
	a.UI.Println()
	a.UI.Println(diagram)
	return nil
}

func (a *App) showDesign(d *design.Design) {
	a.UI.Println()
	a.UI.Println(separator)
	a.UI.Printf("%s\n\n%s\n", d.Title, d.Description)

	a.UI.Println()
	a.UI.Println("Components:")
	for _, c := range d.Components {
		a.UI.Printf("  • %s (%s): %s\n", c.Name, c.Type, c.Description)
	}

	a.UI.Println()
	a.UI.Println("Connections:")
	for _, c := range d.Connections {
		a.UI.Printf("  • %s → %s (%s)\n", c.FromComponent, c.ToComponent, c.ConnectionType)
		a.UI.Printf("    %s\n", c.Description)
	}

	if len(d.Notes) > 0 {
		a.UI.Println()
		a.UI.Println("Notes:")
		for _, n := range d.Notes {
			a.UI.Printf("  • %s\n", n)
		}
	}
	a.UI.Println(separator)
	a.UI.Println()
}
