package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/internal/loader"
	"github.com/goliatone/go-formbuilder/internal/prompt"
	"github.com/goliatone/go-formbuilder/pkg/playground"
	"github.com/goliatone/go-formbuilder/pkg/preview"
)

func main() {
	schema := flag.String("schema", "", "JSON Schema to start from (path or URL, JSON or YAML)")
	ui := flag.String("ui", "", "UI schema to pair with -schema")
	render := flag.Bool("render", false, "render -schema as preview HTML and exit")
	output := flag.String("output", "", "output file for -render (stdout if empty)")
	historyLimit := flag.Int("history-limit", 0, "maximum undo depth, 0 for unbounded")
	allowDupes := flag.Bool("allow-duplicate-names", false, "allow fields to share a name")
	verbose := flag.Bool("verbose", false, "log debug output to stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if *render {
		html, err := formbuilder.RenderSource(ctx, *schema, *ui, formbuilder.RenderOptions{}, preview.WithLogger(logger))
		if err != nil {
			log.Fatalf("Failed to render form: %v", err)
		}
		if *output != "" {
			if err := os.WriteFile(*output, html, 0o644); err != nil {
				log.Fatalf("Failed to write output: %v", err)
			}
			fmt.Printf("Form written to %s\n", *output)
			return
		}
		fmt.Println(string(html))
		return
	}

	session := playground.NewSession(
		playground.WithLogger(logger),
		playground.WithHistoryLimit(*historyLimit),
		playground.WithDuplicateNames(*allowDupes),
	)
	ld := loader.New(loader.WithHTTP(loader.DefaultTimeout))

	if src := loader.ParseSource(*schema); src != nil {
		rawSchema, rawUI, err := ld.LoadPair(ctx, src, loader.ParseSource(*ui))
		if err != nil {
			log.Fatalf("Failed to load schema: %v", err)
		}
		if err := session.ImportSchema(rawSchema, rawUI); err != nil {
			log.Fatalf("Failed to import schema: %v", err)
		}
	}

	editor := prompt.NewEditor(session, prompt.NewSurveyDriver(os.Stdout),
		prompt.WithLoader(ld),
		prompt.WithLogger(logger),
	)
	if err := editor.Run(ctx); err != nil {
		log.Fatalf("Editor stopped: %v", err)
	}
}
