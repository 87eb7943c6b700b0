package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"newsletter-hub/config"
	"newsletter-hub/internal/model"
	"newsletter-hub/internal/newsletter"
	"newsletter-hub/internal/newsletter/normalize"
	"newsletter-hub/internal/newsletter/title"
	"newsletter-hub/internal/newsletter/usecase"
	"newsletter-hub/internal/task"
	"newsletter-hub/pkg/gemini"
	"newsletter-hub/pkg/jpdate"
	"newsletter-hub/pkg/log"
)

// main is the entry point for the one-shot extraction CLI. It reads OCR
// text (and optionally a pre-fetched AI payload) from files and prints
// the canonical newsletter JSON to stdout.
//
// Usage:
//
//	extract -text ocr.txt [-payload payload.json] [-month 2025-07] [-children c1,c2]
func main() {
	textPath := flag.String("text", "", "path to the OCR text file")
	payloadPath := flag.String("payload", "", "path to an AI payload file (optional)")
	month := flag.String("month", "", "issue month hint, YYYY-MM (optional)")
	children := flag.String("children", "", "comma-separated child ids (optional)")
	flag.Parse()

	if *textPath == "" && *payloadPath == "" {
		fmt.Fprintln(os.Stderr, "either -text or -payload is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "warn", // keep stdout clean for the JSON result
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: false,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	input := newsletter.ExtractInput{IssueMonthHint: *month}
	if *children != "" {
		for _, id := range strings.Split(*children, ",") {
			if id = strings.TrimSpace(id); id != "" {
				input.ChildIDs = append(input.ChildIDs, id)
			}
		}
	}

	if *textPath != "" {
		raw, err := os.ReadFile(*textPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read text file: ", err)
			os.Exit(1)
		}
		input.RawText = string(raw)
	}
	if *payloadPath != "" {
		raw, err := os.ReadFile(*payloadPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read payload file: ", err)
			os.Exit(1)
		}
		input.AIPayload = raw
	}

	var llm gemini.IGemini
	if cfg.Gemini.APIKey != "" {
		client := gemini.NewClient(cfg.Gemini.APIKey)
		if cfg.Gemini.Model != "" {
			client.SetModel(cfg.Gemini.Model)
		}
		llm = client
	}

	dates := jpdate.NewResolver()
	uc := usecase.New(
		logger,
		llm,
		title.NewEngine(title.DefaultWeights()),
		normalize.New(dates),
		dates,
		task.NewGenerator(dates),
		nil, // no board push from the CLI
		nil, // no calendar push from the CLI
	)

	out, err := uc.Extract(ctx, model.Scope{UserID: "cli"}, input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "extract: ", err)
		os.Exit(1)
	}

	result := struct {
		Newsletter model.CanonicalNewsletter `json:"newsletter"`
		Tasks      []model.Task              `json:"tasks"`
	}{out.Newsletter, out.Tasks}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(os.Stderr, "encode: ", err)
		os.Exit(1)
	}
}
