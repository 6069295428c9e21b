// Copyright 2025 Brightquery
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/brightquery/leadgen"
	"github.com/brightquery/leadgen/ai"
	"github.com/brightquery/leadgen/ai/openai"
	"github.com/brightquery/leadgen/core"
	"github.com/brightquery/leadgen/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "leadgen",
		Usage: "Conversational lead generation over an embedded company corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Load corpus documents from a JSON-lines file into the database",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to JSON-lines corpus file (one document per line)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to write per batch",
						Value: 100,
					},
				},
			},
			{
				Name:   "ask",
				Usage:  "Run one intake conversation and print the lead report",
				Action: askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "AI service host URL (embedding and completion)",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "completion-model",
						Usage: "Completion model name",
						Value: "qwen2.5:3b",
					},
					&cli.StringSliceFlag{
						Name:    "answer",
						Aliases: []string{"a"},
						Usage:   "Intake pair as 'question=answer', repeatable",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of leads to return",
						Value: leadgen.DefaultSearchLimit,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func seedCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	store, err := badger.NewStore(backend)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	input, err := os.Open(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer input.Close()

	batchSize := c.Int("batch-size")
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}

	var batch [][]byte
	total := 0
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		batch = append(batch, []byte(line))
		if len(batch) >= batchSize {
			stored, err := store.PutDocuments(ctx, batch...)
			if err != nil {
				return fmt.Errorf("failed to store documents: %w", err)
			}
			total += stored
			batch = batch[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read corpus file: %w", err)
	}
	if len(batch) > 0 {
		stored, err := store.PutDocuments(ctx, batch...)
		if err != nil {
			return fmt.Errorf("failed to store documents: %w", err)
		}
		total += stored
	}

	count, err := store.CountRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Stored %d documents, database now holds %d records\n", total, count)
	return nil
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	pairs := c.StringSlice("answer")
	if len(pairs) == 0 {
		return fmt.Errorf("at least one --answer pair is required")
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	store, err := badger.NewStore(backend)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithCompletionModel(c.String("completion-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	engine, err := leadgen.NewEngine(store, provider,
		leadgen.WithSearchLimit(c.Int("limit")))
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Close()

	sessionID := ""
	for _, pair := range pairs {
		question, answer, found := strings.Cut(pair, "=")
		if !found {
			return fmt.Errorf("malformed --answer %q: expected 'question=answer'", pair)
		}
		result, err := engine.AppendAnswer(sessionID, question, answer)
		if err != nil {
			return fmt.Errorf("failed to record answer: %w", err)
		}
		sessionID = result.SessionID
	}

	report, err := engine.GenerateLeads(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("lead generation failed: %w", err)
	}

	printReport(report)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printReport(report *core.LeadReport) {
	fmt.Println(report.Message)
	fmt.Println()
	for i, lead := range report.Leads {
		fmt.Printf("%d. %s (score %.2f)\n", i+1, orDash(lead.Company), lead.Score)
		if lead.Contact != "" {
			fmt.Printf("   Contact:  %s\n", lead.Contact)
		}
		if lead.Email != "" {
			fmt.Printf("   Email:    %s\n", lead.Email)
		}
		if lead.Phone != "" {
			fmt.Printf("   Phone:    %s\n", lead.Phone)
		}
		if lead.Website != "" {
			fmt.Printf("   Website:  %s\n", lead.Website)
		}
		if lead.Industry != "" {
			fmt.Printf("   Industry: %s\n", lead.Industry)
		}
		if lead.Region != "" {
			fmt.Printf("   Region:   %s\n", lead.Region)
		}
		fmt.Printf("   Why:      %s\n", strings.Join(lead.Reasons, "; "))
	}
	fmt.Fprintf(os.Stderr, "\n%d leads in %dms from %d answers\n",
		report.Metadata.TotalFound, report.Metadata.ProcessingTimeMs,
		report.Metadata.QuestionAnswerCount)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
