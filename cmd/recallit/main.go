// Copyright 2025 Poiesic Systems
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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/recallit"
	"github.com/poiesic/recallit/query"
	"github.com/poiesic/recallit/scoring"
	"github.com/poiesic/recallit/search"
	"github.com/poiesic/recallit/tuning"
)

func main() {
	app := &cli.App{
		Name:  "recallit",
		Usage: "Conversational memory search over stored chat turns",
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
				Name:      "search",
				Usage:     "Search stored conversation turns",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of results to return",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "candidates",
						Usage: "Number of recent turns considered for scoring",
						Value: 1000,
					},
					&cli.StringFlag{
						Name:  "tuning",
						Usage: "Path to a YAML tuning file (stop words, keywords, weights)",
					},
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Print the parsed query interpretation before results",
					},
				},
			},
			{
				Name:   "recent",
				Usage:  "List the most recent conversation turns",
				Action: recentCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of turns to list",
						Value: 20,
					},
				},
			},
			{
				Name:      "show",
				Usage:     "Show all turns of a conversation in order",
				ArgsUsage: "<conversation-id>",
				Action:    showCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	rawQuery := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if rawQuery == "" {
		return fmt.Errorf("a search query is required")
	}

	maxHits := c.Int("max-hits")
	if maxHits <= 0 {
		return fmt.Errorf("max-hits must be greater than 0")
	}

	db, err := recallit.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	searchOpts := []search.Option{
		search.WithCandidateLimit(c.Int("candidates")),
	}

	if tuningPath := c.String("tuning"); tuningPath != "" {
		tun, err := tuning.Load(tuningPath)
		if err != nil {
			return fmt.Errorf("failed to load tuning file: %w", err)
		}

		parser, err := query.NewParser(tun.ParserOptions()...)
		if err != nil {
			return fmt.Errorf("invalid parser tuning: %w", err)
		}

		scorerOpts, err := tun.ScorerOptions()
		if err != nil {
			return fmt.Errorf("invalid scorer tuning: %w", err)
		}
		scorer, err := scoring.NewScorer(scorerOpts...)
		if err != nil {
			return fmt.Errorf("invalid scorer tuning: %w", err)
		}

		searchOpts = append(searchOpts, search.WithParser(parser), search.WithScorer(scorer))
	}

	searcher, err := db.NewSearcher(searchOpts...)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Close()

	if c.Bool("explain") {
		parser, err := query.NewParser(tuningParserOptions(c)...)
		if err != nil {
			return fmt.Errorf("failed to create parser: %w", err)
		}
		parsed := parser.Parse(rawQuery, nil)
		fmt.Fprintf(os.Stderr, "Intent:         %s\n", parsed.Intent)
		fmt.Fprintf(os.Stderr, "Interpretation: %s\n", parsed.Interpretation)
		fmt.Fprintf(os.Stderr, "Terms:          %s\n", strings.Join(parsed.Terms, ", "))
		fmt.Fprintf(os.Stderr, "Complexity:     %.2f\n", parsed.Complexity)
		fmt.Fprintln(os.Stderr)
	}

	results, err := searcher.Search(ctx, rawQuery, maxHits)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, result := range results {
		turn := result.Turn
		fmt.Printf("%d. [%.3f] %s turn %d (%s)\n",
			i+1, result.Relevance.Score, turn.ConversationId, turn.TurnNumber,
			turn.Timestamp.Format("2006-01-02 15:04"))
		fmt.Printf("   %s\n", result.Relevance.Explanation)
		fmt.Printf("   Q: %s\n", firstLine(turn.Prompt))
		fmt.Printf("   A: %s\n", firstLine(turn.Response))
	}

	return nil
}

// tuningParserOptions rebuilds the parser options used for --explain so the
// printed interpretation matches what the searcher saw.
func tuningParserOptions(c *cli.Context) []query.Option {
	tuningPath := c.String("tuning")
	if tuningPath == "" {
		return nil
	}
	tun, err := tuning.Load(tuningPath)
	if err != nil {
		return nil
	}
	return tun.ParserOptions()
}

func recentCommand(c *cli.Context) error {
	ctx := context.Background()

	limit := c.Int("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	db, err := recallit.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	turns, err := db.TurnRepository().GetRecentTurns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list recent turns: %w", err)
	}

	if len(turns) == 0 {
		fmt.Println("No turns stored.")
		return nil
	}

	for _, turn := range turns {
		fmt.Printf("%s  %s turn %d  %s\n",
			turn.Timestamp.Format("2006-01-02 15:04"),
			turn.ConversationId, turn.TurnNumber, firstLine(turn.Prompt))
	}

	return nil
}

func showCommand(c *cli.Context) error {
	ctx := context.Background()

	conversationId := strings.TrimSpace(c.Args().First())
	if conversationId == "" {
		return fmt.Errorf("a conversation id is required")
	}

	db, err := recallit.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	turns, err := db.TurnRepository().GetTurnsByConversation(ctx, conversationId)
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}

	if len(turns) == 0 {
		fmt.Printf("No turns found for conversation %q.\n", conversationId)
		return nil
	}

	for _, turn := range turns {
		fmt.Printf("--- turn %d (%s, model %s)\n",
			turn.TurnNumber, turn.Timestamp.Format("2006-01-02 15:04"), turn.Model)
		fmt.Printf("Q: %s\n", turn.Prompt)
		fmt.Printf("A: %s\n", turn.Response)
		if len(turn.ToolsUsed) > 0 {
			fmt.Printf("Tools: %s\n", strings.Join(turn.ToolsUsed, ", "))
		}
		fmt.Println()
	}

	return nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	const maxLen = 120
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
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
