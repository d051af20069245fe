package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"iter"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/recallit"
	"github.com/poiesic/recallit/core"
	"github.com/poiesic/recallit/storage"
)

type seedTurn struct {
	prompt   string
	response string
	model    string
	tools    []string
}

var conversations = map[string][]seedTurn{
	"go-errors": {
		{
			prompt:   "how to wrap errors in Go",
			response: "Use fmt.Errorf with the %w verb so errors.Is and errors.As can unwrap the chain.",
			model:    "gpt-4",
			tools:    []string{"editor"},
		},
		{
			prompt:   "errors.Is returns false for my wrapped error",
			response: "Check that every layer wraps with %w rather than %v, and that the sentinel is compared by identity.",
			model:    "gpt-4",
			tools:    []string{"debugger"},
		},
		{
			prompt:   "show an example of a custom error type",
			response: "Define a struct with an Error() string method and implement Unwrap() error to join the chain.",
			model:    "gpt-4",
		},
	},
	"db-tuning": {
		{
			prompt:   "what is a write amplification factor",
			response: "The ratio between bytes written to storage and bytes written by the application, driven up by compaction.",
			model:    "claude-3-opus",
		},
		{
			prompt:   "compare LSM trees vs B-trees for write-heavy workloads",
			response: "LSM trees batch writes into sorted runs and favor ingest throughput, while B-trees update pages in place and favor point reads.",
			model:    "claude-3-opus",
			tools:    []string{"search"},
		},
		{
			prompt:   "my compaction keeps stalling, how do I fix the issue",
			response: "Raise the number of compaction workers and check that the level sizes follow the usual tenfold progression.",
			model:    "claude-3-opus",
			tools:    []string{"profiler"},
		},
	},
	"web-deploy": {
		{
			prompt:   "how to configure TLS termination behind a load balancer",
			response: "Terminate TLS at the balancer and forward over a private network, passing the original scheme in a header.",
			model:    "gpt-3.5-turbo",
		},
		{
			prompt:   "the health check endpoint returns a 502 error",
			response: "The upstream is likely refusing connections. Confirm the service binds the address the balancer probes.",
			model:    "gpt-3.5-turbo",
			tools:    []string{"terminal"},
		},
	},
}

var (
	seedFileName = flag.String("src", "", "file of tab-separated prompt/response pairs")
	dbPath       = flag.String("db", "./recall_db", "path to the database directory")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// pairsFromFile returns an iterator over prompt/response pairs read from a
// file of tab-separated lines. Lines without a tab are skipped.
func pairsFromFile(filename string) (iter.Seq2[string, string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string, string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			prompt, response, ok := strings.Cut(scanner.Text(), "\t")
			if !ok {
				continue
			}
			if !yield(prompt, response) {
				return
			}
		}
	}, nil
}

// seedFromFile stores each prompt/response pair as a turn of one imported
// conversation, one minute apart. Turn IDs are derived from the pair
// content, so re-running the seeder over the same file skips pairs that
// are already stored.
func seedFromFile(ctx context.Context, repo storage.TurnRepository, source iter.Seq2[string, string]) error {
	base := time.Now().UTC().Add(-24 * time.Hour)
	turnNumber := 0
	added := 0
	skipped := 0

	for prompt, response := range source {
		turnNumber++
		id := core.IDFromContent(prompt + "\t" + response)

		if _, err := repo.GetTurn(ctx, id); err == nil {
			skipped++
			continue
		} else if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		turn := &core.ConversationTurn{
			Id:             id,
			ConversationId: "imported",
			TurnNumber:     turnNumber,
			Timestamp:      base.Add(time.Duration(turnNumber) * time.Minute),
			Prompt:         prompt,
			Response:       response,
			Model:          "imported",
		}
		if _, err := repo.AddTurns(ctx, turn); err != nil {
			return err
		}
		added++
	}

	slog.Info("seeded turns from file", "added", added, "skipped", skipped)
	return nil
}

// seedBuiltin stores the built-in sample conversations.
func seedBuiltin(ctx context.Context, repo storage.TurnRepository) error {
	base := time.Now().UTC().Add(-48 * time.Hour)
	total := 0

	for conversationId, seedTurns := range conversations {
		turns := make([]*core.ConversationTurn, 0, len(seedTurns))
		for i, st := range seedTurns {
			turns = append(turns, &core.ConversationTurn{
				ConversationId: conversationId,
				TurnNumber:     i + 1,
				Timestamp:      base.Add(time.Duration((total+i)*10) * time.Minute),
				Prompt:         st.prompt,
				Response:       st.response,
				Model:          st.model,
				ToolsUsed:      st.tools,
			})
		}
		if _, err := repo.AddTurns(ctx, turns...); err != nil {
			return err
		}
		total += len(turns)
	}

	slog.Info("seeded built-in conversations", "conversations", len(conversations), "turns", total)
	return nil
}

func main() {
	db, err := recallit.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := db.TurnRepository()

	if *seedFileName != "" {
		source, err := pairsFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
		if err := seedFromFile(ctx, repo, source); err != nil {
			panic(err)
		}
		return
	}

	if err := seedBuiltin(ctx, repo); err != nil {
		panic(err)
	}
}
