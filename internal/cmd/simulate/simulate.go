// Package simulate parses simulate command flags and runs an offline
// reconciliation replay against a session snapshot.
package simulate

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	entrypoint "github.com/louisbranch/scrimmage.space/internal/platform/cmd"
	"github.com/louisbranch/scrimmage.space/internal/services/match/app"
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/store"
	"github.com/louisbranch/scrimmage.space/internal/services/match/storage/sqlite"
)

// maxPasses bounds the fixed-point loop. A single pass emits at most one
// round move, so a healthy snapshot converges in far fewer passes.
const maxPasses = 64

// Config holds simulate command configuration.
type Config struct {
	SnapshotPath     string `env:"SCRIMMAGE_SPACE_SIMULATE_SNAPSHOT"`
	ResultsPath      string `env:"SCRIMMAGE_SPACE_SIMULATE_RESULTS"`
	JournalPath      string `env:"SCRIMMAGE_SPACE_SIMULATE_JOURNAL"`
	LockRoundAdvance bool   `env:"SCRIMMAGE_SPACE_SIMULATE_LOCK_ROUND_ADVANCE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.SnapshotPath, "snapshot", cfg.SnapshotPath, "Path to the session snapshot JSON")
	fs.StringVar(&cfg.ResultsPath, "results", cfg.ResultsPath, "Optional path to a result feed to replay (JSON objects or array)")
	fs.StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "Optional sqlite path to journal reconciler actions")
	fs.BoolVar(&cfg.LockRoundAdvance, "lock", cfg.LockRoundAdvance, "Freeze the active round while reconciling")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run replays the snapshot and result feed, reconciles to a fixed point, and
// prints the action log to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if cfg.SnapshotPath == "" {
		return errors.New("simulate: -snapshot is required")
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSimulate, func(ctx context.Context) error {
		return run(ctx, cfg, out)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	snap, err := loadSnapshot(cfg.SnapshotPath)
	if err != nil {
		return err
	}

	var opts []app.Option
	if cfg.JournalPath != "" {
		journal, err := sqlite.Open(cfg.JournalPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer journal.Close()
		opts = append(opts, app.WithAuditStore(journal))
	}

	service := app.New(opts...)
	if err := service.Hydrate(ctx, snap); err != nil {
		return fmt.Errorf("hydrate snapshot: %w", err)
	}

	if cfg.ResultsPath != "" {
		inputs, err := loadResults(cfg.ResultsPath)
		if err != nil {
			return err
		}
		for _, input := range inputs {
			if _, err := service.RegisterResult(ctx, input); err != nil {
				return fmt.Errorf("register result for round %s: %w", input.RoundID, err)
			}
		}
	}

	enc := json.NewEncoder(out)
	total := 0
	for pass := 0; pass < maxPasses; pass++ {
		actions, err := service.VerifyIntegrity(ctx, cfg.LockRoundAdvance)
		if err != nil {
			return fmt.Errorf("verify integrity: %w", err)
		}
		for _, action := range actions {
			if err := enc.Encode(action); err != nil {
				return err
			}
		}
		total += len(actions)
		if len(actions) == 0 {
			break
		}
	}

	views := service.Views()
	state := views.ViewState
	fmt.Fprintf(out, "session=%s actions=%d current_round=%s current_participant=%s pending=%d\n",
		snap.Session.ID, total, state.CurrentRoundID, state.CurrentParticipantID, len(views.PendingRoundIDs))
	return nil
}

func loadSnapshot(path string) (store.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return store.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// loadResults accepts either a JSON array of result inputs or a stream of
// concatenated JSON objects, one per result.
func loadResults(path string) ([]store.ResultInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode results: %w", err)
	}

	var inputs []store.ResultInput
	if delim, ok := tok.(json.Delim); ok && delim == '[' {
		for dec.More() {
			var input store.ResultInput
			if err := dec.Decode(&input); err != nil {
				return nil, fmt.Errorf("decode results: %w", err)
			}
			inputs = append(inputs, input)
		}
		return inputs, nil
	}

	// Concatenated objects. Re-open so the first value is not lost to the
	// token scan.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	dec = json.NewDecoder(f)
	for {
		var input store.ResultInput
		if err := dec.Decode(&input); err != nil {
			if errors.Is(err, io.EOF) {
				return inputs, nil
			}
			return nil, fmt.Errorf("decode results: %w", err)
		}
		inputs = append(inputs, input)
	}
}
