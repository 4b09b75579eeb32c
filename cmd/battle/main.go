// Package main provides the battle simulator binary: it reads a hero and
// enemy roster, fights the battle and prints the narrative.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/roster"
	"github.com/cory-johannsen/skirmish/internal/game/weapon"
	"github.com/cory-johannsen/skirmish/internal/observability"
	"github.com/cory-johannsen/skirmish/internal/scripting"
	"github.com/cory-johannsen/skirmish/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = defaults and SKIRMISH_ env")
	inputPath := flag.String("input", "-", "roster file; - reads stdin")
	replay := flag.String("replay", "", "print the stored narrative of a saved battle id and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *replay != "" {
		if err := replayBattle(ctx, cfg, *replay, os.Stdout); err != nil {
			logger.Fatal("replaying battle", zap.Error(err))
		}
		return
	}

	in := io.Reader(os.Stdin)
	if *inputPath != "-" {
		f, err := os.Open(*inputPath)
		if err != nil {
			logger.Fatal("opening roster", zap.String("path", *inputPath), zap.Error(err))
		}
		defer f.Close()
		in = f
	}

	res, err := run(ctx, cfg, logger, in, os.Stdout)
	if err != nil {
		logger.Fatal("battle failed", zap.Error(err))
	}

	if cfg.Database.Enabled {
		if err := persist(ctx, cfg, res); err != nil {
			logger.Fatal("saving battle", zap.Error(err))
		}
		logger.Info("battle saved", zap.String("battle_id", res.ID.String()))
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

// run parses the roster from in, fights the battle and writes the narrative
// followed by the closing summary to out.
//
// Precondition: cfg must be valid; logger must be non-nil.
// Postcondition: On a stalemate or round limit the partial narrative and the
// undecided summary are still written, and the engine error is returned.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger, in io.Reader, out io.Writer) (*combat.Result, error) {
	catalog := weapon.DefaultCatalog()
	if cfg.Battle.WeaponsFile != "" {
		c, err := weapon.LoadCatalog(cfg.Battle.WeaponsFile)
		if err != nil {
			return nil, fmt.Errorf("loading weapons: %w", err)
		}
		catalog = c
	}

	opts := []combat.Option{combat.WithMaxRounds(cfg.Battle.MaxRounds)}
	if cfg.Battle.ScriptDir != "" {
		mgr := scripting.NewManager(logger, cfg.Battle.InstructionLimit)
		defer mgr.Close()
		n, err := mgr.LoadDir(cfg.Battle.ScriptDir)
		if err != nil {
			return nil, fmt.Errorf("loading battle scripts: %w", err)
		}
		logger.Info("battle scripts loaded", zap.Int("count", n), zap.String("dir", cfg.Battle.ScriptDir))
		opts = append(opts, combat.WithHooks(mgr))
	}

	r, err := roster.Parse(in, catalog)
	if err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}

	res, runErr := combat.NewEngine(logger, opts...).Run(ctx, r.Heroes, r.Enemies)
	for _, ev := range res.Events {
		for _, line := range ev.Narrative {
			fmt.Fprintln(out, line)
		}
	}
	fmt.Fprintln(out, combat.Summary(res.Outcome))
	return res, runErr
}

func persist(ctx context.Context, cfg config.Config, res *combat.Result) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()
	if err := pool.SchemaReady(ctx); err != nil {
		return err
	}
	return postgres.NewBattleRepository(pool.DB()).Save(ctx, res)
}

func replayBattle(ctx context.Context, cfg config.Config, rawID string, out io.Writer) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("parsing battle id: %w", err)
	}
	if !cfg.Database.Enabled {
		return errors.New("replay requires database.enabled")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	repo := postgres.NewBattleRepository(pool.DB())
	b, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	lines, err := repo.Narrative(ctx, id)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "%s in %d rounds (%d heroes vs %d enemies)\n", b.Outcome, b.Rounds, b.Heroes, b.Enemies)
	return nil
}
