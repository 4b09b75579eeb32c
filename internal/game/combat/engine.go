package combat

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/character"
)

// Engine runs battles. An Engine holds no per-battle state; each Run owns its
// two rosters for its duration and is fully synchronous.
type Engine struct {
	logger    *zap.Logger
	hooks     Hooks
	maxRounds int
}

// Option configures an Engine.
type Option func(*Engine)

// WithHooks installs battle hooks. A nil hooks value is ignored.
func WithHooks(h Hooks) Option {
	return func(e *Engine) {
		if h != nil {
			e.hooks = h
		}
	}
}

// WithMaxRounds caps the number of rounds per battle; 0 means unlimited.
func WithMaxRounds(n int) Option {
	return func(e *Engine) { e.maxRounds = n }
}

// NewEngine creates a battle Engine.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a non-nil Engine ready for use.
func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{logger: logger, hooks: noHooks{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run fights heroes against enemies until one side has no living member.
// Each round heroes act before enemies. The outcome is Victory iff every
// enemy is dead at the end.
//
// Run never changes roster membership; dead characters stay in place and are
// skipped. If a round leaves every character's health and mana exactly as it
// was, the battle has reached a fixed point and Run returns ErrStalemate. ctx
// is checked once per round.
//
// Postcondition: Returns a non-nil Result. On error Outcome is Undecided and
// Events holds every attack resolved so far.
func (e *Engine) Run(ctx context.Context, heroes, enemies []*character.Character) (*Result, error) {
	res := &Result{
		ID:        uuid.New(),
		Heroes:    len(heroes),
		Enemies:   len(enemies),
		StartedAt: time.Now(),
	}
	log := e.logger.With(zap.String("battle_id", res.ID.String()))
	log.Info("battle started",
		zap.Int("heroes", len(heroes)),
		zap.Int("enemies", len(enemies)),
	)

	for character.AnyAlive(heroes) && character.AnyAlive(enemies) {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("battle interrupted after %d rounds: %w", res.Rounds, err)
		}
		if e.maxRounds > 0 && res.Rounds >= e.maxRounds {
			log.Warn("battle round limit reached", zap.Int("rounds", res.Rounds))
			return res, fmt.Errorf("%w after %d rounds", ErrRoundLimit, res.Rounds)
		}

		before := fingerprint(heroes, enemies)
		res.Rounds++
		events := ResolveRound(res.Rounds, heroes, enemies, e.hooks)
		for _, ev := range events {
			log.Debug("attack",
				zap.Int("round", ev.Round),
				zap.String("side", ev.Side.String()),
				zap.String("attacker", ev.Attack.Attacker),
				zap.String("target", ev.Attack.Target),
				zap.String("kind", ev.Attack.Kind.String()),
				zap.Int("incoming", ev.Attack.Incoming),
				zap.Int("dealt", ev.Attack.Dealt),
				zap.Int("target_health", ev.Attack.TargetHealth),
			)
		}
		res.Events = append(res.Events, events...)

		if slices.Equal(before, fingerprint(heroes, enemies)) {
			log.Warn("battle stalemate: no damage and no mana spent in a full round",
				zap.Int("round", res.Rounds),
			)
			return res, fmt.Errorf("%w (round %d)", ErrStalemate, res.Rounds)
		}
	}

	if character.AnyAlive(enemies) {
		res.Outcome = Defeat
	} else {
		res.Outcome = Victory
	}
	log.Info("battle finished",
		zap.String("outcome", res.Outcome.String()),
		zap.Int("rounds", res.Rounds),
		zap.Int("attacks", len(res.Events)),
	)
	return res, nil
}

// fingerprint captures the only state an attack can change.
func fingerprint(sides ...[]*character.Character) []int {
	var fp []int
	for _, side := range sides {
		for _, c := range side {
			if c != nil {
				fp = append(fp, c.Health, c.Mana)
			}
		}
	}
	return fp
}
