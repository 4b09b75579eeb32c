package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// ErrBattleNotFound is returned when a battle lookup yields no results.
var ErrBattleNotFound = errors.New("battle not found")

// ErrBattleExists is returned when saving a battle whose ID is already stored.
var ErrBattleExists = errors.New("battle already saved")

// BattleRecord is the stored summary of one battle.
type BattleRecord struct {
	ID        uuid.UUID
	Outcome   string
	Rounds    int
	Heroes    int
	Enemies   int
	StartedAt time.Time
	CreatedAt time.Time
}

// BattleRepository persists battle results and their attack log.
type BattleRepository struct {
	db *pgxpool.Pool
}

// NewBattleRepository creates a BattleRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

// Save stores res and every one of its events in a single transaction.
//
// Precondition: res must be non-nil with a non-nil ID.
// Postcondition: Either the battle and all events are stored, or nothing is
// and a non-nil error is returned (ErrBattleExists on a duplicate ID).
func (r *BattleRepository) Save(ctx context.Context, res *combat.Result) error {
	if res == nil || res.ID == uuid.Nil {
		return fmt.Errorf("saving battle: missing result id")
	}
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO battles (id, outcome, rounds, heroes, enemies, started_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			res.ID, res.Outcome.String(), res.Rounds, res.Heroes, res.Enemies, res.StartedAt,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return ErrBattleExists
			}
			return fmt.Errorf("inserting battle: %w", err)
		}

		rows := make([][]any, 0, len(res.Events))
		for i, ev := range res.Events {
			a := ev.Attack
			rows = append(rows, []any{
				res.ID, i + 1, ev.Round, ev.Side.String(),
				a.Attacker, a.Target, a.Kind.String(),
				a.Incoming, a.Dealt, a.TargetHealth, a.Killed,
				strings.Join(ev.Narrative, "\n"),
			})
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"battle_events"},
			[]string{"battle_id", "seq", "round", "side", "attacker", "target", "kind",
				"incoming", "dealt", "health", "killed", "narrative"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("inserting battle events: %w", err)
		}
		return nil
	})
}

// Get retrieves the summary of a stored battle.
//
// Postcondition: Returns the BattleRecord or ErrBattleNotFound.
func (r *BattleRepository) Get(ctx context.Context, id uuid.UUID) (BattleRecord, error) {
	var b BattleRecord
	err := r.db.QueryRow(ctx,
		`SELECT id, outcome, rounds, heroes, enemies, started_at, created_at
		 FROM battles WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.Outcome, &b.Rounds, &b.Heroes, &b.Enemies, &b.StartedAt, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BattleRecord{}, ErrBattleNotFound
		}
		return BattleRecord{}, fmt.Errorf("querying battle: %w", err)
	}
	return b, nil
}

// Narrative returns the stored narrative lines of a battle in attack order.
//
// Postcondition: Returns the lines (empty if the battle had no attacks), or
// ErrBattleNotFound when no such battle exists.
func (r *BattleRepository) Narrative(ctx context.Context, id uuid.UUID) ([]string, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx,
		`SELECT narrative FROM battle_events WHERE battle_id = $1 ORDER BY seq ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying battle events: %w", err)
	}
	texts, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning battle events: %w", err)
	}
	var lines []string
	for _, t := range texts {
		if t != "" {
			lines = append(lines, strings.Split(t, "\n")...)
		}
	}
	return lines, nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
