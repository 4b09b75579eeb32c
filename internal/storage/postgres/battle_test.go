package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/storage/postgres"
	"github.com/cory-johannsen/skirmish/internal/testutil"
)

func sampleResult() *combat.Result {
	return &combat.Result{
		ID:        uuid.New(),
		Outcome:   combat.Victory,
		Rounds:    2,
		Heroes:    1,
		Enemies:   1,
		StartedAt: time.Now().UTC().Truncate(time.Microsecond),
		Events: []combat.Event{
			{
				Round: 1,
				Side:  combat.SideHeroes,
				Attack: character.AttackResult{
					Attacker: "Arthur", Target: "Rat", Kind: character.Physical,
					Incoming: 20, Dealt: 8, TargetHealth: 4,
				},
				Narrative: []string{"Arthur strikes Rat for 8 damage (Rat has 4 health left)."},
			},
			{
				Round: 2,
				Side:  combat.SideHeroes,
				Attack: character.AttackResult{
					Attacker: "Arthur", Target: "Rat", Kind: character.Physical,
					Incoming: 20, Dealt: 8, TargetHealth: 0, Killed: true,
				},
				Narrative: []string{
					"Arthur strikes Rat for 8 damage (Rat has 0 health left).",
					"Rat has fallen.",
				},
			},
		},
	}
}

func TestBattleRepository_SaveAndGet(t *testing.T) {
	repo := postgres.NewBattleRepository(testutil.NewPool(t))
	ctx := context.Background()
	res := sampleResult()

	require.NoError(t, repo.Save(ctx, res))

	got, err := repo.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
	assert.Equal(t, "victory", got.Outcome)
	assert.Equal(t, 2, got.Rounds)
	assert.Equal(t, 1, got.Heroes)
	assert.Equal(t, 1, got.Enemies)
	assert.True(t, res.StartedAt.Equal(got.StartedAt))
	assert.False(t, got.CreatedAt.IsZero())

	lines, err := repo.Narrative(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Arthur strikes Rat for 8 damage (Rat has 4 health left).",
		"Arthur strikes Rat for 8 damage (Rat has 0 health left).",
		"Rat has fallen.",
	}, lines)
}

func TestBattleRepository_SaveDuplicate(t *testing.T) {
	repo := postgres.NewBattleRepository(testutil.NewPool(t))
	ctx := context.Background()
	res := sampleResult()

	require.NoError(t, repo.Save(ctx, res))
	err := repo.Save(ctx, res)
	assert.ErrorIs(t, err, postgres.ErrBattleExists)
}

func TestBattleRepository_SaveNoEvents(t *testing.T) {
	repo := postgres.NewBattleRepository(testutil.NewPool(t))
	ctx := context.Background()
	res := &combat.Result{ID: uuid.New(), Outcome: combat.Victory, StartedAt: time.Now()}

	require.NoError(t, repo.Save(ctx, res))
	lines, err := repo.Narrative(ctx, res.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestBattleRepository_NotFound(t *testing.T) {
	repo := postgres.NewBattleRepository(testutil.NewPool(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, postgres.ErrBattleNotFound)

	_, err = repo.Narrative(ctx, uuid.New())
	assert.ErrorIs(t, err, postgres.ErrBattleNotFound)
}
