package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/payroll"
	"github.com/cory-johannsen/skirmish/internal/storage/postgres"
	"github.com/cory-johannsen/skirmish/internal/testutil"
)

func TestReport(t *testing.T) {
	w, err := payroll.NewWorker("Grace", "Hopper", 150, 20)
	require.NoError(t, err)

	var buf bytes.Buffer
	report(&buf, w)
	assert.Equal(t, "Hopper Grace: 20 days at 150 = 3000\n", buf.String())
}

func TestReload_UpdatesStoredDays(t *testing.T) {
	repo := postgres.NewWorkerRepository(testutil.NewPool(t))
	ctx := context.Background()

	w, err := payroll.NewWorker("Grace", "Hopper", 150, 20)
	require.NoError(t, err)
	id, err := repo.Create(ctx, w)
	require.NoError(t, err)

	got, err := reload(ctx, repo, id, 0, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), got.Salary())

	got, err = reload(ctx, repo, id, 22, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3300), got.Salary())

	stored, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 22, stored.Days())

	_, err = reload(ctx, repo, id, -1, true)
	assert.ErrorIs(t, err, payroll.ErrNegativeDays)
	stored, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 22, stored.Days())

	_, err = reload(ctx, repo, id+1000, 5, true)
	assert.ErrorIs(t, err, postgres.ErrWorkerNotFound)
}
