package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/skirmish/internal/payroll"
)

// ErrWorkerNotFound is returned when a worker lookup yields no results.
var ErrWorkerNotFound = errors.New("worker not found")

// WorkerRepository provides worker persistence operations.
type WorkerRepository struct {
	db *pgxpool.Pool
}

// NewWorkerRepository creates a WorkerRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewWorkerRepository(db *pgxpool.Pool) *WorkerRepository {
	return &WorkerRepository{db: db}
}

// Create inserts w and returns its generated ID.
//
// Precondition: w must be non-nil.
// Postcondition: Returns an ID > 0 or a non-nil error.
func (r *WorkerRepository) Create(ctx context.Context, w *payroll.Worker) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO workers (name, surname, rate, days)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		w.Name(), w.Surname(), w.Rate(), w.Days(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting worker: %w", err)
	}
	return id, nil
}

// Get retrieves a worker by ID.
//
// Postcondition: Returns the Worker or ErrWorkerNotFound.
func (r *WorkerRepository) Get(ctx context.Context, id int64) (*payroll.Worker, error) {
	var (
		name, surname string
		rate, days    int
	)
	err := r.db.QueryRow(ctx,
		`SELECT name, surname, rate, days FROM workers WHERE id = $1`,
		id,
	).Scan(&name, &surname, &rate, &days)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("querying worker: %w", err)
	}
	return payroll.NewWorker(name, surname, rate, days)
}

// UpdateDays stores a new worked day count for the worker with the given ID.
//
// Precondition: 0 <= days <= payroll.MaxDays.
// Postcondition: Returns ErrWorkerNotFound if no row was updated.
func (r *WorkerRepository) UpdateDays(ctx context.Context, id int64, days int) error {
	if days < 0 {
		return fmt.Errorf("worker days %d: %w", days, payroll.ErrNegativeDays)
	}
	if days > payroll.MaxDays {
		return fmt.Errorf("worker days %d: %w", days, payroll.ErrOutOfRange)
	}
	tag, err := r.db.Exec(ctx, `UPDATE workers SET days = $1 WHERE id = $2`, days, id)
	if err != nil {
		return fmt.Errorf("updating worker days: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkerNotFound
	}
	return nil
}
