// Package payroll provides the Worker value object used to compute salaries
// from a daily rate and a number of worked days.
package payroll

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MaxRate and MaxDays bound the inputs so that rate × days always fits in an
// int64 and each value fits the INTEGER columns of the workers table.
const (
	MaxRate = math.MaxInt32
	MaxDays = math.MaxInt32
)

var (
	// ErrBlankName is returned when a worker's name or surname is empty or whitespace.
	ErrBlankName = errors.New("name must not be blank")
	// ErrNegativeRate is returned when a daily rate below zero is supplied.
	ErrNegativeRate = errors.New("rate must be non-negative")
	// ErrNegativeDays is returned when a day count below zero is supplied.
	ErrNegativeDays = errors.New("days must be non-negative")
	// ErrOutOfRange is returned when a rate or day count exceeds MaxRate or MaxDays.
	ErrOutOfRange = errors.New("value exceeds the supported range")
)

// Worker is an employee paid a fixed rate per worked day.
//
// Invariant: rate >= 0 and days >= 0; name and surname are never blank.
type Worker struct {
	name    string
	surname string
	rate    int
	days    int
}

// NewWorker constructs a Worker.
//
// Precondition: name and surname must be non-blank; rate and days must be >= 0.
// Postcondition: Returns a valid Worker or an error wrapping one of the package sentinels.
func NewWorker(name, surname string, rate, days int) (*Worker, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("worker name: %w", ErrBlankName)
	}
	if strings.TrimSpace(surname) == "" {
		return nil, fmt.Errorf("worker surname: %w", ErrBlankName)
	}
	if err := checkRate(rate); err != nil {
		return nil, err
	}
	if err := checkDays(days); err != nil {
		return nil, err
	}
	return &Worker{name: name, surname: surname, rate: rate, days: days}, nil
}

// Name returns the worker's given name.
func (w *Worker) Name() string { return w.name }

// Surname returns the worker's family name.
func (w *Worker) Surname() string { return w.surname }

// Rate returns the daily rate.
func (w *Worker) Rate() int { return w.rate }

// Days returns the number of worked days.
func (w *Worker) Days() int { return w.days }

// SetRate replaces the daily rate.
//
// Postcondition: On error the previous rate is kept.
func (w *Worker) SetRate(rate int) error {
	if err := checkRate(rate); err != nil {
		return err
	}
	w.rate = rate
	return nil
}

// SetDays replaces the worked day count.
//
// Postcondition: On error the previous day count is kept.
func (w *Worker) SetDays(days int) error {
	if err := checkDays(days); err != nil {
		return err
	}
	w.days = days
	return nil
}

// FullName returns "Surname Name".
func (w *Worker) FullName() string {
	return w.surname + " " + w.name
}

// Salary returns rate × days. The bounds on rate and days keep the product
// exact.
//
// Postcondition: Returns >= 0.
func (w *Worker) Salary() int64 {
	return int64(w.rate) * int64(w.days)
}

func checkRate(rate int) error {
	switch {
	case rate < 0:
		return fmt.Errorf("worker rate %d: %w", rate, ErrNegativeRate)
	case rate > MaxRate:
		return fmt.Errorf("worker rate %d: %w", rate, ErrOutOfRange)
	}
	return nil
}

func checkDays(days int) error {
	switch {
	case days < 0:
		return fmt.Errorf("worker days %d: %w", days, ErrNegativeDays)
	case days > MaxDays:
		return fmt.Errorf("worker days %d: %w", days, ErrOutOfRange)
	}
	return nil
}
