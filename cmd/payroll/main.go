// Package main provides a CLI tool that computes a worker's salary. Workers
// can be stored in the database and later reloaded by ID to record a new
// day count.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/payroll"
	"github.com/cory-johannsen/skirmish/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file (used with -save and -id)")
	id := flag.Int64("id", 0, "reload the stored worker with this ID instead of creating one")
	name := flag.String("name", "", "worker given name (required without -id)")
	surname := flag.String("surname", "", "worker surname (required without -id)")
	rate := flag.Int("rate", 0, "daily rate")
	days := flag.Int("days", 0, "worked days; with -id, replaces the stored day count")
	save := flag.Bool("save", false, "store the worker in the database")
	flag.Parse()

	if *id > 0 {
		daysSet := false
		flag.Visit(func(f *flag.Flag) {
			if f.Name == "days" {
				daysSet = true
			}
		})
		withRepo(*configPath, func(ctx context.Context, repo *postgres.WorkerRepository) {
			w, err := reload(ctx, repo, *id, *days, daysSet)
			if err != nil {
				log.Fatalf("worker #%d: %v", *id, err)
			}
			report(os.Stdout, w)
		})
		return
	}

	if *name == "" || *surname == "" {
		flag.Usage()
		os.Exit(1)
	}

	w, err := payroll.NewWorker(*name, *surname, *rate, *days)
	if err != nil {
		log.Fatalf("invalid worker: %v", err)
	}
	report(os.Stdout, w)

	if !*save {
		return
	}
	withRepo(*configPath, func(ctx context.Context, repo *postgres.WorkerRepository) {
		newID, err := repo.Create(ctx, w)
		if err != nil {
			log.Fatalf("saving worker: %v", err)
		}
		fmt.Fprintf(os.Stdout, "saved worker #%d [%s]\n", newID, time.Since(start))
	})
}

// workerStore is the subset of WorkerRepository used to reload a worker.
type workerStore interface {
	Get(ctx context.Context, id int64) (*payroll.Worker, error)
	UpdateDays(ctx context.Context, id int64, days int) error
}

// reload fetches worker id and, when setDays is true, stores and applies the
// new day count.
//
// Postcondition: Returns the worker as stored after the call, or the first error.
func reload(ctx context.Context, store workerStore, id int64, days int, setDays bool) (*payroll.Worker, error) {
	w, err := store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !setDays {
		return w, nil
	}
	if err := w.SetDays(days); err != nil {
		return nil, err
	}
	if err := store.UpdateDays(ctx, id, days); err != nil {
		return nil, err
	}
	return w, nil
}

func withRepo(configPath string, fn func(ctx context.Context, repo *postgres.WorkerRepository)) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer pool.Close()
	if err := pool.SchemaReady(ctx); err != nil {
		log.Fatalf("checking schema: %v", err)
	}

	fn(ctx, postgres.NewWorkerRepository(pool.DB()))
}

func report(out io.Writer, w *payroll.Worker) {
	fmt.Fprintf(out, "%s: %d days at %d = %d\n", w.FullName(), w.Days(), w.Rate(), w.Salary())
}
