package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"visval/internal/runner"
)

// RunRecord summarizes one stored run for history listings.
type RunRecord struct {
	RunID      string
	Endpoint   string
	InputRoot  string
	StartedAt  time.Time
	FinishedAt time.Time
	Classes    int
	Images     int
	Accuracy   float64
	F1         float64
	MCC        float64
}

// RecordRun inserts a run and its per-file results.
func RecordRun(ctx context.Context, db *sql.DB, results runner.Results) error {
	if db == nil {
		return errors.New("store: db is nil")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, endpoint, input_root, started_at, finished_at, classes, images, accuracy, f1, mcc)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		results.RunID,
		results.Endpoint,
		results.InputRoot,
		results.StartedAt,
		results.FinishedAt,
		results.Summary.Classes,
		results.Summary.Images,
		results.Summary.Accuracy,
		results.Summary.F1,
		results.Summary.MCC,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, file := range results.Files {
		var confidence sql.NullFloat64
		if file.Confidence != nil {
			confidence = sql.NullFloat64{Float64: *file.Confidence, Valid: true}
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO file_results (result_id, run_id, category, truth, filename, label, confidence, duration_ms, status)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(),
			results.RunID,
			file.Category,
			file.Truth,
			file.Filename,
			file.Label,
			confidence,
			file.DurationMS,
			file.Status,
		); err != nil {
			return fmt.Errorf("insert file result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history transaction: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func ListRuns(ctx context.Context, db *sql.DB, limit int) ([]RunRecord, error) {
	if db == nil {
		return nil, errors.New("store: db is nil")
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(
		ctx,
		`SELECT run_id, endpoint, input_root, started_at, finished_at, classes, images, accuracy, f1, mcc
		 FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var record RunRecord
		if err := rows.Scan(
			&record.RunID,
			&record.Endpoint,
			&record.InputRoot,
			&record.StartedAt,
			&record.FinishedAt,
			&record.Classes,
			&record.Images,
			&record.Accuracy,
			&record.F1,
			&record.MCC,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}
