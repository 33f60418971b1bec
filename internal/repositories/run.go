package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/dmrsv-appdata/internal/models"
	"github.com/desertthunder/dmrsv-appdata/internal/shared"
)

const runColumns = `
	id, sequence, source, tracks, dlc_codes, non_ascii, new_categories,
	missing_english, missing_japanese, started_at, completed_at, created_at
`

// RunRepository implements models.Repository[*models.RunRecord] for run history.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a run record with a generated ID and the next sequence number
func (r *RunRepository) Create(run *models.RunRecord) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	query := `
		INSERT INTO runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	counts := run.Counts()
	_, err = r.db.Exec(query,
		id,
		sequence,
		string(run.Source()),
		counts.Tracks,
		counts.DLCCodes,
		counts.NonASCII,
		run.JoinedCategories(),
		counts.MissingEnglish,
		counts.MissingJapanese,
		run.StartedAt(),
		run.CompletedAt(),
		run.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	run.SetID(id)
	run.SetSequence(sequence)
	return nil
}

// Get retrieves a run record by ID
func (r *RunRepository) Get(id string) (*models.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`

	run, err := scanRun(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %s", shared.ErrNotFound, id)
	}
	return run, err
}

// Delete removes a run record by ID
func (r *RunRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: run %s", shared.ErrNotFound, id)
	}

	return nil
}

// List retrieves the most recent runs, newest first. A limit of zero or less returns every run.
func (r *RunRepository) List(limit int) ([]*models.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY sequence DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return runs, nil
}

// Latest returns the most recent run, or an error wrapping [shared.ErrNotFound] when none exist.
func (r *RunRepository) Latest() (*models.RunRecord, error) {
	runs, err := r.List(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: no runs recorded", shared.ErrNotFound)
	}
	return runs[0], nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRun scans a [sql.Row] or the current row of [sql.Rows] into a [models.RunRecord]
func scanRun(s scanner) (*models.RunRecord, error) {
	var (
		id            string
		sequence      int
		source        string
		counts        models.RunCounts
		newCategories string
		startedAt     time.Time
		completedAt   time.Time
		createdAt     time.Time
	)

	err := s.Scan(
		&id, &sequence, &source, &counts.Tracks, &counts.DLCCodes, &counts.NonASCII,
		&newCategories, &counts.MissingEnglish, &counts.MissingJapanese,
		&startedAt, &completedAt, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	return models.LoadRunRecord(id, sequence, models.RunSource(source), counts, newCategories, startedAt, completedAt, createdAt), nil
}
