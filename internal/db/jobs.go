package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, title, location, type, description, active, created_at, updated_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	if err := row.Scan(&j.ID, &j.Title, &j.Location, &j.Type, &j.Description,
		&j.Active, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

// CreateJob inserts a job posting
func (db *DB) CreateJob(ctx context.Context, in JobInput) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, location, type, description, active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+jobColumns,
		in.Title, in.Location, in.Type, in.Description, in.Active,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return j, nil
}

// GetJob retrieves a job by ID. Returns nil, nil when it does not exist.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// ListJobs lists jobs, newest first unless opts says otherwise
func (db *DB) ListJobs(ctx context.Context, opts ListJobsOptions) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	var args []any
	if opts.ActiveOnly {
		query += ` WHERE active = TRUE`
	}
	page, args := pageClause(opts.ListOptions, args)

	rows, err := db.pool.Query(ctx, query+page, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// UpdateJob applies a partial update and returns the stored job
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, u JobUpdate) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`UPDATE jobs SET
		    title       = COALESCE($2, title),
		    location    = COALESCE($3, location),
		    type        = COALESCE($4, type),
		    description = COALESCE($5, description),
		    active      = COALESCE($6, active),
		    updated_at  = NOW()
		 WHERE id = $1
		 RETURNING `+jobColumns,
		id, u.Title, u.Location, u.Type, u.Description, u.Active,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return j, nil
}

// DeleteJob deletes a job. Applications keep their row with job_id cleared.
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) error {
	return db.deleteByID(ctx, "jobs", id)
}

// CountActiveJobs returns the number of jobs shown on the public site.
func (db *DB) CountActiveJobs(ctx context.Context) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE active = TRUE`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count active jobs: %w", err)
	}
	return n, nil
}
