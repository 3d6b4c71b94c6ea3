package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const candidateColumns = `id, job_id, name, email, phone, role, linkedin, external_link, summary, created_at`

func scanCandidate(row pgx.Row) (*Candidate, error) {
	var c Candidate
	if err := row.Scan(&c.ID, &c.JobID, &c.Name, &c.Email, &c.Phone, &c.Role,
		&c.LinkedIn, &c.ExternalLink, &c.Summary, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCandidate stores a talent-bank sign-up or job application
func (db *DB) CreateCandidate(ctx context.Context, in CandidateInput) (*Candidate, error) {
	c, err := scanCandidate(db.pool.QueryRow(ctx,
		`INSERT INTO candidates (job_id, name, email, phone, role, linkedin, external_link, summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+candidateColumns,
		in.JobID, in.Name, in.Email, in.Phone, in.Role, in.LinkedIn, in.ExternalLink, in.Summary,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return c, nil
}

// GetCandidate retrieves a candidate by ID. Returns nil, nil when missing.
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	c, err := scanCandidate(db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return c, nil
}

// ListCandidates lists candidates, newest first by default
func (db *DB) ListCandidates(ctx context.Context, opts ListCandidatesOptions) ([]Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates`
	var args []any
	if opts.JobID != nil {
		args = append(args, *opts.JobID)
		query += ` WHERE job_id = $1`
	}
	page, args := pageClause(opts.ListOptions, args)

	rows, err := db.pool.Query(ctx, query+page, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *c)
	}
	return candidates, rows.Err()
}

// DeleteCandidate removes a candidate.
func (db *DB) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	return db.deleteByID(ctx, "candidates", id)
}
