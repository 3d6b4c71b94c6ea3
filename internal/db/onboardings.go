package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const onboardingColumns = `id, candidate_name, client_id, status, docs_url, created_at, updated_at`

func scanOnboarding(row pgx.Row) (*OnboardingProcess, error) {
	var o OnboardingProcess
	var status string
	if err := row.Scan(&o.ID, &o.CandidateName, &o.ClientID, &status, &o.DocsURL,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = OnboardingStatus(status)
	return &o, nil
}

// CreateOnboarding starts an onboarding process for a client
func (db *DB) CreateOnboarding(ctx context.Context, in OnboardingInput) (*OnboardingProcess, error) {
	status := in.Status
	if status == "" {
		status = OnboardingInReview
	}
	o, err := scanOnboarding(db.pool.QueryRow(ctx,
		`INSERT INTO onboardings (candidate_name, client_id, status, docs_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+onboardingColumns,
		in.CandidateName, in.ClientID, string(status), in.DocsURL,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create onboarding: %w", err)
	}
	return o, nil
}

// GetOnboarding retrieves a process by ID. Returns nil, nil when missing.
func (db *DB) GetOnboarding(ctx context.Context, id uuid.UUID) (*OnboardingProcess, error) {
	o, err := scanOnboarding(db.pool.QueryRow(ctx,
		`SELECT `+onboardingColumns+` FROM onboardings WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get onboarding: %w", err)
	}
	return o, nil
}

// ListOnboardings lists onboarding processes
func (db *DB) ListOnboardings(ctx context.Context, opts ListOptions) ([]OnboardingProcess, error) {
	page, args := pageClause(opts, nil)
	rows, err := db.pool.Query(ctx, `SELECT `+onboardingColumns+` FROM onboardings`+page, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list onboardings: %w", err)
	}
	defer rows.Close()

	processes := []OnboardingProcess{}
	for rows.Next() {
		o, err := scanOnboarding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan onboarding: %w", err)
		}
		processes = append(processes, *o)
	}
	return processes, rows.Err()
}

// UpdateOnboarding applies a partial update
func (db *DB) UpdateOnboarding(ctx context.Context, id uuid.UUID, u OnboardingUpdate) (*OnboardingProcess, error) {
	var status *string
	if u.Status != nil {
		s := string(*u.Status)
		status = &s
	}
	o, err := scanOnboarding(db.pool.QueryRow(ctx,
		`UPDATE onboardings SET
		    candidate_name = COALESCE($2, candidate_name),
		    client_id      = COALESCE($3, client_id),
		    status         = COALESCE($4, status),
		    docs_url       = COALESCE($5, docs_url),
		    updated_at     = NOW()
		 WHERE id = $1
		 RETURNING `+onboardingColumns,
		id, u.CandidateName, u.ClientID, status, u.DocsURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("onboarding %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update onboarding: %w", err)
	}
	return o, nil
}

// DeleteOnboarding removes an onboarding process.
func (db *DB) DeleteOnboarding(ctx context.Context, id uuid.UUID) error {
	return db.deleteByID(ctx, "onboardings", id)
}
