package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const clientColumns = `id, name, email, contact_person, created_at`

func scanClient(row pgx.Row) (*ClientCompany, error) {
	var c ClientCompany
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.ContactPerson, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateClient inserts a client company
func (db *DB) CreateClient(ctx context.Context, in ClientInput) (*ClientCompany, error) {
	c, err := scanClient(db.pool.QueryRow(ctx,
		`INSERT INTO clients (name, email, contact_person)
		 VALUES ($1, $2, $3)
		 RETURNING `+clientColumns,
		in.Name, in.Email, in.ContactPerson,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}

// GetClient retrieves a client by ID. Returns nil, nil when missing.
func (db *DB) GetClient(ctx context.Context, id uuid.UUID) (*ClientCompany, error) {
	c, err := scanClient(db.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// ListClients lists client companies
func (db *DB) ListClients(ctx context.Context, opts ListOptions) ([]ClientCompany, error) {
	page, args := pageClause(opts, nil)
	rows, err := db.pool.Query(ctx, `SELECT `+clientColumns+` FROM clients`+page, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := []ClientCompany{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

// UpdateClient applies a partial update
func (db *DB) UpdateClient(ctx context.Context, id uuid.UUID, u ClientUpdate) (*ClientCompany, error) {
	c, err := scanClient(db.pool.QueryRow(ctx,
		`UPDATE clients SET
		    name           = COALESCE($2, name),
		    email          = COALESCE($3, email),
		    contact_person = COALESCE($4, contact_person)
		 WHERE id = $1
		 RETURNING `+clientColumns,
		id, u.Name, u.Email, u.ContactPerson,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return c, nil
}

// DeleteClient removes a client and, by cascade, its onboarding processes.
func (db *DB) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return db.deleteByID(ctx, "clients", id)
}
