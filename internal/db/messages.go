package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateMessage stores a contact-form submission
func (db *DB) CreateMessage(ctx context.Context, in MessageInput) (*Message, error) {
	var m Message
	err := db.pool.QueryRow(ctx,
		`INSERT INTO messages (name, email, message)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, email, message, created_at`,
		in.Name, in.Email, in.Message,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return &m, nil
}

// ListMessages lists messages, newest first by default
func (db *DB) ListMessages(ctx context.Context, opts ListOptions) ([]Message, error) {
	page, args := pageClause(opts, nil)
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, email, message, created_at FROM messages`+page, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// DeleteMessage removes a message.
func (db *DB) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	return db.deleteByID(ctx, "messages", id)
}
