package userstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps the mapping in the users table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a PostgresStore using pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Load selects every row of the users table.
func (s *PostgresStore) Load(ctx context.Context) (Users, error) {
	rows, err := s.pool.Query(ctx, `SELECT username, password FROM users`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := Users{}
	for rows.Next() {
		var username, password string
		if err := rows.Scan(&username, &password); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users[username] = password
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

// Save replaces the content of the users table with users in a single transaction.
func (s *PostgresStore) Save(ctx context.Context, users Users) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	rows := make([][]any, 0, len(users))
	for username, password := range users {
		rows = append(rows, []any{username, password})
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"users"}, []string{"username", "password"}, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("failed to write users: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit users: %w", err)
	}
	return nil
}
