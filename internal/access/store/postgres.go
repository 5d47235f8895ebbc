package store

import (
	"context"
	"database/sql"
	"fmt"

	"surety/internal/access/models"
	id "surety/pkg/domain"
	"surety/pkg/platform/sentinel"
	txcontext "surety/pkg/platform/tx"
)

// PostgresStore persists the allow-list in the authorized_callers table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Add(ctx context.Context, caller models.AuthorizedCaller) error {
	res, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO authorized_callers (module_id, authorized_at)
		VALUES ($1, $2)
		ON CONFLICT (module_id) DO NOTHING
	`, caller.Module.String(), caller.AuthorizedAt)
	if err != nil {
		return fmt.Errorf("insert authorized caller: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert authorized caller: %w", err)
	}
	if n == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, module id.ModuleID) error {
	res, err := txcontext.Executor(ctx, s.db).ExecContext(ctx,
		`DELETE FROM authorized_callers WHERE module_id = $1`, module.String())
	if err != nil {
		return fmt.Errorf("delete authorized caller: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete authorized caller: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Contains(ctx context.Context, module id.ModuleID) (bool, error) {
	var exists bool
	err := txcontext.Executor(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM authorized_callers WHERE module_id = $1)`, module.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check authorized caller: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.AuthorizedCaller, error) {
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, `
		SELECT module_id, authorized_at
		FROM authorized_callers
		ORDER BY authorized_at, module_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list authorized callers: %w", err)
	}
	defer rows.Close()

	var out []models.AuthorizedCaller
	for rows.Next() {
		var raw string
		var caller models.AuthorizedCaller
		if err := rows.Scan(&raw, &caller.AuthorizedAt); err != nil {
			return nil, fmt.Errorf("scan authorized caller: %w", err)
		}
		caller.Module, err = id.ParseModuleID(raw)
		if err != nil {
			return nil, fmt.Errorf("stored module id %q: %w", raw, err)
		}
		out = append(out, caller)
	}
	return out, rows.Err()
}
