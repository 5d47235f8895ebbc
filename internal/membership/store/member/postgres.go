package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"surety/internal/membership/models"
	id "surety/pkg/domain"
	"surety/pkg/platform/sentinel"
	txcontext "surety/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, memberID id.MemberID) (*models.Member, error) {
	row := txcontext.Executor(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, name, registered, created_at, registered_at
		FROM members
		WHERE id = $1
	`, memberID.String())
	m, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find member: %w", err)
	}
	return m, nil
}

// Save upserts member. The registered flag never reverts.
func (s *PostgresStore) Save(ctx context.Context, member *models.Member) error {
	_, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO members (id, name, registered, created_at, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			registered = members.registered OR EXCLUDED.registered,
			registered_at = COALESCE(members.registered_at, EXCLUDED.registered_at)
	`, member.ID.String(), member.Name, member.Registered, member.CreatedAt, member.RegisteredAt)
	if err != nil {
		return fmt.Errorf("save member: %w", err)
	}
	return nil
}

func (s *PostgresStore) CountRegistered(ctx context.Context) (uint32, error) {
	var n int64
	err := txcontext.Executor(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM members WHERE registered`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count registered members: %w", err)
	}
	return uint32(n), nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Member, error) {
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, `
		SELECT id, name, registered, created_at, registered_at
		FROM members
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var out []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	var (
		raw          string
		m            models.Member
		registeredAt sql.NullTime
	)
	if err := row.Scan(&raw, &m.Name, &m.Registered, &m.CreatedAt, &registeredAt); err != nil {
		return nil, err
	}
	memberID, err := id.ParseMemberID(raw)
	if err != nil {
		return nil, fmt.Errorf("stored member id %q: %w", raw, err)
	}
	m.ID = memberID
	if registeredAt.Valid {
		at := registeredAt.Time
		m.RegisteredAt = &at
	}
	return &m, nil
}
