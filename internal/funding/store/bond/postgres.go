package bond

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"surety/internal/funding/models"
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

func (s *PostgresStore) Find(ctx context.Context, memberID id.MemberID) (*models.Bond, error) {
	var (
		b        models.Bond
		fundedAt sql.NullTime
	)
	err := txcontext.Executor(ctx, s.db).QueryRowContext(ctx, `
		SELECT amount, funded, funded_at, updated_at
		FROM bonds
		WHERE member_id = $1
	`, memberID.String()).Scan(&b.Amount, &b.Funded, &fundedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find bond: %w", err)
	}
	b.MemberID = memberID
	if fundedAt.Valid {
		at := fundedAt.Time
		b.FundedAt = &at
	}
	return &b, nil
}

// Save upserts bond. The funded flag never reverts.
func (s *PostgresStore) Save(ctx context.Context, bond *models.Bond) error {
	_, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO bonds (member_id, amount, funded, funded_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (member_id) DO UPDATE SET
			amount = EXCLUDED.amount,
			funded = bonds.funded OR EXCLUDED.funded,
			funded_at = COALESCE(bonds.funded_at, EXCLUDED.funded_at),
			updated_at = EXCLUDED.updated_at
	`, bond.MemberID.String(), bond.Amount, bond.Funded, bond.FundedAt, bond.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save bond: %w", err)
	}
	return nil
}
