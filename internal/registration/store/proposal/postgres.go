package proposal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"surety/internal/registration/models"
	id "surety/pkg/domain"
	"surety/pkg/platform/sentinel"
	txcontext "surety/pkg/platform/tx"
)

// PostgresStore keeps each vote set as an ordered text[] column.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Find(ctx context.Context, candidate id.MemberID) (*models.Proposal, error) {
	var (
		p          models.Proposal
		voters     []string
		resolvedAt sql.NullTime
	)
	err := txcontext.Executor(ctx, s.db).QueryRowContext(ctx, `
		SELECT name, voters, resolved, created_at, resolved_at
		FROM proposals
		WHERE candidate = $1
	`, candidate.String()).Scan(&p.Name, pq.Array(&voters), &p.Resolved, &p.CreatedAt, &resolvedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find proposal: %w", err)
	}

	p.Candidate = candidate
	p.Voters = make([]id.MemberID, 0, len(voters))
	for _, raw := range voters {
		voter, err := id.ParseMemberID(raw)
		if err != nil {
			return nil, fmt.Errorf("stored voter %q: %w", raw, err)
		}
		p.Voters = append(p.Voters, voter)
	}
	if resolvedAt.Valid {
		at := resolvedAt.Time
		p.ResolvedAt = &at
	}
	return &p, nil
}

func (s *PostgresStore) Save(ctx context.Context, proposal *models.Proposal) error {
	voters := make([]string, len(proposal.Voters))
	for i, v := range proposal.Voters {
		voters[i] = v.String()
	}
	_, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO proposals (candidate, name, voters, resolved, created_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (candidate) DO UPDATE SET
			voters = EXCLUDED.voters,
			resolved = proposals.resolved OR EXCLUDED.resolved,
			resolved_at = COALESCE(proposals.resolved_at, EXCLUDED.resolved_at)
	`, proposal.Candidate.String(), proposal.Name, pq.Array(voters), proposal.Resolved, proposal.CreatedAt, proposal.ResolvedAt)
	if err != nil {
		return fmt.Errorf("save proposal: %w", err)
	}
	return nil
}
