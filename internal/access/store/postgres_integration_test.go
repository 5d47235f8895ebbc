//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"surety/internal/access/models"
	"surety/internal/access/store"
	"surety/pkg/platform/sentinel"
	"surety/pkg/platform/tx"
	"surety/pkg/testutil"
	"surety/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "authorized_callers"))
}

func (s *PostgresStoreSuite) TestAllowlist() {
	ctx := context.Background()
	module := testutil.Module(7)
	now := time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.Add(ctx, models.AuthorizedCaller{Module: module, AuthorizedAt: now}))
	s.ErrorIs(s.store.Add(ctx, models.AuthorizedCaller{Module: module, AuthorizedAt: now}), sentinel.ErrAlreadyUsed)

	ok, err := s.store.Contains(ctx, module)
	s.Require().NoError(err)
	s.True(ok)

	callers, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(callers, 1)
	s.Equal(module, callers[0].Module)
	s.True(now.Equal(callers[0].AuthorizedAt))

	s.Require().NoError(s.store.Remove(ctx, module))
	s.ErrorIs(s.store.Remove(ctx, module), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestRolledBackInsertIsInvisible() {
	ctx := context.Background()
	runner := tx.NewPostgres(s.postgres.DB)
	module := testutil.Module(8)

	err := runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Add(ctx, models.AuthorizedCaller{Module: module, AuthorizedAt: time.Now()}); err != nil {
			return err
		}
		return sentinel.ErrInvalidState
	})
	s.ErrorIs(err, sentinel.ErrInvalidState)

	ok, err := s.store.Contains(ctx, module)
	s.Require().NoError(err)
	s.False(ok)
}
