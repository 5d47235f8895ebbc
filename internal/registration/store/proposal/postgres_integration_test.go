//go:build integration

package proposal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"surety/internal/registration/models"
	"surety/internal/registration/store/proposal"
	"surety/pkg/platform/sentinel"
	"surety/pkg/testutil"
	"surety/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *proposal.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = proposal.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "proposals"))
}

func (s *PostgresStoreSuite) TestVoterOrderSurvivesRoundTrip() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := s.store.Find(ctx, testutil.Airline(5))
	s.ErrorIs(err, sentinel.ErrNotFound)

	p := models.NewProposal(testutil.Airline(5), "Air Five", now)
	p.AddVote(testutil.Airline(3))
	s.Require().NoError(s.store.Save(ctx, p))

	p.AddVote(testutil.Airline(1))
	p.ApplyResolution(now.Add(time.Minute))
	s.Require().NoError(s.store.Save(ctx, p))

	found, err := s.store.Find(ctx, testutil.Airline(5))
	s.Require().NoError(err)
	s.Equal("Air Five", found.Name)
	s.Equal(p.Voters, found.Voters)
	s.True(found.Resolved)
	s.Require().NotNil(found.ResolvedAt)
	s.True(now.Add(time.Minute).Equal(*found.ResolvedAt))
}

func (s *PostgresStoreSuite) TestEmptyVoteSet() {
	ctx := context.Background()
	p := models.NewProposal(testutil.Airline(6), "Air Six", time.Now().UTC())
	s.Require().NoError(s.store.Save(ctx, p))

	found, err := s.store.Find(ctx, testutil.Airline(6))
	s.Require().NoError(err)
	s.Empty(found.Voters)
	s.Zero(found.Tally())
}
