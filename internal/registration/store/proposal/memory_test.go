package proposal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surety/internal/registration/models"
	"surety/pkg/platform/sentinel"
	"surety/pkg/testutil"
)

func TestInMemory(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	_, err := s.Find(ctx, testutil.Airline(5))
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	p := models.NewProposal(testutil.Airline(5), "Air Five", time.Now())
	p.AddVote(testutil.Airline(1))
	require.NoError(t, s.Save(ctx, p))

	// Mutations after Save must not leak into the store.
	p.AddVote(testutil.Airline(2))

	found, err := s.Find(ctx, testutil.Airline(5))
	require.NoError(t, err)
	assert.Equal(t, uint32(1), found.Tally())

	found.AddVote(testutil.Airline(3))
	again, err := s.Find(ctx, testutil.Airline(5))
	require.NoError(t, err)
	assert.Equal(t, uint32(1), again.Tally())
}
