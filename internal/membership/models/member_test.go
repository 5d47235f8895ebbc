package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "surety/pkg/domain"
	dErrors "surety/pkg/domain-errors"
	"surety/pkg/testutil"
)

func TestNewPendingMember(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("trims name and starts pending", func(t *testing.T) {
		m, err := NewPendingMember(testutil.Airline(1), "  Air One ", now)
		require.NoError(t, err)
		assert.Equal(t, "Air One", m.Name)
		assert.False(t, m.Registered)
		assert.Nil(t, m.RegisteredAt)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewPendingMember(testutil.Airline(1), "   ", now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects long name", func(t *testing.T) {
		_, err := NewPendingMember(testutil.Airline(1), strings.Repeat("x", MaxNameLength+1), now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects zero identity", func(t *testing.T) {
		_, err := NewPendingMember(id.MemberID{}, "Air", now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestRegistrationIsTerminal(t *testing.T) {
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m, err := NewRegisteredMember(testutil.Airline(1), "Air One", first)
	require.NoError(t, err)
	require.True(t, m.Registered)

	assert.True(t, dErrors.HasCode(m.CanRegister(), dErrors.CodeAlreadyRegistered))

	m.ApplyRegistration(first.Add(time.Hour))
	assert.Equal(t, first, *m.RegisteredAt)
}
