package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	dErrors "surety/pkg/domain-errors"
	"surety/pkg/testutil"
)

func TestApplyDeposit(t *testing.T) {
	threshold := decimal.NewFromInt(10)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("partial deposits accumulate until threshold", func(t *testing.T) {
		b := NewBond(testutil.Airline(1), now)
		assert.False(t, b.ApplyDeposit(decimal.RequireFromString("4.5"), threshold, now))
		assert.False(t, b.Funded)
		assert.Equal(t, "5.5", b.Shortfall(threshold).String())

		assert.True(t, b.ApplyDeposit(decimal.RequireFromString("5.5"), threshold, now))
		assert.True(t, b.Funded)
		assert.True(t, b.Shortfall(threshold).IsZero())
		assert.Equal(t, now, *b.FundedAt)
	})

	t.Run("deposits after funding do not re-trigger", func(t *testing.T) {
		b := NewBond(testutil.Airline(2), now)
		assert.True(t, b.ApplyDeposit(decimal.NewFromInt(12), threshold, now))
		assert.False(t, b.ApplyDeposit(decimal.NewFromInt(1), threshold, now.Add(time.Hour)))
		assert.Equal(t, now, *b.FundedAt)
		assert.Equal(t, "13", b.Amount.String())
	})
}

func TestValidateDeposit(t *testing.T) {
	assert.NoError(t, ValidateDeposit(decimal.RequireFromString("0.000001")))
	assert.True(t, dErrors.HasCode(ValidateDeposit(decimal.Zero), dErrors.CodeInvalidFunding))
	assert.True(t, dErrors.HasCode(ValidateDeposit(decimal.NewFromInt(-3)), dErrors.CodeInvalidFunding))
}
