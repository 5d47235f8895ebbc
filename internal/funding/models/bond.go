package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "surety/pkg/domain"
	dErrors "surety/pkg/domain-errors"
)

// Bond is the cumulative amount a member has posted. Funded flips once the
// total reaches the funding threshold and never reverts.
type Bond struct {
	MemberID  id.MemberID
	Amount    decimal.Decimal
	Funded    bool
	FundedAt  *time.Time
	UpdatedAt time.Time
}

// NewBond returns an empty bond for memberID.
func NewBond(memberID id.MemberID, now time.Time) *Bond {
	return &Bond{MemberID: memberID, Amount: decimal.Zero, UpdatedAt: now}
}

// ValidateDeposit rejects non-positive amounts.
func ValidateDeposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return dErrors.New(dErrors.CodeInvalidFunding, "funding amount must be positive")
	}
	return nil
}

// ApplyDeposit accumulates amount and reports whether this deposit made the
// bond funded.
func (b *Bond) ApplyDeposit(amount, threshold decimal.Decimal, now time.Time) bool {
	b.Amount = b.Amount.Add(amount)
	b.UpdatedAt = now
	if b.Funded || b.Amount.LessThan(threshold) {
		return false
	}
	b.Funded = true
	b.FundedAt = &now
	return true
}

// Shortfall is the amount still needed to reach threshold.
func (b *Bond) Shortfall(threshold decimal.Decimal) decimal.Decimal {
	if b.Funded {
		return decimal.Zero
	}
	return decimal.Max(threshold.Sub(b.Amount), decimal.Zero)
}
