package models

import (
	"strings"
	"time"

	id "surety/pkg/domain"
	dErrors "surety/pkg/domain-errors"
)

// MaxNameLength bounds airline display names.
const MaxNameLength = 128

// Member is an airline known to the consortium. A member is created pending
// when first proposed and becomes registered exactly once; members are never
// removed.
type Member struct {
	ID           id.MemberID
	Name         string
	Registered   bool
	CreatedAt    time.Time
	RegisteredAt *time.Time
}

// NewPendingMember builds a member awaiting admission.
func NewPendingMember(memberID id.MemberID, name string, now time.Time) (*Member, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	if memberID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "member id is required")
	}
	return &Member{ID: memberID, Name: name, CreatedAt: now}, nil
}

// NewRegisteredMember builds a member admitted on creation.
func NewRegisteredMember(memberID id.MemberID, name string, now time.Time) (*Member, error) {
	m, err := NewPendingMember(memberID, name, now)
	if err != nil {
		return nil, err
	}
	m.ApplyRegistration(now)
	return m, nil
}

// NormalizeName trims name and enforces its bounds.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", dErrors.New(dErrors.CodeInvariantViolation, "airline name is required")
	}
	if len(name) > MaxNameLength {
		return "", dErrors.New(dErrors.CodeInvariantViolation, "airline name is too long")
	}
	return name, nil
}

func (m *Member) CanRegister() error {
	if m.Registered {
		return dErrors.New(dErrors.CodeAlreadyRegistered, "airline is already registered")
	}
	return nil
}

// ApplyRegistration marks the member registered. Registration is terminal.
func (m *Member) ApplyRegistration(now time.Time) {
	if m.Registered {
		return
	}
	m.Registered = true
	m.RegisteredAt = &now
}
