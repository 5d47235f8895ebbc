package service

import (
	"context"

	membershipmodels "surety/internal/membership/models"
	"surety/internal/registration/models"
	id "surety/pkg/domain"
	audit "surety/pkg/platform/audit"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type ProposalStore interface {
	Find(ctx context.Context, candidate id.MemberID) (*models.Proposal, error)
	Save(ctx context.Context, proposal *models.Proposal) error
}

type Gate interface {
	RequireOperational(ctx context.Context) error
}

type Authorizer interface {
	RequireAuthorized(ctx context.Context, module id.ModuleID) error
}

// FundingReader exposes the funded predicate. The engine never reads bond
// amounts.
type FundingReader interface {
	IsFunded(ctx context.Context, memberID id.MemberID) (bool, error)
}

// Membership is the slice of the membership ledger the engine reads and the
// privileged entry points it drives.
type Membership interface {
	RegisteredCount(ctx context.Context) (uint32, error)
	IsAirline(ctx context.Context, memberID id.MemberID) (bool, error)
	InsertPending(ctx context.Context, module id.ModuleID, candidate id.MemberID, name string) (*membershipmodels.Member, error)
	FinalizeRegistration(ctx context.Context, module id.ModuleID, candidate id.MemberID, name string) (uint32, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
