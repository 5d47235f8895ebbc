// Package service implements the membership ledger, the authoritative record
// of consortium members and the registered count.
package service

import (
	"context"
	"errors"
	"log/slog"

	"surety/internal/membership/models"
	id "surety/pkg/domain"
	dErrors "surety/pkg/domain-errors"
	audit "surety/pkg/platform/audit"
	"surety/pkg/platform/sentinel"
	"surety/pkg/platform/tx"
	"surety/pkg/requestcontext"
)

type MemberStore interface {
	FindByID(ctx context.Context, memberID id.MemberID) (*models.Member, error)
	Save(ctx context.Context, member *models.Member) error
	CountRegistered(ctx context.Context) (uint32, error)
	List(ctx context.Context) ([]*models.Member, error)
}

type Gate interface {
	RequireOperational(ctx context.Context) error
}

type Authorizer interface {
	RequireAuthorized(ctx context.Context, module id.ModuleID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Ledger owns member records. InsertPending and FinalizeRegistration are
// privileged: they run only inside a transition opened by the registration
// engine and only for an authorized module.
type Ledger struct {
	members        MemberStore
	gate           Gate
	access         Authorizer
	tx             tx.Runner
	owner          id.MemberID
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type Option func(*Ledger)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(l *Ledger) {
		l.auditPublisher = publisher
	}
}

func New(members MemberStore, gate Gate, access Authorizer, runner tx.Runner, owner id.MemberID, opts ...Option) (*Ledger, error) {
	if members == nil {
		return nil, errors.New("member store is required")
	}
	if gate == nil {
		return nil, errors.New("operational gate is required")
	}
	if access == nil {
		return nil, errors.New("authorizer is required")
	}
	if runner == nil {
		return nil, errors.New("transaction runner is required")
	}
	if owner.IsZero() {
		return nil, errors.New("owner identity is required")
	}
	l := &Ledger{
		members: members,
		gate:    gate,
		access:  access,
		tx:      runner,
		owner:   owner,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// RegisterFirstMember seeds the consortium with its first airline. It is
// owner-only and usable once, while no member is registered.
func (l *Ledger) RegisterFirstMember(ctx context.Context, memberID id.MemberID, name string, caller id.MemberID) (*models.Member, error) {
	var member *models.Member
	err := l.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := l.gate.RequireOperational(ctx); err != nil {
			return err
		}
		if caller != l.owner {
			return dErrors.New(dErrors.CodeUnauthorized, "caller is not contract owner")
		}
		count, err := l.members.CountRegistered(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count members")
		}
		if count > 0 {
			return dErrors.New(dErrors.CodeAlreadyInitialized, "first airline is already registered")
		}

		member, err = models.NewRegisteredMember(memberID, name, requestcontext.Now(ctx))
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, err.Error())
		}
		if err := l.emit(ctx, member, caller); err != nil {
			return err
		}
		if err := l.members.Save(ctx, member); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save member")
		}
		return nil
	})
	if err != nil {
		l.logger.WarnContext(ctx, "first airline registration rejected",
			"airline", memberID.String(),
			"caller", caller.String(),
			"code", dErrors.CodeOf(err),
		)
		return nil, err
	}
	l.logger.InfoContext(ctx, "first airline registered",
		"airline", member.ID.String(),
		"name", member.Name,
	)
	return member, nil
}

// RegisteredCount returns the number of registered members.
func (l *Ledger) RegisteredCount(ctx context.Context) (uint32, error) {
	var n uint32
	err := l.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		var err error
		n, err = l.members.CountRegistered(ctx)
		return err
	})
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count members")
	}
	return n, nil
}

// IsAirline reports whether memberID is registered. Unknown and pending
// members are not airlines.
func (l *Ledger) IsAirline(ctx context.Context, memberID id.MemberID) (bool, error) {
	member, err := l.find(ctx, memberID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load member")
	}
	return member.Registered, nil
}

// Get returns the member record, pending or registered.
func (l *Ledger) Get(ctx context.Context, memberID id.MemberID) (*models.Member, error) {
	member, err := l.find(ctx, memberID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "airline not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load member")
	}
	return member, nil
}

// List returns every member in creation order.
func (l *Ledger) List(ctx context.Context) ([]*models.Member, error) {
	var members []*models.Member
	err := l.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		var err error
		members, err = l.members.List(ctx)
		return err
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list members")
	}
	return members, nil
}

// InsertPending records candidate as a pending member. An existing pending
// record is returned unchanged.
func (l *Ledger) InsertPending(ctx context.Context, module id.ModuleID, candidate id.MemberID, name string) (*models.Member, error) {
	if err := l.requirePrivileged(ctx, module); err != nil {
		return nil, err
	}
	existing, err := l.members.FindByID(ctx, candidate)
	switch {
	case err == nil:
		if err := existing.CanRegister(); err != nil {
			return nil, err
		}
		return existing, nil
	case !errors.Is(err, sentinel.ErrNotFound):
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load member")
	}

	member, err := models.NewPendingMember(candidate, name, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, err.Error())
	}
	if err := l.members.Save(ctx, member); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save member")
	}
	return member, nil
}

// FinalizeRegistration admits candidate and returns the new registered count.
// A candidate without a pending record is created registered.
func (l *Ledger) FinalizeRegistration(ctx context.Context, module id.ModuleID, candidate id.MemberID, name string) (uint32, error) {
	if err := l.requirePrivileged(ctx, module); err != nil {
		return 0, err
	}
	now := requestcontext.Now(ctx)
	member, err := l.members.FindByID(ctx, candidate)
	switch {
	case err == nil:
		if err := member.CanRegister(); err != nil {
			return 0, err
		}
		member.ApplyRegistration(now)
	case errors.Is(err, sentinel.ErrNotFound):
		member, err = models.NewRegisteredMember(candidate, name, now)
		if err != nil {
			return 0, dErrors.New(dErrors.CodeValidation, err.Error())
		}
	default:
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load member")
	}

	if err := l.members.Save(ctx, member); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save member")
	}
	count, err := l.members.CountRegistered(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count members")
	}
	return count, nil
}

func (l *Ledger) requirePrivileged(ctx context.Context, module id.ModuleID) error {
	if err := tx.RequireActive(ctx); err != nil {
		return err
	}
	if err := l.gate.RequireOperational(ctx); err != nil {
		return err
	}
	return l.access.RequireAuthorized(ctx, module)
}

func (l *Ledger) find(ctx context.Context, memberID id.MemberID) (*models.Member, error) {
	var member *models.Member
	err := l.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		var err error
		member, err = l.members.FindByID(ctx, memberID)
		return err
	})
	return member, err
}

func (l *Ledger) emit(ctx context.Context, member *models.Member, caller id.MemberID) error {
	if l.auditPublisher == nil {
		return nil
	}
	err := l.auditPublisher.Emit(ctx, audit.Event{
		Subject:  member.ID.String(),
		ActorID:  caller.String(),
		Action:   string(audit.EventAirlineRegistered),
		Decision: "bootstrap",
		Reason:   "first airline",
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record registration")
	}
	return nil
}
