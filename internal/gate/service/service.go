// Package service implements the operational gate: an owner-controlled switch
// every mutating ledger entry point checks before touching state.
package service

import (
	"context"
	"errors"
	"log/slog"

	id "surety/pkg/domain"
	dErrors "surety/pkg/domain-errors"
	audit "surety/pkg/platform/audit"
	"surety/pkg/platform/tx"
)

type FlagStore interface {
	Operational(ctx context.Context) (bool, error)
	SetOperational(ctx context.Context, operational bool) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	flags          FlagStore
	tx             tx.Runner
	owner          id.MemberID
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// New constructs the gate. owner is the only identity allowed to flip it.
func New(flags FlagStore, runner tx.Runner, owner id.MemberID, opts ...Option) (*Service, error) {
	if flags == nil {
		return nil, errors.New("flag store is required")
	}
	if runner == nil {
		return nil, errors.New("transaction runner is required")
	}
	if owner.IsZero() {
		return nil, errors.New("owner identity is required")
	}
	s := &Service{
		flags:  flags,
		tx:     runner,
		owner:  owner,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// IsOperational reports the current switch position.
func (s *Service) IsOperational(ctx context.Context) (bool, error) {
	operational, err := s.flags.Operational(ctx)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read operating status")
	}
	return operational, nil
}

// RequireOperational fails with CodeNotOperational while the switch is off.
func (s *Service) RequireOperational(ctx context.Context) error {
	operational, err := s.IsOperational(ctx)
	if err != nil {
		return err
	}
	if !operational {
		return dErrors.New(dErrors.CodeNotOperational, "contract is currently not operational")
	}
	return nil
}

// SetOperating flips the switch. Only the owner may call it; setting the
// current value again is accepted and emits no event. The audit event commits
// first and the flag is written after, so a failed commit never leaves an
// unaudited switch; if the flag write fails the owner retries and the change
// is audited again.
func (s *Service) SetOperating(ctx context.Context, operational bool, caller id.MemberID) error {
	changed := false
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if caller != s.owner {
			s.logger.WarnContext(ctx, "operating status change rejected",
				"caller", caller.String(),
				"code", dErrors.CodeUnauthorized,
			)
			return dErrors.New(dErrors.CodeUnauthorized, "caller is not contract owner")
		}

		current, err := s.IsOperational(ctx)
		if err != nil {
			return err
		}
		if current == operational {
			return nil
		}
		if err := s.emit(ctx, operational, caller); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil || !changed {
		return err
	}

	if err := s.flags.SetOperational(ctx, operational); err != nil {
		s.logger.ErrorContext(ctx, "operating status audited but not applied",
			"operational", operational,
			"caller", caller.String(),
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update operating status")
	}
	s.logger.InfoContext(ctx, "operating status changed",
		"operational", operational,
		"caller", caller.String(),
	)
	return nil
}

func (s *Service) emit(ctx context.Context, operational bool, caller id.MemberID) error {
	if s.auditPublisher == nil {
		return nil
	}
	decision := "suspended"
	if operational {
		decision = "resumed"
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Subject:  "operating_status",
		ActorID:  caller.String(),
		Action:   string(audit.EventOperatingStatusChanged),
		Decision: decision,
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record operating status change")
	}
	return nil
}
