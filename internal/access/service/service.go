// Package service implements the authorization bridge: the allow-list of
// modules permitted to call privileged ledger entry points.
package service

import (
	"context"
	"errors"
	"log/slog"

	"surety/internal/access/models"
	id "surety/pkg/domain"
	dErrors "surety/pkg/domain-errors"
	audit "surety/pkg/platform/audit"
	"surety/pkg/platform/sentinel"
	"surety/pkg/platform/tx"
	"surety/pkg/requestcontext"
)

type AllowlistStore interface {
	Add(ctx context.Context, caller models.AuthorizedCaller) error
	Remove(ctx context.Context, module id.ModuleID) error
	Contains(ctx context.Context, module id.ModuleID) (bool, error)
	List(ctx context.Context) ([]models.AuthorizedCaller, error)
}

type Gate interface {
	RequireOperational(ctx context.Context) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	callers        AllowlistStore
	gate           Gate
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

// New constructs the bridge. owner is the ledger's administrative owner and
// the only identity allowed to change the allow-list.
func New(callers AllowlistStore, gate Gate, runner tx.Runner, owner id.MemberID, opts ...Option) (*Service, error) {
	if callers == nil {
		return nil, errors.New("allowlist store is required")
	}
	if gate == nil {
		return nil, errors.New("operational gate is required")
	}
	if runner == nil {
		return nil, errors.New("transaction runner is required")
	}
	if owner.IsZero() {
		return nil, errors.New("owner identity is required")
	}
	s := &Service{
		callers: callers,
		gate:    gate,
		tx:      runner,
		owner:   owner,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Authorize adds module to the allow-list. Authorizing a listed module is a
// no-op.
func (s *Service) Authorize(ctx context.Context, module id.ModuleID, caller id.MemberID) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.requireAdmin(ctx, module, caller); err != nil {
			return err
		}
		listed, err := s.callers.Contains(ctx, module)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read allow-list")
		}
		if listed {
			return nil
		}

		if err := s.emit(ctx, audit.EventCallerAuthorized, module, caller); err != nil {
			return err
		}
		entry := models.AuthorizedCaller{Module: module, AuthorizedAt: requestcontext.Now(ctx)}
		if err := s.callers.Add(ctx, entry); err != nil && !errors.Is(err, sentinel.ErrAlreadyUsed) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to authorize caller")
		}
		s.logger.InfoContext(ctx, "caller authorized",
			"module_id", module.String(),
			"owner", caller.String(),
		)
		return nil
	})
}

// Deauthorize removes module from the allow-list. Removing an unlisted module
// is a no-op.
func (s *Service) Deauthorize(ctx context.Context, module id.ModuleID, caller id.MemberID) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.requireAdmin(ctx, module, caller); err != nil {
			return err
		}
		listed, err := s.callers.Contains(ctx, module)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read allow-list")
		}
		if !listed {
			return nil
		}

		if err := s.emit(ctx, audit.EventCallerDeauthorized, module, caller); err != nil {
			return err
		}
		if err := s.callers.Remove(ctx, module); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to deauthorize caller")
		}
		s.logger.InfoContext(ctx, "caller deauthorized",
			"module_id", module.String(),
			"owner", caller.String(),
		)
		return nil
	})
}

// IsAuthorized reports whether module is on the allow-list.
func (s *Service) IsAuthorized(ctx context.Context, module id.ModuleID) (bool, error) {
	var listed bool
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		var err error
		listed, err = s.callers.Contains(ctx, module)
		return err
	})
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read allow-list")
	}
	return listed, nil
}

// RequireAuthorized fails with CodeCallerNotAuthorized unless module is listed.
func (s *Service) RequireAuthorized(ctx context.Context, module id.ModuleID) error {
	listed, err := s.IsAuthorized(ctx, module)
	if err != nil {
		return err
	}
	if !listed {
		return dErrors.New(dErrors.CodeCallerNotAuthorized, "caller is not authorized")
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]models.AuthorizedCaller, error) {
	var callers []models.AuthorizedCaller
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		var err error
		callers, err = s.callers.List(ctx)
		return err
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list authorized callers")
	}
	return callers, nil
}

func (s *Service) requireAdmin(ctx context.Context, module id.ModuleID, caller id.MemberID) error {
	if err := s.gate.RequireOperational(ctx); err != nil {
		return err
	}
	if caller != s.owner {
		s.logger.WarnContext(ctx, "allow-list change rejected",
			"module_id", module.String(),
			"caller", caller.String(),
			"code", dErrors.CodeUnauthorized,
		)
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not contract owner")
	}
	if module.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "module id is required")
	}
	return nil
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, module id.ModuleID, caller id.MemberID) error {
	if s.auditPublisher == nil {
		return nil
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Subject: module.String(),
		ActorID: caller.String(),
		Action:  string(action),
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record allow-list change")
	}
	return nil
}
