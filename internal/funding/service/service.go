// Package service implements the funding ledger: per-member bonds and the
// funded predicate the registration engine reads.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"surety/internal/funding/metrics"
	"surety/internal/funding/models"
	id "surety/pkg/domain"
	dErrors "surety/pkg/domain-errors"
	audit "surety/pkg/platform/audit"
	"surety/pkg/platform/sentinel"
	"surety/pkg/platform/tx"
	"surety/pkg/requestcontext"
)

type BondStore interface {
	Find(ctx context.Context, memberID id.MemberID) (*models.Bond, error)
	Save(ctx context.Context, bond *models.Bond) error
}

type Gate interface {
	RequireOperational(ctx context.Context) error
}

// MembershipReader answers whether an identity is a registered airline.
type MembershipReader interface {
	IsAirline(ctx context.Context, memberID id.MemberID) (bool, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	bonds          BondStore
	gate           Gate
	members        MembershipReader
	tx             tx.Runner
	threshold      decimal.Decimal
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func New(bonds BondStore, gate Gate, members MembershipReader, runner tx.Runner, threshold decimal.Decimal, opts ...Option) (*Service, error) {
	if bonds == nil {
		return nil, errors.New("bond store is required")
	}
	if gate == nil {
		return nil, errors.New("operational gate is required")
	}
	if members == nil {
		return nil, errors.New("membership reader is required")
	}
	if runner == nil {
		return nil, errors.New("transaction runner is required")
	}
	if !threshold.IsPositive() {
		return nil, errors.New("funding threshold must be positive")
	}
	s := &Service{
		bonds:     bonds,
		gate:      gate,
		members:   members,
		tx:        runner,
		threshold: threshold,
		logger:    slog.New(slog.DiscardHandler),
		tracer:    otel.Tracer("surety/funding"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Threshold is the bond a member must post to become funded.
func (s *Service) Threshold() decimal.Decimal {
	return s.threshold
}

// Fund adds amount to memberID's bond. Members fund themselves, and only
// registered airlines may post a bond.
func (s *Service) Fund(ctx context.Context, memberID id.MemberID, amount decimal.Decimal, caller id.MemberID) (*models.Bond, error) {
	ctx, span := s.tracer.Start(ctx, "funding.Fund", trace.WithAttributes(
		attribute.String("airline", memberID.String()),
		attribute.String("amount", amount.String()),
	))
	defer span.End()

	var (
		bond    *models.Bond
		crossed bool
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.gate.RequireOperational(ctx); err != nil {
			return err
		}
		if caller != memberID {
			return dErrors.New(dErrors.CodeInvalidFunding, "airlines can only fund themselves")
		}
		if err := models.ValidateDeposit(amount); err != nil {
			return err
		}
		registered, err := s.members.IsAirline(ctx, memberID)
		if err != nil {
			return err
		}
		if !registered {
			return dErrors.New(dErrors.CodeInvalidFunding, "only registered airlines can be funded")
		}

		now := requestcontext.Now(ctx)
		bond, err = s.bonds.Find(ctx, memberID)
		if errors.Is(err, sentinel.ErrNotFound) {
			bond, err = models.NewBond(memberID, now), nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load bond")
		}
		crossed = bond.ApplyDeposit(amount, s.threshold, now)

		if err := s.emit(ctx, bond, amount, crossed); err != nil {
			return err
		}
		if err := s.bonds.Save(ctx, bond); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save bond")
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		s.logger.WarnContext(ctx, "bond deposit rejected",
			"airline", memberID.String(),
			"caller", caller.String(),
			"amount", amount.String(),
			"code", dErrors.CodeOf(err),
		)
		s.incrementDeposit(string(dErrors.CodeOf(err)))
		return nil, err
	}

	span.SetAttributes(attribute.Bool("funded", bond.Funded))
	s.logger.InfoContext(ctx, "bond posted",
		"airline", memberID.String(),
		"amount", amount.String(),
		"total", bond.Amount.String(),
		"funded", bond.Funded,
	)
	s.incrementDeposit("accepted")
	if s.metrics != nil {
		s.metrics.AddAmountPosted(amount.InexactFloat64())
		if crossed {
			s.metrics.IncrementAirlinesFunded()
		}
	}
	return bond, nil
}

// IsFunded reports whether memberID's bond reached the threshold. Unknown
// members are not funded.
func (s *Service) IsFunded(ctx context.Context, memberID id.MemberID) (bool, error) {
	bond, err := s.Bond(ctx, memberID)
	if err != nil {
		return false, err
	}
	return bond.Funded, nil
}

// Bond returns memberID's bond, or an empty one if nothing was posted.
func (s *Service) Bond(ctx context.Context, memberID id.MemberID) (*models.Bond, error) {
	var bond *models.Bond
	err := s.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		var err error
		bond, err = s.bonds.Find(ctx, memberID)
		return err
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return &models.Bond{MemberID: memberID, Amount: decimal.Zero}, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load bond")
	}
	return bond, nil
}

func (s *Service) emit(ctx context.Context, bond *models.Bond, amount decimal.Decimal, crossed bool) error {
	if s.auditPublisher == nil {
		return nil
	}
	subject := bond.MemberID.String()
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		Subject:  subject,
		ActorID:  subject,
		Action:   string(audit.EventBondPosted),
		Decision: amount.String(),
		Reason:   "total " + bond.Amount.String(),
	}); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record bond")
	}
	if !crossed {
		return nil
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		Subject:  subject,
		ActorID:  subject,
		Action:   string(audit.EventAirlineFunded),
		Decision: "funded",
		Reason:   "threshold " + s.threshold.String(),
	}); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record funding")
	}
	return nil
}

func (s *Service) incrementDeposit(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementDeposit(outcome)
	}
}
