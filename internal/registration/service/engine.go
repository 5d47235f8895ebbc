// Package service implements the registration consensus engine. It decides
// whether a proposed airline is admitted immediately (bootstrap phase) or
// collects distinct votes from funded members until a majority of the
// registered airlines agree (quorum phase).
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"surety/internal/registration/metrics"
	"surety/internal/registration/models"
	id "surety/pkg/domain"
	dErrors "surety/pkg/domain-errors"
	audit "surety/pkg/platform/audit"
	"surety/pkg/platform/sentinel"
	"surety/pkg/platform/tx"
	"surety/pkg/requestcontext"
)

type Engine struct {
	proposals           ProposalStore
	gate                Gate
	access              Authorizer
	funding             FundingReader
	members             Membership
	tx                  tx.Runner
	quorumThresholdSize uint32
	logger              *slog.Logger
	metrics             *metrics.Metrics
	auditPublisher      AuditPublisher
	tracer              trace.Tracer
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(e *Engine) {
		e.auditPublisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// WithQuorumThresholdSize sets the registered count at which voting starts.
func WithQuorumThresholdSize(n uint32) Option {
	return func(e *Engine) {
		if n > 0 {
			e.quorumThresholdSize = n
		}
	}
}

func New(proposals ProposalStore, gate Gate, access Authorizer, funding FundingReader, members Membership, runner tx.Runner, opts ...Option) (*Engine, error) {
	if proposals == nil {
		return nil, errors.New("proposal store is required")
	}
	if gate == nil {
		return nil, errors.New("operational gate is required")
	}
	if access == nil {
		return nil, errors.New("authorizer is required")
	}
	if funding == nil {
		return nil, errors.New("funding reader is required")
	}
	if members == nil {
		return nil, errors.New("membership ledger is required")
	}
	if runner == nil {
		return nil, errors.New("transaction runner is required")
	}
	e := &Engine{
		proposals:           proposals,
		gate:                gate,
		access:              access,
		funding:             funding,
		members:             members,
		tx:                  runner,
		quorumThresholdSize: models.DefaultQuorumThresholdSize,
		logger:              slog.New(slog.DiscardHandler),
		tracer:              otel.Tracer("surety/registration"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) QuorumThresholdSize() uint32 {
	return e.quorumThresholdSize
}

// RegisterCandidate proposes req.Candidate on behalf of req.Proposer, or adds
// the proposer's vote to an open proposal. Preconditions are checked in order
// (operational, module authorized, proposer funded, candidate not registered)
// and every failure leaves state untouched. A repeated vote is accepted and
// returns the unchanged tally.
func (e *Engine) RegisterCandidate(ctx context.Context, req models.RegisterRequest) (*models.Outcome, error) {
	start := time.Now()
	req.Normalize()

	ctx, span := e.tracer.Start(ctx, "registration.RegisterCandidate", trace.WithAttributes(
		attribute.String("candidate", req.Candidate.String()),
		attribute.String("proposer", req.Proposer.String()),
		attribute.String("module", req.Module.String()),
	))
	defer span.End()

	var outcome *models.Outcome
	err := req.Validate()
	if err == nil {
		err = e.tx.RunInTx(ctx, func(ctx context.Context) error {
			var err error
			outcome, err = e.decide(ctx, req)
			return err
		})
	}
	if e.metrics != nil {
		e.metrics.ObserveDecisionDuration(time.Since(start).Seconds())
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		e.logger.WarnContext(ctx, "airline registration rejected",
			"candidate", req.Candidate.String(),
			"proposer", req.Proposer.String(),
			"module", req.Module.String(),
			"code", dErrors.CodeOf(err),
		)
		e.incrementProposal(string(dErrors.CodeOf(err)))
		return nil, err
	}
	e.recordOutcome(outcome)

	span.SetAttributes(
		attribute.Bool("admitted", outcome.Admitted),
		attribute.Int64("votes", int64(outcome.Votes)),
		attribute.String("phase", string(outcome.Phase)),
	)
	e.logger.InfoContext(ctx, "airline registration processed",
		"candidate", req.Candidate.String(),
		"proposer", req.Proposer.String(),
		"phase", outcome.Phase,
		"admitted", outcome.Admitted,
		"votes", outcome.Votes,
	)
	return outcome, nil
}

func (e *Engine) decide(ctx context.Context, req models.RegisterRequest) (*models.Outcome, error) {
	if err := e.gate.RequireOperational(ctx); err != nil {
		return nil, err
	}
	if err := e.access.RequireAuthorized(ctx, req.Module); err != nil {
		return nil, err
	}
	funded, err := e.funding.IsFunded(ctx, req.Proposer)
	if err != nil {
		return nil, err
	}
	if !funded {
		return nil, dErrors.New(dErrors.CodeProposerNotFunded, "proposer has not posted the required bond")
	}
	registered, err := e.members.IsAirline(ctx, req.Candidate)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, dErrors.New(dErrors.CodeAlreadyRegistered, "airline is already registered")
	}

	count, err := e.members.RegisteredCount(ctx)
	if err != nil {
		return nil, err
	}
	if models.PhaseFor(count, e.quorumThresholdSize) == models.PhaseBootstrap {
		return e.admitDirectly(ctx, req)
	}
	return e.castVote(ctx, req, count)
}

func (e *Engine) admitDirectly(ctx context.Context, req models.RegisterRequest) (*models.Outcome, error) {
	if err := e.emit(ctx, audit.EventAirlineRegistered, req, string(models.PhaseBootstrap), "admitted without vote"); err != nil {
		return nil, err
	}
	if _, err := e.members.FinalizeRegistration(ctx, req.Module, req.Candidate, req.Name); err != nil {
		return nil, err
	}
	return &models.Outcome{Admitted: true, Votes: 1, Phase: models.PhaseBootstrap}, nil
}

func (e *Engine) castVote(ctx context.Context, req models.RegisterRequest, registered uint32) (*models.Outcome, error) {
	now := requestcontext.Now(ctx)
	proposal, err := e.proposals.Find(ctx, req.Candidate)
	isNew := errors.Is(err, sentinel.ErrNotFound)
	if isNew {
		proposal, err = models.NewProposal(req.Candidate, req.Name, now), nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load proposal")
	}

	if !proposal.AddVote(req.Proposer) {
		e.logger.InfoContext(ctx, "duplicate vote ignored",
			"candidate", req.Candidate.String(),
			"proposer", req.Proposer.String(),
			"votes", proposal.Tally(),
		)
		return &models.Outcome{Votes: proposal.Tally(), Phase: models.PhaseQuorum, Duplicate: true}, nil
	}
	required := models.RequiredVotes(registered)
	admitted := proposal.QuorumReached(registered)
	if admitted {
		proposal.ApplyResolution(now)
	}

	tally := strconv.FormatUint(uint64(proposal.Tally()), 10) + "/" + strconv.FormatUint(uint64(required), 10)
	if isNew {
		if err := e.emit(ctx, audit.EventAirlinePending, req, string(models.PhaseQuorum), "proposal opened"); err != nil {
			return nil, err
		}
	}
	if err := e.emit(ctx, audit.EventAirlineVoteCast, req, tally, "vote recorded"); err != nil {
		return nil, err
	}
	if admitted {
		if err := e.emit(ctx, audit.EventAirlineAdmitted, req, tally, "quorum reached"); err != nil {
			return nil, err
		}
	}

	if isNew {
		if _, err := e.members.InsertPending(ctx, req.Module, req.Candidate, req.Name); err != nil {
			return nil, err
		}
	}
	if admitted {
		if _, err := e.members.FinalizeRegistration(ctx, req.Module, req.Candidate, proposal.Name); err != nil {
			return nil, err
		}
	}
	if err := e.proposals.Save(ctx, proposal); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save proposal")
	}
	return &models.Outcome{Admitted: admitted, Votes: proposal.Tally(), Phase: models.PhaseQuorum}, nil
}

// GetProposal returns the open or resolved proposal for candidate with the
// votes it needs at the current registered count.
func (e *Engine) GetProposal(ctx context.Context, candidate id.MemberID) (*models.ProposalStatus, error) {
	var status *models.ProposalStatus
	err := e.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		proposal, err := e.proposals.Find(ctx, candidate)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "proposal not found")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load proposal")
		}
		count, err := e.members.RegisteredCount(ctx)
		if err != nil {
			return err
		}
		status = &models.ProposalStatus{Proposal: proposal, Required: models.RequiredVotes(count)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

func (e *Engine) emit(ctx context.Context, action audit.AuditEvent, req models.RegisterRequest, decision, reason string) error {
	if e.auditPublisher == nil {
		return nil
	}
	err := e.auditPublisher.Emit(ctx, audit.Event{
		Subject:  req.Candidate.String(),
		ActorID:  req.Proposer.String(),
		Action:   string(action),
		Decision: decision,
		Reason:   reason,
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record registration event")
	}
	return nil
}

func (e *Engine) incrementProposal(outcome string) {
	if e.metrics != nil {
		e.metrics.IncrementProposal(outcome)
	}
}

func (e *Engine) recordOutcome(outcome *models.Outcome) {
	if e.metrics == nil {
		return
	}
	switch {
	case outcome.Duplicate:
		e.metrics.IncrementProposal("duplicate")
		return
	case outcome.Admitted:
		e.metrics.IncrementProposal("admitted")
		e.metrics.IncrementAdmission(string(outcome.Phase))
	default:
		e.metrics.IncrementProposal("pending")
	}
	if outcome.Phase == models.PhaseQuorum {
		e.metrics.IncrementVotesCast()
	}
}
