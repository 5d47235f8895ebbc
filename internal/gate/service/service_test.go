package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"surety/internal/gate/store"
	id "surety/pkg/domain"
	dErrors "surety/pkg/domain-errors"
	audit "surety/pkg/platform/audit"
	"surety/pkg/platform/audit/publishers/compliance"
	auditmemory "surety/pkg/platform/audit/store/memory"
	"surety/pkg/platform/tx"
	"surety/pkg/testutil"
)

// Justification for unit tests: the gate is a leaf every ledger transition
// depends on. Tests pin the owner check, the default position and the
// fail-closed audit behavior.

type GateServiceSuite struct {
	suite.Suite
	ctx     context.Context
	flags   *store.InMemory
	audit   *auditmemory.InMemoryStore
	service *Service
}

func TestGateServiceSuite(t *testing.T) {
	suite.Run(t, new(GateServiceSuite))
}

func (s *GateServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.flags = store.NewInMemory()
	s.audit = auditmemory.NewInMemoryStore()
	svc, err := New(s.flags, tx.NewInMemory(), testutil.Owner(),
		WithAuditPublisher(compliance.New(s.audit)),
	)
	s.Require().NoError(err)
	s.service = svc
}

func (s *GateServiceSuite) TestNew() {
	s.Run("nil flag store returns error", func() {
		_, err := New(nil, tx.NewInMemory(), testutil.Owner())
		s.ErrorContains(err, "flag store is required")
	})

	s.Run("nil runner returns error", func() {
		_, err := New(s.flags, nil, testutil.Owner())
		s.ErrorContains(err, "transaction runner is required")
	})

	s.Run("zero owner returns error", func() {
		_, err := New(s.flags, tx.NewInMemory(), id.MemberID{})
		s.ErrorContains(err, "owner identity is required")
	})
}

func (s *GateServiceSuite) TestDefaultsToOperational() {
	operational, err := s.service.IsOperational(s.ctx)
	s.Require().NoError(err)
	s.True(operational)
	s.NoError(s.service.RequireOperational(s.ctx))
}

func (s *GateServiceSuite) TestSetOperating() {
	s.Run("non-owner is rejected and flag is unchanged", func() {
		err := s.service.SetOperating(s.ctx, false, testutil.Airline(2))
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

		operational, err := s.service.IsOperational(s.ctx)
		s.Require().NoError(err)
		s.True(operational)
		s.Empty(s.allEvents())
	})

	s.Run("owner suspends and resumes", func() {
		s.Require().NoError(s.service.SetOperating(s.ctx, false, testutil.Owner()))
		err := s.service.RequireOperational(s.ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeNotOperational))

		s.Require().NoError(s.service.SetOperating(s.ctx, true, testutil.Owner()))
		s.NoError(s.service.RequireOperational(s.ctx))

		events, err := s.audit.ListBySubject(s.ctx, "operating_status")
		s.Require().NoError(err)
		s.Require().Len(events, 2)
		s.Equal("suspended", events[0].Decision)
		s.Equal("resumed", events[1].Decision)
		s.Equal(audit.CategorySecurity, events[0].Category)
	})

	s.Run("setting current value records nothing", func() {
		s.audit.Clear()
		s.Require().NoError(s.service.SetOperating(s.ctx, true, testutil.Owner()))
		s.Empty(s.allEvents())
	})
}

func (s *GateServiceSuite) allEvents() []audit.Event {
	events, err := s.audit.ListAll(s.ctx)
	s.Require().NoError(err)
	return events
}

type failingAudit struct{}

func (failingAudit) Emit(context.Context, audit.Event) error { return errors.New("disk full") }

func (s *GateServiceSuite) TestAuditFailureAbortsChange() {
	svc, err := New(s.flags, tx.NewInMemory(), testutil.Owner(), WithAuditPublisher(failingAudit{}))
	s.Require().NoError(err)

	err = svc.SetOperating(s.ctx, false, testutil.Owner())
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	operational, err := svc.IsOperational(s.ctx)
	s.Require().NoError(err)
	s.True(operational)
}

func (s *GateServiceSuite) TestNestedTransitionRejected() {
	runner := tx.NewInMemory()
	svc, err := New(s.flags, runner, testutil.Owner())
	s.Require().NoError(err)

	err = runner.RunInTx(s.ctx, func(ctx context.Context) error {
		return svc.SetOperating(ctx, false, testutil.Owner())
	})
	s.True(dErrors.HasCode(err, dErrors.CodeReentrantCall))
}

// commitFailingRunner runs fn and then reports a failed commit.
type commitFailingRunner struct{ tx.Runner }

func (r commitFailingRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := r.Runner.RunInTx(ctx, fn); err != nil {
		return err
	}
	return errors.New("commit: connection reset")
}

func (s *GateServiceSuite) TestFailedCommitLeavesFlagUnchanged() {
	svc, err := New(s.flags, commitFailingRunner{tx.NewInMemory()}, testutil.Owner())
	s.Require().NoError(err)

	s.Error(svc.SetOperating(s.ctx, false, testutil.Owner()))

	operational, err := svc.IsOperational(s.ctx)
	s.Require().NoError(err)
	s.True(operational)
}

type unwritableFlags struct{ *store.InMemory }

func (unwritableFlags) SetOperational(context.Context, bool) error {
	return errors.New("redis: connection refused")
}

func (s *GateServiceSuite) TestFlagWriteFailureCanBeRetried() {
	broken, err := New(unwritableFlags{s.flags}, tx.NewInMemory(), testutil.Owner(),
		WithAuditPublisher(compliance.New(s.audit)),
	)
	s.Require().NoError(err)

	err = broken.SetOperating(s.ctx, false, testutil.Owner())
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.NoError(s.service.RequireOperational(s.ctx))

	s.Require().NoError(s.service.SetOperating(s.ctx, false, testutil.Owner()))
	s.True(dErrors.HasCode(s.service.RequireOperational(s.ctx), dErrors.CodeNotOperational))
	s.Len(s.allEvents(), 2, "the failed attempt and the retry are both audited")
}
