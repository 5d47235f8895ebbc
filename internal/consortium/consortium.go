// Package consortium wires the gate, allow-list, ledgers and registration
// engine over one set of stores and one transaction runner.
package consortium

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	accessservice "surety/internal/access/service"
	accessstore "surety/internal/access/store"
	fundingmetrics "surety/internal/funding/metrics"
	fundingservice "surety/internal/funding/service"
	"surety/internal/funding/store/bond"
	gateservice "surety/internal/gate/service"
	gatestore "surety/internal/gate/store"
	membershipservice "surety/internal/membership/service"
	"surety/internal/membership/store/member"
	registrationmetrics "surety/internal/registration/metrics"
	registrationservice "surety/internal/registration/service"
	"surety/internal/registration/store/proposal"
	id "surety/pkg/domain"
	dErrors "surety/pkg/domain-errors"
	audit "surety/pkg/platform/audit"
	"surety/pkg/platform/audit/publishers/compliance"
	auditmemory "surety/pkg/platform/audit/store/memory"
	auditpostgres "surety/pkg/platform/audit/store/postgres"
	"surety/pkg/platform/tx"
)

// Stores is the persistence a Consortium runs on. Every store must honor the
// transaction carried by Runner.
type Stores struct {
	Runner    tx.Runner
	Flags     gateservice.FlagStore
	Callers   accessservice.AllowlistStore
	Members   membershipservice.MemberStore
	Bonds     fundingservice.BondStore
	Proposals registrationservice.ProposalStore
	Audit     audit.Store
}

// InMemoryStores keeps all state in process memory.
func InMemoryStores() Stores {
	return Stores{
		Runner:    tx.NewInMemory(),
		Flags:     gatestore.NewInMemory(),
		Callers:   accessstore.NewInMemory(),
		Members:   member.NewInMemory(),
		Bonds:     bond.NewInMemory(),
		Proposals: proposal.NewInMemory(),
		Audit:     auditmemory.NewInMemoryStore(),
	}
}

// PostgresStores keeps ledger state and the audit outbox in Postgres. flags
// is separate so the operating switch can live in Redis.
func PostgresStores(db *sql.DB, flags gateservice.FlagStore) Stores {
	return Stores{
		Runner:    tx.NewPostgres(db),
		Flags:     flags,
		Callers:   accessstore.NewPostgres(db),
		Members:   member.NewPostgres(db),
		Bonds:     bond.NewPostgres(db),
		Proposals: proposal.NewPostgres(db),
		Audit:     auditpostgres.New(db),
	}
}

// Settings are the governance parameters fixed at construction.
type Settings struct {
	Owner               id.MemberID
	QuorumThresholdSize uint32
	FundingThreshold    decimal.Decimal
}

type Consortium struct {
	Gate         *gateservice.Service
	Access       *accessservice.Service
	Members      *membershipservice.Ledger
	Funding      *fundingservice.Service
	Registration *registrationservice.Engine
	Audit        *compliance.Publisher
	owner        id.MemberID
	logger       *slog.Logger
}

type options struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegisterer registers module metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

func New(stores Stores, settings Settings, opts ...Option) (*Consortium, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	if stores.Audit == nil {
		return nil, errors.New("audit store is required")
	}

	publisher := compliance.New(stores.Audit,
		compliance.WithLogger(o.logger),
		compliance.WithMetrics(compliance.NewMetrics(o.registerer)),
	)

	gate, err := gateservice.New(stores.Flags, stores.Runner, settings.Owner,
		gateservice.WithLogger(o.logger),
		gateservice.WithAuditPublisher(publisher),
	)
	if err != nil {
		return nil, err
	}
	access, err := accessservice.New(stores.Callers, gate, stores.Runner, settings.Owner,
		accessservice.WithLogger(o.logger),
		accessservice.WithAuditPublisher(publisher),
	)
	if err != nil {
		return nil, err
	}
	members, err := membershipservice.New(stores.Members, gate, access, stores.Runner, settings.Owner,
		membershipservice.WithLogger(o.logger),
		membershipservice.WithAuditPublisher(publisher),
	)
	if err != nil {
		return nil, err
	}
	funding, err := fundingservice.New(stores.Bonds, gate, members, stores.Runner, settings.FundingThreshold,
		fundingservice.WithLogger(o.logger),
		fundingservice.WithMetrics(fundingmetrics.New(o.registerer)),
		fundingservice.WithAuditPublisher(publisher),
	)
	if err != nil {
		return nil, err
	}
	engine, err := registrationservice.New(stores.Proposals, gate, access, funding, members, stores.Runner,
		registrationservice.WithLogger(o.logger),
		registrationservice.WithMetrics(registrationmetrics.New(o.registerer)),
		registrationservice.WithAuditPublisher(publisher),
		registrationservice.WithQuorumThresholdSize(settings.QuorumThresholdSize),
	)
	if err != nil {
		return nil, err
	}

	return &Consortium{
		Gate:         gate,
		Access:       access,
		Members:      members,
		Funding:      funding,
		Registration: engine,
		Audit:        publisher,
		owner:        settings.Owner,
		logger:       o.logger,
	}, nil
}

// Bootstrap mirrors contract deployment: the owner authorizes the application
// module and registers the first airline. It is safe to repeat on restart.
func (c *Consortium) Bootstrap(ctx context.Context, module id.ModuleID, firstAirline id.MemberID, name string) error {
	if err := c.Access.Authorize(ctx, module, c.owner); err != nil {
		return err
	}
	_, err := c.Members.RegisterFirstMember(ctx, firstAirline, name, c.owner)
	if dErrors.HasCode(err, dErrors.CodeAlreadyInitialized) {
		c.logger.InfoContext(ctx, "consortium already initialized")
		return nil
	}
	return err
}
