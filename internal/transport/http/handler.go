package httptransport

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	accessmodels "surety/internal/access/models"
	fundingmodels "surety/internal/funding/models"
	membershipmodels "surety/internal/membership/models"
	registrationmodels "surety/internal/registration/models"
	id "surety/pkg/domain"
)

// Gate exposes the operating switch.
type Gate interface {
	IsOperational(ctx context.Context) (bool, error)
	SetOperating(ctx context.Context, operational bool, caller id.MemberID) error
}

// Access manages the module allow-list.
type Access interface {
	Authorize(ctx context.Context, module id.ModuleID, caller id.MemberID) error
	Deauthorize(ctx context.Context, module id.ModuleID, caller id.MemberID) error
	List(ctx context.Context) ([]accessmodels.AuthorizedCaller, error)
}

// Members reads the membership ledger.
type Members interface {
	Get(ctx context.Context, memberID id.MemberID) (*membershipmodels.Member, error)
	List(ctx context.Context) ([]*membershipmodels.Member, error)
	RegisteredCount(ctx context.Context) (uint32, error)
}

// Funding posts and reads bonds.
type Funding interface {
	Fund(ctx context.Context, memberID id.MemberID, amount decimal.Decimal, caller id.MemberID) (*fundingmodels.Bond, error)
	IsFunded(ctx context.Context, memberID id.MemberID) (bool, error)
	Bond(ctx context.Context, memberID id.MemberID) (*fundingmodels.Bond, error)
}

// Registration admits airlines.
type Registration interface {
	RegisterCandidate(ctx context.Context, req registrationmodels.RegisterRequest) (*registrationmodels.Outcome, error)
	GetProposal(ctx context.Context, candidate id.MemberID) (*registrationmodels.ProposalStatus, error)
}

// Handler serves the consortium API. Privileged ledger calls are made as
// module, the identity the application was authorized under.
type Handler struct {
	gate         Gate
	access       Access
	members      Members
	funding      Funding
	registration Registration
	module       id.ModuleID
	logger       *slog.Logger
}

// Services groups the collaborators a Handler delegates to.
type Services struct {
	Gate         Gate
	Access       Access
	Members      Members
	Funding      Funding
	Registration Registration
}

func NewHandler(services Services, module id.ModuleID, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		gate:         services.Gate,
		access:       services.Access,
		members:      services.Members,
		funding:      services.Funding,
		registration: services.Registration,
		module:       module,
		logger:       logger,
	}
}
