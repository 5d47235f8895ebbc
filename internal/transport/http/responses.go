package httptransport

import (
	"time"

	accessmodels "surety/internal/access/models"
	fundingmodels "surety/internal/funding/models"
	membershipmodels "surety/internal/membership/models"
	registrationmodels "surety/internal/registration/models"
)

type OperationalResponse struct {
	Operational bool `json:"operational"`
}

type CallerResponse struct {
	ModuleID     string    `json:"module_id"`
	AuthorizedAt time.Time `json:"authorized_at"`
}

// RegisterAirlineResponse mirrors the (success, votes) pair of a
// registration call.
type RegisterAirlineResponse struct {
	Admitted bool   `json:"admitted"`
	Votes    uint32 `json:"votes"`
	Phase    string `json:"phase"`
}

type CountResponse struct {
	Count uint32 `json:"count"`
}

type FundedResponse struct {
	ID     string `json:"id"`
	Funded bool   `json:"funded"`
}

// AirlineResponse joins a member with its bond.
type AirlineResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Registered   bool       `json:"registered"`
	RegisteredAt *time.Time `json:"registered_at,omitempty"`
	Funded       bool       `json:"funded"`
	Bonded       string     `json:"bonded"`
}

type BondResponse struct {
	ID       string     `json:"id"`
	Bonded   string     `json:"bonded"`
	Funded   bool       `json:"funded"`
	FundedAt *time.Time `json:"funded_at,omitempty"`
}

type ProposalResponse struct {
	Candidate  string     `json:"candidate"`
	Name       string     `json:"name"`
	Voters     []string   `json:"voters"`
	Votes      uint32     `json:"votes"`
	Required   uint32     `json:"required"`
	Resolved   bool       `json:"resolved"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

func fromCallers(callers []accessmodels.AuthorizedCaller) []CallerResponse {
	out := make([]CallerResponse, 0, len(callers))
	for _, c := range callers {
		out = append(out, CallerResponse{ModuleID: c.Module.Checksum(), AuthorizedAt: c.AuthorizedAt})
	}
	return out
}

func fromOutcome(outcome *registrationmodels.Outcome) *RegisterAirlineResponse {
	return &RegisterAirlineResponse{
		Admitted: outcome.Admitted,
		Votes:    outcome.Votes,
		Phase:    string(outcome.Phase),
	}
}

func fromAirline(m *membershipmodels.Member, b *fundingmodels.Bond) AirlineResponse {
	return AirlineResponse{
		ID:           m.ID.Checksum(),
		Name:         m.Name,
		Registered:   m.Registered,
		RegisteredAt: m.RegisteredAt,
		Funded:       b.Funded,
		Bonded:       b.Amount.String(),
	}
}

func fromBond(b *fundingmodels.Bond) *BondResponse {
	return &BondResponse{
		ID:       b.MemberID.Checksum(),
		Bonded:   b.Amount.String(),
		Funded:   b.Funded,
		FundedAt: b.FundedAt,
	}
}

func fromProposal(status *registrationmodels.ProposalStatus) *ProposalResponse {
	p := status.Proposal
	voters := make([]string, 0, len(p.Voters))
	for _, v := range p.Voters {
		voters = append(voters, v.Checksum())
	}
	return &ProposalResponse{
		Candidate:  p.Candidate.Checksum(),
		Name:       p.Name,
		Voters:     voters,
		Votes:      p.Tally(),
		Required:   status.Required,
		Resolved:   p.Resolved,
		ResolvedAt: p.ResolvedAt,
	}
}
