package models

import (
	"strings"

	membershipmodels "surety/internal/membership/models"
	id "surety/pkg/domain"
	dErrors "surety/pkg/domain-errors"
)

// DefaultQuorumThresholdSize is the registered count at which admission
// switches from a single proposal to quorum voting.
const DefaultQuorumThresholdSize uint32 = 4

type Phase string

const (
	PhaseBootstrap Phase = "bootstrap"
	PhaseQuorum    Phase = "quorum"
)

// PhaseFor picks the admission policy for the current registered count.
func PhaseFor(registered, thresholdSize uint32) Phase {
	if registered < thresholdSize {
		return PhaseBootstrap
	}
	return PhaseQuorum
}

// RegisterRequest is one proposal, or vote, for a candidate.
type RegisterRequest struct {
	Candidate id.MemberID
	Name      string
	Proposer  id.MemberID
	Module    id.ModuleID
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *RegisterRequest) Validate() error {
	if r.Candidate.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "candidate is required")
	}
	if r.Proposer.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "proposer is required")
	}
	if r.Module.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "calling module is required")
	}
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "airline name is required")
	}
	if len(r.Name) > membershipmodels.MaxNameLength {
		return dErrors.New(dErrors.CodeValidation, "airline name is too long")
	}
	return nil
}

// Outcome is the result of RegisterCandidate. Votes is the candidate's tally
// after the call; bootstrap admissions report the proposer's single
// endorsement. Duplicate marks a repeated vote that was not counted.
type Outcome struct {
	Admitted  bool
	Votes     uint32
	Phase     Phase
	Duplicate bool
}

// ProposalStatus is a proposal together with the votes it currently needs.
type ProposalStatus struct {
	Proposal *Proposal
	Required uint32
}
