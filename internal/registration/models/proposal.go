package models

import (
	"time"

	id "surety/pkg/domain"
)

// Proposal is the pending-vote record for a candidate in the quorum phase.
// A voter appears at most once; a resolved proposal accepts no more votes.
type Proposal struct {
	Candidate  id.MemberID
	Name       string
	Voters     []id.MemberID
	Resolved   bool
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

func NewProposal(candidate id.MemberID, name string, now time.Time) *Proposal {
	return &Proposal{Candidate: candidate, Name: name, CreatedAt: now}
}

func (p *Proposal) HasVoted(voter id.MemberID) bool {
	for _, v := range p.Voters {
		if v == voter {
			return true
		}
	}
	return false
}

// AddVote records voter and reports whether the tally grew.
func (p *Proposal) AddVote(voter id.MemberID) bool {
	if p.Resolved || p.HasVoted(voter) {
		return false
	}
	p.Voters = append(p.Voters, voter)
	return true
}

func (p *Proposal) Tally() uint32 {
	return uint32(len(p.Voters))
}

// QuorumReached reports whether the tally meets the majority of registered.
func (p *Proposal) QuorumReached(registered uint32) bool {
	return p.Tally() >= RequiredVotes(registered)
}

func (p *Proposal) ApplyResolution(now time.Time) {
	if p.Resolved {
		return
	}
	p.Resolved = true
	p.ResolvedAt = &now
}

// RequiredVotes is ceil(registered/2), never less than one.
func RequiredVotes(registered uint32) uint32 {
	required := registered/2 + registered%2
	if required == 0 {
		return 1
	}
	return required
}
