package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "surety/pkg/domain"
	dErrors "surety/pkg/domain-errors"
	"surety/pkg/testutil"
)

func TestRequiredVotes(t *testing.T) {
	cases := map[uint32]uint32{
		0:   1,
		1:   1,
		2:   1,
		3:   2,
		4:   2,
		5:   3,
		6:   3,
		7:   4,
		100: 50,
		101: 51,
	}
	for registered, required := range cases {
		assert.Equal(t, required, RequiredVotes(registered), "registered=%d", registered)
	}
}

func TestProposalVoting(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewProposal(testutil.Airline(5), "Air Five", now)

	assert.True(t, p.AddVote(testutil.Airline(1)))
	assert.False(t, p.AddVote(testutil.Airline(1)), "duplicate vote must not count")
	assert.Equal(t, uint32(1), p.Tally())
	assert.False(t, p.QuorumReached(4))

	assert.True(t, p.AddVote(testutil.Airline(2)))
	assert.True(t, p.QuorumReached(4))
	assert.False(t, p.QuorumReached(5))

	p.ApplyResolution(now)
	assert.True(t, p.Resolved)
	assert.False(t, p.AddVote(testutil.Airline(3)), "resolved proposal accepts no votes")
	assert.Equal(t, uint32(2), p.Tally())
}

func TestPhaseFor(t *testing.T) {
	assert.Equal(t, PhaseBootstrap, PhaseFor(0, 4))
	assert.Equal(t, PhaseBootstrap, PhaseFor(3, 4))
	assert.Equal(t, PhaseQuorum, PhaseFor(4, 4))
	assert.Equal(t, PhaseQuorum, PhaseFor(9, 4))
}

func TestRegisterRequestValidateRequiredFields(t *testing.T) {
	valid := RegisterRequest{
		Candidate: testutil.Airline(2),
		Name:      " Air Two ",
		Proposer:  testutil.Airline(1),
		Module:    testutil.Module(1),
	}
	valid.Normalize()
	assert.NoError(t, valid.Validate())
	assert.Equal(t, "Air Two", valid.Name)

	missingName := valid
	missingName.Name = ""
	assert.True(t, dErrors.HasCode(missingName.Validate(), dErrors.CodeValidation))

	missingModule := valid
	missingModule.Module = id.ModuleID{}
	assert.True(t, dErrors.HasCode(missingModule.Validate(), dErrors.CodeValidation))
}
