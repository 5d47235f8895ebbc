package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "surety/pkg/domain-errors"
	"surety/pkg/testutil"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := func() RegisterRequest {
		return RegisterRequest{
			Candidate: testutil.Airline(2),
			Name:      "  Air Two  ",
			Proposer:  testutil.Airline(1),
			Module:    testutil.Module(1),
		}
	}

	t.Run("trims and accepts a well-formed request", func(t *testing.T) {
		req := valid()
		req.Normalize()
		assert.NoError(t, req.Validate())
		assert.Equal(t, "Air Two", req.Name)
	})

	t.Run("name at the limit is accepted", func(t *testing.T) {
		req := valid()
		req.Name = strings.Repeat("x", 128)
		assert.NoError(t, req.Validate())
	})

	t.Run("name over the limit is rejected", func(t *testing.T) {
		req := valid()
		req.Name = strings.Repeat("x", 129)
		err := req.Validate()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "airline name is too long", dErrors.MessageOf(err))
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		req := valid()
		req.Name = "   "
		req.Normalize()
		assert.True(t, dErrors.HasCode(req.Validate(), dErrors.CodeValidation))
	})
}
