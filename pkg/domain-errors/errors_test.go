package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches outer code", func(t *testing.T) {
		err := New(CodeProposerNotFunded, "proposer has not posted bond")
		assert.True(t, HasCode(err, CodeProposerNotFunded))
		assert.False(t, HasCode(err, CodeNotOperational))
	})

	t.Run("matches inner code through wraps", func(t *testing.T) {
		inner := New(CodeNotOperational, "contract is paused")
		err := Wrap(fmt.Errorf("gate: %w", inner), CodeInternal, "register airline")
		assert.True(t, HasCode(err, CodeInternal))
		assert.True(t, HasCode(err, CodeNotOperational))
		assert.Equal(t, CodeInternal, CodeOf(err))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		err := errors.New("boom")
		assert.False(t, HasCode(err, CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(err))
		assert.Empty(t, MessageOf(err))
	})

	t.Run("wrap of nil is nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "nothing"))
	})
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeNotOperational:      http.StatusServiceUnavailable,
		CodeCallerNotAuthorized: http.StatusForbidden,
		CodeProposerNotFunded:   http.StatusForbidden,
		CodeAlreadyRegistered:   http.StatusConflict,
		CodeAlreadyInitialized:  http.StatusConflict,
		CodeUnauthorized:        http.StatusUnauthorized,
		CodeInvalidFunding:      http.StatusBadRequest,
		CodeInternal:            http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}
