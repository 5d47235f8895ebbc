package tx

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "surety/pkg/domain-errors"
)

func TestInMemoryRunner(t *testing.T) {
	t.Run("marks the context active inside a transaction", func(t *testing.T) {
		r := NewInMemory()
		assert.False(t, Active(context.Background()))
		err := r.RunInTx(context.Background(), func(ctx context.Context) error {
			assert.True(t, Active(ctx))
			return RequireActive(ctx)
		})
		require.NoError(t, err)
	})

	t.Run("rejects nested transitions", func(t *testing.T) {
		r := NewInMemory()
		err := r.RunInTx(context.Background(), func(ctx context.Context) error {
			return r.RunInTx(ctx, func(context.Context) error { return nil })
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeReentrantCall))
	})

	t.Run("reads join an open transaction", func(t *testing.T) {
		r := NewInMemory()
		joined := false
		err := r.RunInTx(context.Background(), func(ctx context.Context) error {
			return r.RunReadOnly(ctx, func(context.Context) error {
				joined = true
				return nil
			})
		})
		require.NoError(t, err)
		assert.True(t, joined)
	})

	t.Run("rejects cancelled contexts", func(t *testing.T) {
		r := NewInMemory()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := r.RunInTx(ctx, func(context.Context) error { return nil })
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	})

	t.Run("RequireActive fails outside a transaction", func(t *testing.T) {
		assert.Error(t, RequireActive(context.Background()))
	})

	t.Run("serializes writers", func(t *testing.T) {
		r := NewInMemory()
		counter := 0
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = r.RunInTx(context.Background(), func(context.Context) error {
					v := counter
					counter = v + 1
					return nil
				})
			}()
		}
		wg.Wait()
		assert.Equal(t, 100, counter)
	})
}
