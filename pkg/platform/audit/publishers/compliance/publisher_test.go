package compliance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "surety/pkg/platform/audit"
	"surety/pkg/platform/audit/store/memory"
	"surety/pkg/requestcontext"
)

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error { return errors.New("disk full") }
func (failingStore) ListBySubject(context.Context, string) ([]audit.Event, error) {
	return nil, nil
}

func TestPublisher_Emit(t *testing.T) {
	t.Run("persists and enriches events", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		pub := New(store)

		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		ctx := requestcontext.WithTime(context.Background(), now)
		ctx = requestcontext.WithRequestID(ctx, "req-1")

		err := pub.Emit(ctx, audit.Event{
			Subject: "0x00000000000000000000000000000000000000a5",
			Action:  string(audit.EventAirlineAdmitted),
		})
		require.NoError(t, err)

		events, err := pub.List(ctx, "0x00000000000000000000000000000000000000a5")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, audit.CategoryCompliance, events[0].Category)
		assert.Equal(t, now, events[0].Timestamp)
		assert.Equal(t, "req-1", events[0].RequestID)
	})

	t.Run("rejects events without subject or action", func(t *testing.T) {
		pub := New(memory.NewInMemoryStore())
		assert.Error(t, pub.Emit(context.Background(), audit.Event{Action: "x"}))
		assert.Error(t, pub.Emit(context.Background(), audit.Event{Subject: "x"}))
	})

	t.Run("fails closed and counts failures", func(t *testing.T) {
		m := NewMetrics(prometheus.NewRegistry())
		pub := New(failingStore{}, WithMetrics(m))

		err := pub.Emit(context.Background(), audit.Event{
			Subject: "0x00000000000000000000000000000000000000a5",
			Action:  string(audit.EventBondPosted),
		})
		require.Error(t, err)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.PersistFailures))
		assert.Equal(t, float64(0), testutil.ToFloat64(m.EventsEmitted))
	})
}

func TestAuditEvent_Category(t *testing.T) {
	assert.Equal(t, audit.CategoryCompliance, audit.EventAirlineVoteCast.Category())
	assert.Equal(t, audit.CategorySecurity, audit.EventOperatingStatusChanged.Category())
	assert.Equal(t, audit.CategoryOperations, audit.AuditEvent("unknown").Category())
}
