package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers membership changes that must never be lost:
	// admissions, votes and bonds.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers administrative actions: operating status and
	// allow-list changes.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// Subject is the identity the action applies to (candidate, member, module).
	Subject string
	// ActorID is the identity that performed the action (proposer, owner, funder).
	ActorID  string
	Action   string
	Decision string
	Reason   string
	// RequestID is the correlation ID from the request context.
	RequestID string
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
}

type AuditEvent string

const (
	// Membership events
	EventAirlineRegistered AuditEvent = "airline_registered"
	EventAirlinePending    AuditEvent = "airline_pending"
	EventAirlineVoteCast   AuditEvent = "airline_vote_cast"
	EventAirlineAdmitted   AuditEvent = "airline_admitted"

	// Funding events
	EventBondPosted    AuditEvent = "bond_posted"
	EventAirlineFunded AuditEvent = "airline_funded"

	// Administrative events
	EventOperatingStatusChanged AuditEvent = "operating_status_changed"
	EventCallerAuthorized       AuditEvent = "caller_authorized"
	EventCallerDeauthorized     AuditEvent = "caller_deauthorized"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventAirlineRegistered: CategoryCompliance,
	EventAirlineAdmitted:   CategoryCompliance,
	EventAirlineVoteCast:   CategoryCompliance,
	EventAirlineFunded:     CategoryCompliance,
	EventBondPosted:        CategoryCompliance,

	EventOperatingStatusChanged: CategorySecurity,
	EventCallerAuthorized:       CategorySecurity,
	EventCallerDeauthorized:     CategorySecurity,

	EventAirlinePending: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
