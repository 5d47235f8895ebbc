package models

import (
	"time"

	id "surety/pkg/domain"
)

// AuthorizedCaller is a module on the allow-list of privileged ledger entry
// points.
type AuthorizedCaller struct {
	Module       id.ModuleID `json:"module_id"`
	AuthorizedAt time.Time   `json:"authorized_at"`
}
