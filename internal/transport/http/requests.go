package httptransport

import (
	"strings"

	"github.com/shopspring/decimal"

	membershipmodels "surety/internal/membership/models"
	id "surety/pkg/domain"
	dErrors "surety/pkg/domain-errors"
)

// SetOperationalRequest is the body of PUT /operational.
type SetOperationalRequest struct {
	Operational *bool `json:"operational"`
}

func (r *SetOperationalRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Operational == nil {
		return dErrors.New(dErrors.CodeValidation, "operational is required")
	}
	return nil
}

// AuthorizeCallerRequest is the body of POST /admin/callers.
type AuthorizeCallerRequest struct {
	ModuleID string `json:"module_id"`

	parsedModule id.ModuleID
}

func (r *AuthorizeCallerRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.ModuleID) == "" {
		return dErrors.New(dErrors.CodeValidation, "module_id is required")
	}
	module, err := id.ParseModuleID(r.ModuleID)
	if err != nil {
		return err
	}
	r.parsedModule = module
	return nil
}

// RegisterAirlineRequest is the body of POST /airlines. The caller is the
// proposer.
type RegisterAirlineRequest struct {
	Candidate string `json:"candidate"`
	Name      string `json:"name"`

	parsedCandidate id.MemberID
}

func (r *RegisterAirlineRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if strings.TrimSpace(r.Candidate) == "" {
		return dErrors.New(dErrors.CodeValidation, "candidate is required")
	}
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if len(r.Name) > membershipmodels.MaxNameLength {
		return dErrors.New(dErrors.CodeValidation, "name is too long")
	}
	candidate, err := id.ParseMemberID(r.Candidate)
	if err != nil {
		return err
	}
	r.parsedCandidate = candidate
	return nil
}

// FundRequest is the body of POST /airlines/{id}/fund. Amount accepts a JSON
// string or number.
type FundRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

func (r *FundRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Amount == nil {
		return dErrors.New(dErrors.CodeValidation, "amount is required")
	}
	return nil
}
