package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	registrationmodels "surety/internal/registration/models"
	id "surety/pkg/domain"
	"surety/pkg/platform/httputil"
	"surety/pkg/requestcontext"
)

// HandleRegisterAirline handles POST /airlines. The caller proposes, or
// votes for, the candidate.
func (h *Handler) HandleRegisterAirline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RegisterAirlineRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	outcome, err := h.registration.RegisterCandidate(ctx, registrationmodels.RegisterRequest{
		Candidate: req.parsedCandidate,
		Name:      req.Name,
		Proposer:  caller,
		Module:    h.module,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "airline registration rejected",
			"request_id", requestID,
			"proposer", caller.String(),
			"candidate", req.parsedCandidate.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "airline registration processed",
		"request_id", requestID,
		"proposer", caller.String(),
		"candidate", req.parsedCandidate.String(),
		"admitted", outcome.Admitted,
		"votes", outcome.Votes,
	)
	httputil.WriteJSON(w, http.StatusOK, fromOutcome(outcome))
}

// HandleListAirlines handles GET /airlines, pending members included.
func (h *Handler) HandleListAirlines(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	members, err := h.members.List(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]AirlineResponse, 0, len(members))
	for _, m := range members {
		bond, err := h.funding.Bond(ctx, m.ID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		out = append(out, fromAirline(m, bond))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleCountAirlines handles GET /airlines/count.
func (h *Handler) HandleCountAirlines(w http.ResponseWriter, r *http.Request) {
	count, err := h.members.RegisteredCount(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CountResponse{Count: count})
}

// HandleGetAirline handles GET /airlines/{id}.
func (h *Handler) HandleGetAirline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	memberID, ok := memberParam(w, r, "id")
	if !ok {
		return
	}
	member, err := h.members.Get(ctx, memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	bond, err := h.funding.Bond(ctx, memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromAirline(member, bond))
}

// HandleIsFunded handles GET /airlines/{id}/funded.
func (h *Handler) HandleIsFunded(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberParam(w, r, "id")
	if !ok {
		return
	}
	funded, err := h.funding.IsFunded(r.Context(), memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FundedResponse{ID: memberID.Checksum(), Funded: funded})
}

// HandleFund handles POST /airlines/{id}/fund. Only the airline itself may
// post its bond.
func (h *Handler) HandleFund(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	memberID, ok := memberParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[FundRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	bond, err := h.funding.Fund(ctx, memberID, *req.Amount, caller)
	if err != nil {
		h.logger.WarnContext(ctx, "funding rejected",
			"request_id", requestID,
			"caller", caller.String(),
			"member", memberID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromBond(bond))
}

// HandleGetProposal handles GET /proposals/{candidate}.
func (h *Handler) HandleGetProposal(w http.ResponseWriter, r *http.Request) {
	candidate, ok := memberParam(w, r, "candidate")
	if !ok {
		return
	}
	status, err := h.registration.GetProposal(r.Context(), candidate)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromProposal(status))
}

func memberParam(w http.ResponseWriter, r *http.Request, name string) (id.MemberID, bool) {
	memberID, err := id.ParseMemberID(chi.URLParam(r, name))
	if err != nil {
		httputil.WriteError(w, err)
		return id.MemberID{}, false
	}
	return memberID, true
}
