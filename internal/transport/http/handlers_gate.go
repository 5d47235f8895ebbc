package httptransport

import (
	"net/http"

	id "surety/pkg/domain"
	dErrors "surety/pkg/domain-errors"
	"surety/pkg/platform/httputil"
	"surety/pkg/requestcontext"
)

// HandleGetOperational handles GET /operational.
func (h *Handler) HandleGetOperational(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	operational, err := h.gate.IsOperational(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read operating status",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OperationalResponse{Operational: operational})
}

// HandleSetOperational handles PUT /operational.
func (h *Handler) HandleSetOperational(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetOperationalRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.gate.SetOperating(ctx, *req.Operational, caller); err != nil {
		h.logger.WarnContext(ctx, "set operating status rejected",
			"request_id", requestID,
			"caller", caller.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OperationalResponse{Operational: *req.Operational})
}

// requireCaller reads the caller the auth middleware attached. A missing
// caller means the route was mounted without RequireCaller.
func (h *Handler) requireCaller(w http.ResponseWriter, r *http.Request) (id.MemberID, bool) {
	ctx := r.Context()
	caller := requestcontext.CallerID(ctx)
	if caller.IsZero() {
		h.logger.ErrorContext(ctx, "caller missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.MemberID{}, false
	}
	return caller, true
}
