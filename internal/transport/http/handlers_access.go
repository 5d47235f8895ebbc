package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	id "surety/pkg/domain"
	"surety/pkg/platform/httputil"
	"surety/pkg/requestcontext"
)

// HandleListCallers handles GET /admin/callers.
func (h *Handler) HandleListCallers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callers, err := h.access.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list authorized callers",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromCallers(callers))
}

// HandleAuthorizeCaller handles POST /admin/callers.
func (h *Handler) HandleAuthorizeCaller(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AuthorizeCallerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.access.Authorize(ctx, req.parsedModule, caller); err != nil {
		h.logger.WarnContext(ctx, "authorize caller rejected",
			"request_id", requestID,
			"caller", caller.String(),
			"module", req.parsedModule.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeauthorizeCaller handles DELETE /admin/callers/{moduleID}.
func (h *Handler) HandleDeauthorizeCaller(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.requireCaller(w, r)
	if !ok {
		return
	}
	module, err := id.ParseModuleID(chi.URLParam(r, "moduleID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.access.Deauthorize(ctx, module, caller); err != nil {
		h.logger.WarnContext(ctx, "deauthorize caller rejected",
			"request_id", requestID,
			"caller", caller.String(),
			"module", module.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
