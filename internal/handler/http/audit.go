package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-erp-auth/models"
)

// listAudit serves GET /api/audit?limit=N. The total is the size of the
// whole log, not of the page.
func (h *Handler) listAudit(w http.ResponseWriter, r *http.Request) {
	limit, err := intQueryParam(r, "limit")
	if err != nil {
		writeError(w, r, "*Handler.listAudit", err)
		return
	}

	events, err := h.services.AuditService.List(r.Context(), limit)
	if err != nil {
		writeError(w, r, "*Handler.listAudit", err)
		return
	}
	if events == nil {
		events = []models.AuditEvent{}
	}

	total, err := h.services.AuditService.Count(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.listAudit", err)
		return
	}

	writeResult(w, r, "*Handler.listAudit", models.AuditResult{
		Result: models.Result{Success: true},
		Audits: events,
		Total:  total,
	}, http.StatusOK)
}

// intQueryParam returns 0 for an absent parameter.
func intQueryParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidQueryParam, name)
	}
	return n, nil
}
