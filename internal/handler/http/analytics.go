package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-erp-auth/internal/utils"
	"github.com/MKhiriev/go-erp-auth/models"
)

// trackVisit accepts an empty body; the visit is then recorded for "/".
func (h *Handler) trackVisit(w http.ResponseWriter, r *http.Request) {
	var req models.TrackVisitRequest
	if err := utils.DecodeJSON(r, &req); err != nil && !errors.Is(err, utils.ErrEmptyBody) {
		writeBadJSON(w, r, "*Handler.trackVisit", err)
		return
	}

	if err := h.services.AnalyticsService.TrackVisit(r.Context(), req); err != nil {
		writeError(w, r, "*Handler.trackVisit", err)
		return
	}

	writeResult(w, r, "*Handler.trackVisit", models.Result{Success: true}, http.StatusCreated)
}

func (h *Handler) visitSummary(w http.ResponseWriter, r *http.Request) {
	days, err := intQueryParam(r, "days")
	if err != nil {
		writeError(w, r, "*Handler.visitSummary", err)
		return
	}

	summary, err := h.services.AnalyticsService.Summary(r.Context(), days)
	if err != nil {
		writeError(w, r, "*Handler.visitSummary", err)
		return
	}

	writeResult(w, r, "*Handler.visitSummary", models.VisitSummaryResult{
		Result:       models.Result{Success: true},
		VisitSummary: summary,
	}, http.StatusOK)
}
