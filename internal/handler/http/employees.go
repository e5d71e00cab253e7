package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-erp-auth/internal/utils"
	"github.com/MKhiriev/go-erp-auth/models"
)

func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.services.EmployeeService.ListEmployees(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.listEmployees", err)
		return
	}
	if employees == nil {
		employees = []models.Employee{}
	}

	writeResult(w, r, "*Handler.listEmployees", models.EmployeesResult{
		Result:    models.Result{Success: true},
		Employees: employees,
	}, http.StatusOK)
}

func (h *Handler) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEmployeeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w, r, "*Handler.createEmployee", err)
		return
	}

	employee, err := h.services.EmployeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.createEmployee", err)
		return
	}

	writeResult(w, r, "*Handler.createEmployee", models.EmployeeResult{
		Result:   models.Result{Success: true, Message: "employee registered, temporary password sent by email"},
		Employee: &employee,
	}, http.StatusCreated)
}

func (h *Handler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.services.EmployeeService.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "*Handler.deleteEmployee", err)
		return
	}

	writeResult(w, r, "*Handler.deleteEmployee", models.Result{Success: true, Message: "employee deleted"}, http.StatusOK)
}
