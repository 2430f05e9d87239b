package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/domain"
)

// ScheduleHandler serves the time conversions and department catalog used by
// the event forms.
type ScheduleHandler struct {
	catalog domain.Catalog
}

func NewScheduleHandler(catalog domain.Catalog) *ScheduleHandler {
	return &ScheduleHandler{catalog: catalog}
}

func (h *ScheduleHandler) Register(r chi.Router) {
	r.Post("/time/encode", h.EncodeTime)
	r.Get("/time/decode", h.DecodeTime)
	r.Post("/schedules/normalize", h.NormalizeSchedule)
	r.Get("/departments", h.ListDepartments)
	r.Get("/departments/{id}", h.GetDepartment)
}

type TimeResponse struct {
	Time string `json:"time"`
}

type ScheduleResponse struct {
	domain.Schedule
	CategoryName  string `json:"category_name"`
	CategoryColor string `json:"category_color"`
}

type DepartmentResponse struct {
	domain.Department
	Known bool `json:"known"`
}

type DepartmentsResponse struct {
	Departments []domain.Department `json:"departments"`
}

func (h *ScheduleHandler) EncodeTime(w http.ResponseWriter, r *http.Request) {
	var req domain.TimeOfDay12
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TimeResponse{Time: domain.EncodeTime24(req)})
}

func (h *ScheduleHandler) DecodeTime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.DecodeTime24(r.URL.Query().Get("time")))
}

func (h *ScheduleHandler) NormalizeSchedule(w http.ResponseWriter, r *http.Request) {
	var form domain.ScheduleForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schedule, err := form.Normalize(h.catalog)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ScheduleResponse{
		Schedule:      schedule,
		CategoryName:  h.catalog.Name(schedule.Category),
		CategoryColor: h.catalog.Color(schedule.Category),
	})
}

func (h *ScheduleHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, DepartmentsResponse{Departments: h.catalog.All()})
}

func (h *ScheduleHandler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	dept, known := h.catalog.Resolve(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, DepartmentResponse{Department: dept, Known: known})
}

func writeDomainError(w http.ResponseWriter, err error) {
	var opErr domain.OpError
	switch {
	case errors.As(err, &opErr) && domain.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, opErr.Msg)
	case domain.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
