package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type StaffHandler interface {
	ListStaff(w http.ResponseWriter, r *http.Request)
	GetStaff(w http.ResponseWriter, r *http.Request)
	CreateStaff(w http.ResponseWriter, r *http.Request)
	UpdateStaff(w http.ResponseWriter, r *http.Request)
	DeleteStaff(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
}

type staffHandlerImpl struct {
	staffService staff.StaffService
}

func NewStaffHandler(staffService staff.StaffService) StaffHandler {
	return &staffHandlerImpl{staffService: staffService}
}

// ListStaff implements StaffHandler
func (h *staffHandlerImpl) ListStaff(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := staff.StaffFilter{}

	if department := query.Get("department"); department != "" {
		filter.Department = &department
	}
	if search := query.Get("search"); search != "" {
		filter.Search = &search
	}
	if activeStr := query.Get("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			response.BadRequest(w, "invalid active parameter", nil)
			return
		}
		filter.Active = &active
	}

	results, err := h.staffService.ListStaff(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results, len(results))
}

// GetStaff implements StaffHandler
func (h *staffHandlerImpl) GetStaff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Staff ID is required", nil)
		return
	}

	result, err := h.staffService.GetStaff(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateStaff implements StaffHandler
func (h *staffHandlerImpl) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req staff.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.staffService.CreateStaff(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Staff created successfully", result)
}

// UpdateStaff implements StaffHandler
func (h *staffHandlerImpl) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Staff ID is required", nil)
		return
	}

	var req staff.UpdateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.staffService.UpdateStaff(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Staff updated successfully", result)
}

// DeleteStaff implements StaffHandler
func (h *staffHandlerImpl) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Staff ID is required", nil)
		return
	}

	if err := h.staffService.DeleteStaff(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Staff deleted successfully", nil)
}

// ListDepartments implements StaffHandler
func (h *staffHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.staffService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departments)
}
