package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"profileapi/internal/httpx"
)

// HTTPHandler is the thin presentation adapter over the service. It stands
// in for the desktop UI the service was written for: every route maps
// one-to-one onto a service operation.
type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createReq struct {
	ID          int64   `json:"id" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required,max=100"`
	Sex         string  `json:"sex" validate:"required"`
	DateOfBirth string  `json:"date_of_birth" validate:"required"`
	Height      float64 `json:"height" validate:"required,gt=0"`
	Weight      float64 `json:"weight" validate:"required,gt=0"`
	Units       string  `json:"unit_system"`
}

func (req createReq) toProfile() (Profile, error) {
	sex, err := ParseSex(req.Sex)
	if err != nil {
		return Profile{}, err
	}
	units, err := ParseUnitSystem(req.Units)
	if err != nil {
		return Profile{}, err
	}
	dob, err := time.Parse(DateLayout, req.DateOfBirth)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		ID:          req.ID,
		Name:        req.Name,
		Sex:         sex,
		DateOfBirth: dob,
		Height:      req.Height,
		Weight:      req.Weight,
		Units:       units,
	}, nil
}

func profileID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CreateProfile handles POST /profiles
// @Summary Create a profile
// @Description Store a new profile, overwriting any existing one with the same id
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body createReq true "Profile to create"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /profiles [post]
func (h *HTTPHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	p, err := req.toProfile()
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.service.Add(r.Context(), &p); err != nil {
		if errors.Is(err, ErrValidation) {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessCreated(w, r, p)
}

// GetProfile handles GET /profiles/{id}
// @Summary Get a profile
// @Tags profiles
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /profiles/{id} [get]
func (h *HTTPHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid profile ID", nil)
		return
	}

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if p == nil {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Profile not found", nil)
		return
	}

	httpx.JSONSuccess(w, r, p)
}

// ListProfiles handles GET /profiles
// @Summary List all profiles
// @Tags profiles
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /profiles [get]
func (h *HTTPHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.ListAll(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if profiles == nil {
		profiles = []Profile{}
	}
	httpx.JSONSuccess(w, r, profiles)
}

// ReplaceProfile handles PUT /profiles/{id}
// @Summary Replace a profile
// @Description Full-object replacement of the stored profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path int true "Profile ID"
// @Param request body createReq true "Replacement profile"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /profiles/{id} [put]
func (h *HTTPHandler) ReplaceProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid profile ID", nil)
		return
	}

	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.ID = id

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	p, err := req.toProfile()
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.service.Update(r.Context(), &p); err != nil {
		if errors.Is(err, ErrValidation) {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, p)
}

// UpdateProfile handles PATCH /profiles/{id}
// @Summary Update a profile from raw input
// @Description Parse and validate string-typed fields, recompute age, persist a new snapshot
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path int true "Profile ID"
// @Param request body RawInput true "Raw update fields"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /profiles/{id} [patch]
func (h *HTTPHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid profile ID", nil)
		return
	}

	var in RawInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	updated, err := h.service.UpdateUser(r.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Profile not found", nil)
		case errors.Is(err, ErrValidation):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, updated)
}

// OpenSession handles POST /session/{id}
// @Summary Open a session
// @Description Make the profile with the given id the active session
// @Tags session
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /session/{id} [post]
func (h *HTTPHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid profile ID", nil)
		return
	}

	p, err := h.service.OpenSession(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if p == nil {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Profile not found", nil)
		return
	}

	httpx.JSONSuccess(w, r, p)
}

// GetSession handles GET /session
// @Summary Get the active session
// @Tags session
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /session [get]
func (h *HTTPHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	p := h.service.CurrentSession()
	if p == nil {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "No active session", nil)
		return
	}
	httpx.JSONSuccess(w, r, p)
}

// CloseSession handles DELETE /session
// @Summary Close the active session
// @Tags session
// @Success 204 "No Content"
// @Router /session [delete]
func (h *HTTPHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	h.service.CloseSession()
	httpx.JSONSuccessNoContent(w)
}
