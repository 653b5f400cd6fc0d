package handlers

import (
	"net/http"

	"github.com/NexusOfThings/registration-system/models"
	"github.com/NexusOfThings/registration-system/services"
	"github.com/go-chi/chi/v5"
)

// AdminHandler is the JSON stand-in for the admin UI: seeding event rows,
// attaching student coordinators and removing registrations.
type AdminHandler struct {
	admin         *services.AdminService
	registrations *services.RegistrationService
}

func NewAdminHandler(admin *services.AdminService, registrations *services.RegistrationService) *AdminHandler {
	return &AdminHandler{
		admin:         admin,
		registrations: registrations,
	}
}

// Login godoc
// @Summary Obtain an admin token
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "success, token"
// @Failure 401 {object} map[string]interface{} "bad credentials"
// @Router /admin/login [post]
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &input); err != nil {
		failureResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.admin.Login(input.Email, input.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "token": token}); err != nil {
		serverErrorResponse(w, err)
	}
}

// UpsertEvent godoc
// @Summary Seed or update an event row
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /admin/events [post]
func (h *AdminHandler) UpsertEvent(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := readJSON(w, r, &event); err != nil {
		failureResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.admin.UpsertEvent(r.Context(), &event); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "event": event}); err != nil {
		serverErrorResponse(w, err)
	}
}

// AddCoordinator godoc
// @Summary Attach a student coordinator to an event
// @Tags admin
// @Accept json
// @Produce json
// @Param eventName path string true "Event name"
// @Security BearerAuth
// @Router /admin/events/{eventName}/coordinators [post]
func (h *AdminHandler) AddCoordinator(w http.ResponseWriter, r *http.Request) {
	eventName := chi.URLParam(r, "eventName")

	var coordinator models.StudentCoordinator
	if err := readJSON(w, r, &coordinator); err != nil {
		failureResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.admin.AddCoordinator(r.Context(), eventName, &coordinator); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"success": true, "coordinator": coordinator}); err != nil {
		serverErrorResponse(w, err)
	}
}

// DeleteParticipant godoc
// @Summary Remove a registration by team code
// @Tags admin
// @Produce json
// @Param teamCode path string true "Team code"
// @Security BearerAuth
// @Router /admin/participants/{teamCode} [delete]
func (h *AdminHandler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	teamCode := chi.URLParam(r, "teamCode")

	if err := h.registrations.DeleteByTeamCode(r.Context(), teamCode); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
