package handlers

import (
	"net/http"

	"github.com/NexusOfThings/registration-system/services"
	"github.com/go-chi/chi/v5"
)

type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// GetEventDetails godoc
// @Summary Event detail with coordinators
// @Tags events
// @Produce json
// @Param eventName path string true "Event name"
// @Success 200 {object} models.EventDetails
// @Failure 404 {object} map[string]string "error: Event not found"
// @Router /get-event-details/{eventName} [get]
func (h *EventHandler) GetEventDetails(w http.ResponseWriter, r *http.Request) {
	eventName := chi.URLParam(r, "eventName")

	details, err := h.events.GetEventDetails(r.Context(), eventName)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, details); err != nil {
		serverErrorResponse(w, err)
	}
}

// ListEvents godoc
// @Summary All events with live registration counts
// @Tags events
// @Produce json
// @Success 200 {object} map[string]interface{} "success, count, events"
// @Router /api/events [get]
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEvents(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	response := jsonResponse{
		"success": true,
		"count":   len(events),
		"events":  events,
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		serverErrorResponse(w, err)
	}
}

// ListParticipants godoc
// @Summary All registrations, newest first
// @Tags registrations
// @Produce json
// @Param event query string false "Filter by event name"
// @Success 200 {object} map[string]interface{} "success, count, participants"
// @Router /api/participants [get]
func (h *EventHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	eventFilter := r.URL.Query().Get("event")

	participants, err := h.events.ListParticipants(r.Context(), eventFilter)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	response := jsonResponse{
		"success":      true,
		"count":        len(participants),
		"participants": participants,
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		serverErrorResponse(w, err)
	}
}
