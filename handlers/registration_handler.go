package handlers

import (
	"fmt"
	"net/http"

	"github.com/NexusOfThings/registration-system/live"
	"github.com/NexusOfThings/registration-system/metrics"
	"github.com/NexusOfThings/registration-system/models"
	"github.com/NexusOfThings/registration-system/services"
)

// registrationFormMaxMemory bounds the in-memory part of multipart parsing;
// larger files spill to temp storage. The 50 MiB per-file limit is enforced
// by the service.
const registrationFormMaxMemory = 32 << 20

type RegistrationHandler struct {
	registrations *services.RegistrationService
	events        *services.EventService
	hub           *live.Hub
}

func NewRegistrationHandler(registrations *services.RegistrationService, events *services.EventService, hub *live.Hub) *RegistrationHandler {
	return &RegistrationHandler{
		registrations: registrations,
		events:        events,
		hub:           hub,
	}
}

// Register godoc
// @Summary Register a team for an event
// @Tags registrations
// @Accept mpfd
// @Produce json
// @Param event formData string true "Event name"
// @Param team_name formData string true "Team name"
// @Param team_lead_name formData string true "Team lead"
// @Param college_name formData string true "College"
// @Param phone_number formData string true "Phone"
// @Param email formData string true "Email"
// @Param idea_description formData string false "Required for IdeaArena"
// @Param idea_file formData file false "Pitch deck, required for IdeaArena"
// @Success 200 {object} map[string]interface{} "success, team_code, message"
// @Failure 400 {object} map[string]interface{} "validation failure"
// @Failure 405 {object} map[string]interface{} "non-POST request"
// @Failure 500 {object} map[string]interface{} "storage or server failure"
// @Router /register-participant [post]
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(registrationFormMaxMemory); err != nil {
		failureResponse(w, http.StatusBadRequest, "invalid form data")
		return
	}

	input := services.RegistrationInput{
		Event:        r.FormValue("event"),
		TeamName:     r.FormValue("team_name"),
		TeamLeadName: r.FormValue("team_lead_name"),
		CollegeName:  r.FormValue("college_name"),
		PhoneNumber:  r.FormValue("phone_number"),
		Email:        r.FormValue("email"),

		Teammate1Name:  r.FormValue("teammate1_name"),
		Teammate1RegNo: r.FormValue("teammate1_reg_no"),
		Teammate2Name:  r.FormValue("teammate2_name"),
		Teammate2RegNo: r.FormValue("teammate2_reg_no"),
		Teammate3Name:  r.FormValue("teammate3_name"),
		Teammate3RegNo: r.FormValue("teammate3_reg_no"),
		Teammate4Name:  r.FormValue("teammate4_name"),
		Teammate4RegNo: r.FormValue("teammate4_reg_no"),

		IdeaDescription: r.FormValue("idea_description"),
	}

	if file, header, err := r.FormFile("idea_file"); err == nil {
		defer file.Close()
		input.IdeaFile = &services.UploadedFile{
			Name:        header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Content:     file,
		}
	}

	participant, err := h.registrations.Register(r.Context(), input)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metricEventLabel(input.Event), "rejected").Inc()
		mapServiceErrorToHTTP(w, err)
		return
	}

	metrics.RegistrationsTotal.WithLabelValues(participant.Event, "success").Inc()
	h.notifyRegistered(r, participant.Event, participant.TeamCode)

	response := jsonResponse{
		"success":   true,
		"team_code": participant.TeamCode,
		"message": fmt.Sprintf(
			"Registration successful! Your team code is: %s. Please save this code for future reference.",
			participant.TeamCode,
		),
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		serverErrorResponse(w, err)
	}
}

// metricEventLabel keeps the event label within the enumerated names.
// Arbitrary client input must not mint new time series.
func metricEventLabel(event string) string {
	if models.ValidEventName(event) {
		return event
	}
	return "invalid"
}

// notifyRegistered pushes the fresh per-event count to websocket listeners.
func (h *RegistrationHandler) notifyRegistered(r *http.Request, event, teamCode string) {
	if h.hub == nil {
		return
	}
	count, err := h.events.CountByEvent(r.Context(), event)
	if err != nil {
		// The registration itself succeeded; the feed just misses a beat.
		return
	}
	h.hub.BroadcastRegistration(live.RegistrationUpdate{
		Event:      event,
		TeamCode:   teamCode,
		Registered: count,
	})
}
