package handlers

import (
	"errors"
	"net/http"

	"github.com/NexusOfThings/registration-system/models"
	"github.com/NexusOfThings/registration-system/services"
	"github.com/NexusOfThings/registration-system/web"
	"github.com/go-chi/chi/v5"
)

type contactPerson struct {
	Name        string
	Designation string
	Roll        string
	Phone       string
	Email       string
}

// Fest-level contacts shown on the home page. These are per-cycle constants,
// unlike the per-event coordinators which live in the database.
var facultyCoordinators = []contactPerson{
	{
		Name:        "Dr N Nagamalleswara Rao",
		Designation: "Professor & HOD, CSE-IoT",
		Phone:       "+91 9490114628",
		Email:       "rvr.cseiot2024@gmail.com",
	},
	{
		Name:        "Dr Nageswara Rao Eluri",
		Designation: "Associate Professor, CSE-IoT",
		Phone:       "+91 8977782094",
		Email:       "rvr.cseiot2024@gmail.com",
	},
}

var studentCoordinators = []contactPerson{
	{Name: "P. Nahin Khan", Roll: "L24CO069", Phone: "+91 6305260604"},
	{Name: "K. Sai Venkata Radha Krishna", Roll: "Y23CO019", Phone: "+91 7075044638"},
	{Name: "N. Akhil Siva Chowdary", Roll: "Y24CO033", Phone: "+91 7670855283"},
}

// PagesHandler serves the two HTML pages: the home/listing page and the
// registration confirmation page.
type PagesHandler struct {
	events        *services.EventService
	registrations *services.RegistrationService
}

func NewPagesHandler(events *services.EventService, registrations *services.RegistrationService) *PagesHandler {
	return &PagesHandler{
		events:        events,
		registrations: registrations,
	}
}

func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEvents(r.Context())
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	data := struct {
		Events              []models.EventSummary
		FacultyCoordinators []contactPerson
		StudentCoordinators []contactPerson
	}{
		Events:              events,
		FacultyCoordinators: facultyCoordinators,
		StudentCoordinators: studentCoordinators,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.Templates.ExecuteTemplate(w, "home", data); err != nil {
		serverErrorResponse(w, err)
	}
}

func (h *PagesHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	teamCode := chi.URLParam(r, "teamCode")

	participant, err := h.registrations.GetByTeamCode(r.Context(), teamCode)
	if err != nil {
		if errors.Is(err, services.ErrParticipantNotFound) {
			http.NotFound(w, r)
			return
		}
		serverErrorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.Templates.ExecuteTemplate(w, "confirmation", participant); err != nil {
		serverErrorResponse(w, err)
	}
}
