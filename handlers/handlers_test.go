package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/NexusOfThings/registration-system/handlers"
	"github.com/NexusOfThings/registration-system/live"
	"github.com/NexusOfThings/registration-system/metrics"
	"github.com/NexusOfThings/registration-system/models"
	"github.com/NexusOfThings/registration-system/routes"
	"github.com/NexusOfThings/registration-system/services"
	"github.com/NexusOfThings/registration-system/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAdminEmail    = "admin@nexus.test"
	testAdminPassword = "s3cret-pass"
)

var (
	testJWTSecret   = []byte("test-signing-secret")
	teamCodePattern = regexp.MustCompile(`^NoT[0-9A-F]{8}$`)
)

type fakePinger struct {
	err error
}

func (p *fakePinger) PingContext(context.Context) error { return p.err }

type testApp struct {
	router       *chi.Mux
	participants *testutil.InMemoryParticipantRepo
	events       *testutil.InMemoryEventRepo
	uploader     *testutil.FakeUploader
	pinger       *fakePinger
	hub          *live.Hub
}

// newTestApp wires the full router over in-memory repositories, mirroring
// the production wiring in cmd/main.go.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	participants := testutil.NewInMemoryParticipantRepo()
	events := testutil.NewInMemoryEventRepo()
	coordinators := testutil.NewInMemoryCoordinatorRepo()
	uploader := &testutil.FakeUploader{}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	codes := services.NewTeamCodeGenerator(participants)
	registrationService := services.NewRegistrationService(participants, codes, uploader, true, logger)
	eventService := services.NewEventService(events, coordinators, participants)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	adminService := services.NewAdminService(testAdminEmail, string(hash), testJWTSecret, events, coordinators)

	hub := live.NewHub()
	go hub.Run()

	pinger := &fakePinger{}

	router := chi.NewRouter()
	routes.SetupRoutes(
		router,
		handlers.NewPagesHandler(eventService, registrationService),
		handlers.NewEventHandler(eventService),
		handlers.NewRegistrationHandler(registrationService, eventService, hub),
		handlers.NewAdminHandler(adminService, registrationService),
		handlers.NewWebSocketHandler(hub),
		handlers.NewHealthHandler(pinger),
		testJWTSecret,
		[]string{"*"},
	)

	return &testApp{
		router:       router,
		participants: participants,
		events:       events,
		uploader:     uploader,
		pinger:       pinger,
		hub:          hub,
	}
}

func (app *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func (app *testApp) adminToken(t *testing.T) string {
	t.Helper()
	payload, err := json.Marshal(map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := app.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterThenListRoundTrip(t *testing.T) {
	app := newTestApp(t)

	req := testutil.NewRegistrationRequest(t,
		testutil.ValidRegistrationFields(models.EventInnovWEB, "Alpha", "alpha@x.com"), nil)
	rec := app.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	teamCode, _ := body["team_code"].(string)
	assert.Regexp(t, teamCodePattern, teamCode)
	assert.Contains(t, body["message"], teamCode)

	listRec := app.do(httptest.NewRequest(http.MethodGet, "/api/participants?event=InnovWEB", nil))
	require.Equal(t, http.StatusOK, listRec.Code)

	listBody := decodeBody(t, listRec)
	assert.Equal(t, true, listBody["success"])
	assert.Equal(t, float64(1), listBody["count"])
	assert.Equal(t, 1, strings.Count(listRec.Body.String(), teamCode))
}

func TestRegisterRejectsGet(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/register-participant", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid request method", body["message"])
}

func TestRegisterMissingFields(t *testing.T) {
	app := newTestApp(t)

	fields := testutil.ValidRegistrationFields(models.EventInnovWEB, "Alpha", "alpha@x.com")
	delete(fields, "college_name")

	rec := app.do(testutil.NewRegistrationRequest(t, fields, nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Missing required fields", body["message"])
	assert.Equal(t, 0, app.participants.Len())
}

func TestRegisterDuplicateTeamName(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(testutil.NewRegistrationRequest(t,
		testutil.ValidRegistrationFields(models.EventInnovWEB, "Alpha", "a@x.com"), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(testutil.NewRegistrationRequest(t,
		testutil.ValidRegistrationFields(models.EventInnovWEB, "alpha", "b@x.com"), nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Team name already exists for this event. Please choose a different name.", body["message"])
}

func TestRegisterIdeaArenaWithPitchDeck(t *testing.T) {
	app := newTestApp(t)

	fields := testutil.ValidRegistrationFields(models.EventIdeaArena, "Visionaries", "vision@x.com")
	fields["idea_description"] = "Smart irrigation with soil sensors"
	file := &testutil.FormFile{
		Field:    "idea_file",
		Name:     "pitch.pdf",
		Content:  []byte("%PDF-fake"),
		MimeType: "application/pdf",
	}

	rec := app.do(testutil.NewRegistrationRequest(t, fields, file))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 1, app.uploader.UploadCount())

	listRec := app.do(httptest.NewRequest(http.MethodGet, "/api/participants?event=IdeaArena", nil))
	require.Equal(t, http.StatusOK, listRec.Code)
	assert.Contains(t, listRec.Body.String(), `"idea_file_url":"https://files.example.com/ideaarena/`)
}

func TestRegisterIdeaArenaWithoutDescription(t *testing.T) {
	app := newTestApp(t)

	fields := testutil.ValidRegistrationFields(models.EventIdeaArena, "Visionaries", "vision@x.com")
	file := &testutil.FormFile{
		Field:    "idea_file",
		Name:     "pitch.pdf",
		Content:  []byte("%PDF-fake"),
		MimeType: "application/pdf",
	}

	rec := app.do(testutil.NewRegistrationRequest(t, fields, file))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Idea description is required for IdeaArena", decodeBody(t, rec)["message"])
	assert.Equal(t, 0, app.uploader.UploadCount())
}

func TestListEventsEmptyStore(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/api/events", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                  `json:"success"`
		Count   int                   `json:"count"`
		Events  []models.EventSummary `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Equal(t, 4, body.Count)
	for _, e := range body.Events {
		assert.Zero(t, e.Registered)
		assert.NotEmpty(t, e.Description)
	}
}

func TestGetEventDetailsFallbackAndUnknown(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/get-event-details/IdeaArena", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var details models.EventDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
	assert.Equal(t, "IdeaArena", details.Title)
	assert.Equal(t, "Faculty Coordinator", details.FacultyCoordinatorName)

	rec = app.do(httptest.NewRequest(http.MethodGet, "/get-event-details/Hackathon", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "Event not found"}`, rec.Body.String())
}

func TestAdminFlow(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	authed := func(method, target string, body []byte) *http.Request {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req := httptest.NewRequest(method, target, reader)
		req.Header.Set("Authorization", "Bearer "+token)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return req
	}

	eventPayload, err := json.Marshal(map[string]string{
		"name":        models.EventSensorShowDown,
		"description": "Circuit debugging relay",
	})
	require.NoError(t, err)
	rec := app.do(authed(http.MethodPost, "/admin/events", eventPayload))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	coordinatorPayload, err := json.Marshal(map[string]string{
		"name":        "Student C",
		"roll_number": "Y23CO001",
		"phone":       "9999999999",
	})
	require.NoError(t, err)
	rec = app.do(authed(http.MethodPost, "/admin/events/SensorShowDown/coordinators", coordinatorPayload))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// The seeded row and coordinator now surface on the public endpoint.
	rec = app.do(httptest.NewRequest(http.MethodGet, "/get-event-details/SensorShowDown", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var details models.EventDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
	assert.Equal(t, "Circuit debugging relay", details.Description)
	require.Len(t, details.StudentCoordinators, 1)
	assert.Equal(t, "Student C", details.StudentCoordinators[0].Name)

	// Register, then delete the registration through the admin API.
	regRec := app.do(testutil.NewRegistrationRequest(t,
		testutil.ValidRegistrationFields(models.EventSensorShowDown, "Ohm", "ohm@x.com"), nil))
	require.Equal(t, http.StatusOK, regRec.Code)
	teamCode, _ := decodeBody(t, regRec)["team_code"].(string)

	rec = app.do(authed(http.MethodDelete, "/admin/participants/"+teamCode, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, app.participants.Len())

	rec = app.do(authed(http.MethodDelete, "/admin/participants/"+teamCode, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodPost, "/admin/events", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/admin/events", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec = app.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginRejected(t *testing.T) {
	app := newTestApp(t)

	payload := `{"email":"admin@nexus.test","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := app.do(req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	app.pinger.err = errors.New("connection refused")
	rec = app.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestHomePageRendersEventCards(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	for _, name := range []string{"InnovWEB", "SensorShowDown", "IdeaArena", "Error Erase"} {
		assert.Contains(t, rec.Body.String(), name)
	}
}

func TestConfirmationPage(t *testing.T) {
	app := newTestApp(t)

	regRec := app.do(testutil.NewRegistrationRequest(t,
		testutil.ValidRegistrationFields(models.EventInnovWEB, "Alpha", "a@x.com"), nil))
	require.Equal(t, http.StatusOK, regRec.Code)
	teamCode, _ := decodeBody(t, regRec)["team_code"].(string)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/registration/"+teamCode, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), teamCode)
	assert.Contains(t, rec.Body.String(), "Alpha")

	rec = app.do(httptest.NewRequest(http.MethodGet, "/registration/NoT00000000", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRejectedRegistrationMetricBucketsUnknownEvents(t *testing.T) {
	app := newTestApp(t)

	invalidBucket := metrics.RegistrationsTotal.WithLabelValues("invalid", "rejected")
	before := promtestutil.ToFloat64(invalidBucket)

	rec := app.do(testutil.NewRegistrationRequest(t,
		testutil.ValidRegistrationFields("totally-made-up-event", "Alpha", "a@x.com"), nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, before+1, promtestutil.ToFloat64(invalidBucket))

	// The raw form value must never become a label value.
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "nexus_registrations_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				assert.NotEqual(t, "totally-made-up-event", label.GetValue())
			}
		}
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRegistrationFeedBroadcast(t *testing.T) {
	app := newTestApp(t)

	server := httptest.NewServer(app.router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/registrations"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The handshake completes before the server-side client reaches the hub;
	// wait for the attach so the broadcast cannot slip past it.
	require.Eventually(t, func() bool { return app.hub.ClientCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	form := testutil.NewRegistrationRequest(t,
		testutil.ValidRegistrationFields(models.EventInnovWEB, "Alpha", "a@x.com"), nil)
	resp, err := http.Post(server.URL+"/register-participant", form.Header.Get("Content-Type"), form.Body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var message struct {
		Type    string                  `json:"type"`
		Payload live.RegistrationUpdate `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&message))
	assert.Equal(t, "REGISTRATION_CREATED", message.Type)
	assert.Equal(t, models.EventInnovWEB, message.Payload.Event)
	assert.Equal(t, 1, message.Payload.Registered)
	assert.Regexp(t, teamCodePattern, message.Payload.TeamCode)
}
