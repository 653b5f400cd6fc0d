// Package testutil provides in-memory repository fakes and request builders
// so service and handler tests run without postgres or a blob store. The
// fakes enforce the same uniqueness rules as the schema's unique indexes,
// which is what makes the concurrent-duplicate tests meaningful.
package testutil

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/NexusOfThings/registration-system/models"
	"github.com/NexusOfThings/registration-system/repositories"
	"github.com/NexusOfThings/registration-system/storage"
)

// InMemoryParticipantRepo implements repositories.ParticipantRepository.
type InMemoryParticipantRepo struct {
	mu     sync.Mutex
	nextID int
	rows   []*models.Participant

	// FailCreate, when set, is returned by Create unconditionally.
	FailCreate error
	// AlwaysCollide makes TeamCodeExists report every code as taken.
	AlwaysCollide bool
}

func NewInMemoryParticipantRepo() *InMemoryParticipantRepo {
	return &InMemoryParticipantRepo{}
}

func (r *InMemoryParticipantRepo) Create(_ context.Context, p *models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreate != nil {
		return r.FailCreate
	}
	for _, existing := range r.rows {
		if existing.TeamCode == p.TeamCode {
			return repositories.ErrTeamCodeConflict
		}
		if existing.Event == p.Event && strings.EqualFold(existing.TeamName, p.TeamName) {
			return repositories.ErrTeamNameConflict
		}
		if existing.Event == p.Event && strings.EqualFold(existing.Email, p.Email) {
			return repositories.ErrEmailConflict
		}
	}

	r.nextID++
	p.ID = r.nextID
	p.RegistrationDate = time.Now()
	clone := *p
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *InMemoryParticipantRepo) FindByTeamCode(_ context.Context, teamCode string) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.TeamCode == teamCode {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repositories.ErrParticipantNotFound
}

func (r *InMemoryParticipantRepo) TeamCodeExists(_ context.Context, teamCode string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.AlwaysCollide {
		return true, nil
	}
	for _, p := range r.rows {
		if p.TeamCode == teamCode {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryParticipantRepo) ExistsByEventAndTeamName(_ context.Context, event, teamName string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.Event == event && strings.EqualFold(p.TeamName, teamName) {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryParticipantRepo) ExistsByEventAndEmail(_ context.Context, event, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.Event == event && strings.EqualFold(p.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryParticipantRepo) List(_ context.Context, eventFilter string) ([]*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Participant, 0)
	for _, p := range r.rows {
		if eventFilter != "" && p.Event != eventFilter {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	// Newest first, matching ORDER BY registration_date DESC.
	sort.Slice(out, func(i, j int) bool {
		if out[i].RegistrationDate.Equal(out[j].RegistrationDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].RegistrationDate.After(out[j].RegistrationDate)
	})
	return out, nil
}

func (r *InMemoryParticipantRepo) CountByEvent(_ context.Context, event string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, p := range r.rows {
		if p.Event == event {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryParticipantRepo) DeleteByTeamCode(_ context.Context, teamCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.rows {
		if p.TeamCode == teamCode {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrParticipantNotFound
}

// Len reports the number of stored rows.
func (r *InMemoryParticipantRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// InMemoryEventRepo implements repositories.EventRepository.
type InMemoryEventRepo struct {
	mu     sync.Mutex
	nextID int
	rows   map[string]*models.Event
}

func NewInMemoryEventRepo() *InMemoryEventRepo {
	return &InMemoryEventRepo{rows: make(map[string]*models.Event)}
}

func (r *InMemoryEventRepo) Upsert(_ context.Context, e *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.rows[e.Name]; ok {
		e.ID = existing.ID
	} else {
		r.nextID++
		e.ID = r.nextID
	}
	clone := *e
	r.rows[e.Name] = &clone
	return nil
}

func (r *InMemoryEventRepo) FindByName(_ context.Context, name string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.rows[name]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, repositories.ErrEventNotFound
}

func (r *InMemoryEventRepo) List(_ context.Context) ([]*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Event, 0, len(r.rows))
	for _, e := range r.rows {
		clone := *e
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// InMemoryCoordinatorRepo implements repositories.CoordinatorRepository.
type InMemoryCoordinatorRepo struct {
	mu     sync.Mutex
	nextID int
	rows   []*models.StudentCoordinator
}

func NewInMemoryCoordinatorRepo() *InMemoryCoordinatorRepo {
	return &InMemoryCoordinatorRepo{}
}

func (r *InMemoryCoordinatorRepo) Create(_ context.Context, c *models.StudentCoordinator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	clone := *c
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *InMemoryCoordinatorRepo) ListByEvent(_ context.Context, eventID int) ([]*models.StudentCoordinator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.StudentCoordinator, 0)
	for _, c := range r.rows {
		if c.EventID == eventID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *InMemoryCoordinatorRepo) CountByEvent(_ context.Context, eventID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, c := range r.rows {
		if c.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryCoordinatorRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.rows {
		if c.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrCoordinatorNotFound
}

// FakeUploader implements storage.FileUploader and records calls.
type FakeUploader struct {
	mu sync.Mutex

	UploadErr error

	UploadedKeys []string
	DeletedKeys  []string
}

func (u *FakeUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*storage.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.UploadErr != nil {
		return nil, u.UploadErr
	}
	// Drain so multipart temp files behave as in production.
	_, _ = io.Copy(io.Discard, reader)
	u.UploadedKeys = append(u.UploadedKeys, key)
	return &storage.UploadResult{
		Key:      key,
		Location: "https://files.example.com/" + key,
		ETag:     "fake-etag",
	}, nil
}

func (u *FakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.DeletedKeys = append(u.DeletedKeys, key)
	return nil
}

func (u *FakeUploader) GetPublicURL(key string) string {
	return "https://files.example.com/" + key
}

// UploadCount reports how many uploads were attempted successfully.
func (u *FakeUploader) UploadCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.UploadedKeys)
}

// FormFile describes an attachment for NewRegistrationRequest.
type FormFile struct {
	Field    string
	Name     string
	Content  []byte
	MimeType string
}

// NewRegistrationRequest builds a multipart POST to /register-participant.
func NewRegistrationRequest(t *testing.T, fields map[string]string, file *FormFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field %s: %v", k, err)
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/register-participant", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// ValidRegistrationFields returns a baseline form that passes validation.
func ValidRegistrationFields(event, teamName, email string) map[string]string {
	return map[string]string{
		"event":          event,
		"team_name":      teamName,
		"team_lead_name": "A Lead",
		"college_name":   "RVR College",
		"phone_number":   "9876543210",
		"email":          email,
	}
}
