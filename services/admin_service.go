package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NexusOfThings/registration-system/models"
	"github.com/NexusOfThings/registration-system/repositories"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminRole     = "admin"
	adminTokenTTL = 24 * time.Hour

	// Per-event soft limit carried over from the admin UI.
	maxCoordinatorsPerEvent = 3
)

// AdminService backs the JSON admin API that replaces the out-of-scope
// admin UI: one configured administrator account, JWT sessions, and the
// event/coordinator seeding operations.
type AdminService struct {
	email        string
	passwordHash string
	jwtSecret    []byte

	events       repositories.EventRepository
	coordinators repositories.CoordinatorRepository
}

func NewAdminService(
	email, passwordHash string,
	jwtSecret []byte,
	events repositories.EventRepository,
	coordinators repositories.CoordinatorRepository,
) *AdminService {
	return &AdminService{
		email:        email,
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
		events:       events,
		coordinators: coordinators,
	}
}

// Login verifies the configured credentials and issues a signed token.
func (s *AdminService) Login(email, password string) (string, error) {
	if s.email == "" || s.passwordHash == "" || email != s.email {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"role":  adminRole,
		"iat":   now.Unix(),
		"exp":   now.Add(adminTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return token, nil
}

// UpsertEvent seeds or updates the metadata row for one of the enumerated
// event names.
func (s *AdminService) UpsertEvent(ctx context.Context, e *models.Event) error {
	if !models.ValidEventName(e.Name) {
		return ErrUnknownEvent
	}
	return s.events.Upsert(ctx, e)
}

// AddCoordinator attaches a student coordinator to an event, enforcing the
// per-event limit.
func (s *AdminService) AddCoordinator(ctx context.Context, eventName string, c *models.StudentCoordinator) error {
	event, err := s.events.FindByName(ctx, eventName)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to load event %s: %w", eventName, err)
	}

	count, err := s.coordinators.CountByEvent(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("failed to count coordinators: %w", err)
	}
	if count >= maxCoordinatorsPerEvent {
		return ErrCoordinatorLimit
	}

	c.EventID = event.ID
	return s.coordinators.Create(ctx, c)
}
