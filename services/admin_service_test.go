package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/NexusOfThings/registration-system/models"
	"github.com/NexusOfThings/registration-system/services"
	"github.com/NexusOfThings/registration-system/testutil"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAdminEmail    = "admin@nexus.test"
	testAdminPassword = "s3cret-pass"
)

var testJWTSecret = []byte("test-signing-secret")

func newAdminService(t *testing.T) (*services.AdminService, *testutil.InMemoryEventRepo, *testutil.InMemoryCoordinatorRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	events := testutil.NewInMemoryEventRepo()
	coordinators := testutil.NewInMemoryCoordinatorRepo()
	svc := services.NewAdminService(testAdminEmail, string(hash), testJWTSecret, events, coordinators)
	return svc, events, coordinators
}

func TestLoginIssuesAdminToken(t *testing.T) {
	svc, _, _ := newAdminService(t)

	tokenString, err := svc.Login(testAdminEmail, testAdminPassword)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return testJWTSecret, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, testAdminEmail, claims["email"])
	assert.Equal(t, "admin", claims["role"])
	assert.NotNil(t, claims["exp"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newAdminService(t)

	_, err := svc.Login(testAdminEmail, "wrong-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login("someone@else.test", testAdminPassword)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLoginRejectsWhenAccountUnconfigured(t *testing.T) {
	svc := services.NewAdminService("", "", testJWTSecret,
		testutil.NewInMemoryEventRepo(), testutil.NewInMemoryCoordinatorRepo())

	_, err := svc.Login("", "")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUpsertEventValidatesName(t *testing.T) {
	svc, events, _ := newAdminService(t)

	err := svc.UpsertEvent(context.Background(), &models.Event{Name: "Quiz Night"})
	assert.ErrorIs(t, err, services.ErrUnknownEvent)

	row := &models.Event{Name: models.EventInnovWEB, Description: "Web design sprint"}
	require.NoError(t, svc.UpsertEvent(context.Background(), row))
	assert.NotZero(t, row.ID)

	// Upserting again keeps the same row.
	updated := &models.Event{Name: models.EventInnovWEB, Description: "Revised"}
	require.NoError(t, svc.UpsertEvent(context.Background(), updated))
	assert.Equal(t, row.ID, updated.ID)

	stored, err := events.FindByName(context.Background(), models.EventInnovWEB)
	require.NoError(t, err)
	assert.Equal(t, "Revised", stored.Description)
}

func TestAddCoordinatorEnforcesLimit(t *testing.T) {
	svc, _, _ := newAdminService(t)

	require.NoError(t, svc.UpsertEvent(context.Background(), &models.Event{Name: models.EventErrorErase}))

	for i := 0; i < 3; i++ {
		err := svc.AddCoordinator(context.Background(), models.EventErrorErase, &models.StudentCoordinator{
			Name:       fmt.Sprintf("Coordinator %d", i),
			RollNumber: fmt.Sprintf("Y23CO00%d", i),
			Phone:      "9000000000",
		})
		require.NoError(t, err)
	}

	err := svc.AddCoordinator(context.Background(), models.EventErrorErase, &models.StudentCoordinator{
		Name:       "One Too Many",
		RollNumber: "Y23CO999",
		Phone:      "9000000000",
	})
	assert.ErrorIs(t, err, services.ErrCoordinatorLimit)
}

func TestAddCoordinatorUnknownEvent(t *testing.T) {
	svc, _, _ := newAdminService(t)

	err := svc.AddCoordinator(context.Background(), models.EventInnovWEB, &models.StudentCoordinator{
		Name: "Early Bird", RollNumber: "Y23CO001", Phone: "9000000000",
	})
	assert.ErrorIs(t, err, services.ErrEventNotFound)
}
