package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/NexusOfThings/registration-system/repositories"
	"github.com/google/uuid"
)

// Team codes are "NoT" followed by 8 uppercase hex characters taken from a
// random 128-bit identifier. The random policy was chosen over the older
// date-sequential one ("NoT" + YYMMDD + counter) because counting today's
// rows and appending is a check-then-act race under concurrent submissions.
const (
	teamCodePrefix = "NoT"
	teamCodeHexLen = 8

	// maxCodeAttempts bounds the regenerate-on-collision loop so a
	// pathological collision rate fails loudly instead of spinning.
	maxCodeAttempts = 10
)

// TeamCodeGenerator produces unique registration codes, retrying against the
// data store on collision.
type TeamCodeGenerator struct {
	participants repositories.ParticipantRepository
}

func NewTeamCodeGenerator(participants repositories.ParticipantRepository) *TeamCodeGenerator {
	return &TeamCodeGenerator{participants: participants}
}

func newTeamCode() string {
	id := uuid.New()
	return teamCodePrefix + strings.ToUpper(hex.EncodeToString(id[:teamCodeHexLen/2]))
}

// Generate returns a team code not currently present in the store. The
// check is advisory: the unique index on team_code remains the final
// arbiter at insert time.
func (g *TeamCodeGenerator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := newTeamCode()
		exists, err := g.participants.TeamCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check team code %s: %w", code, err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrCodeGenerationExhausted
}
