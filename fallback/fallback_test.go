package fallback_test

import (
	"testing"

	"github.com/NexusOfThings/registration-system/fallback"
	"github.com/NexusOfThings/registration-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesMatchEnumeratedEventsInOrder(t *testing.T) {
	assert.Equal(t, []string{
		models.EventInnovWEB,
		models.EventSensorShowDown,
		models.EventIdeaArena,
		models.EventErrorErase,
	}, fallback.Names())
}

func TestEveryEntryIsComplete(t *testing.T) {
	for _, name := range fallback.Names() {
		entry, ok := fallback.Get(name)
		require.True(t, ok, "missing entry for %s", name)

		assert.Equal(t, name, entry.Name)
		assert.NotEmpty(t, entry.Description, "%s description", name)
		assert.NotEmpty(t, entry.RoundsInfo, "%s rounds", name)
		assert.NotEmpty(t, entry.Rules, "%s rules", name)
		assert.NotEmpty(t, entry.TeamRequirements, "%s team requirements", name)
		assert.NotEmpty(t, entry.Prizes, "%s prizes", name)
		assert.NotEmpty(t, entry.Icon, "%s icon", name)
	}
}

func TestUnknownNameGetsDefaults(t *testing.T) {
	_, ok := fallback.Get("Hackathon")
	assert.False(t, ok)

	assert.Equal(t, "1st: ₹3,000 | 2nd: ₹2,000 | 3rd: ₹1,000", fallback.Prizes("Hackathon"))
	assert.Equal(t, "See rules for team size.", fallback.TeamRequirements("Hackathon"))
	assert.Equal(t, "fas fa-code", fallback.Icon("Hackathon"))
}
