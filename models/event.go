package models

// EventName identifies one of the fixed NexusOfThings competition events.
type EventName = string

const (
	EventInnovWEB       EventName = "InnovWEB"
	EventSensorShowDown EventName = "SensorShowDown"
	EventIdeaArena      EventName = "IdeaArena"
	EventErrorErase     EventName = "Error Erase"
)

// EventNames returns the closed set of event names in display order.
func EventNames() []EventName {
	return []EventName{EventInnovWEB, EventSensorShowDown, EventIdeaArena, EventErrorErase}
}

func ValidEventName(name string) bool {
	switch name {
	case EventInnovWEB, EventSensorShowDown, EventIdeaArena, EventErrorErase:
		return true
	}
	return false
}

// Event is the administrator-seeded metadata row for a competition event.
// Rows are optional: listing and detail endpoints fall back to the static
// table when no row exists for a name.
type Event struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	RoundsInfo  string `json:"rounds_info" db:"rounds_info"`
	Rules       string `json:"rules" db:"rules"`

	FacultyCoordinatorName        string `json:"faculty_coordinator_name" db:"faculty_coordinator_name"`
	FacultyCoordinatorDesignation string `json:"faculty_coordinator_designation" db:"faculty_coordinator_designation"`
	FacultyCoordinatorPhone       string `json:"faculty_coordinator_phone" db:"faculty_coordinator_phone"`

	StudentCoordinators []StudentCoordinator `json:"student_coordinators,omitempty" db:"-"`
}
