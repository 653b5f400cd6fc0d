package models

// StudentCoordinator belongs to exactly one Event and is removed with it.
type StudentCoordinator struct {
	ID         int    `json:"id" db:"id"`
	EventID    int    `json:"event_id" db:"event_id"`
	Name       string `json:"name" db:"name"`
	RollNumber string `json:"roll_number" db:"roll_number"`
	Phone      string `json:"phone" db:"phone"`
}
