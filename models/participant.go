package models

import "time"

// Participant is one team registration. Event is a denormalized event name,
// not a foreign key: a registration stays valid even when no Event row was
// ever seeded for that name. Optional fields are pointers so unset teammate
// slots serialize as null instead of empty strings.
type Participant struct {
	ID           int    `json:"id" db:"id"`
	Event        string `json:"event" db:"event"`
	TeamCode     string `json:"team_code" db:"team_code"`
	TeamName     string `json:"team_name" db:"team_name"`
	TeamLeadName string `json:"team_lead_name" db:"team_lead_name"`
	CollegeName  string `json:"college_name" db:"college_name"`
	PhoneNumber  string `json:"phone_number" db:"phone_number"`
	Email        string `json:"email" db:"email"`

	Teammate1Name  *string `json:"teammate1_name" db:"teammate1_name"`
	Teammate1RegNo *string `json:"teammate1_reg_no" db:"teammate1_reg_no"`
	Teammate2Name  *string `json:"teammate2_name" db:"teammate2_name"`
	Teammate2RegNo *string `json:"teammate2_reg_no" db:"teammate2_reg_no"`
	Teammate3Name  *string `json:"teammate3_name" db:"teammate3_name"`
	Teammate3RegNo *string `json:"teammate3_reg_no" db:"teammate3_reg_no"`
	Teammate4Name  *string `json:"teammate4_name" db:"teammate4_name"`
	Teammate4RegNo *string `json:"teammate4_reg_no" db:"teammate4_reg_no"`

	RegistrationDate time.Time `json:"registration_date" db:"registration_date"`

	// Set only for IdeaArena registrations.
	IdeaDescription *string `json:"idea_description" db:"idea_description"`
	IdeaFileURL     *string `json:"idea_file_url" db:"idea_file_url"`
}
