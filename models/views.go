package models

// View models returned by the listing and detail endpoints. They merge a DB
// row (when present) with the static fallback entry for the same event name.

type EventSummary struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Prize            string `json:"prize"`
	TeamRequirements string `json:"team_requirements"`
	Registered       int    `json:"registered"`
	Icon             string `json:"icon"`
}

type EventDetails struct {
	Title                         string            `json:"title"`
	Description                   string            `json:"description"`
	RoundsInfo                    string            `json:"rounds_info"`
	Rules                         string            `json:"rules"`
	TeamRequirements              string            `json:"team_requirements"`
	Prizes                        string            `json:"prizes"`
	FacultyCoordinatorName        string            `json:"faculty_coordinator_name"`
	FacultyCoordinatorDesignation string            `json:"faculty_coordinator_designation"`
	FacultyCoordinatorPhone       string            `json:"faculty_coordinator_phone"`
	StudentCoordinators           []CoordinatorView `json:"student_coordinators"`
}

type CoordinatorView struct {
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
	Phone      string `json:"phone"`
}
