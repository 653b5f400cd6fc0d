package services

import "errors"

// Sentinel errors shared across services and the HTTP mapping. The texts of
// the validation errors are user-facing: handlers return them verbatim in
// the {success:false, message} envelope.
var (
	ErrMissingFields = errors.New("Missing required fields")
	ErrUnknownEvent  = errors.New("Unknown event")

	ErrDuplicateTeamName = errors.New("Team name already exists for this event. Please choose a different name.")
	ErrDuplicateEmail    = errors.New("This email is already registered for this event.")

	ErrIdeaDescriptionRequired = errors.New("Idea description is required for IdeaArena")
	ErrIdeaFileRequired        = errors.New("Pitch deck (PDF/PPT) is required for IdeaArena")
	ErrInvalidFileType         = errors.New("Only PDF, PPT, or PPTX files are allowed.")
	ErrFileTooLarge            = errors.New("File too large. Please upload a file under 50 MB.")

	ErrStorageNotConfigured = errors.New("File storage credentials are not configured. Set the R2 credentials to upload.")
	ErrUploadFailed         = errors.New("Cloud upload failed. Please try again.")

	ErrCodeGenerationExhausted = errors.New("could not generate a unique team code")

	ErrEventNotFound       = errors.New("Event not found")
	ErrParticipantNotFound = errors.New("Registration not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCoordinatorLimit   = errors.New("an event can have at most 3 student coordinators")

	ErrStoreUnavailable = errors.New("data store is unavailable")
)
