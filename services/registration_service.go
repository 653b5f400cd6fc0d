package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/NexusOfThings/registration-system/models"
	"github.com/NexusOfThings/registration-system/repositories"
	"github.com/NexusOfThings/registration-system/storage"
	"github.com/go-playground/validator/v10"
)

const (
	// Pitch decks land in a fixed logical folder of the bucket.
	ideaFileFolder = "ideaarena"

	maxIdeaFileBytes = 50 << 20 // 50 MiB
)

var allowedIdeaFileExtensions = map[string]struct{}{
	"pdf":  {},
	"ppt":  {},
	"pptx": {},
}

// UploadedFile carries a form-file attachment into the service layer.
type UploadedFile struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// RegistrationInput is the parsed registration form. The six required
// fields are checked for presence only; the browser form owns format
// validation, and any non-empty email is accepted.
type RegistrationInput struct {
	Event        string `validate:"required"`
	TeamName     string `validate:"required"`
	TeamLeadName string `validate:"required"`
	CollegeName  string `validate:"required"`
	PhoneNumber  string `validate:"required"`
	Email        string `validate:"required"`

	Teammate1Name  string
	Teammate1RegNo string
	Teammate2Name  string
	Teammate2RegNo string
	Teammate3Name  string
	Teammate3RegNo string
	Teammate4Name  string
	Teammate4RegNo string

	IdeaDescription string
	IdeaFile        *UploadedFile
}

// RegistrationService runs the validation chain, uploads IdeaArena pitch
// decks and persists the registration.
type RegistrationService struct {
	participants      repositories.ParticipantRepository
	codes             *TeamCodeGenerator
	uploader          storage.FileUploader
	storageConfigured bool
	validate          *validator.Validate
	logger            *slog.Logger
}

func NewRegistrationService(
	participants repositories.ParticipantRepository,
	codes *TeamCodeGenerator,
	uploader storage.FileUploader,
	storageConfigured bool,
	logger *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		participants:      participants,
		codes:             codes,
		uploader:          uploader,
		storageConfigured: storageConfigured,
		validate:          validator.New(),
		logger:            logger,
	}
}

// Register applies the validation rules in order (first failure wins),
// uploads the pitch deck for IdeaArena registrations and creates exactly one
// Participant row. No row is created without its required file.
func (s *RegistrationService) Register(ctx context.Context, input RegistrationInput) (*models.Participant, error) {
	if err := s.validate.Struct(input); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil, fmt.Errorf("failed to validate registration input: %w", err)
		}
		return nil, ErrMissingFields
	}
	if !models.ValidEventName(input.Event) {
		return nil, ErrUnknownEvent
	}

	s.logger.Info("registration attempt",
		slog.String("event", input.Event),
		slog.String("team", input.TeamName),
		slog.String("lead", input.TeamLeadName),
		slog.String("email", input.Email),
	)

	taken, err := s.participants.ExistsByEventAndTeamName(ctx, input.Event, input.TeamName)
	if err != nil {
		return nil, fmt.Errorf("failed to check team name: %w", err)
	}
	if taken {
		return nil, ErrDuplicateTeamName
	}

	taken, err = s.participants.ExistsByEventAndEmail(ctx, input.Event, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrDuplicateEmail
	}

	var ideaFileURL *string
	var ideaFileKey string
	if input.Event == models.EventIdeaArena {
		key, location, err := s.uploadIdeaFile(ctx, input)
		if err != nil {
			return nil, err
		}
		ideaFileKey = key
		ideaFileURL = &location
	}

	participant := &models.Participant{
		Event:        input.Event,
		TeamName:     input.TeamName,
		TeamLeadName: input.TeamLeadName,
		CollegeName:  input.CollegeName,
		PhoneNumber:  input.PhoneNumber,
		Email:        input.Email,

		Teammate1Name:  optional(input.Teammate1Name),
		Teammate1RegNo: optional(input.Teammate1RegNo),
		Teammate2Name:  optional(input.Teammate2Name),
		Teammate2RegNo: optional(input.Teammate2RegNo),
		Teammate3Name:  optional(input.Teammate3Name),
		Teammate3RegNo: optional(input.Teammate3RegNo),
		Teammate4Name:  optional(input.Teammate4Name),
		Teammate4RegNo: optional(input.Teammate4RegNo),

		IdeaDescription: optional(input.IdeaDescription),
		IdeaFileURL:     ideaFileURL,
	}

	if err := s.insertWithFreshCode(ctx, participant); err != nil {
		s.discardIdeaFile(ideaFileKey)
		return nil, err
	}

	s.logger.Info("registration successful",
		slog.String("event", participant.Event),
		slog.String("team", participant.TeamName),
		slog.String("code", participant.TeamCode),
	)
	return participant, nil
}

// insertWithFreshCode assigns a team code and inserts the row. A team-code
// collision at the unique index counts as a failed generation attempt and
// triggers a retry with a new code; team-name and email collisions are
// concurrent duplicates and map back to the validator's errors.
func (s *RegistrationService) insertWithFreshCode(ctx context.Context, p *models.Participant) error {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.codes.Generate(ctx)
		if err != nil {
			return err
		}
		p.TeamCode = code

		err = s.participants.Create(ctx, p)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, repositories.ErrTeamCodeConflict):
			s.logger.Warn("team code collision at insert, regenerating", slog.String("code", code))
			continue
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return ErrDuplicateTeamName
		case errors.Is(err, repositories.ErrEmailConflict):
			return ErrDuplicateEmail
		default:
			return fmt.Errorf("failed to persist registration: %w", err)
		}
	}
	return ErrCodeGenerationExhausted
}

func (s *RegistrationService) uploadIdeaFile(ctx context.Context, input RegistrationInput) (key, location string, err error) {
	if strings.TrimSpace(input.IdeaDescription) == "" {
		return "", "", ErrIdeaDescriptionRequired
	}
	if input.IdeaFile == nil {
		return "", "", ErrIdeaFileRequired
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(input.IdeaFile.Name), "."))
	if _, ok := allowedIdeaFileExtensions[ext]; !ok {
		return "", "", ErrInvalidFileType
	}
	if input.IdeaFile.Size > maxIdeaFileBytes {
		return "", "", ErrFileTooLarge
	}

	// Fail before touching the network when credentials are absent or still
	// the sample placeholders.
	if !s.storageConfigured || s.uploader == nil {
		return "", "", ErrStorageNotConfigured
	}

	key = fmt.Sprintf("%s/%s_%s", ideaFileFolder, newTeamCode(), path.Base(input.IdeaFile.Name))
	result, err := s.uploader.Upload(ctx, key, input.IdeaFile.ContentType, input.IdeaFile.Content)
	if err != nil {
		s.logger.Error("idea file upload failed", slog.String("key", key), slog.Any("error", err))
		return "", "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	s.logger.Info("idea file saved", slog.String("url", result.Location))
	return result.Key, result.Location, nil
}

// discardIdeaFile removes an uploaded pitch deck after its registration
// failed to persist, keeping upload and row creation atomic from the
// caller's perspective. Best effort.
func (s *RegistrationService) discardIdeaFile(key string) {
	if key == "" || s.uploader == nil {
		return
	}
	if err := s.uploader.Delete(context.Background(), key); err != nil {
		s.logger.Error("failed to discard orphaned idea file", slog.String("key", key), slog.Any("error", err))
	}
}

// GetByTeamCode returns the registration behind a confirmation link.
func (s *RegistrationService) GetByTeamCode(ctx context.Context, teamCode string) (*models.Participant, error) {
	p, err := s.participants.FindByTeamCode(ctx, teamCode)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to load registration %s: %w", teamCode, err)
	}
	return p, nil
}

// DeleteByTeamCode removes a registration. Admin tooling only; the public
// surface never updates or deletes participants.
func (s *RegistrationService) DeleteByTeamCode(ctx context.Context, teamCode string) error {
	err := s.participants.DeleteByTeamCode(ctx, teamCode)
	if errors.Is(err, repositories.ErrParticipantNotFound) {
		return ErrParticipantNotFound
	}
	return err
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
