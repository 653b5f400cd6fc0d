package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/NexusOfThings/registration-system/fallback"
	"github.com/NexusOfThings/registration-system/models"
	"github.com/NexusOfThings/registration-system/repositories"
	"golang.org/x/sync/errgroup"
)

// EventService composes stored event rows with the static fallback table
// and exposes the read-only listing surface.
type EventService struct {
	events       repositories.EventRepository
	coordinators repositories.CoordinatorRepository
	participants repositories.ParticipantRepository
}

func NewEventService(
	events repositories.EventRepository,
	coordinators repositories.CoordinatorRepository,
	participants repositories.ParticipantRepository,
) *EventService {
	return &EventService{
		events:       events,
		coordinators: coordinators,
		participants: participants,
	}
}

// ListEvents returns one summary per enumerated event name: DB row fields
// when a row exists, fallback fields otherwise, and always a live
// registration count. Counts are fetched concurrently; they must be accurate
// at call time, so nothing here is cached.
func (s *EventService) ListEvents(ctx context.Context) ([]models.EventSummary, error) {
	stored, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load event rows: %w", err)
	}
	byName := make(map[string]*models.Event, len(stored))
	for _, e := range stored {
		byName[e.Name] = e
	}

	names := fallback.Names()
	summaries := make([]models.EventSummary, len(names))

	g, gCtx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			count, err := s.participants.CountByEvent(gCtx, name)
			if err != nil {
				return fmt.Errorf("failed to count registrations for %s: %w", name, err)
			}

			description := ""
			if entry, ok := fallback.Get(name); ok {
				description = entry.Description
			}
			if row, ok := byName[name]; ok {
				description = row.Description
			}

			summaries[i] = models.EventSummary{
				Name:             name,
				Description:      description,
				Prize:            fallback.Prizes(name),
				TeamRequirements: fallback.TeamRequirements(name),
				Registered:       count,
				Icon:             fallback.Icon(name),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetEventDetails prefers the DB row, falls back to the static table, and
// fails with ErrEventNotFound when the name is in neither. The coordinator
// list is always merged in (empty without a DB row).
func (s *EventService) GetEventDetails(ctx context.Context, name string) (*models.EventDetails, error) {
	row, err := s.events.FindByName(ctx, name)
	if err != nil && !errors.Is(err, repositories.ErrEventNotFound) {
		return nil, fmt.Errorf("failed to load event %s: %w", name, err)
	}

	if row != nil {
		coordinators, err := s.coordinators.ListByEvent(ctx, row.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load coordinators for %s: %w", name, err)
		}
		views := make([]models.CoordinatorView, 0, len(coordinators))
		for _, c := range coordinators {
			views = append(views, models.CoordinatorView{
				Name:       c.Name,
				RollNumber: c.RollNumber,
				Phone:      c.Phone,
			})
		}

		return &models.EventDetails{
			Title:                         row.Name,
			Description:                   row.Description,
			RoundsInfo:                    row.RoundsInfo,
			Rules:                         row.Rules,
			TeamRequirements:              fallback.TeamRequirements(name),
			Prizes:                        fallback.Prizes(name),
			FacultyCoordinatorName:        row.FacultyCoordinatorName,
			FacultyCoordinatorDesignation: row.FacultyCoordinatorDesignation,
			FacultyCoordinatorPhone:       row.FacultyCoordinatorPhone,
			StudentCoordinators:           views,
		}, nil
	}

	entry, ok := fallback.Get(name)
	if !ok {
		return nil, ErrEventNotFound
	}
	return &models.EventDetails{
		Title:                         name,
		Description:                   entry.Description,
		RoundsInfo:                    entry.RoundsInfo,
		Rules:                         entry.Rules,
		TeamRequirements:              entry.TeamRequirements,
		Prizes:                        entry.Prizes,
		FacultyCoordinatorName:        "Faculty Coordinator",
		FacultyCoordinatorDesignation: "TBD",
		FacultyCoordinatorPhone:       "TBD",
		StudentCoordinators:           []models.CoordinatorView{},
	}, nil
}

// ListParticipants returns registrations newest first, optionally filtered
// by event name. An empty filter means all events.
func (s *EventService) ListParticipants(ctx context.Context, eventFilter string) ([]*models.Participant, error) {
	participants, err := s.participants.List(ctx, eventFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

// CountByEvent exposes the live registration count for one event.
func (s *EventService) CountByEvent(ctx context.Context, name string) (int, error) {
	return s.participants.CountByEvent(ctx, name)
}
