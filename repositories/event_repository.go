package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/NexusOfThings/registration-system/models"
)

var ErrEventNotFound = errors.New("event not found")

type EventRepository interface {
	// Upsert inserts the event row for a name or replaces its fields. Event
	// names are unique per competition cycle.
	Upsert(ctx context.Context, e *models.Event) error
	FindByName(ctx context.Context, name string) (*models.Event, error)
	List(ctx context.Context) ([]*models.Event, error)
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

func (r *postgresEventRepository) Upsert(ctx context.Context, e *models.Event) error {
	query := `
		INSERT INTO events (
			name, description, rounds_info, rules,
			faculty_coordinator_name, faculty_coordinator_designation, faculty_coordinator_phone
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE SET
			description = EXCLUDED.description,
			rounds_info = EXCLUDED.rounds_info,
			rules = EXCLUDED.rules,
			faculty_coordinator_name = EXCLUDED.faculty_coordinator_name,
			faculty_coordinator_designation = EXCLUDED.faculty_coordinator_designation,
			faculty_coordinator_phone = EXCLUDED.faculty_coordinator_phone
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		e.Name,
		e.Description,
		e.RoundsInfo,
		e.Rules,
		e.FacultyCoordinatorName,
		e.FacultyCoordinatorDesignation,
		e.FacultyCoordinatorPhone,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert event: %w", err)
	}
	return nil
}

func (r *postgresEventRepository) scanEvent(rowScanner interface {
	Scan(dest ...interface{}) error
}, e *models.Event) error {
	return rowScanner.Scan(
		&e.ID,
		&e.Name,
		&e.Description,
		&e.RoundsInfo,
		&e.Rules,
		&e.FacultyCoordinatorName,
		&e.FacultyCoordinatorDesignation,
		&e.FacultyCoordinatorPhone,
	)
}

const eventColumns = `
	id, name, description, rounds_info, rules,
	faculty_coordinator_name, faculty_coordinator_designation, faculty_coordinator_phone`

func (r *postgresEventRepository) FindByName(ctx context.Context, name string) (*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE name = $1`, eventColumns)

	e := &models.Event{}
	row := r.db.QueryRowContext(ctx, query, name)
	if err := r.scanEvent(row, e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event by name: %w", err)
	}
	return e, nil
}

func (r *postgresEventRepository) List(ctx context.Context) ([]*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events ORDER BY id`, eventColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		var e models.Event
		if err := r.scanEvent(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, &e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return events, nil
}
