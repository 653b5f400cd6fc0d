package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/NexusOfThings/registration-system/models"
	"github.com/lib/pq"
)

var (
	ErrCoordinatorNotFound     = errors.New("student coordinator not found")
	ErrCoordinatorEventInvalid = errors.New("student coordinator references a missing event")
)

type CoordinatorRepository interface {
	Create(ctx context.Context, c *models.StudentCoordinator) error
	ListByEvent(ctx context.Context, eventID int) ([]*models.StudentCoordinator, error)
	CountByEvent(ctx context.Context, eventID int) (int, error)
	Delete(ctx context.Context, id int) error
}

type postgresCoordinatorRepository struct {
	db *sql.DB
}

func NewPostgresCoordinatorRepository(db *sql.DB) CoordinatorRepository {
	return &postgresCoordinatorRepository{db: db}
}

func (r *postgresCoordinatorRepository) Create(ctx context.Context, c *models.StudentCoordinator) error {
	query := `
		INSERT INTO student_coordinators (event_id, name, roll_number, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, c.EventID, c.Name, c.RollNumber, c.Phone).Scan(&c.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrCoordinatorEventInvalid
		}
		return fmt.Errorf("failed to create student coordinator: %w", err)
	}
	return nil
}

func (r *postgresCoordinatorRepository) ListByEvent(ctx context.Context, eventID int) ([]*models.StudentCoordinator, error) {
	query := `SELECT id, event_id, name, roll_number, phone FROM student_coordinators WHERE event_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list student coordinators: %w", err)
	}
	defer rows.Close()

	coordinators := make([]*models.StudentCoordinator, 0)
	for rows.Next() {
		var c models.StudentCoordinator
		if err := rows.Scan(&c.ID, &c.EventID, &c.Name, &c.RollNumber, &c.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan student coordinator row: %w", err)
		}
		coordinators = append(coordinators, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student coordinator rows: %w", err)
	}
	return coordinators, nil
}

func (r *postgresCoordinatorRepository) CountByEvent(ctx context.Context, eventID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM student_coordinators WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count student coordinators: %w", err)
	}
	return count, nil
}

func (r *postgresCoordinatorRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM student_coordinators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete student coordinator: %w", err)
	}
	return checkAffectedRows(result, ErrCoordinatorNotFound)
}
