package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/NexusOfThings/registration-system/models"
	"github.com/lib/pq"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrTeamCodeConflict    = errors.New("participant conflict: team code already taken")
	ErrTeamNameConflict    = errors.New("participant conflict: team name already registered for this event")
	ErrEmailConflict       = errors.New("participant conflict: email already registered for this event")
)

type ParticipantRepository interface {
	Create(ctx context.Context, p *models.Participant) error
	FindByTeamCode(ctx context.Context, teamCode string) (*models.Participant, error)
	TeamCodeExists(ctx context.Context, teamCode string) (bool, error)
	ExistsByEventAndTeamName(ctx context.Context, event, teamName string) (bool, error)
	ExistsByEventAndEmail(ctx context.Context, event, email string) (bool, error)
	List(ctx context.Context, eventFilter string) ([]*models.Participant, error)
	CountByEvent(ctx context.Context, event string) (int, error)
	DeleteByTeamCode(ctx context.Context, teamCode string) error
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

const participantColumns = `
	id, event, team_code, team_name, team_lead_name, college_name, phone_number, email,
	teammate1_name, teammate1_reg_no, teammate2_name, teammate2_reg_no,
	teammate3_name, teammate3_reg_no, teammate4_name, teammate4_reg_no,
	registration_date, idea_description, idea_file_url`

func (r *postgresParticipantRepository) Create(ctx context.Context, p *models.Participant) error {
	query := `
		INSERT INTO participants (
			event, team_code, team_name, team_lead_name, college_name, phone_number, email,
			teammate1_name, teammate1_reg_no, teammate2_name, teammate2_reg_no,
			teammate3_name, teammate3_reg_no, teammate4_name, teammate4_reg_no,
			idea_description, idea_file_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, registration_date`

	err := r.db.QueryRowContext(ctx, query,
		p.Event,
		p.TeamCode,
		p.TeamName,
		p.TeamLeadName,
		p.CollegeName,
		p.PhoneNumber,
		p.Email,
		p.Teammate1Name, p.Teammate1RegNo,
		p.Teammate2Name, p.Teammate2RegNo,
		p.Teammate3Name, p.Teammate3RegNo,
		p.Teammate4Name, p.Teammate4RegNo,
		p.IdeaDescription,
		p.IdeaFileURL,
	).Scan(&p.ID, &p.RegistrationDate)

	if err != nil {
		// Concurrent duplicate submissions both pass the read-then-write
		// validation; the unique indexes decide the loser here.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			switch pqErr.Constraint {
			case "participants_team_code_key":
				return ErrTeamCodeConflict
			case "participants_event_team_name_key":
				return ErrTeamNameConflict
			case "participants_event_email_key":
				return ErrEmailConflict
			}
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func (r *postgresParticipantRepository) scanParticipant(rowScanner interface {
	Scan(dest ...interface{}) error
}, p *models.Participant) error {
	return rowScanner.Scan(
		&p.ID, &p.Event, &p.TeamCode, &p.TeamName, &p.TeamLeadName, &p.CollegeName, &p.PhoneNumber, &p.Email,
		&p.Teammate1Name, &p.Teammate1RegNo, &p.Teammate2Name, &p.Teammate2RegNo,
		&p.Teammate3Name, &p.Teammate3RegNo, &p.Teammate4Name, &p.Teammate4RegNo,
		&p.RegistrationDate, &p.IdeaDescription, &p.IdeaFileURL,
	)
}

func (r *postgresParticipantRepository) FindByTeamCode(ctx context.Context, teamCode string) (*models.Participant, error) {
	query := fmt.Sprintf(`SELECT %s FROM participants WHERE team_code = $1`, participantColumns)

	p := &models.Participant{}
	row := r.db.QueryRowContext(ctx, query, teamCode)
	if err := r.scanParticipant(row, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to find participant by team code: %w", err)
	}
	return p, nil
}

func (r *postgresParticipantRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to run existence check: %w", err)
	}
	return exists, nil
}

func (r *postgresParticipantRepository) TeamCodeExists(ctx context.Context, teamCode string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM participants WHERE team_code = $1)`, teamCode)
}

func (r *postgresParticipantRepository) ExistsByEventAndTeamName(ctx context.Context, event, teamName string) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS(SELECT 1 FROM participants WHERE event = $1 AND lower(team_name) = lower($2))`,
		event, teamName)
}

func (r *postgresParticipantRepository) ExistsByEventAndEmail(ctx context.Context, event, email string) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS(SELECT 1 FROM participants WHERE event = $1 AND lower(email) = lower($2))`,
		event, email)
}

func (r *postgresParticipantRepository) List(ctx context.Context, eventFilter string) ([]*models.Participant, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM participants`, participantColumns))

	args := []interface{}{}
	if eventFilter != "" {
		queryBuilder.WriteString(` WHERE event = $1`)
		args = append(args, eventFilter)
	}
	queryBuilder.WriteString(` ORDER BY registration_date DESC`)

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	participants := make([]*models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		if err := r.scanParticipant(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		participants = append(participants, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}
	return participants, nil
}

func (r *postgresParticipantRepository) CountByEvent(ctx context.Context, event string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants WHERE event = $1`, event).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count participants for event %s: %w", event, err)
	}
	return count, nil
}

func (r *postgresParticipantRepository) DeleteByTeamCode(ctx context.Context, teamCode string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM participants WHERE team_code = $1`, teamCode)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}
