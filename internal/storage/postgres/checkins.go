package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ascend-app/ascend/internal/models"
)

const checkinColumns = `id, habit_id, day, status, effort, dose_actual, note, created_at, edited_at, deleted_at`

func scanCheckin(scan func(dest ...any) error) (models.Checkin, error) {
	var c models.Checkin
	var createdAt string
	var editedAt, deletedAt sql.NullString
	var doseActual sql.NullFloat64

	err := scan(&c.ID, &c.HabitID, &c.Day, &c.Status, &c.Effort, &doseActual, &c.Note,
		&createdAt, &editedAt, &deletedAt)
	if err != nil {
		return models.Checkin{}, err
	}

	c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Checkin{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if doseActual.Valid {
		c.DoseActual = &doseActual.Float64
	}
	if editedAt.Valid {
		t, err := time.Parse(time.RFC3339, editedAt.String)
		if err != nil {
			return models.Checkin{}, fmt.Errorf("failed to parse edited_at: %w", err)
		}
		c.EditedAt = &t
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Checkin{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		c.DeletedAt = &t
	}

	return c, nil
}

// UpsertCheckin writes a checkin keyed by (habit_id, day). A conflicting
// write updates the mutable fields in place; created_at keeps the value of
// the first insert.
func (s *Store) UpsertCheckin(checkin models.Checkin) error {
	var editedAt, deletedAt sql.NullString
	var doseActual sql.NullFloat64
	if checkin.DoseActual != nil {
		doseActual = sql.NullFloat64{Float64: *checkin.DoseActual, Valid: true}
	}
	if checkin.EditedAt != nil {
		editedAt = sql.NullString{String: checkin.EditedAt.Format(time.RFC3339), Valid: true}
	}
	if checkin.DeletedAt != nil {
		deletedAt = sql.NullString{String: checkin.DeletedAt.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO checkins (id, habit_id, day, status, effort, dose_actual, note, created_at, edited_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (habit_id, day) DO UPDATE SET
			status = EXCLUDED.status,
			effort = EXCLUDED.effort,
			dose_actual = EXCLUDED.dose_actual,
			note = EXCLUDED.note,
			edited_at = EXCLUDED.edited_at,
			deleted_at = EXCLUDED.deleted_at`,
		checkin.ID, checkin.HabitID, checkin.Day, checkin.Status, checkin.Effort,
		doseActual, checkin.Note, checkin.CreatedAt.Format(time.RFC3339), editedAt, deletedAt)

	return err
}

func (s *Store) GetCheckin(habitID, day string) (models.Checkin, error) {
	row := s.db.QueryRow(`
		SELECT `+checkinColumns+`
		FROM checkins WHERE habit_id = $1 AND day = $2 AND deleted_at IS NULL`,
		habitID, day)
	return scanCheckin(row.Scan)
}

func (s *Store) GetCheckinsForDay(day string) ([]models.Checkin, error) {
	rows, err := s.db.Query(`
		SELECT `+checkinColumns+`
		FROM checkins WHERE day = $1 AND deleted_at IS NULL
		ORDER BY created_at`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCheckins(rows)
}

func (s *Store) GetCheckinsForHabit(habitID string, startDay, endDay string) ([]models.Checkin, error) {
	rows, err := s.db.Query(`
		SELECT `+checkinColumns+`
		FROM checkins
		WHERE habit_id = $1 AND day >= $2 AND day <= $3 AND deleted_at IS NULL
		ORDER BY day`, habitID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCheckins(rows)
}

func (s *Store) GetAllCheckins() ([]models.Checkin, error) {
	rows, err := s.db.Query(`
		SELECT ` + checkinColumns + `
		FROM checkins ORDER BY habit_id, day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCheckins(rows)
}

func collectCheckins(rows *sql.Rows) ([]models.Checkin, error) {
	var checkins []models.Checkin
	for rows.Next() {
		c, err := scanCheckin(rows.Scan)
		if err != nil {
			return nil, err
		}
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}

func (s *Store) DeleteCheckin(id string) error {
	result, err := s.db.Exec(`
		UPDATE checkins SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("checkin not found or already deleted")
	}

	return nil
}
