package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ascend-app/ascend/internal/models"
)

func (s *Store) UpsertXPEntry(entry models.XPEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO xp_entries (id, habit_id, day, points, streak, effort, awarded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(habit_id, day) DO UPDATE SET
			points = excluded.points,
			streak = excluded.streak,
			effort = excluded.effort,
			awarded_at = excluded.awarded_at`,
		entry.ID, entry.HabitID, entry.Day, entry.Points, entry.Streak, entry.Effort,
		entry.AwardedAt.Format(time.RFC3339))

	return err
}

func (s *Store) GetXPTotal(habitID string) (int, error) {
	var total int
	var err error
	if habitID == "" {
		err = s.db.QueryRow(`SELECT COALESCE(SUM(points), 0) FROM xp_entries`).Scan(&total)
	} else {
		err = s.db.QueryRow(`SELECT COALESCE(SUM(points), 0) FROM xp_entries WHERE habit_id = ?`, habitID).Scan(&total)
	}
	return total, err
}

func (s *Store) GetXPEntriesForHabit(habitID string, limit int) ([]models.XPEntry, error) {
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(`
			SELECT id, habit_id, day, points, streak, effort, awarded_at
			FROM xp_entries WHERE habit_id = ? ORDER BY day DESC LIMIT ?`, habitID, limit)
	} else {
		rows, err = s.db.Query(`
			SELECT id, habit_id, day, points, streak, effort, awarded_at
			FROM xp_entries WHERE habit_id = ? ORDER BY day DESC`, habitID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectXPEntries(rows)
}

func (s *Store) GetAllXPEntries() ([]models.XPEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, habit_id, day, points, streak, effort, awarded_at
		FROM xp_entries ORDER BY habit_id, day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectXPEntries(rows)
}

func collectXPEntries(rows *sql.Rows) ([]models.XPEntry, error) {
	var entries []models.XPEntry
	for rows.Next() {
		var e models.XPEntry
		var awardedAt string

		err := rows.Scan(&e.ID, &e.HabitID, &e.Day, &e.Points, &e.Streak, &e.Effort, &awardedAt)
		if err != nil {
			return nil, err
		}

		e.AwardedAt, err = time.Parse(time.RFC3339, awardedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse awarded_at for entry %s: %w", e.ID, err)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
