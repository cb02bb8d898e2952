package sqlite

import (
	"fmt"
	"time"

	"github.com/ascend-app/ascend/internal/models"
)

func (s *Store) GetStreakState(habitID string) (models.StreakState, error) {
	row := s.db.QueryRow(`
		SELECT habit_id, current, best, last_day, grace_tokens, ema, maintenance, updated_at
		FROM streak_states WHERE habit_id = ?`, habitID)

	var st models.StreakState
	var maintenance int
	var updatedAt string

	err := row.Scan(&st.HabitID, &st.Current, &st.Best, &st.LastDay, &st.GraceTokens,
		&st.EMA, &maintenance, &updatedAt)
	if err != nil {
		return models.StreakState{}, err
	}

	st.Maintenance = maintenance != 0
	st.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.StreakState{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return st, nil
}

func (s *Store) SaveStreakState(state models.StreakState) error {
	maintenance := 0
	if state.Maintenance {
		maintenance = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO streak_states (habit_id, current, best, last_day, grace_tokens, ema, maintenance, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(habit_id) DO UPDATE SET
			current = excluded.current,
			best = excluded.best,
			last_day = excluded.last_day,
			grace_tokens = excluded.grace_tokens,
			ema = excluded.ema,
			maintenance = excluded.maintenance,
			updated_at = excluded.updated_at`,
		state.HabitID, state.Current, state.Best, state.LastDay, state.GraceTokens,
		state.EMA, maintenance, state.UpdatedAt.Format(time.RFC3339))

	return err
}

func (s *Store) GetAllStreakStates() ([]models.StreakState, error) {
	rows, err := s.db.Query(`
		SELECT habit_id, current, best, last_day, grace_tokens, ema, maintenance, updated_at
		FROM streak_states ORDER BY habit_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []models.StreakState
	for rows.Next() {
		var st models.StreakState
		var maintenance int
		var updatedAt string

		err := rows.Scan(&st.HabitID, &st.Current, &st.Best, &st.LastDay, &st.GraceTokens,
			&st.EMA, &maintenance, &updatedAt)
		if err != nil {
			return nil, err
		}

		st.Maintenance = maintenance != 0
		st.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at for habit %s: %w", st.HabitID, err)
		}

		states = append(states, st)
	}

	return states, rows.Err()
}
