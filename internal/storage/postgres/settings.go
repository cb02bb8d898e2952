package postgres

import (
	"fmt"

	"github.com/ascend-app/ascend/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case "timezone":
			settings.Timezone = value
		case "horizon_days":
			if _, err := fmt.Sscanf(value, "%d", &settings.HorizonDays); err != nil {
				return models.Settings{}, fmt.Errorf("parsing horizon_days: %w", err)
			}
		case "morning_start":
			settings.MorningStart = value
		case "morning_end":
			settings.MorningEnd = value
		case "midday_start":
			settings.MiddayStart = value
		case "midday_end":
			settings.MiddayEnd = value
		case "evening_start":
			settings.EveningStart = value
		case "evening_end":
			settings.EveningEnd = value
		}
		count++
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// PostgreSQL uses INSERT ... ON CONFLICT for upsert
	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("timezone", settings.Timezone); err != nil {
		return err
	}
	if _, err := stmt.Exec("horizon_days", fmt.Sprintf("%d", settings.HorizonDays)); err != nil {
		return err
	}
	if _, err := stmt.Exec("morning_start", settings.MorningStart); err != nil {
		return err
	}
	if _, err := stmt.Exec("morning_end", settings.MorningEnd); err != nil {
		return err
	}
	if _, err := stmt.Exec("midday_start", settings.MiddayStart); err != nil {
		return err
	}
	if _, err := stmt.Exec("midday_end", settings.MiddayEnd); err != nil {
		return err
	}
	if _, err := stmt.Exec("evening_start", settings.EveningStart); err != nil {
		return err
	}
	if _, err := stmt.Exec("evening_end", settings.EveningEnd); err != nil {
		return err
	}

	return tx.Commit()
}
