package validation

import (
	"testing"

	"github.com/ascend-app/ascend/internal/models"
)

func validHabit() models.Habit {
	return models.Habit{
		ID:         "habit-1",
		UserID:     "local",
		Name:       "Read",
		Cadence:    models.CadenceDaily,
		Moment:     models.MomentEvening,
		Window:     models.Window{Start: "19:00", End: "22:00"},
		Difficulty: 1,
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    models.CheckinStatus
		wantErr bool
	}{
		{input: "done", want: models.CheckinDone},
		{input: "partial", want: models.CheckinPartial},
		{input: "skipped", want: models.CheckinSkipped},
		{input: "complete", wantErr: true},
		{input: "", wantErr: true},
		{input: "DONE", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseStatus(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateEffort(t *testing.T) {
	for _, effort := range []int{0, 1, 2, 3} {
		if err := ValidateEffort(effort); err != nil {
			t.Errorf("ValidateEffort(%d) unexpected error: %v", effort, err)
		}
	}
	for _, effort := range []int{-1, 4, 10} {
		if err := ValidateEffort(effort); err == nil {
			t.Errorf("ValidateEffort(%d) expected error", effort)
		}
	}
}

func TestValidateHabit(t *testing.T) {
	if err := ValidateHabit(validHabit()); err != nil {
		t.Fatalf("ValidateHabit() unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*models.Habit)
	}{
		{name: "empty name", mutate: func(h *models.Habit) { h.Name = "" }},
		{name: "unknown cadence", mutate: func(h *models.Habit) { h.Cadence = "fortnightly" }},
		{name: "unknown moment", mutate: func(h *models.Habit) { h.Moment = "night" }},
		{name: "difficulty too low", mutate: func(h *models.Habit) { h.Difficulty = 0 }},
		{name: "difficulty too high", mutate: func(h *models.Habit) { h.Difficulty = 4 }},
		{name: "inverted window", mutate: func(h *models.Habit) { h.Window = models.Window{Start: "22:00", End: "19:00"} }},
		{name: "malformed window", mutate: func(h *models.Habit) { h.Window.Start = "7pm" }},
		{name: "non-positive dose", mutate: func(h *models.Habit) { h.Dose = &models.Dose{Unit: "min", Target: 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validHabit()
			tt.mutate(&h)
			if err := ValidateHabit(h); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestValidateCheckin(t *testing.T) {
	valid := models.Checkin{
		ID:      "checkin-1",
		HabitID: "habit-1",
		Day:     "2026-03-02",
		Status:  models.CheckinDone,
		Effort:  2,
	}
	if err := ValidateCheckin(valid); err != nil {
		t.Fatalf("ValidateCheckin() unexpected error: %v", err)
	}

	bad := valid
	bad.Status = "finished"
	if err := ValidateCheckin(bad); err == nil {
		t.Error("expected error for unknown status")
	}

	bad = valid
	bad.Effort = 5
	if err := ValidateCheckin(bad); err == nil {
		t.Error("expected error for out-of-range effort")
	}

	bad = valid
	bad.Day = "03/02/2026"
	if err := ValidateCheckin(bad); err == nil {
		t.Error("expected error for malformed day")
	}

	bad = valid
	negative := -1.5
	bad.DoseActual = &negative
	if err := ValidateCheckin(bad); err == nil {
		t.Error("expected error for negative dose")
	}
}
