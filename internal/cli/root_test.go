package cli

import (
	"testing"

	"github.com/ascend-app/ascend/internal/models"
)

func TestWindowDuration(t *testing.T) {
	tests := []struct {
		name   string
		window models.Window
		want   int
	}{
		{name: "four hours", window: models.Window{Start: "07:00", End: "11:00"}, want: 240},
		{name: "half hour", window: models.Window{Start: "12:00", End: "12:30"}, want: 30},
		{name: "inverted", window: models.Window{Start: "18:00", End: "07:00"}, want: -660},
		{name: "malformed start", window: models.Window{Start: "7:00", End: "11:00"}, want: 0},
		{name: "empty", window: models.Window{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WindowDuration(tt.window); got != tt.want {
				t.Errorf("WindowDuration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatWindow(t *testing.T) {
	if got := FormatWindow(models.Window{Start: "07:00", End: "11:00"}); got != "07:00-11:00" {
		t.Errorf("FormatWindow() = %q", got)
	}
	if got := FormatWindow(models.Window{}); got != "all day" {
		t.Errorf("FormatWindow() on empty window = %q, want %q", got, "all day")
	}
}

func TestFormatCadence(t *testing.T) {
	tests := []struct {
		habit models.Habit
		want  string
	}{
		{habit: models.Habit{Cadence: models.CadenceDaily}, want: "daily"},
		{habit: models.Habit{Cadence: models.CadenceWeekdays}, want: "weekdays"},
		{habit: models.Habit{Cadence: models.CadenceCustom, CustomRule: "mon,wed"}, want: "custom (mon,wed)"},
		{habit: models.Habit{Cadence: models.CadenceCustom}, want: "custom"},
	}
	for _, tt := range tests {
		if got := FormatCadence(tt.habit); got != tt.want {
			t.Errorf("FormatCadence(%s) = %q, want %q", tt.habit.Cadence, got, tt.want)
		}
	}
}
