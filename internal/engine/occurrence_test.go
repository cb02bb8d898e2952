package engine

import (
	"testing"
	"time"

	"github.com/ascend-app/ascend/internal/constants"
	"github.com/ascend-app/ascend/internal/models"
)

func testHabit(cadence models.Cadence) models.Habit {
	return models.Habit{
		ID:         "habit-1",
		UserID:     constants.LocalUserID,
		Name:       "Morning stretch",
		Cadence:    cadence,
		Moment:     models.MomentMorning,
		Window:     models.Window{Start: "07:00", End: "11:00"},
		Difficulty: 2,
	}
}

func mustDate(t *testing.T, day string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(constants.DateFormat, day, time.UTC)
	if err != nil {
		t.Fatalf("failed to parse date %s: %v", day, err)
	}
	return d
}

func TestGenerateOccurrences_DailyCount(t *testing.T) {
	habit := testHabit(models.CadenceDaily)
	start := mustDate(t, "2026-03-02")

	occs, err := GenerateOccurrences(habit, start, 14)
	if err != nil {
		t.Fatalf("GenerateOccurrences() error = %v", err)
	}

	if len(occs) != 14 {
		t.Fatalf("expected 14 occurrences for daily cadence, got %d", len(occs))
	}

	// One per consecutive date, ascending
	for i, occ := range occs {
		want := start.AddDate(0, 0, i).Format(constants.DateFormat)
		if occ.Day != want {
			t.Errorf("occurrence %d: expected day %s, got %s", i, want, occ.Day)
		}
	}
}

func TestGenerateOccurrences_WeekdayFilter(t *testing.T) {
	habit := testHabit(models.CadenceWeekdays)
	// 2026-03-02 is a Monday; a 14-day window aligned to full weeks holds 10 weekdays
	start := mustDate(t, "2026-03-02")

	occs, err := GenerateOccurrences(habit, start, 14)
	if err != nil {
		t.Fatalf("GenerateOccurrences() error = %v", err)
	}

	if len(occs) != 10 {
		t.Fatalf("expected 10 weekday occurrences over two full weeks, got %d", len(occs))
	}

	for _, occ := range occs {
		wd := occ.WindowStart.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			t.Errorf("occurrence on %s falls on a weekend (%s)", occ.Day, wd)
		}
	}
}

func TestGenerateOccurrences_CustomAlwaysMatches(t *testing.T) {
	habit := testHabit(models.CadenceCustom)
	habit.CustomRule = "FREQ=WEEKLY;BYDAY=TU"

	occs, err := GenerateOccurrences(habit, mustDate(t, "2026-03-02"), 7)
	if err != nil {
		t.Fatalf("GenerateOccurrences() error = %v", err)
	}

	// Custom rules are an always-true stub until a parser lands
	if len(occs) != 7 {
		t.Errorf("expected 7 occurrences for custom cadence stub, got %d", len(occs))
	}
}

func TestGenerateOccurrences_WindowAnchoring(t *testing.T) {
	habit := testHabit(models.CadenceDaily)
	start := mustDate(t, "2026-03-02")

	occs, err := GenerateOccurrences(habit, start, 1)
	if err != nil {
		t.Fatalf("GenerateOccurrences() error = %v", err)
	}
	if len(occs) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occs))
	}

	occ := occs[0]
	if occ.WindowStart.Hour() != 7 || occ.WindowStart.Minute() != 0 || occ.WindowStart.Second() != 0 {
		t.Errorf("expected window start at 07:00:00, got %v", occ.WindowStart)
	}
	if occ.WindowEnd.Hour() != 11 || occ.WindowEnd.Minute() != 0 {
		t.Errorf("expected window end at 11:00, got %v", occ.WindowEnd)
	}
	if !occ.DueAt.Equal(occ.WindowStart) {
		t.Errorf("expected dueAt to default to window start, got %v", occ.DueAt)
	}
	if occ.WindowStart.Format(constants.DateFormat) != occ.Day {
		t.Errorf("window start date %v does not match occurrence day %s", occ.WindowStart, occ.Day)
	}
}

func TestGenerateOccurrences_Deterministic(t *testing.T) {
	habit := testHabit(models.CadenceDaily)
	start := mustDate(t, "2026-03-02")

	first, err := GenerateOccurrences(habit, start, 14)
	if err != nil {
		t.Fatalf("GenerateOccurrences() error = %v", err)
	}
	second, err := GenerateOccurrences(habit, start, 14)
	if err != nil {
		t.Fatalf("GenerateOccurrences() error = %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("occurrence %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}

	wantID := "local:habit-1:2026-03-02"
	if first[0].ID != wantID {
		t.Errorf("expected composite id %s, got %s", wantID, first[0].ID)
	}
}

func TestGenerateOccurrences_InvalidInputs(t *testing.T) {
	start := mustDate(t, "2026-03-02")

	if _, err := GenerateOccurrences(testHabit(models.CadenceDaily), start, -1); err == nil {
		t.Error("expected error for negative horizon")
	}

	badWindow := testHabit(models.CadenceDaily)
	badWindow.Window = models.Window{Start: "11:00", End: "07:00"}
	if _, err := GenerateOccurrences(badWindow, start, 7); err == nil {
		t.Error("expected error for inverted window")
	}

	malformed := testHabit(models.CadenceDaily)
	malformed.Window.Start = "7am"
	if _, err := GenerateOccurrences(malformed, start, 7); err == nil {
		t.Error("expected error for malformed window time")
	}
}

func TestGenerateOccurrences_ZeroDays(t *testing.T) {
	occs, err := GenerateOccurrences(testHabit(models.CadenceDaily), mustDate(t, "2026-03-02"), 0)
	if err != nil {
		t.Fatalf("GenerateOccurrences() error = %v", err)
	}
	if len(occs) != 0 {
		t.Errorf("expected empty horizon, got %d occurrences", len(occs))
	}
}
