package engine

import (
	"math"
	"testing"
	"time"

	"github.com/ascend-app/ascend/internal/constants"
	"github.com/ascend-app/ascend/internal/models"
	"github.com/ascend-app/ascend/internal/utils"
)

func checkinOn(day string, status models.CheckinStatus) models.Checkin {
	return models.Checkin{
		ID:      "checkin-" + day,
		HabitID: "habit-1",
		Day:     day,
		Status:  status,
		Effort:  2,
	}
}

func TestDailyScore(t *testing.T) {
	done := checkinOn("2026-03-02", models.CheckinDone)
	partial := checkinOn("2026-03-02", models.CheckinPartial)
	skipped := checkinOn("2026-03-02", models.CheckinSkipped)

	tests := []struct {
		name    string
		checkin *models.Checkin
		want    float64
	}{
		{name: "done", checkin: &done, want: 1.0},
		{name: "partial", checkin: &partial, want: 0.5},
		{name: "skipped", checkin: &skipped, want: 0.0},
		{name: "absent", checkin: nil, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DailyScore(tt.checkin); got != tt.want {
				t.Errorf("DailyScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdvance_Increment(t *testing.T) {
	prev := models.StreakState{Current: 3, Best: 5, LastDay: "2026-03-02", GraceTokens: 0}
	checkins := []models.Checkin{checkinOn("2026-03-03", models.CheckinDone)}

	next, err := Advance(prev, checkins, "2026-03-03")
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	if next.Current != 4 {
		t.Errorf("expected current 4, got %d", next.Current)
	}
	if next.Best != 5 {
		t.Errorf("expected best unchanged at 5, got %d", next.Best)
	}
	if next.LastDay != "2026-03-03" {
		t.Errorf("expected lastDay 2026-03-03, got %s", next.LastDay)
	}
	if next.GraceTokens != 0 {
		t.Errorf("expected no grace tokens, got %d", next.GraceTokens)
	}
}

func TestAdvance_PartialCountsAsSuccess(t *testing.T) {
	prev := models.StreakState{Current: 1, Best: 1, LastDay: "2026-03-02"}
	checkins := []models.Checkin{checkinOn("2026-03-03", models.CheckinPartial)}

	next, err := Advance(prev, checkins, "2026-03-03")
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if next.Current != 2 || next.Best != 2 {
		t.Errorf("expected partial checkin to extend streak, got current=%d best=%d", next.Current, next.Best)
	}
}

func TestAdvance_SkippedBreaksStreak(t *testing.T) {
	prev := models.StreakState{Current: 4, Best: 4, LastDay: "2026-03-02"}
	checkins := []models.Checkin{checkinOn("2026-03-03", models.CheckinSkipped)}

	next, err := Advance(prev, checkins, "2026-03-03")
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if next.Current != 0 {
		t.Errorf("expected skipped checkin with no grace to reset streak, got %d", next.Current)
	}
}

func TestAdvance_GraceGrantedEachFullWeek(t *testing.T) {
	state := models.StreakState{LastDay: "2026-03-01"}
	day := "2026-03-02"

	var err error
	for i := 0; i < 14; i++ {
		checkins := []models.Checkin{checkinOn(day, models.CheckinDone)}
		state, err = Advance(state, checkins, day)
		if err != nil {
			t.Fatalf("Advance() day %s error = %v", day, err)
		}
		switch state.Current {
		case 7:
			if state.GraceTokens != 1 {
				t.Errorf("expected 1 grace token after 7 days, got %d", state.GraceTokens)
			}
		case 14:
			if state.GraceTokens != 2 {
				t.Errorf("expected 2 grace tokens after 14 days, got %d", state.GraceTokens)
			}
		}
		next, addErr := addDay(t, day)
		if addErr != nil {
			t.Fatal(addErr)
		}
		day = next
	}
}

func TestAdvance_GraceCapped(t *testing.T) {
	state := models.StreakState{Current: 20, Best: 20, LastDay: "2026-03-02", GraceTokens: 2}
	checkins := []models.Checkin{checkinOn("2026-03-03", models.CheckinDone)}

	next, err := Advance(state, checkins, "2026-03-03")
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	// current hits 21, a multiple of 7, but tokens are already at the cap
	if next.GraceTokens != constants.GraceTokenCap {
		t.Errorf("expected grace tokens capped at %d, got %d", constants.GraceTokenCap, next.GraceTokens)
	}
}

func TestAdvance_GraceConsumption(t *testing.T) {
	prev := models.StreakState{Current: 5, Best: 8, LastDay: "2026-03-02", GraceTokens: 1}

	next, err := Advance(prev, nil, "2026-03-03")
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	if next.Current != 5 {
		t.Errorf("expected forgiven miss to preserve current at 5, got %d", next.Current)
	}
	if next.GraceTokens != 0 {
		t.Errorf("expected grace token consumed, got %d", next.GraceTokens)
	}
	if next.LastDay != "2026-03-03" {
		t.Errorf("expected lastDay to advance, got %s", next.LastDay)
	}
}

func TestAdvance_MissWithoutGraceResets(t *testing.T) {
	prev := models.StreakState{Current: 5, Best: 8, LastDay: "2026-03-02", GraceTokens: 0}

	next, err := Advance(prev, nil, "2026-03-03")
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if next.Current != 0 {
		t.Errorf("expected reset to 0, got %d", next.Current)
	}
	if next.Best != 8 {
		t.Errorf("expected best preserved at 8, got %d", next.Best)
	}
}

func TestAdvance_MultiDayGapResets(t *testing.T) {
	prev := models.StreakState{Current: 10, Best: 10, LastDay: "2026-03-02", GraceTokens: 2}

	next, err := Advance(prev, nil, "2026-03-05")
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if next.Current != 0 {
		t.Errorf("expected multi-day gap to reset regardless of grace balance, got %d", next.Current)
	}
	if next.GraceTokens != 2 {
		t.Errorf("expected grace tokens untouched by a gap reset, got %d", next.GraceTokens)
	}
}

func TestAdvance_SameDayIsNoOp(t *testing.T) {
	prev := models.StreakState{Current: 3, Best: 3, LastDay: "2026-03-03", GraceTokens: 1}
	checkins := []models.Checkin{checkinOn("2026-03-03", models.CheckinDone)}

	next, err := Advance(prev, checkins, "2026-03-03")
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if next != prev {
		t.Errorf("expected same-day fold to be a no-op, got %+v", next)
	}
}

func TestAdvance_OutOfOrderRejected(t *testing.T) {
	prev := models.StreakState{Current: 3, Best: 3, LastDay: "2026-03-03"}

	if _, err := Advance(prev, nil, "2026-03-01"); err == nil {
		t.Error("expected error for out-of-order date")
	}
}

func TestUpdateEMA_Convergence(t *testing.T) {
	// Repeated perfect scores converge monotonically toward 1.0
	ema := 0.2
	prev := ema
	for i := 0; i < 200; i++ {
		ema = UpdateEMA(ema, 1.0, constants.EMAAlpha)
		if ema < prev {
			t.Fatalf("EMA decreased from %v to %v while feeding 1.0", prev, ema)
		}
		prev = ema
	}
	if math.Abs(1.0-ema) > 0.01 {
		t.Errorf("expected EMA near 1.0 after 200 perfect days, got %v", ema)
	}

	// Repeated zero scores converge monotonically toward 0.0
	ema = 0.9
	prev = ema
	for i := 0; i < 200; i++ {
		ema = UpdateEMA(ema, 0.0, constants.EMAAlpha)
		if ema > prev {
			t.Fatalf("EMA increased from %v to %v while feeding 0.0", prev, ema)
		}
		prev = ema
	}
	if ema > 0.01 {
		t.Errorf("expected EMA near 0.0 after 200 missed days, got %v", ema)
	}
}

func TestReplay_RebuildsFromHistory(t *testing.T) {
	checkins := []models.Checkin{
		checkinOn("2026-03-02", models.CheckinDone),
		checkinOn("2026-03-03", models.CheckinDone),
		// 2026-03-04 missed
		checkinOn("2026-03-05", models.CheckinDone),
	}

	state, err := Replay(models.StreakState{}, checkins, "2026-03-02", "2026-03-05")
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}

	// No grace tokens yet, so the miss on the 4th resets before the 5th
	if state.Current != 1 {
		t.Errorf("expected current 1 after reset and one success, got %d", state.Current)
	}
	if state.Best != 2 {
		t.Errorf("expected best 2, got %d", state.Best)
	}
	if state.LastDay != "2026-03-05" {
		t.Errorf("expected lastDay 2026-03-05, got %s", state.LastDay)
	}
	if state.EMA <= 0 || state.EMA >= 1 {
		t.Errorf("expected EMA inside (0,1), got %v", state.EMA)
	}
}

func TestRebuild_EmptyHistory(t *testing.T) {
	state, err := Rebuild("habit-1", nil)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if state.HabitID != "habit-1" {
		t.Errorf("expected habit id preserved, got %q", state.HabitID)
	}
	if state.Current != 0 || state.Best != 0 || state.LastDay != "" {
		t.Errorf("expected zero state for empty history, got %+v", state)
	}
}

func TestRebuild_BoundsFromHistory(t *testing.T) {
	// Out of submission order and with a soft-deleted record in the middle.
	deleted := checkinOn("2026-03-10", models.CheckinDone)
	ts := time.Now()
	deleted.DeletedAt = &ts
	checkins := []models.Checkin{
		checkinOn("2026-03-03", models.CheckinDone),
		deleted,
		checkinOn("2026-03-02", models.CheckinDone),
	}

	state, err := Rebuild("habit-1", checkins)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if state.Current != 2 {
		t.Errorf("expected current 2, got %d", state.Current)
	}
	if state.LastDay != "2026-03-03" {
		t.Errorf("expected deleted checkin excluded from range, lastDay %s", state.LastDay)
	}
}

func TestReplay_ReversedRangeRejected(t *testing.T) {
	if _, err := Replay(models.StreakState{}, nil, "2026-03-05", "2026-03-02"); err == nil {
		t.Error("expected error for reversed replay range")
	}
}

func addDay(t *testing.T, day string) (string, error) {
	t.Helper()
	return utils.AddDays(day, 1)
}
