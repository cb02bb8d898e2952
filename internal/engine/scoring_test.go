package engine

import (
	"testing"
	"time"

	"github.com/ascend-app/ascend/internal/models"
)

func TestXP_KnownValues(t *testing.T) {
	habit := testHabit(models.CadenceDaily)

	tests := []struct {
		name   string
		streak int
		effort int
		want   int
	}{
		// round(10*2*(1+7/30)*(0.5+2*0.5)) = round(20*1.2333*1.5) = 37
		{name: "week streak moderate effort", streak: 7, effort: 2, want: 37},
		// round(10*2*1*0.5) = 10
		{name: "no streak no effort", streak: 0, effort: 0, want: 10},
		// round(10*2*2*2) = 80
		{name: "month streak max effort", streak: 30, effort: 3, want: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := XP(habit, tt.streak, tt.effort); got != tt.want {
				t.Errorf("XP(difficulty=2, streak=%d, effort=%d) = %d, want %d", tt.streak, tt.effort, got, tt.want)
			}
		})
	}
}

func TestXP_MonotonicInStreak(t *testing.T) {
	habit := testHabit(models.CadenceDaily)
	prev := XP(habit, 0, 2)
	for streak := 1; streak <= 100; streak++ {
		got := XP(habit, streak, 2)
		if got < prev {
			t.Fatalf("XP decreased from %d to %d at streak %d", prev, got, streak)
		}
		prev = got
	}
}

func TestXP_MonotonicInDifficulty(t *testing.T) {
	habit := testHabit(models.CadenceDaily)
	prev := 0
	for difficulty := 1; difficulty <= 3; difficulty++ {
		habit.Difficulty = difficulty
		got := XP(habit, 10, 2)
		if got < prev {
			t.Fatalf("XP decreased from %d to %d at difficulty %d", prev, got, difficulty)
		}
		prev = got
	}
}

func TestMaintenanceHysteresis(t *testing.T) {
	if ShouldEnterMaintenance(0.79, 50) {
		t.Error("expected no entry below EMA threshold despite long streak")
	}
	if ShouldEnterMaintenance(0.85, 41) {
		t.Error("expected no entry below streak threshold despite high EMA")
	}
	if !ShouldEnterMaintenance(0.8, 42) {
		t.Error("expected entry exactly at thresholds")
	}
	if ShouldExitMaintenance(0.75) {
		t.Error("expected to stay in maintenance at EMA 0.75")
	}
	if !ShouldExitMaintenance(0.69) {
		t.Error("expected exit at EMA 0.69")
	}
}

func TestUpdateMaintenance(t *testing.T) {
	// The hysteresis band keeps the prior mode
	if UpdateMaintenance(false, 0.75, 50) {
		t.Error("expected band EMA not to enter maintenance")
	}
	if !UpdateMaintenance(true, 0.75, 0) {
		t.Error("expected band EMA to stay in maintenance")
	}
	if !UpdateMaintenance(false, 0.9, 42) {
		t.Error("expected entry at high EMA and long streak")
	}
	if UpdateMaintenance(true, 0.5, 50) {
		t.Error("expected exit at low EMA")
	}
}

func TestDueAndOverdue(t *testing.T) {
	habit := testHabit(models.CadenceDaily)
	occs, err := GenerateOccurrences(habit, mustDate(t, "2026-03-02"), 1)
	if err != nil {
		t.Fatalf("GenerateOccurrences() error = %v", err)
	}
	occ := occs[0]

	beforeWindow := occ.WindowStart.Add(-time.Hour)
	inWindow := occ.WindowStart.Add(time.Hour)
	afterWindow := occ.WindowEnd.Add(time.Minute)

	if IsDue(occ, beforeWindow) {
		t.Error("expected not due before window opens")
	}
	if !IsDue(occ, occ.WindowStart) {
		t.Error("expected due at window start (inclusive)")
	}
	if !IsDue(occ, inWindow) {
		t.Error("expected due inside window")
	}
	if !IsDue(occ, occ.WindowEnd) {
		t.Error("expected due at window end (inclusive)")
	}
	if IsDue(occ, afterWindow) {
		t.Error("expected not due after window closes")
	}

	if IsOverdue(occ, inWindow) {
		t.Error("expected not overdue inside window")
	}
	if !IsOverdue(occ, afterWindow) {
		t.Error("expected overdue after window closes")
	}
}

func TestSevenDayScenario(t *testing.T) {
	habit := testHabit(models.CadenceDaily)

	var checkins []models.Checkin
	day := "2026-03-02"
	for i := 0; i < 7; i++ {
		checkins = append(checkins, checkinOn(day, models.CheckinDone))
		next, err := addDay(t, day)
		if err != nil {
			t.Fatal(err)
		}
		day = next
	}

	state, err := Replay(models.StreakState{}, checkins, "2026-03-02", "2026-03-08")
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}

	if state.Current != 7 {
		t.Errorf("expected current 7, got %d", state.Current)
	}
	if state.Best != 7 {
		t.Errorf("expected best 7, got %d", state.Best)
	}
	if state.GraceTokens != 1 {
		t.Errorf("expected one grace token granted at day 7, got %d", state.GraceTokens)
	}

	if got := XP(habit, state.Current, 2); got != 37 {
		t.Errorf("expected 37 XP on day 7, got %d", got)
	}
}
