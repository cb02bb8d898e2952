package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ascend-app/ascend/internal/constants"
	"github.com/ascend-app/ascend/internal/engine"
	"github.com/ascend-app/ascend/internal/models"
	"github.com/ascend-app/ascend/internal/storage"
	"github.com/ascend-app/ascend/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Provider {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "ascend.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func addTestHabit(t *testing.T, store storage.Provider) models.Habit {
	t.Helper()

	habit := models.Habit{
		ID:         uuid.New().String(),
		UserID:     constants.LocalUserID,
		Name:       "morning run",
		Cadence:    models.CadenceDaily,
		Moment:     models.MomentMorning,
		Difficulty: 2,
		CreatedAt:  time.Now(),
	}
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit() error = %v", err)
	}
	return habit
}

func checkinFor(habit models.Habit, day string, status models.CheckinStatus) models.Checkin {
	return models.Checkin{
		ID:        uuid.New().String(),
		HabitID:   habit.ID,
		Day:       day,
		Status:    status,
		Effort:    2,
		CreatedAt: time.Now(),
	}
}

func TestRecordCheckin_BuildsStreakAndAwardsXP(t *testing.T) {
	store := newTestStore(t)
	habit := addTestHabit(t, store)

	days := []string{"2026-03-02", "2026-03-03", "2026-03-04"}
	var state models.StreakState
	for _, day := range days {
		var err error
		state, _, _, err = RecordCheckin(store, habit, checkinFor(habit, day, models.CheckinDone))
		if err != nil {
			t.Fatalf("RecordCheckin(%s) error = %v", day, err)
		}
	}

	if state.Current != 3 {
		t.Errorf("expected streak 3 after three consecutive days, got %d", state.Current)
	}

	total, err := store.GetXPTotal(habit.ID)
	if err != nil {
		t.Fatalf("GetXPTotal() error = %v", err)
	}
	if total <= 0 {
		t.Errorf("expected positive XP total, got %d", total)
	}

	entries, err := store.GetXPEntriesForHabit(habit.ID, 0)
	if err != nil {
		t.Fatalf("GetXPEntriesForHabit() error = %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected one XP entry per day, got %d", len(entries))
	}
}

func TestRecordCheckin_PartialEarnsEffortScaledXP(t *testing.T) {
	store := newTestStore(t)
	habit := addTestHabit(t, store)

	checkin := checkinFor(habit, "2026-03-02", models.CheckinPartial)
	checkin.Effort = 3
	state, points, _, err := RecordCheckin(store, habit, checkin)
	if err != nil {
		t.Fatalf("RecordCheckin() error = %v", err)
	}

	// Partial days keep the streak alive and still earn effort-scaled XP.
	if state.Current != 1 {
		t.Errorf("expected streak 1, got %d", state.Current)
	}
	want := engine.XP(habit, state.Current, 3)
	if points != want || points <= 0 {
		t.Errorf("expected %d XP for partial effort-3 checkin, got %d", want, points)
	}

	total, err := store.GetXPTotal(habit.ID)
	if err != nil {
		t.Fatalf("GetXPTotal() error = %v", err)
	}
	if total != want {
		t.Errorf("expected XP total %d, got %d", want, total)
	}
}

func TestRecordCheckin_ResubmissionReplacesAward(t *testing.T) {
	store := newTestStore(t)
	habit := addTestHabit(t, store)

	state, points, resubmitted, err := RecordCheckin(store, habit, checkinFor(habit, "2026-03-02", models.CheckinDone))
	if err != nil {
		t.Fatalf("RecordCheckin() error = %v", err)
	}
	if resubmitted {
		t.Error("first submission should not be flagged as a resubmission")
	}
	if points <= 0 {
		t.Errorf("expected XP for done checkin, got %d", points)
	}
	if state.Current != 1 {
		t.Errorf("expected streak 1, got %d", state.Current)
	}

	// Correcting the day to skipped zeroes out the award and the streak.
	state, points, resubmitted, err = RecordCheckin(store, habit, checkinFor(habit, "2026-03-02", models.CheckinSkipped))
	if err != nil {
		t.Fatalf("RecordCheckin() resubmit error = %v", err)
	}
	if !resubmitted {
		t.Error("expected resubmission to be flagged")
	}
	if points != 0 {
		t.Errorf("expected no XP for skipped checkin, got %d", points)
	}
	if state.Current != 0 {
		t.Errorf("expected streak reset to 0, got %d", state.Current)
	}

	total, err := store.GetXPTotal(habit.ID)
	if err != nil {
		t.Fatalf("GetXPTotal() error = %v", err)
	}
	if total != 0 {
		t.Errorf("expected award replaced with zero, total = %d", total)
	}

	checkins, err := store.GetCheckinsForHabit(habit.ID, checkinRangeStart, checkinRangeEnd)
	if err != nil {
		t.Fatalf("GetCheckinsForHabit() error = %v", err)
	}
	if len(checkins) != 1 {
		t.Errorf("expected a single checkin row after resubmission, got %d", len(checkins))
	}
	if checkins[0].EditedAt == nil {
		t.Error("expected edited_at set on resubmission")
	}
}

func TestRecordCheckin_BackdatedEntryRebuildsHistory(t *testing.T) {
	store := newTestStore(t)
	habit := addTestHabit(t, store)

	if _, _, _, err := RecordCheckin(store, habit, checkinFor(habit, "2026-03-02", models.CheckinDone)); err != nil {
		t.Fatalf("RecordCheckin() error = %v", err)
	}
	state, _, _, err := RecordCheckin(store, habit, checkinFor(habit, "2026-03-04", models.CheckinDone))
	if err != nil {
		t.Fatalf("RecordCheckin() error = %v", err)
	}
	if state.Current != 1 {
		t.Errorf("expected gap to reset streak, got %d", state.Current)
	}

	// Backfilling the missed day restores the unbroken run.
	state, _, _, err = RecordCheckin(store, habit, checkinFor(habit, "2026-03-03", models.CheckinDone))
	if err != nil {
		t.Fatalf("RecordCheckin() backdate error = %v", err)
	}
	if state.Current != 3 {
		t.Errorf("expected streak 3 after backfill, got %d", state.Current)
	}
	if state.LastDay != "2026-03-04" {
		t.Errorf("expected lastDay 2026-03-04, got %s", state.LastDay)
	}
}

func TestRemoveCheckin_RevertsDerivedRecords(t *testing.T) {
	store := newTestStore(t)
	habit := addTestHabit(t, store)

	if _, _, _, err := RecordCheckin(store, habit, checkinFor(habit, "2026-03-02", models.CheckinDone)); err != nil {
		t.Fatalf("RecordCheckin() error = %v", err)
	}
	if _, _, _, err := RecordCheckin(store, habit, checkinFor(habit, "2026-03-03", models.CheckinDone)); err != nil {
		t.Fatalf("RecordCheckin() error = %v", err)
	}

	state, err := RemoveCheckin(store, habit, "2026-03-03")
	if err != nil {
		t.Fatalf("RemoveCheckin() error = %v", err)
	}
	if state.Current != 1 {
		t.Errorf("expected streak rebuilt to 1, got %d", state.Current)
	}

	if _, err := store.GetCheckin(habit.ID, "2026-03-03"); err == nil {
		t.Error("expected removed checkin to be gone")
	}

	// The removed day's award is replaced with zero, leaving only the
	// first day's points.
	total, err := store.GetXPTotal(habit.ID)
	if err != nil {
		t.Fatalf("GetXPTotal() error = %v", err)
	}
	if want := engine.XP(habit, 1, 2); total != want {
		t.Errorf("expected XP total %d after removal, got %d", want, total)
	}

	if _, err := RemoveCheckin(store, habit, "2026-03-03"); err == nil {
		t.Error("expected error removing a day with no checkin")
	}
}
