package utils

import (
	"testing"
	"time"
)

func TestAddDays(t *testing.T) {
	tests := []struct {
		name    string
		day     string
		n       int
		want    string
		wantErr bool
	}{
		{name: "forward", day: "2026-03-02", n: 3, want: "2026-03-05"},
		{name: "backward", day: "2026-03-02", n: -2, want: "2026-02-28"},
		{name: "month boundary", day: "2026-01-31", n: 1, want: "2026-02-01"},
		{name: "leap day", day: "2024-02-28", n: 1, want: "2024-02-29"},
		{name: "zero", day: "2026-03-02", n: 0, want: "2026-03-02"},
		{name: "invalid", day: "03/02/2026", n: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddDays(tt.day, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddDays() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("AddDays() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     int
		wantErr  bool
	}{
		{name: "adjacent", from: "2026-03-02", to: "2026-03-03", want: 1},
		{name: "same day", from: "2026-03-02", to: "2026-03-02", want: 0},
		{name: "negative", from: "2026-03-05", to: "2026-03-02", want: -3},
		{name: "across dst change", from: "2026-03-07", to: "2026-03-09", want: 2},
		{name: "year boundary", from: "2025-12-31", to: "2026-01-01", want: 1},
		{name: "invalid", from: "bogus", to: "2026-03-02", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysBetween(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DaysBetween() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCombineDayAndTime(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	got, err := CombineDayAndTime("2026-03-02", "07:30", loc)
	if err != nil {
		t.Fatalf("CombineDayAndTime() error = %v", err)
	}
	want := time.Date(2026, 3, 2, 7, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("CombineDayAndTime() = %v, want %v", got, want)
	}

	if _, err := CombineDayAndTime("2026-03-02", "25:00", loc); err == nil {
		t.Error("expected error for invalid time")
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		timeStr string
		want    int
		wantErr bool
	}{
		{timeStr: "00:00", want: 0},
		{timeStr: "07:30", want: 450},
		{timeStr: "23:59", want: 1439},
		{timeStr: "7:30", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTimeToMinutes(tt.timeStr)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseTimeToMinutes(%q) error = %v, wantErr %v", tt.timeStr, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.timeStr, got, tt.want)
		}
	}
}

func TestValidateTimeFormat(t *testing.T) {
	valid := []string{"00:00", "07:30", "23:59"}
	for _, s := range valid {
		if !ValidateTimeFormat(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	// Zero-padding is part of the contract.
	invalid := []string{"7:30", "07:5", "25:00", "0730", ""}
	for _, s := range invalid {
		if ValidateTimeFormat(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	valid := []string{"", "Local", "UTC", "America/New_York", "Asia/Tokyo"}
	for _, tz := range valid {
		if !ValidateTimezone(tz) {
			t.Errorf("expected %q to be a valid timezone", tz)
		}
	}
	if ValidateTimezone("Mars/Olympus_Mons") {
		t.Error("expected unknown timezone to be rejected")
	}
}
