package models

// Settings holds user-configurable application settings persisted in the
// store as key-value pairs.
type Settings struct {
	Timezone    string `json:"timezone"`
	HorizonDays int    `json:"horizon_days"`

	// Default completion windows per moment bucket, applied to habits
	// created without an explicit window.
	MorningStart string `json:"morning_start"` // HH:MM format
	MorningEnd   string `json:"morning_end"`
	MiddayStart  string `json:"midday_start"`
	MiddayEnd    string `json:"midday_end"`
	EveningStart string `json:"evening_start"`
	EveningEnd   string `json:"evening_end"`
}

// MomentWindow returns the configured default window for a moment bucket.
func (s Settings) MomentWindow(m Moment) Window {
	switch m {
	case MomentMidday:
		return Window{Start: s.MiddayStart, End: s.MiddayEnd}
	case MomentEvening:
		return Window{Start: s.EveningStart, End: s.EveningEnd}
	default:
		return Window{Start: s.MorningStart, End: s.MorningEnd}
	}
}
