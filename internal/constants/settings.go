package constants

// Default settings values used when initializing a fresh store.
const (
	DefaultTimezone = "Local"

	DefaultMorningStart = "06:00"
	DefaultMorningEnd   = "11:00"
	DefaultMiddayStart  = "11:00"
	DefaultMiddayEnd    = "17:00"
	DefaultEveningStart = "17:00"
	DefaultEveningEnd   = "22:00"
)
