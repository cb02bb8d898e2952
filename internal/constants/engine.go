package constants

const (
	// EMAWindowDays is the smoothing window for the consistency score.
	// Alpha follows the standard 2/(N+1) EMA weighting.
	EMAWindowDays = 30
	EMAAlpha      = 2.0 / (EMAWindowDays + 1)

	// GraceTokenCap is the maximum forgiveness budget a habit can hold.
	GraceTokenCap = 2
	// GraceWeek is the success-run length that earns one grace token.
	GraceWeek = 7

	// Maintenance-mode hysteresis thresholds. The gap between enter and
	// exit is intentional to avoid flapping.
	MaintenanceEnterEMA    = 0.8
	MaintenanceEnterStreak = 42
	MaintenanceExitEMA     = 0.7

	// XPBase is the per-completion reward before difficulty, streak, and
	// effort scaling.
	XPBase = 10
	// XPStreakDivisor controls how fast the streak bonus grows.
	XPStreakDivisor = 30

	MinDifficulty = 1
	MaxDifficulty = 3
	MaxEffort     = 3

	// DefaultHorizonDays is the forward-looking occurrence window.
	DefaultHorizonDays = 14
)
