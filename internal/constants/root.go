package constants

const (
	AppName            = "ascend"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/ascend/ascend.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// LocalUserID identifies the single local user. Occurrence ids keep the
	// user:habit:date composite shape so records stay compatible with a
	// multi-tenant backend.
	LocalUserID = "local"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "ascend-"
	BackupFileSuffix = ".db"
)
