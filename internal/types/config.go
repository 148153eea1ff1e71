package types

// RunMode is the mode the application runs in
type RunMode string

const (
	ModeLocal RunMode = "local"
	ModeDev   RunMode = "dev"
	ModeProd  RunMode = "prod"
)

// LogLevel is the logging level for the application
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
