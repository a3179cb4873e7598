package logger

// LOG_LEVEL values accepted by Setup. "warning" is tolerated as an alias
// since ops tooling writes it both ways.
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// LOG_FORMAT values accepted by Setup.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Fallbacks for the service identity attributes when the env leaves them
// unset.
const (
	DefaultServiceName = "vitrine"
	DefaultVersion     = "dev"
)

// ENVIRONMENT labels for the config presets. Dev additionally turns on
// source file annotations.
const (
	EnvironmentDev        = "dev"
	EnvironmentProduction = "prod"
)

// Attribute keys stamped on every log line.
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
