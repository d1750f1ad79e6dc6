package tracing

// Log level threshold values accepted by Config.LogLevel for the logging
// backend. They mirror the levels of the logger package.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config defines the configuration structure for the tracing Builder and
// the built-in backends.
type Config struct {
	// ServiceName identifies the service emitting spans. It is recorded as
	// a resource attribute by the OpenTelemetry backend and as a structured
	// field by the logging backend.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "service_name" key
	//   - Environment variable TRACING_SERVICE_NAME
	ServiceName string `yaml:"service_name" envconfig:"TRACING_SERVICE_NAME"`

	// AppEnv is the deployment environment (e.g. "development", "production").
	// Recorded as a resource attribute by the OpenTelemetry backend.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "app_env" key
	//   - Environment variable TRACING_APP_ENV
	AppEnv string `yaml:"app_env" envconfig:"TRACING_APP_ENV"`

	// Backend selects the backend variant constructed by NewBackend.
	// One of "otel", "logging" or "noop".
	//
	// This setting can be configured via:
	//   - YAML configuration with the "backend" key
	//   - Environment variable TRACING_BACKEND
	//
	// Default: "noop"
	Backend string `yaml:"backend" envconfig:"TRACING_BACKEND"`

	// EnableExport controls whether the OpenTelemetry backend ships spans to
	// an OTLP/HTTP collector. When false spans are still created (useful for
	// log correlation) but never exported. Ignored by the other backends.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "enable_export" key
	//   - Environment variable TRACING_ENABLE_EXPORT
	EnableExport bool `yaml:"enable_export" envconfig:"TRACING_ENABLE_EXPORT"`

	// DefaultTags are merged into the tag set of every span opened through
	// the Builder. Call-site tags override default tags on key collision.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "default_tags" key
	DefaultTags map[string]string `yaml:"default_tags"`

	// LogLevel is the level at which the logging backend emits its
	// "span started" / "span finished" lines. One of "debug", "info",
	// "warning" or "error". Ignored by the other backends.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "log_level" key
	//   - Environment variable TRACING_LOG_LEVEL
	//
	// Default: "info"
	LogLevel string `yaml:"log_level" envconfig:"TRACING_LOG_LEVEL"`
}
