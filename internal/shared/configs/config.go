package configs

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	Analytics   AnalyticsConfig   `mapstructure:"analytics" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// AnalyticsConfig holds aggregation and caching configuration.
//
// DashboardPath and TestPathPrefix name the reserved paths excluded from
// every metric: the dashboard's own route and synthetic test traffic.
// FunnelPathPrefix selects the content series measured by the day funnel.
type AnalyticsConfig struct {
	CacheTTLSeconds  int    `mapstructure:"cache_ttl_seconds" validate:"required,min=1"`
	DashboardPath    string `mapstructure:"dashboard_path" validate:"required,startswith=/"`
	TestPathPrefix   string `mapstructure:"test_path_prefix" validate:"required,startswith=/"`
	FunnelPathPrefix string `mapstructure:"funnel_path_prefix" validate:"required,startswith=/"`
}
