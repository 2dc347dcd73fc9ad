// Package config provides configuration management for the prop-edge application.
package config

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Portfolio  PortfolioConfig  `mapstructure:"portfolio" validate:"required"`
	Features   FeaturesConfig   `mapstructure:"features" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Schedule   ScheduleConfig   `mapstructure:"schedule"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// SimulationConfig controls Monte Carlo evaluation
type SimulationConfig struct {
	NumSims int   `mapstructure:"num_sims" validate:"required,gt=0,lte=1000000"`
	Seed    int64 `mapstructure:"seed"`
	// Workers is the evaluation pool size; 0 uses GOMAXPROCS.
	Workers int `mapstructure:"workers" validate:"gte=0,lte=256"`
}

// PortfolioConfig holds the selection thresholds and caps
type PortfolioConfig struct {
	MinModelProb      float64 `mapstructure:"min_model_prob" validate:"gte=0,lte=1"`
	MinEdge           float64 `mapstructure:"min_edge" validate:"gte=-1,lte=1"`
	MinEV             float64 `mapstructure:"min_ev"`
	MinConfidence     float64 `mapstructure:"min_confidence" validate:"gte=0,lte=1"`
	MinMinutes        float64 `mapstructure:"min_minutes" validate:"gte=0,lte=48"`
	MaxOvers          int     `mapstructure:"max_overs" validate:"gte=0"`
	MaxUnders         int     `mapstructure:"max_unders" validate:"gte=0"`
	MinOversFallback  int     `mapstructure:"min_overs_fallback" validate:"gte=0"`
	MinUndersFallback int     `mapstructure:"min_unders_fallback" validate:"gte=0"`
	UnitStake         string  `mapstructure:"unit_stake" validate:"required,numeric"`
}

// FeaturesConfig controls the rolling-window feature stage
type FeaturesConfig struct {
	Window          int `mapstructure:"window" validate:"required,gt=0,lte=82"`
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes" validate:"required,gt=0"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Port                int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int      `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int      `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	AllowedOrigins      []string `mapstructure:"allowed_origins"`
	// RateLimitPerSecond throttles the /api/v1 endpoints; 0 disables it.
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second" validate:"gte=0"`
	RateLimitBurst     int     `mapstructure:"rate_limit_burst" validate:"gte=0"`
}

// ScheduleConfig represents the daily card job
type ScheduleConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Cron      string `mapstructure:"cron"`
	InputPath string `mapstructure:"input_path"`
	OutputDir string `mapstructure:"output_dir"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
