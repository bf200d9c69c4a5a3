package config

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	Validation ValidationConfig `mapstructure:"validation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LedgerConfig locates the spreadsheet store. The process assumes it is
// the only writer of the file.
type LedgerConfig struct {
	Path string `mapstructure:"path"`
}

// ValidationConfig holds the acceptance policy. Under strict mode any
// warning also blocks a record.
type ValidationConfig struct {
	StrictMode bool `mapstructure:"strict_mode"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
