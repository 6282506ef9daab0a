package logger

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: debug, info, warn or error.
	Level string `mapstructure:"level" default:"info"`
	// Format selects the output encoding: json or console.
	Format string `mapstructure:"format" default:"json"`
}
