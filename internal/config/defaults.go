package config

const (
	defaultRoot                 = "~/.m2"
	defaultRecencyWindowSeconds = 60
	defaultBufferSeconds        = 60
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Root: defaultRoot,
		},
		Timing: Timing{
			RecencyWindowSeconds: defaultRecencyWindowSeconds,
			BufferSeconds:        defaultBufferSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
