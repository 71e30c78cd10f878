package config

import "fmt"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Timing.RecencyWindowSeconds <= 0 {
		return fmt.Errorf("timing.recency_window_seconds must be positive, got %d", c.Timing.RecencyWindowSeconds)
	}
	if c.Timing.BufferSeconds <= 0 {
		return fmt.Errorf("timing.buffer_seconds must be positive, got %d", c.Timing.BufferSeconds)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
