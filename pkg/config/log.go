package config

import (
	"fmt"
	"strings"
)

// LogConfig selects the minimum slog level. Unknown values fall back to info
// in bootstrap.NewLogger, so there is nothing to validate here.
type LogConfig struct {
	Level string `koanf:"level"`
}

// String returns a printable summary of the logging section.
func (c *LogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Log ---\n")
	b.WriteString(fmt.Sprintf("  level: %s\n", c.Level))
	return b.String()
}

func (c *LogConfig) Validate() error {
	return nil
}
