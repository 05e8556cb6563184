package config

import (
	"fmt"
	"strings"
	"time"
)

// ShutdownConfig bounds how long a service waits for in-flight work to
// drain after SIGTERM before exiting anyway.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a printable summary of the shutdown section.
func (c *ShutdownConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Shutdown ---\n")
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *ShutdownConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("shutdown timeout %v must be positive", c.Timeout)
	}
	return nil
}
