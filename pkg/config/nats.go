package config

import (
	"fmt"
	"strings"
	"time"
)

// NATSConfig holds the broker connection settings used by the retail
// publisher and the notify consumer.
type NATSConfig struct {
	Url     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a printable summary of the NATS section.
func (c *NATSConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- NATS ---\n")
	b.WriteString(fmt.Sprintf("  url: %s\n", c.Url))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *NATSConfig) Validate() error {
	if c.Url == "" {
		return fmt.Errorf("NATS url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("NATS dial timeout %v must be positive", c.Timeout)
	}
	return nil
}
