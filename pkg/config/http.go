package config

import (
	"fmt"
	"time"
)

// HTTPConfig holds the listener settings shared by the retail and fishery
// REST servers.
type HTTPConfig struct {
	Port           int `koanf:"port"`
	MaxHeaderBytes int `koanf:"maxHeaderBytes"`
	Timeout        struct {
		Read       time.Duration `koanf:"read"`
		Write      time.Duration `koanf:"write"`
		Idle       time.Duration `koanf:"idle"`
		ReadHeader time.Duration `koanf:"readHeader"`
	} `koanf:"timeout"`
}

func (c *HTTPConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("HTTP port %d is out of range", c.Port)
	}
	if c.Timeout.Read <= 0 {
		return fmt.Errorf("HTTP read timeout %v must be positive", c.Timeout.Read)
	}
	if c.Timeout.Write <= 0 {
		return fmt.Errorf("HTTP write timeout %v must be positive", c.Timeout.Write)
	}
	if c.Timeout.Idle <= 0 {
		return fmt.Errorf("HTTP idle timeout %v must be positive", c.Timeout.Idle)
	}
	if c.Timeout.ReadHeader <= 0 {
		return fmt.Errorf("HTTP read header timeout %v must be positive", c.Timeout.ReadHeader)
	}
	return nil
}
