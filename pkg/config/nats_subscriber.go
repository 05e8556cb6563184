package config

import (
	"fmt"
	"strings"
	"time"
)

// SubscriberConfig describes the durable JetStream consumer the notify
// service runs against the sale event stream. Batch and Timeout shape each
// Fetch call, Interval paces the polling loop between fetches, and Workers
// sets how many goroutines pull from the shared consumer.
type SubscriberConfig struct {
	Stream   string        `koanf:"stream"`
	Subject  string        `koanf:"subject"`
	Consumer string        `koanf:"consumer"`
	Batch    int           `koanf:"batch"`
	Timeout  time.Duration `koanf:"timeout"`
	Interval time.Duration `koanf:"interval"`
	Workers  int           `koanf:"workers"`
}

// String returns a printable summary of the subscriber section.
func (c *SubscriberConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- NATS Subscriber ---\n")
	b.WriteString(fmt.Sprintf("  stream: %s\n", c.Stream))
	b.WriteString(fmt.Sprintf("  subject: %s\n", c.Subject))
	b.WriteString(fmt.Sprintf("  consumer: %s\n", c.Consumer))
	b.WriteString(fmt.Sprintf("  batch: %d\n", c.Batch))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	b.WriteString(fmt.Sprintf("  interval: %s\n", c.Interval))
	b.WriteString(fmt.Sprintf("  workers: %d\n", c.Workers))
	return b.String()
}

func (c *SubscriberConfig) Validate() error {
	if c.Stream == "" {
		return fmt.Errorf("subscriber stream is required")
	}
	if c.Subject == "" {
		return fmt.Errorf("subscriber subject is required")
	}
	if c.Consumer == "" {
		return fmt.Errorf("subscriber consumer name is required")
	}
	if c.Batch <= 0 {
		return fmt.Errorf("subscriber batch size %d must be positive", c.Batch)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("subscriber fetch timeout %v must be positive", c.Timeout)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("subscriber poll interval %v must be positive", c.Interval)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("subscriber worker count %d must be positive", c.Workers)
	}
	return nil
}
