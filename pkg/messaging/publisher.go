package messaging

import (
	"context"
)

const SalesCompletedSubject = "retail.sale.completed"

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
