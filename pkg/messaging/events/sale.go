package events

import (
	"encoding/json"
	"time"

	"github.com/finwatch/finwatch/pkg/messaging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleCompletedEvent is published after a sale transaction commits.
type SaleCompletedEvent struct {
	SaleID      uuid.UUID       `json:"sale_id"`
	StoreID     uuid.UUID       `json:"store_id"`
	EmployeeID  uuid.UUID       `json:"employee_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	SoldAt      time.Time       `json:"sold_at"`
}

func (e SaleCompletedEvent) Subject() string {
	return messaging.SalesCompletedSubject
}

func (e SaleCompletedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
