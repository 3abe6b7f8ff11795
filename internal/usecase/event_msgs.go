package usecase

import "time"

// Published to RabbitMQ via the outbox once checkout commits.
type OrderPlacedMsg struct {
	OrderID    int64     `json:"orderId"`
	CustomerID int64     `json:"customerId"`
	Total      string    `json:"total"`
	PlacedAt   time.Time `json:"placedAt"`
}

// Sent by the payment processor on Kafka.
type PaymentStatusChangedMsg struct {
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"` // "SUCCESS" or "FAILED"
}
