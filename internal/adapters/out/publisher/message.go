// Package publisher delivers outbox notifications to technicians.
package publisher

import (
	"time"

	"fieldservice/internal/core/domain/model/notification"
)

// Message is the JSON payload published for one notification.
type Message struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	OrderID   int64     `json:"orderId"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewMessage(n *notification.Notification) Message {
	return Message{
		ID:        n.ID().String(),
		UserID:    n.UserID(),
		OrderID:   n.OrderID(),
		Kind:      string(n.Kind()),
		Title:     n.Title(),
		Message:   n.Message(),
		CreatedAt: n.CreatedAt(),
	}
}
