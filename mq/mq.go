package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"agromandi/rdx"
)

// OrderChannel is the Redis pub/sub channel carrying order lifecycle events.
const OrderChannel = "order-events"

const (
	EventOrderCreated       = "order-created"
	EventOrderStatusChanged = "order-status-changed"
)

// OrderEvent is published on every order creation and status transition and
// relayed to connected dashboards by the live feed.
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"orderId"`
	FarmerID    string    `json:"farmerId"`
	BuyerID     string    `json:"buyerId"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"totalAmount"`
	At          time.Time `json:"at"`
}

// Emit publishes an order event to Redis. Delivery is best-effort; a failed
// publish never fails the triggering request.
func Emit(ctx context.Context, event OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("mq: failed to marshal event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, OrderChannel, data).Err(); err != nil {
		log.Printf("mq: failed to publish %s for order %s: %v", event.Type, event.OrderID, err)
	}
}
