package models

import "time"

// OrderItem is a frozen snapshot of a cart line at checkout time.
// PriceAtOrderTime is never recomputed from the live product.
type OrderItem struct {
	ProductID        string  `json:"productId" bson:"productId"`
	Name             string  `json:"name" bson:"name"`
	Unit             string  `json:"unit" bson:"unit"`
	PriceAtOrderTime float64 `json:"priceAtOrderTime" bson:"priceAtOrderTime"`
	Quantity         int     `json:"quantity" bson:"quantity"`
	Variety          string  `json:"variety,omitempty" bson:"variety,omitempty"`
}

type Address struct {
	Street   string `json:"street" bson:"street"`
	City     string `json:"city" bson:"city"`
	Province string `json:"province" bson:"province"`
}

// Order is a committed purchase transaction. Orders are never deleted, only
// moved to a terminal status.
type Order struct {
	OrderID              string      `json:"orderId" bson:"orderId"`
	BuyerID              string      `json:"buyerId" bson:"buyerId"`
	FarmerID             string      `json:"farmerId" bson:"farmerId"`
	Items                []OrderItem `json:"items" bson:"items"`
	Address              Address     `json:"address" bson:"address"`
	ContactInfo          string      `json:"contactInfo" bson:"contactInfo"`
	DeliveryInstructions string      `json:"deliveryInstructions,omitempty" bson:"deliveryInstructions,omitempty"`
	TotalAmount          float64     `json:"totalAmount" bson:"totalAmount"`
	Status               string      `json:"status" bson:"status"`
	CancelledBy          string      `json:"cancelledBy,omitempty" bson:"cancelledBy,omitempty"`
	CancellationReason   string      `json:"cancellationReason,omitempty" bson:"cancellationReason,omitempty"`
	CreatedAt            time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt" bson:"updatedAt"`
}
