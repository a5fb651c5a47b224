package models

import "time"

// DefaultMaxOrderQty applies when a product carries no per-order maximum.
const DefaultMaxOrderQty = 10

// CartItem represents a single line in a buyer's cart. All lines in one cart
// reference products from exactly one farmer.
type CartItem struct {
	ItemID          string    `json:"itemId" bson:"itemId"`
	UserID          string    `json:"userId" bson:"userId"`
	ProductID       string    `json:"productId" bson:"productId"`
	ProductName     string    `json:"productName" bson:"productName"`
	Unit            string    `json:"unit" bson:"unit"`
	Price           float64   `json:"price" bson:"price"` // unit price at add time
	Quantity        int       `json:"quantity" bson:"quantity"`
	SelectedVariety string    `json:"selectedVariety,omitempty" bson:"selectedVariety,omitempty"`
	MaxOrderQty     int       `json:"maxOrderQty" bson:"maxOrderQty"`
	FarmerID        string    `json:"farmerId" bson:"farmerId"`
	AddedAt         time.Time `json:"addedAt" bson:"addedAt"`
}
