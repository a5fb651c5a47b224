package models

import "time"

// Product is a farmer's produce listing.
type Product struct {
	ProductID   string    `json:"productId" bson:"productId"`
	FarmerID    string    `json:"farmerId" bson:"farmerId"`
	FarmerName  string    `json:"farmerName,omitempty" bson:"farmerName,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Category    string    `json:"category" bson:"category"`
	Unit        string    `json:"unit" bson:"unit"`
	Price       float64   `json:"price" bson:"price"`
	Stock       float64   `json:"stock" bson:"stock"`
	Varieties   []string  `json:"varieties,omitempty" bson:"varieties,omitempty"`
	MinOrderQty int       `json:"minOrderQty" bson:"minOrderQty"`
	MaxOrderQty int       `json:"maxOrderQty,omitempty" bson:"maxOrderQty,omitempty"`
	City        string    `json:"city" bson:"city"` // stored lowercase
	ImageURLs   []string  `json:"imageUrls,omitempty" bson:"imageUrls,omitempty"`
	Featured    bool      `json:"featured" bson:"featured"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
