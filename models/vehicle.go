package models

import "time"

// Vehicle is a transporter's listing.
type Vehicle struct {
	VehicleID     string    `json:"vehicleId" bson:"vehicleId"`
	TransporterID string    `json:"transporterId" bson:"transporterId"`
	VehicleType   string    `json:"vehicleType" bson:"vehicleType"`
	Model         string    `json:"model,omitempty" bson:"model,omitempty"`
	Capacity      float64   `json:"capacity" bson:"capacity"` // tonnes
	RatePerKm     float64   `json:"ratePerKm" bson:"ratePerKm"`
	City          string    `json:"city" bson:"city"` // stored lowercase
	Available     bool      `json:"available" bson:"available"`
	ImageURLs     []string  `json:"imageUrls,omitempty" bson:"imageUrls,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}
