package domain

import "time"

type Listing struct {
	ID           int64
	ServiceName  string
	ProviderName string
	ContactInfo  string
	Email        *string
	Phone        *string
	Description  string
	LocationArea string
	PriceRange   *string
	IsAvailable  bool
	CategoryID   int64
	Lat, Lon     *float64 // populated by one seed variant only; never queried
	TokenHash    string   // SHA-256 hex of the owner capability token
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
