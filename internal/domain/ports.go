package domain

import (
	"context"
	"time"
)

// PageSize is the fixed index page size.
const PageSize = 12

type ListingRepository interface {
	// Categories
	CreateCategory(ctx context.Context, c Category) (int64, error)
	GetCategory(ctx context.Context, id int64) (Category, error)
	ListCategories(ctx context.Context) ([]CategoryView, error)

	// Listings
	CreateListing(ctx context.Context, l Listing) (int64, error)
	UpdateListing(ctx context.Context, l Listing) error
	DeleteListing(ctx context.Context, id int64) error
	GetListing(ctx context.Context, id int64) (ListingView, error)
	TokenHash(ctx context.Context, id int64) (string, error)
	CountListings(ctx context.Context, q ListingQuery) (int, error)
	ListListings(ctx context.Context, q ListingQuery, limit, offset int) ([]ListingView, error)

	// Reviews
	CreateReview(ctx context.Context, r Review) (int64, error)
	ListReviews(ctx context.Context, listingID int64) ([]Review, error)
}

// SessionStore keeps the per-session listing->token ownership map.
type SessionStore interface {
	OwnerToken(ctx context.Context, sessionID string, listingID int64) (string, bool, error)
	PutOwnerToken(ctx context.Context, sessionID string, listingID int64, token string) error
	DeleteOwnerToken(ctx context.Context, sessionID string, listingID int64) error
}

// Read models & queries

type CategoryRef struct {
	ID   int64
	Name string
}

type CategoryView struct {
	Category
	ListingCount int
}

// ListingView is the read model for index and detail pages.
// AverageRating and ReviewCount are derived on read, never stored.
type ListingView struct {
	ID            int64
	ServiceName   string
	ProviderName  string
	ContactInfo   string
	Email         *string
	Phone         *string
	Description   string
	LocationArea  string
	PriceRange    *string
	IsAvailable   bool
	Category      CategoryRef
	Lat, Lon      *float64
	AverageRating float64
	ReviewCount   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ListingQuery filters combine with AND; Search is ORed across
// service name, provider name, description and location area.
// SkipLocationSearch narrows Search to the first three fields; the
// category-scoped index does not search locations.
type ListingQuery struct {
	Search             string
	SkipLocationSearch bool
	CategoryID         *int64
	Location           string
	OnlyAvailable      bool
}

type ListingPage struct {
	Items      []ListingView
	Page       int
	TotalPages int
	TotalCount int
	HasNext    bool
	HasPrev    bool
}
