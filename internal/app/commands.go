package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"locallink/internal/domain"
)

// ErrUnknownCategory marks a create/update that references a category
// that does not exist; the HTTP layer reports it as a field error.
var ErrUnknownCategory = errors.New("unknown category")

// ListingInput is a validated create/update payload. Validation of
// required fields happens at the HTTP boundary; services only re-check
// referential facts (the category must exist).
type ListingInput struct {
	ServiceName  string
	ProviderName string
	ContactInfo  string
	Email        *string
	Phone        *string
	Description  string
	LocationArea string
	PriceRange   *string
	CategoryID   int64
	IsAvailable  *bool // nil means keep default (true on create)
}

type ReviewInput struct {
	ReviewerName string
	Rating       int
	Comment      string
}

type ListingService struct {
	repo     domain.ListingRepository
	sessions domain.SessionStore
	logger   zerolog.Logger
}

func NewListingService(r domain.ListingRepository, s domain.SessionStore, logger zerolog.Logger) *ListingService {
	return &ListingService{repo: r, sessions: s, logger: logger.With().Str("service", "listing").Logger()}
}

// HashToken is the stored form of an owner capability token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Create persists the listing and mints its owner capability: a uuid4
// token whose SHA-256 lands on the row while the plaintext goes into
// the caller's session map and is returned once to the caller.
func (s *ListingService) Create(ctx context.Context, sessionID string, in ListingInput) (domain.ListingView, string, error) {
	if _, err := s.repo.GetCategory(ctx, in.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ListingView{}, "", ErrUnknownCategory
		}
		return domain.ListingView{}, "", err
	}

	token := uuid.NewString()
	l := domain.Listing{
		ServiceName:  in.ServiceName,
		ProviderName: in.ProviderName,
		ContactInfo:  in.ContactInfo,
		Email:        in.Email,
		Phone:        in.Phone,
		Description:  in.Description,
		LocationArea: in.LocationArea,
		PriceRange:   in.PriceRange,
		IsAvailable:  true,
		CategoryID:   in.CategoryID,
		TokenHash:    HashToken(token),
	}
	if in.IsAvailable != nil {
		l.IsAvailable = *in.IsAvailable
	}

	id, err := s.repo.CreateListing(ctx, l)
	if err != nil {
		return domain.ListingView{}, "", fmt.Errorf("create listing: %w", err)
	}

	// The token is also in the response body, so a session-store hiccup
	// must not fail the create.
	if err := s.sessions.PutOwnerToken(ctx, sessionID, id, token); err != nil {
		s.logger.Warn().Err(err).Int64("listing_id", id).Msg("store owner token failed")
	}

	lv, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return domain.ListingView{}, "", err
	}
	s.logger.Info().Int64("listing_id", id).Str("service_name", l.ServiceName).Msg("listing created")
	return lv, token, nil
}

// authorize resolves the capability token — an explicitly presented one
// wins, otherwise the session's mapping — and verifies its hash against
// the listing row. Missing listing is ErrNotFound; anything short of a
// hash match is ErrNotOwner.
func (s *ListingService) authorize(ctx context.Context, sessionID, presented string, listingID int64) error {
	stored, err := s.repo.TokenHash(ctx, listingID)
	if err != nil {
		return err
	}
	token := presented
	if token == "" {
		t, ok, err := s.sessions.OwnerToken(ctx, sessionID, listingID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotOwner
		}
		token = t
	}
	if HashToken(token) != stored {
		return domain.ErrNotOwner
	}
	return nil
}

// IsOwner reports whether the caller could manage the listing. Used by
// detail and delete-confirmation views; never errors to the caller.
func (s *ListingService) IsOwner(ctx context.Context, sessionID, presented string, listingID int64) bool {
	return s.authorize(ctx, sessionID, presented, listingID) == nil
}

func (s *ListingService) Update(ctx context.Context, sessionID, presented string, id int64, in ListingInput) (domain.ListingView, error) {
	if err := s.authorize(ctx, sessionID, presented, id); err != nil {
		return domain.ListingView{}, err
	}
	if _, err := s.repo.GetCategory(ctx, in.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ListingView{}, ErrUnknownCategory
		}
		return domain.ListingView{}, err
	}

	current, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return domain.ListingView{}, err
	}
	l := domain.Listing{
		ID:           id,
		ServiceName:  in.ServiceName,
		ProviderName: in.ProviderName,
		ContactInfo:  in.ContactInfo,
		Email:        in.Email,
		Phone:        in.Phone,
		Description:  in.Description,
		LocationArea: in.LocationArea,
		PriceRange:   in.PriceRange,
		IsAvailable:  current.IsAvailable,
		CategoryID:   in.CategoryID,
	}
	if in.IsAvailable != nil {
		l.IsAvailable = *in.IsAvailable
	}
	if err := s.repo.UpdateListing(ctx, l); err != nil {
		return domain.ListingView{}, fmt.Errorf("update listing %d: %w", id, err)
	}
	s.logger.Info().Int64("listing_id", id).Msg("listing updated")
	return s.repo.GetListing(ctx, id)
}

// Delete removes the listing (reviews cascade at the storage level) and
// drops the caller's session mapping for it.
func (s *ListingService) Delete(ctx context.Context, sessionID, presented string, id int64) error {
	if err := s.authorize(ctx, sessionID, presented, id); err != nil {
		return err
	}
	if err := s.repo.DeleteListing(ctx, id); err != nil {
		return fmt.Errorf("delete listing %d: %w", id, err)
	}
	if err := s.sessions.DeleteOwnerToken(ctx, sessionID, id); err != nil {
		s.logger.Warn().Err(err).Int64("listing_id", id).Msg("drop owner token failed")
	}
	s.logger.Info().Int64("listing_id", id).Msg("listing deleted")
	return nil
}

type ReviewService struct {
	repo   domain.ListingRepository
	logger zerolog.Logger
}

func NewReviewService(r domain.ListingRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{repo: r, logger: logger.With().Str("service", "review").Logger()}
}

// Submit attaches a validated review to an existing listing.
func (s *ReviewService) Submit(ctx context.Context, listingID int64, in ReviewInput) (domain.Review, error) {
	if _, err := s.repo.TokenHash(ctx, listingID); err != nil { // existence probe
		return domain.Review{}, err
	}
	rv := domain.Review{
		ListingID:    listingID,
		ReviewerName: in.ReviewerName,
		Rating:       in.Rating,
		Comment:      in.Comment,
	}
	id, err := s.repo.CreateReview(ctx, rv)
	if err != nil {
		return domain.Review{}, fmt.Errorf("create review: %w", err)
	}
	rv.ID = id
	s.logger.Info().Int64("listing_id", listingID).Int("rating", in.Rating).Msg("review submitted")
	return rv, nil
}

// CategoryService writes categories through the same repo path the
// seeder uses; there is no bootstrap special-casing in handlers.
type CategoryService struct {
	repo   domain.ListingRepository
	logger zerolog.Logger
}

func NewCategoryService(r domain.ListingRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: r, logger: logger.With().Str("service", "category").Logger()}
}

func (s *CategoryService) Create(ctx context.Context, name, description string) (domain.Category, error) {
	id, err := s.repo.CreateCategory(ctx, domain.Category{Name: name, Description: description})
	if err != nil {
		return domain.Category{}, err
	}
	s.logger.Info().Int64("category_id", id).Str("name", name).Msg("category created")
	return s.repo.GetCategory(ctx, id)
}
