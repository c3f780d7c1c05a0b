package app

import (
	"context"

	"locallink/internal/domain"
)

type QueryService struct {
	repo domain.ListingRepository
}

func NewQueryService(r domain.ListingRepository) *QueryService {
	return &QueryService{repo: r}
}

// ListListings returns one index page of available listings matching q.
// The page number clamps to the nearest valid page instead of erroring;
// an empty result set is a valid single empty page.
func (s *QueryService) ListListings(ctx context.Context, q domain.ListingQuery, page int) (domain.ListingPage, error) {
	q.OnlyAvailable = true

	total, err := s.repo.CountListings(ctx, q)
	if err != nil {
		return domain.ListingPage{}, err
	}

	totalPages := (total + domain.PageSize - 1) / domain.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	items, err := s.repo.ListListings(ctx, q, domain.PageSize, (page-1)*domain.PageSize)
	if err != nil {
		return domain.ListingPage{}, err
	}
	return domain.ListingPage{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

// GetListing returns the detail view plus its reviews, newest first.
func (s *QueryService) GetListing(ctx context.Context, id int64) (domain.ListingView, []domain.Review, error) {
	lv, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return domain.ListingView{}, nil, err
	}
	reviews, err := s.repo.ListReviews(ctx, id)
	if err != nil {
		return domain.ListingView{}, nil, err
	}
	return lv, reviews, nil
}

// ListCategoryListings is the category-scoped index. A nonexistent
// category is ErrNotFound; the page itself follows ListListings rules,
// except that Search does not cover location_area here.
func (s *QueryService) ListCategoryListings(ctx context.Context, categoryID int64, search string, page int) (domain.Category, domain.ListingPage, error) {
	cat, err := s.repo.GetCategory(ctx, categoryID)
	if err != nil {
		return domain.Category{}, domain.ListingPage{}, err
	}
	q := domain.ListingQuery{Search: search, SkipLocationSearch: true, CategoryID: &categoryID}
	pg, err := s.ListListings(ctx, q, page)
	if err != nil {
		return domain.Category{}, domain.ListingPage{}, err
	}
	return cat, pg, nil
}

func (s *QueryService) ListCategories(ctx context.Context) ([]domain.CategoryView, error) {
	return s.repo.ListCategories(ctx)
}

func (s *QueryService) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	return s.repo.GetCategory(ctx, id)
}
