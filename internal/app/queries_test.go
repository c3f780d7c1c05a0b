package app_test

import (
	"context"
	"errors"
	"testing"

	"locallink/internal/app"
	"locallink/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	categories map[int64]domain.Category
	listings   map[int64]domain.ListingView
	reviews    map[int64][]domain.Review
	tokens     map[int64]string
	nextID     int64

	total      int
	pageItems  []domain.ListingView
	lastLimit  int
	lastOffset int
	lastQuery  domain.ListingQuery
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: map[int64]domain.Category{},
		listings:   map[int64]domain.ListingView{},
		reviews:    map[int64][]domain.Review{},
		tokens:     map[int64]string{},
		nextID:     1,
	}
}

func (f *fakeRepo) CreateCategory(ctx context.Context, c domain.Category) (int64, error) {
	for _, ex := range f.categories {
		if ex.Name == c.Name {
			return 0, domain.ErrConflict
		}
	}
	c.ID = f.nextID
	f.nextID++
	f.categories[c.ID] = c
	return c.ID, nil
}

func (f *fakeRepo) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return domain.Category{}, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) ListCategories(ctx context.Context) ([]domain.CategoryView, error) {
	var out []domain.CategoryView
	for _, c := range f.categories {
		out = append(out, domain.CategoryView{Category: c})
	}
	return out, nil
}

func (f *fakeRepo) CreateListing(ctx context.Context, l domain.Listing) (int64, error) {
	l.ID = f.nextID
	f.nextID++
	f.tokens[l.ID] = l.TokenHash
	f.listings[l.ID] = domain.ListingView{
		ID:           l.ID,
		ServiceName:  l.ServiceName,
		ProviderName: l.ProviderName,
		ContactInfo:  l.ContactInfo,
		Description:  l.Description,
		LocationArea: l.LocationArea,
		IsAvailable:  l.IsAvailable,
		Category:     domain.CategoryRef{ID: l.CategoryID},
	}
	return l.ID, nil
}

func (f *fakeRepo) UpdateListing(ctx context.Context, l domain.Listing) error {
	lv, ok := f.listings[l.ID]
	if !ok {
		return domain.ErrNotFound
	}
	lv.ServiceName = l.ServiceName
	lv.ProviderName = l.ProviderName
	lv.ContactInfo = l.ContactInfo
	lv.Description = l.Description
	lv.LocationArea = l.LocationArea
	lv.IsAvailable = l.IsAvailable
	lv.Category = domain.CategoryRef{ID: l.CategoryID}
	f.listings[l.ID] = lv
	return nil
}

func (f *fakeRepo) DeleteListing(ctx context.Context, id int64) error {
	if _, ok := f.listings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.listings, id)
	delete(f.tokens, id)
	delete(f.reviews, id)
	return nil
}

func (f *fakeRepo) GetListing(ctx context.Context, id int64) (domain.ListingView, error) {
	lv, ok := f.listings[id]
	if !ok {
		return domain.ListingView{}, domain.ErrNotFound
	}
	lv.ReviewCount = len(f.reviews[id])
	return lv, nil
}

func (f *fakeRepo) TokenHash(ctx context.Context, id int64) (string, error) {
	h, ok := f.tokens[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return h, nil
}

func (f *fakeRepo) CountListings(ctx context.Context, q domain.ListingQuery) (int, error) {
	f.lastQuery = q
	return f.total, nil
}

func (f *fakeRepo) ListListings(ctx context.Context, q domain.ListingQuery, limit, offset int) ([]domain.ListingView, error) {
	f.lastQuery = q
	f.lastLimit = limit
	f.lastOffset = offset
	return f.pageItems, nil
}

func (f *fakeRepo) CreateReview(ctx context.Context, r domain.Review) (int64, error) {
	r.ID = f.nextID
	f.nextID++
	f.reviews[r.ListingID] = append(f.reviews[r.ListingID], r)
	return r.ID, nil
}

func (f *fakeRepo) ListReviews(ctx context.Context, listingID int64) ([]domain.Review, error) {
	return f.reviews[listingID], nil
}

// ---- tests ----

func TestListListings_PageClamping(t *testing.T) {
	repo := newFakeRepo()
	repo.total = 30 // 3 pages of 12
	q := app.NewQueryService(repo)

	cases := []struct {
		name       string
		page       int
		wantPage   int
		wantOffset int
	}{
		{"first page", 1, 1, 0},
		{"middle page", 2, 2, 12},
		{"last page", 3, 3, 24},
		{"beyond last clamps to last", 99, 3, 24},
		{"zero clamps to first", 0, 1, 0},
		{"negative clamps to first", -4, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pg, err := q.ListListings(context.Background(), domain.ListingQuery{}, tc.page)
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			if pg.Page != tc.wantPage {
				t.Fatalf("page = %d, want %d", pg.Page, tc.wantPage)
			}
			if repo.lastOffset != tc.wantOffset {
				t.Fatalf("offset = %d, want %d", repo.lastOffset, tc.wantOffset)
			}
			if repo.lastLimit != domain.PageSize {
				t.Fatalf("limit = %d, want %d", repo.lastLimit, domain.PageSize)
			}
		})
	}
}

func TestListListings_EmptyIsValidSinglePage(t *testing.T) {
	repo := newFakeRepo()
	repo.total = 0
	q := app.NewQueryService(repo)

	pg, err := q.ListListings(context.Background(), domain.ListingQuery{}, 7)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if pg.Page != 1 || pg.TotalPages != 1 || pg.TotalCount != 0 {
		t.Fatalf("unexpected page: %+v", pg)
	}
	if pg.HasNext || pg.HasPrev {
		t.Fatalf("empty result must have no neighbours: %+v", pg)
	}
}

func TestListListings_ForcesAvailabilityFilter(t *testing.T) {
	repo := newFakeRepo()
	q := app.NewQueryService(repo)

	if _, err := q.ListListings(context.Background(), domain.ListingQuery{Search: "tutor"}, 1); err != nil {
		t.Fatalf("err: %v", err)
	}
	if !repo.lastQuery.OnlyAvailable {
		t.Fatal("index query must be restricted to available listings")
	}
	if repo.lastQuery.Search != "tutor" {
		t.Fatalf("search filter lost: %+v", repo.lastQuery)
	}
	if repo.lastQuery.SkipLocationSearch {
		t.Fatal("index search must cover location_area")
	}
}

func TestListCategoryListings_UnknownCategory(t *testing.T) {
	repo := newFakeRepo()
	q := app.NewQueryService(repo)

	_, _, err := q.ListCategoryListings(context.Background(), 404, "", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListCategoryListings_ScopesQuery(t *testing.T) {
	repo := newFakeRepo()
	catID, _ := repo.CreateCategory(context.Background(), domain.Category{Name: "Tutoring"})
	repo.total = 1
	q := app.NewQueryService(repo)

	cat, _, err := q.ListCategoryListings(context.Background(), catID, "math", 1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if cat.Name != "Tutoring" {
		t.Fatalf("category = %+v", cat)
	}
	if repo.lastQuery.CategoryID == nil || *repo.lastQuery.CategoryID != catID {
		t.Fatalf("category filter not applied: %+v", repo.lastQuery)
	}
	if !repo.lastQuery.SkipLocationSearch {
		t.Fatal("category-scoped search must not cover location_area")
	}
}
