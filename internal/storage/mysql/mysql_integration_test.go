//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"locallink/internal/domain"
	mysqlrepo "locallink/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string { return &s }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/migrations)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=locallink",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "locallink")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// ---------- the test ----------
func TestRepo_MySQL_ListingsAndReviews(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Arrange categories
	tutoringID, err := repo.CreateCategory(ctx, domain.Category{Name: "Tutoring", Description: "Academic help"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	repairID, err := repo.CreateCategory(ctx, domain.Category{Name: "Home Repair"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := repo.CreateCategory(ctx, domain.Category{Name: "Tutoring"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate category: want ErrConflict, got %v", err)
	}

	cat, err := repo.GetCategory(ctx, tutoringID)
	if err != nil || cat.Name != "Tutoring" || cat.Description != "Academic help" {
		t.Fatalf("GetCategory: %+v, %v", cat, err)
	}
	if _, err := repo.GetCategory(ctx, 999999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing category: want ErrNotFound, got %v", err)
	}

	// Arrange listings
	mk := func(name, provider, desc, loc string, cat int64, available bool) int64 {
		t.Helper()
		id, err := repo.CreateListing(ctx, domain.Listing{
			ServiceName:  name,
			ProviderName: provider,
			ContactInfo:  "contact",
			Description:  desc,
			LocationArea: loc,
			IsAvailable:  available,
			CategoryID:   cat,
			TokenHash:    fmt.Sprintf("%064d", id64(name)),
		})
		if err != nil {
			t.Fatalf("CreateListing %s: %v", name, err)
		}
		return id
	}
	mathID := mk("Math Tutoring", "Sarah Johnson", "Algebra and calculus, xylophone-free.", "Downtown Campus", tutoringID, true)
	pianoID := mk("Piano Lessons", "Carlos Rivera", "Beginner friendly lessons.", "Eastside", tutoringID, true)
	elecID := mk("Electrical Repairs", "Mike's Electric", "Licensed electrician.", "Westside", repairID, true)
	mk("Old Service", "Gone Inc", "No longer offered.", "Downtown Campus", repairID, false)

	// Detail view joins category and starts with a zero rating.
	lv, err := repo.GetListing(ctx, mathID)
	if err != nil {
		t.Fatalf("GetListing: %v", err)
	}
	if lv.Category.ID != tutoringID || lv.Category.Name != "Tutoring" {
		t.Fatalf("category ref: %+v", lv.Category)
	}
	if lv.AverageRating != 0 || lv.ReviewCount != 0 {
		t.Fatalf("fresh listing rating: %+v", lv)
	}
	if lv.Email != nil || lv.PriceRange != nil {
		t.Fatalf("optional fields should be nil: %+v", lv)
	}

	avail := domain.ListingQuery{OnlyAvailable: true}

	// Availability filter hides the retired listing.
	if n, err := repo.CountListings(ctx, avail); err != nil || n != 3 {
		t.Fatalf("CountListings available: %d, %v", n, err)
	}
	if n, err := repo.CountListings(ctx, domain.ListingQuery{}); err != nil || n != 4 {
		t.Fatalf("CountListings all: %d, %v", n, err)
	}

	// Search ORs across service name, provider, description and location.
	for _, tc := range []struct {
		search string
		wantID int64
	}{
		{"piano", pianoID},    // service name
		{"sarah", mathID},     // provider name
		{"xylophone", mathID}, // description only
		{"westside", elecID},  // location area
	} {
		q := avail
		q.Search = tc.search
		got, err := repo.ListListings(ctx, q, 10, 0)
		if err != nil {
			t.Fatalf("ListListings search=%q: %v", tc.search, err)
		}
		if len(got) != 1 || got[0].ID != tc.wantID {
			t.Fatalf("search=%q: got %+v, want single id %d", tc.search, got, tc.wantID)
		}
	}

	// SkipLocationSearch drops location_area from the OR: a term that
	// matches only a location finds nothing.
	q := avail
	q.Search = "westside"
	q.SkipLocationSearch = true
	if n, err := repo.CountListings(ctx, q); err != nil || n != 0 {
		t.Fatalf("narrow search count: %d, %v", n, err)
	}
	q.Search = "sarah" // provider still matches
	if n, err := repo.CountListings(ctx, q); err != nil || n != 1 {
		t.Fatalf("narrow search provider count: %d, %v", n, err)
	}

	// Category and location filters AND with availability.
	q = avail
	q.CategoryID = &tutoringID
	if n, err := repo.CountListings(ctx, q); err != nil || n != 2 {
		t.Fatalf("category filter count: %d, %v", n, err)
	}
	q = avail
	q.Location = "downtown"
	if got, err := repo.ListListings(ctx, q, 10, 0); err != nil || len(got) != 1 || got[0].ID != mathID {
		t.Fatalf("location filter: %+v, %v", got, err)
	}

	// Newest first, stable under pagination.
	page1, err := repo.ListListings(ctx, avail, 2, 0)
	if err != nil || len(page1) != 2 {
		t.Fatalf("page1: %+v, %v", page1, err)
	}
	page2, err := repo.ListListings(ctx, avail, 2, 2)
	if err != nil || len(page2) != 1 {
		t.Fatalf("page2: %+v, %v", page2, err)
	}
	if page1[0].ID != elecID || page1[1].ID != pianoID || page2[0].ID != mathID {
		t.Fatalf("order: %d,%d then %d", page1[0].ID, page1[1].ID, page2[0].ID)
	}

	// Category index counts only available listings.
	cats, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	counts := map[string]int{}
	for _, cv := range cats {
		counts[cv.Name] = cv.ListingCount
	}
	if counts["Tutoring"] != 2 || counts["Home Repair"] != 1 {
		t.Fatalf("category counts: %+v", counts)
	}

	// Reviews feed the derived average, rounded to one decimal.
	for _, rv := range []domain.Review{
		{ListingID: mathID, ReviewerName: "John Smith", Rating: 5, Comment: "Helped with calculus."},
		{ListingID: mathID, ReviewerName: "Lisa Chen", Rating: 4, Comment: "Very patient."},
	} {
		if _, err := repo.CreateReview(ctx, rv); err != nil {
			t.Fatalf("CreateReview: %v", err)
		}
	}
	lv, err = repo.GetListing(ctx, mathID)
	if err != nil {
		t.Fatalf("GetListing after reviews: %v", err)
	}
	if lv.AverageRating != 4.5 || lv.ReviewCount != 2 {
		t.Fatalf("derived rating: avg=%v count=%d", lv.AverageRating, lv.ReviewCount)
	}
	reviews, err := repo.ListReviews(ctx, mathID)
	if err != nil || len(reviews) != 2 {
		t.Fatalf("ListReviews: %+v, %v", reviews, err)
	}
	if reviews[0].ReviewerName != "Lisa Chen" {
		t.Fatalf("reviews should be newest first: %+v", reviews)
	}

	// Update round-trip; token hash survives edits.
	hashBefore, err := repo.TokenHash(ctx, mathID)
	if err != nil || hashBefore == "" {
		t.Fatalf("TokenHash: %q, %v", hashBefore, err)
	}
	upd := domain.Listing{
		ID:           mathID,
		ServiceName:  "Advanced Math Tutoring",
		ProviderName: "Sarah Johnson",
		ContactInfo:  "contact",
		Email:        pstr("sarah@example.com"),
		Description:  "Algebra, calculus and statistics.",
		LocationArea: "Downtown Campus",
		IsAvailable:  true,
		CategoryID:   tutoringID,
	}
	if err := repo.UpdateListing(ctx, upd); err != nil {
		t.Fatalf("UpdateListing: %v", err)
	}
	// A no-op save must not be mistaken for a missing row.
	if err := repo.UpdateListing(ctx, upd); err != nil {
		t.Fatalf("idempotent UpdateListing: %v", err)
	}
	lv, err = repo.GetListing(ctx, mathID)
	if err != nil || lv.ServiceName != "Advanced Math Tutoring" || lv.Email == nil || *lv.Email != "sarah@example.com" {
		t.Fatalf("updated view: %+v, %v", lv, err)
	}
	if h, err := repo.TokenHash(ctx, mathID); err != nil || h != hashBefore {
		t.Fatalf("token hash changed on edit: %q -> %q, %v", hashBefore, h, err)
	}
	upd.ID = 999999
	if err := repo.UpdateListing(ctx, upd); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("update missing: want ErrNotFound, got %v", err)
	}

	// Delete cascades to reviews.
	if err := repo.DeleteListing(ctx, mathID); err != nil {
		t.Fatalf("DeleteListing: %v", err)
	}
	if err := repo.DeleteListing(ctx, mathID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
	if _, err := repo.GetListing(ctx, mathID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deleted listing still readable: %v", err)
	}
	if reviews, err := repo.ListReviews(ctx, mathID); err != nil || len(reviews) != 0 {
		t.Fatalf("reviews should cascade: %+v, %v", reviews, err)
	}
	if _, err := repo.TokenHash(ctx, mathID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("token hash of deleted listing: %v", err)
	}
}

// id64 derives a deterministic fake token hash input per listing name.
func id64(s string) int64 {
	var h int64
	for _, c := range s {
		h = h*31 + int64(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
