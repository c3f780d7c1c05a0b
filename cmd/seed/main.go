package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"locallink/internal/adapters/observability"
	"locallink/internal/app"
	"locallink/internal/domain"
	"locallink/internal/shared"
	mysqlrepo "locallink/internal/storage/mysql"
)

func main() {
	withCoords := flag.Bool("coords", false, "also populate lat/lon on seeded listings")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.SeedWorkers).
		Bool("coords", *withCoords).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	// Categories first to satisfy the FK; creation goes through the
	// same repo path the API uses.
	catIDs := seedCategoryIDs(ctx, repo)

	// Listings fan out under a bounded worker count.
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	listingIDs := make(map[string]int64, len(seedListings))

	for i, sl := range seedListings {
		catID, ok := catIDs[sl.Category]
		if !ok {
			log.Warn().Str("category", sl.Category).Msg("seed listing references unknown category")
			continue
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(i int, sl seedListing, catID int64) {
			defer wg.Done()
			defer sem.Release(1)

			token := uuid.NewString()
			l := domain.Listing{
				ServiceName:  sl.ServiceName,
				ProviderName: sl.ProviderName,
				ContactInfo:  sl.ContactInfo,
				Email:        optStr(sl.Email),
				Phone:        optStr(sl.Phone),
				Description:  sl.Description,
				LocationArea: sl.LocationArea,
				PriceRange:   optStr(sl.PriceRange),
				IsAvailable:  true,
				CategoryID:   catID,
				TokenHash:    app.HashToken(token),
			}
			if *withCoords {
				c := seedCoords[i%len(seedCoords)]
				l.Lat, l.Lon = &c.Lat, &c.Lng
			}

			id, err := repo.CreateListing(ctx, l)
			if err != nil {
				log.Warn().Err(err).Str("service", sl.ServiceName).Msg("seed listing failed")
				return
			}
			mu.Lock()
			listingIDs[sl.ServiceName] = id
			mu.Unlock()
			// the plaintext token exists only in this log line
			log.Info().Int64("id", id).Str("service", sl.ServiceName).Str("owner_token", token).Msg("seeded listing")
		}(i, sl, catID)
	}
	wg.Wait()

	for _, sr := range seedReviews {
		id, ok := listingIDs[sr.ServiceName]
		if !ok {
			log.Warn().Str("service", sr.ServiceName).Msg("seed review references missing listing")
			continue
		}
		if _, err := repo.CreateReview(ctx, domain.Review{
			ListingID:    id,
			ReviewerName: sr.ReviewerName,
			Rating:       sr.Rating,
			Comment:      sr.Comment,
		}); err != nil {
			log.Warn().Err(err).Str("reviewer", sr.ReviewerName).Msg("seed review failed")
			continue
		}
		log.Info().Int64("listing_id", id).Str("reviewer", sr.ReviewerName).Msg("seeded review")
	}

	log.Info().Msg("seeding completed")
}

// seedCategoryIDs upserts the sample categories, reusing rows that
// already exist from a previous run.
func seedCategoryIDs(ctx context.Context, repo *mysqlrepo.Repo) map[string]int64 {
	ids := make(map[string]int64, len(seedCategories))
	var existing map[string]int64

	for _, sc := range seedCategories {
		id, err := repo.CreateCategory(ctx, domain.Category{Name: sc.Name, Description: sc.Description})
		if err == nil {
			ids[sc.Name] = id
			log.Info().Int64("id", id).Str("name", sc.Name).Msg("seeded category")
			continue
		}
		if !errors.Is(err, domain.ErrConflict) {
			log.Fatal().Err(err).Str("name", sc.Name).Msg("seed category failed")
		}
		if existing == nil {
			existing = map[string]int64{}
			cats, err := repo.ListCategories(ctx)
			if err != nil {
				log.Fatal().Err(err).Msg("list categories failed")
			}
			for _, c := range cats {
				existing[c.Name] = c.ID
			}
		}
		ids[sc.Name] = existing[sc.Name]
	}
	return ids
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
