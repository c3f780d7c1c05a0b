package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"locallink/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func nullToPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
func nullToF64(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

const dupEntryErrno = 1062

func isDupEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == dupEntryErrno
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- categories ----

func (r *Repo) CreateCategory(ctx context.Context, c domain.Category) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertCategorySQL, c.Name, c.Description)
	if err != nil {
		if isDupEntry(err) {
			return 0, domain.ErrConflict
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, getCategorySQL, id).
		Scan(&c.ID, &c.Name, &desc, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return domain.Category{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Category{}, err
	}
	c.Description = desc.String
	return c, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]domain.CategoryView, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CategoryView
	for rows.Next() {
		var cv domain.CategoryView
		var desc sql.NullString
		if err := rows.Scan(&cv.ID, &cv.Name, &desc, &cv.CreatedAt, &cv.ListingCount); err != nil {
			return nil, err
		}
		cv.Description = desc.String
		out = append(out, cv)
	}
	return out, rows.Err()
}

// ---- listings ----

func (r *Repo) CreateListing(ctx context.Context, l domain.Listing) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertListingSQL,
		l.ServiceName,
		l.ProviderName,
		l.ContactInfo,
		valStr(l.Email),
		valStr(l.Phone),
		l.Description,
		l.LocationArea,
		valStr(l.PriceRange),
		l.IsAvailable,
		l.CategoryID,
		valF64(l.Lat),
		valF64(l.Lon),
		l.TokenHash,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateListing(ctx context.Context, l domain.Listing) error {
	res, err := r.db.ExecContext(ctx, updateListingSQL,
		l.ServiceName,
		l.ProviderName,
		l.ContactInfo,
		valStr(l.Email),
		valStr(l.Phone),
		l.Description,
		l.LocationArea,
		valStr(l.PriceRange),
		l.IsAvailable,
		l.CategoryID,
		l.ID,
	)
	if err != nil {
		return err
	}
	// RowsAffected is 0 both for a missing row and an unchanged one, so
	// only treat it as not-found when the row truly is gone.
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.TokenHash(ctx, l.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) DeleteListing(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteListingSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) TokenHash(ctx context.Context, id int64) (string, error) {
	var h string
	err := r.db.QueryRowContext(ctx, tokenHashSQL, id).Scan(&h)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	return h, err
}

func (r *Repo) GetListing(ctx context.Context, id int64) (domain.ListingView, error) {
	row := r.db.QueryRowContext(ctx, getListingSQL, id)
	lv, err := scanListing(row)
	if err == sql.ErrNoRows {
		return domain.ListingView{}, domain.ErrNotFound
	}
	return lv, err
}

// filterWhere builds the WHERE clause for a listing query. Substring
// matches rely on the case-insensitive utf8mb4 collation.
func filterWhere(q domain.ListingQuery) (string, []any) {
	var conds []string
	var args []any
	if q.OnlyAvailable {
		conds = append(conds, "l.is_available = 1")
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		fields := []string{"l.service_name LIKE ?", "l.provider_name LIKE ?", "l.description LIKE ?"}
		if !q.SkipLocationSearch {
			fields = append(fields, "l.location_area LIKE ?")
		}
		conds = append(conds, "("+strings.Join(fields, " OR ")+")")
		p := "%" + s + "%"
		for range fields {
			args = append(args, p)
		}
	}
	if q.CategoryID != nil {
		conds = append(conds, "l.category_id = ?")
		args = append(args, *q.CategoryID)
	}
	if loc := strings.TrimSpace(q.Location); loc != "" {
		conds = append(conds, "l.location_area LIKE ?")
		args = append(args, "%"+loc+"%")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *Repo) CountListings(ctx context.Context, q domain.ListingQuery) (int, error) {
	where, args := filterWhere(q)
	var n int
	err := r.db.QueryRowContext(ctx, countListingsPrefix+where, args...).Scan(&n)
	return n, err
}

func (r *Repo) ListListings(ctx context.Context, q domain.ListingQuery, limit, offset int) ([]domain.ListingView, error) {
	where, args := filterWhere(q)
	sqlStr := listingSelect + where + "\nORDER BY l.created_at DESC, l.id DESC\nLIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ListingView
	for rows.Next() {
		lv, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, lv)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanListing(row rowScanner) (domain.ListingView, error) {
	var lv domain.ListingView
	var email, phone, price sql.NullString
	var lat, lon sql.NullFloat64
	if err := row.Scan(
		&lv.ID,
		&lv.ServiceName,
		&lv.ProviderName,
		&lv.ContactInfo,
		&email,
		&phone,
		&lv.Description,
		&lv.LocationArea,
		&price,
		&lv.IsAvailable,
		&lat,
		&lon,
		&lv.Category.ID,
		&lv.Category.Name,
		&lv.AverageRating,
		&lv.ReviewCount,
		&lv.CreatedAt,
		&lv.UpdatedAt,
	); err != nil {
		return domain.ListingView{}, err
	}
	lv.Email = nullToPtr(email)
	lv.Phone = nullToPtr(phone)
	lv.PriceRange = nullToPtr(price)
	lv.Lat = nullToF64(lat)
	lv.Lon = nullToF64(lon)
	return lv, nil
}

// ---- reviews ----

func (r *Repo) CreateReview(ctx context.Context, rv domain.Review) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.ListingID, rv.ReviewerName, rv.Rating, rv.Comment)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) ListReviews(ctx context.Context, listingID int64) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsSQL, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ListingID, &rv.ReviewerName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
