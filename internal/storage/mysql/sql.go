package mysql

const insertCategorySQL = `
INSERT INTO categories (name, description)
VALUES (?, ?)
`

const getCategorySQL = `
SELECT id, name, description, created_at
FROM categories
WHERE id = ?
`

const listCategoriesSQL = `
SELECT c.id, c.name, c.description, c.created_at, COUNT(l.id)
FROM categories c
LEFT JOIN service_listings l ON l.category_id = c.id AND l.is_available = 1
GROUP BY c.id, c.name, c.description, c.created_at
ORDER BY c.name
`

const insertListingSQL = `
INSERT INTO service_listings
  (service_name, provider_name, contact_info, email, phone, description,
   location_area, price_range, is_available, category_id, lat, lon, owner_token_hash)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateListingSQL = `
UPDATE service_listings SET
  service_name  = ?,
  provider_name = ?,
  contact_info  = ?,
  email         = ?,
  phone         = ?,
  description   = ?,
  location_area = ?,
  price_range   = ?,
  is_available  = ?,
  category_id   = ?,
  updated_at    = CURRENT_TIMESTAMP
WHERE id = ?
`

// Reviews go with the listing via ON DELETE CASCADE.
const deleteListingSQL = `
DELETE FROM service_listings WHERE id = ?
`

const tokenHashSQL = `
SELECT owner_token_hash FROM service_listings WHERE id = ?
`

// listingSelect joins the category and folds the per-listing review
// aggregate in; AVG is rounded to one decimal and defaults to 0 when a
// listing has no reviews.
const listingSelect = `
SELECT
  l.id,
  l.service_name,
  l.provider_name,
  l.contact_info,
  l.email,
  l.phone,
  l.description,
  l.location_area,
  l.price_range,
  l.is_available,
  l.lat,
  l.lon,
  c.id,
  c.name,
  COALESCE(ROUND(r.avg_rating, 1), 0),
  COALESCE(r.cnt, 0),
  l.created_at,
  l.updated_at
FROM service_listings l
JOIN categories c ON c.id = l.category_id
LEFT JOIN (
  SELECT listing_id, AVG(rating) AS avg_rating, COUNT(*) AS cnt
  FROM reviews
  GROUP BY listing_id
) r ON r.listing_id = l.id
`

const getListingSQL = listingSelect + `WHERE l.id = ?
`

const countListingsPrefix = `
SELECT COUNT(*) FROM service_listings l
`

const insertReviewSQL = `
INSERT INTO reviews (listing_id, reviewer_name, rating, comment)
VALUES (?, ?, ?, ?)
`

const listReviewsSQL = `
SELECT id, listing_id, reviewer_name, rating, comment, created_at
FROM reviews
WHERE listing_id = ?
ORDER BY created_at DESC, id DESC
`
