package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"locallink/internal/adapters/observability"
	"locallink/internal/app"
	"locallink/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	L *app.ListingService
	R *app.ReviewService
	C *app.CategoryService
}

type problem struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// MountHandlers wires the public routes. Mutating routes additionally
// pass through writeLimit.
func (s *Server) MountHandlers(h *Handlers, writeLimit func(http.Handler) http.Handler) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/listings", h.listListings)
	s.mux.Get("/v1/listings/{id}", h.getListing)
	s.mux.Get("/v1/listings/{id}/confirm-delete", h.confirmDelete)
	s.mux.Get("/v1/categories", h.listCategories)
	s.mux.Get("/v1/categories/{id}", h.getCategory)
	s.mux.Get("/v1/categories/{id}/listings", h.categoryListings)

	s.mux.Group(func(r chi.Router) {
		r.Use(writeLimit)
		r.Post("/v1/listings", h.createListing)
		r.Put("/v1/listings/{id}", h.updateListing)
		r.Delete("/v1/listings/{id}", h.deleteListing)
		r.Post("/v1/listings/{id}/reviews", h.submitReview)
		r.Post("/v1/categories", h.createCategory)
	})
}

// ---- response writing ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeValidation reports per-field errors; nothing was persisted.
func writeValidation(w http.ResponseWriter, errs map[string]string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	p := problem{
		Type:   "about:blank",
		Title:  "Validation Failed",
		Status: http.StatusUnprocessableEntity,
		Errors: errs,
	}
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON validation response failed")
	}
}

// writeRefusal is the ownership-failure path: a user-visible message
// plus a Location pointing back at the listing detail, never a 5xx.
func writeRefusal(w http.ResponseWriter, listingID int64, detail string) {
	w.Header().Set("Location", detailPath(listingID))
	writeProblem(w, http.StatusForbidden, "Not Your Listing", detail)
}

func detailPath(id int64) string { return fmt.Sprintf("/v1/listings/%d", id) }

// ---- JSON views ----

type categoryJSON struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ListingCount *int      `json:"listing_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type listingJSON struct {
	ID            int64       `json:"id"`
	ServiceName   string      `json:"service_name"`
	ProviderName  string      `json:"provider_name"`
	ContactInfo   string      `json:"contact_info"`
	Email         *string     `json:"email,omitempty"`
	Phone         *string     `json:"phone,omitempty"`
	Description   string      `json:"description"`
	LocationArea  string      `json:"location_area"`
	PriceRange    *string     `json:"price_range,omitempty"`
	IsAvailable   bool        `json:"is_available"`
	Category      categoryRef `json:"category"`
	Lat           *float64    `json:"lat,omitempty"`
	Lon           *float64    `json:"lon,omitempty"`
	AverageRating float64     `json:"average_rating"`
	ReviewCount   int         `json:"review_count"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type categoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type reviewJSON struct {
	ID           int64     `json:"id"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

type pageJSON struct {
	Items      []listingJSON `json:"items"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	TotalCount int           `json:"total_count"`
	HasNext    bool          `json:"has_next"`
	HasPrev    bool          `json:"has_prev"`
}

func toListingJSON(lv domain.ListingView) listingJSON {
	return listingJSON{
		ID:            lv.ID,
		ServiceName:   lv.ServiceName,
		ProviderName:  lv.ProviderName,
		ContactInfo:   lv.ContactInfo,
		Email:         lv.Email,
		Phone:         lv.Phone,
		Description:   lv.Description,
		LocationArea:  lv.LocationArea,
		PriceRange:    lv.PriceRange,
		IsAvailable:   lv.IsAvailable,
		Category:      categoryRef{ID: lv.Category.ID, Name: lv.Category.Name},
		Lat:           lv.Lat,
		Lon:           lv.Lon,
		AverageRating: lv.AverageRating,
		ReviewCount:   lv.ReviewCount,
		CreatedAt:     lv.CreatedAt,
		UpdatedAt:     lv.UpdatedAt,
	}
}

func toPageJSON(pg domain.ListingPage) pageJSON {
	items := make([]listingJSON, 0, len(pg.Items))
	for _, lv := range pg.Items {
		items = append(items, toListingJSON(lv))
	}
	return pageJSON{
		Items:      items,
		Page:       pg.Page,
		TotalPages: pg.TotalPages,
		TotalCount: pg.TotalCount,
		HasNext:    pg.HasNext,
		HasPrev:    pg.HasPrev,
	}
}

func toReviewsJSON(rs []domain.Review) []reviewJSON {
	out := make([]reviewJSON, 0, len(rs))
	for _, rv := range rs {
		out = append(out, reviewJSON{
			ID:           rv.ID,
			ReviewerName: rv.ReviewerName,
			Rating:       rv.Rating,
			Comment:      rv.Comment,
			CreatedAt:    rv.CreatedAt,
		})
	}
	return out
}

// ---- request parsing ----

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// pageParam follows the index contract: anything unparsable counts as
// page 1; range clamping happens in the query service.
func pageParam(r *http.Request) int {
	p, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

func ownerToken(r *http.Request, form *ListingForm) string {
	if t := strings.TrimSpace(r.Header.Get("X-Owner-Token")); t != "" {
		return t
	}
	if form != nil {
		return strings.TrimSpace(form.OwnerToken)
	}
	return ""
}

// ---- listings ----

func (h *Handlers) listListings(w http.ResponseWriter, r *http.Request) {
	q := domain.ListingQuery{
		Search:   r.URL.Query().Get("search"),
		Location: r.URL.Query().Get("location"),
	}
	if cs := r.URL.Query().Get("category"); cs != "" {
		cid, err := strconv.ParseInt(cs, 10, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid Category", "category must be a number")
			return
		}
		q.CategoryID = &cid
	}

	pg, err := h.Q.ListListings(r.Context(), q, pageParam(r))
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list services")
		return
	}
	writeJSON(w, http.StatusOK, toPageJSON(pg))
}

type listingDetailResponse struct {
	listingJSON
	Reviews []reviewJSON `json:"reviews"`
	IsOwner bool         `json:"is_owner"`
}

func (h *Handlers) getListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	lv, reviews, err := h.Q.GetListing(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "service listing not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not load service")
		return
	}
	writeJSON(w, http.StatusOK, listingDetailResponse{
		listingJSON: toListingJSON(lv),
		Reviews:     toReviewsJSON(reviews),
		IsOwner:     h.L.IsOwner(r.Context(), SessionID(r), ownerToken(r, nil), id),
	})
}

type mutationResponse struct {
	Message    string      `json:"message"`
	OwnerToken string      `json:"owner_token,omitempty"`
	Listing    listingJSON `json:"listing"`
}

func (h *Handlers) createListing(w http.ResponseWriter, r *http.Request) {
	var form ListingForm
	if err := decodeJSON(r, &form); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		observability.ObserveMutation("create", "invalid")
		writeValidation(w, errs)
		return
	}

	lv, token, err := h.L.Create(r.Context(), SessionID(r), form.Input())
	if err != nil {
		if errors.Is(err, app.ErrUnknownCategory) {
			observability.ObserveMutation("create", "invalid")
			writeValidation(w, map[string]string{"category_id": "choose an existing category"})
			return
		}
		observability.ObserveMutation("create", "error")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not create service listing")
		return
	}

	observability.ObserveMutation("create", "ok")
	w.Header().Set("Location", detailPath(lv.ID))
	writeJSON(w, http.StatusCreated, mutationResponse{
		Message:    "Your service listing has been created successfully! Keep the owner token to manage it from other browsers.",
		OwnerToken: token,
		Listing:    toListingJSON(lv),
	})
}

func (h *Handlers) updateListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var form ListingForm
	if err := decodeJSON(r, &form); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		observability.ObserveMutation("update", "invalid")
		writeValidation(w, errs)
		return
	}

	lv, err := h.L.Update(r.Context(), SessionID(r), ownerToken(r, &form), id, form.Input())
	switch {
	case err == nil:
		observability.ObserveMutation("update", "ok")
		w.Header().Set("Location", detailPath(id))
		writeJSON(w, http.StatusOK, mutationResponse{
			Message: "Your service listing has been updated successfully!",
			Listing: toListingJSON(lv),
		})
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "service listing not found")
	case errors.Is(err, domain.ErrNotOwner):
		observability.ObserveMutation("update", "refused")
		writeRefusal(w, id, "You can only edit services that you created.")
	case errors.Is(err, app.ErrUnknownCategory):
		observability.ObserveMutation("update", "invalid")
		writeValidation(w, map[string]string{"category_id": "choose an existing category"})
	default:
		observability.ObserveMutation("update", "error")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not update service listing")
	}
}

type confirmDeleteResponse struct {
	Listing listingJSON `json:"listing"`
	IsOwner bool        `json:"is_owner"`
	Action  string      `json:"action"`
	Method  string      `json:"method"`
}

// confirmDelete is the confirmation step before the destructive action:
// it shows what would be removed and where to send the DELETE.
func (h *Handlers) confirmDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	lv, _, err := h.Q.GetListing(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "service listing not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not load service")
		return
	}
	writeJSON(w, http.StatusOK, confirmDeleteResponse{
		Listing: toListingJSON(lv),
		IsOwner: h.L.IsOwner(r.Context(), SessionID(r), ownerToken(r, nil), id),
		Action:  detailPath(id),
		Method:  http.MethodDelete,
	})
}

func (h *Handlers) deleteListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}

	// the body is optional on DELETE; it may carry an owner_token
	var form ListingForm
	_ = decodeJSON(r, &form)

	err = h.L.Delete(r.Context(), SessionID(r), ownerToken(r, &form), id)
	switch {
	case err == nil:
		observability.ObserveMutation("delete", "ok")
		w.Header().Set("Location", "/v1/listings")
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Your service listing has been deleted successfully!",
		})
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "service listing not found")
	case errors.Is(err, domain.ErrNotOwner):
		observability.ObserveMutation("delete", "refused")
		writeRefusal(w, id, "You can only delete services that you created.")
	default:
		observability.ObserveMutation("delete", "error")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not delete service listing")
	}
}

// ---- reviews ----

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var form ReviewForm
	if err := decodeJSON(r, &form); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	rv, err := h.R.Submit(r.Context(), id, form.Input())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "service listing not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not save review")
		return
	}

	w.Header().Set("Location", detailPath(id))
	writeJSON(w, http.StatusCreated, struct {
		Message string     `json:"message"`
		Review  reviewJSON `json:"review"`
	}{
		Message: "Thank you for your review!",
		Review: reviewJSON{
			ID:           rv.ID,
			ReviewerName: rv.ReviewerName,
			Rating:       rv.Rating,
			Comment:      rv.Comment,
			CreatedAt:    rv.CreatedAt,
		},
	})
}

// ---- categories ----

func (h *Handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Q.ListCategories(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list categories")
		return
	}
	out := make([]categoryJSON, 0, len(cats))
	for _, c := range cats {
		n := c.ListingCount
		out = append(out, categoryJSON{
			ID:           c.ID,
			Name:         c.Name,
			Description:  c.Description,
			ListingCount: &n,
			CreatedAt:    c.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	cat, err := h.Q.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "category not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not load category")
		return
	}
	writeJSON(w, http.StatusOK, categoryJSON{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt,
	})
}

func (h *Handlers) createCategory(w http.ResponseWriter, r *http.Request) {
	var form CategoryForm
	if err := decodeJSON(r, &form); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	cat, err := h.C.Create(r.Context(), strings.TrimSpace(form.Name), strings.TrimSpace(form.Description))
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			writeProblem(w, http.StatusConflict, "Conflict", "a category with this name already exists")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not create category")
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/v1/categories/%d", cat.ID))
	writeJSON(w, http.StatusCreated, categoryJSON{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt,
	})
}

type categoryListingsResponse struct {
	Category categoryJSON `json:"category"`
	pageJSON
}

func (h *Handlers) categoryListings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	cat, pg, err := h.Q.ListCategoryListings(r.Context(), id, r.URL.Query().Get("search"), pageParam(r))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "category not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list category services")
		return
	}
	writeJSON(w, http.StatusOK, categoryListingsResponse{
		Category: categoryJSON{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			CreatedAt:   cat.CreatedAt,
		},
		pageJSON: toPageJSON(pg),
	})
}
