package httpserver

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"locallink/internal/app"
)

// Forms mirror the public JSON bodies. Validation reports per-field
// messages; a non-empty map means nothing is persisted.

type ListingForm struct {
	ServiceName  string `json:"service_name"`
	ProviderName string `json:"provider_name"`
	ContactInfo  string `json:"contact_info"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Description  string `json:"description"`
	LocationArea string `json:"location_area"`
	PriceRange   string `json:"price_range"`
	CategoryID   int64  `json:"category_id"`
	IsAvailable  *bool  `json:"is_available"`
	OwnerToken   string `json:"owner_token"`
}

func (f *ListingForm) Validate() map[string]string {
	errs := map[string]string{}
	requireField(errs, "service_name", f.ServiceName)
	requireField(errs, "provider_name", f.ProviderName)
	requireField(errs, "contact_info", f.ContactInfo)
	requireField(errs, "description", f.Description)
	requireField(errs, "location_area", f.LocationArea)
	if f.CategoryID <= 0 {
		errs["category_id"] = "this field is required"
	}
	if e := strings.TrimSpace(f.Email); e != "" {
		if _, err := mail.ParseAddress(e); err != nil {
			errs["email"] = "enter a valid email address"
		}
	}
	return errs
}

func (f *ListingForm) Input() app.ListingInput {
	return app.ListingInput{
		ServiceName:  strings.TrimSpace(f.ServiceName),
		ProviderName: strings.TrimSpace(f.ProviderName),
		ContactInfo:  strings.TrimSpace(f.ContactInfo),
		Email:        optField(f.Email),
		Phone:        optField(f.Phone),
		Description:  strings.TrimSpace(f.Description),
		LocationArea: strings.TrimSpace(f.LocationArea),
		PriceRange:   optField(f.PriceRange),
		CategoryID:   f.CategoryID,
		IsAvailable:  f.IsAvailable,
	}
}

type ReviewForm struct {
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

func (f *ReviewForm) Validate() map[string]string {
	errs := map[string]string{}
	requireField(errs, "reviewer_name", f.ReviewerName)
	requireField(errs, "comment", f.Comment)
	if f.Rating < 1 || f.Rating > 5 {
		errs["rating"] = "rating must be between 1 and 5"
	}
	return errs
}

func (f *ReviewForm) Input() app.ReviewInput {
	return app.ReviewInput{
		ReviewerName: strings.TrimSpace(f.ReviewerName),
		Rating:       f.Rating,
		Comment:      strings.TrimSpace(f.Comment),
	}
}

type CategoryForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (f *CategoryForm) Validate() map[string]string {
	errs := map[string]string{}
	requireField(errs, "name", f.Name)
	return errs
}

func requireField(errs map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		errs[name] = "this field is required"
	}
}

func optField(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

func decodeJSON(r *http.Request, dst any) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)).Decode(dst)
}
