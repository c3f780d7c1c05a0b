package httpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validListingForm() ListingForm {
	return ListingForm{
		ServiceName:  "Math Tutoring",
		ProviderName: "Sarah Johnson",
		ContactInfo:  "Call or text: (555) 123-4567",
		Description:  "Experienced math tutor.",
		LocationArea: "Downtown Campus",
		CategoryID:   1,
	}
}

func TestListingForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ListingForm)
		wantField string
	}{
		{"valid", func(f *ListingForm) {}, ""},
		{"missing service name", func(f *ListingForm) { f.ServiceName = "" }, "service_name"},
		{"whitespace provider name", func(f *ListingForm) { f.ProviderName = "   " }, "provider_name"},
		{"missing contact info", func(f *ListingForm) { f.ContactInfo = "" }, "contact_info"},
		{"missing description", func(f *ListingForm) { f.Description = "" }, "description"},
		{"missing location area", func(f *ListingForm) { f.LocationArea = "" }, "location_area"},
		{"missing category", func(f *ListingForm) { f.CategoryID = 0 }, "category_id"},
		{"bad email", func(f *ListingForm) { f.Email = "not-an-email" }, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validListingForm()
			tt.mutate(&f)
			errs := f.Validate()
			if tt.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestListingForm_OptionalFieldsStayOptional(t *testing.T) {
	f := validListingForm()
	assert.Empty(t, f.Validate(), "email, phone and price_range are optional")

	f.Email = "sarah.math@gmail.com"
	f.Phone = "(555) 123-4567"
	f.PriceRange = "$25-40/hour"
	assert.Empty(t, f.Validate())

	in := f.Input()
	assert.NotNil(t, in.Email)
	assert.NotNil(t, in.Phone)
	assert.NotNil(t, in.PriceRange)
}

func TestListingForm_InputTrims(t *testing.T) {
	f := validListingForm()
	f.ServiceName = "  Math Tutoring  "
	f.Email = " "
	in := f.Input()
	assert.Equal(t, "Math Tutoring", in.ServiceName)
	assert.Nil(t, in.Email, "blank optional field becomes nil")
}

func TestReviewForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		form      ReviewForm
		wantField string
	}{
		{"valid", ReviewForm{ReviewerName: "John", Rating: 5, Comment: "Great!"}, ""},
		{"rating low", ReviewForm{ReviewerName: "John", Rating: 0, Comment: "x"}, "rating"},
		{"rating high", ReviewForm{ReviewerName: "John", Rating: 6, Comment: "x"}, "rating"},
		{"missing name", ReviewForm{Rating: 3, Comment: "x"}, "reviewer_name"},
		{"missing comment", ReviewForm{ReviewerName: "John", Rating: 3}, "comment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			if tt.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestCategoryForm_Validate(t *testing.T) {
	assert.Contains(t, (&CategoryForm{}).Validate(), "name")
	assert.Empty(t, (&CategoryForm{Name: "Tutoring"}).Validate())
}
