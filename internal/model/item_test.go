package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validInput() ItemInput {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return ItemInput{
		Title:         "Laptop",
		Store:         "Fnac",
		Category:      "Electronics",
		PurchaseDate:  day,
		TotalAmount:   999,
		ReturnUntil:   day.AddDate(0, 0, 14),
		WarrantyUntil: day.AddDate(2, 0, 0),
	}
}

func TestValidateOK(t *testing.T) {
	if err := validInput().Validate(); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}
}

func TestValidateZeroAmountOK(t *testing.T) {
	in := validInput()
	in.TotalAmount = 0
	if err := in.Validate(); err != nil {
		t.Errorf("zero amount should be allowed (gifts): %v", err)
	}
}

func TestValidateMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ItemInput)
		field  string
	}{
		{"title", func(in *ItemInput) { in.Title = "" }, "title"},
		{"store", func(in *ItemInput) { in.Store = "" }, "store"},
		{"category", func(in *ItemInput) { in.Category = "" }, "category"},
		{"purchase date", func(in *ItemInput) { in.PurchaseDate = time.Time{} }, "purchase_date"},
		{"negative amount", func(in *ItemInput) { in.TotalAmount = -1 }, "total_amount"},
		{"return deadline", func(in *ItemInput) { in.ReturnUntil = time.Time{} }, "return_until"},
		{"warranty deadline", func(in *ItemInput) { in.WarrantyUntil = time.Time{} }, "warranty_until"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			err := in.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error %q does not name field %q", err.Error(), tc.field)
			}
		})
	}
}

func TestValidateDeadlinesBeforePurchaseAccepted(t *testing.T) {
	// Deadline ordering is deliberately not enforced.
	in := validInput()
	in.ReturnUntil = in.PurchaseDate.AddDate(0, 0, -30)
	if err := in.Validate(); err != nil {
		t.Errorf("deadline before purchase should be accepted: %v", err)
	}
}
