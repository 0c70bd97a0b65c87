package main

import (
	"testing"
	"time"

	"cost-tracker/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

func TestRandomExpense(t *testing.T) {
	faker := gofakeit.New(42)
	keys := map[models.Dimension][]int64{
		models.DimensionCategory:      {1, 2, 3},
		models.DimensionVendor:        {10, 11},
		models.DimensionPaymentMethod: {20},
	}
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	oldest := now.AddDate(-1, 0, -1)

	for i := 0; i < 200; i++ {
		rec := randomExpense(faker, keys, now)

		if rec.Amount.LessThan(decimal.NewFromInt(50)) || rec.Amount.GreaterThan(decimal.NewFromInt(5000)) {
			t.Fatalf("amount %s out of range", rec.Amount)
		}
		if *rec.Qty < 1 || *rec.Qty > 5 {
			t.Fatalf("qty %d out of range", *rec.Qty)
		}
		want := rec.Amount.Div(decimal.NewFromInt(*rec.Qty)).Round(2)
		if !rec.UnitPrice.Equal(want) {
			t.Fatalf("unit_price %s, want %s", rec.UnitPrice, want)
		}
		if rec.Date.After(now) || rec.Date.Before(oldest) {
			t.Fatalf("date %s outside the last year", rec.Date)
		}
		if rec.CategoryID < 1 || rec.CategoryID > 3 || rec.PaymentMethodID != 20 {
			t.Fatalf("unexpected keys %+v", rec)
		}
		if rec.VendorID != 10 && rec.VendorID != 11 {
			t.Fatalf("unexpected vendor %d", rec.VendorID)
		}
	}
}

func TestDimensionSeedsCoverEveryDimension(t *testing.T) {
	for _, dim := range models.Dimensions {
		if len(dimensionSeeds[dim]) == 0 {
			t.Errorf("no seed names for %s", dim)
		}
	}
}
