package repository

import (
	"context"
	"errors"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"cost-tracker/internal/models"
	"cost-tracker/pkg/config"
	"cost-tracker/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var errRollback = errors.New("rollback")

// openTestDB connects to DATABASE_URL and applies the schema. Tests that
// need it are skipped when the variable is unset.
func openTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test")
	}
	raw := os.Getenv("DATABASE_URL")
	if raw == "" {
		t.Skip("DATABASE_URL not set")
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse DATABASE_URL: %v", err)
	}
	password, _ := u.User.Password()
	cfg := config.DatabaseConfig{
		Host:     u.Hostname(),
		Port:     u.Port(),
		User:     u.User.Username(),
		Password: password,
		DBName:   strings.TrimPrefix(u.Path, "/"),
		SSLMode:  u.Query().Get("sslmode"),
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}

	if err := postgres.ApplySchema(&cfg, false, zap.NewNop()); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	pool, err := postgres.NewPool(context.Background(), &cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// inRollback runs fn in a transaction that is always rolled back.
func inRollback(t *testing.T, pool *pgxpool.Pool, fn func(expenses *ExpenseRepository, dimensions *DimensionRepository)) {
	t.Helper()
	err := pgx.BeginFunc(context.Background(), pool, func(tx pgx.Tx) error {
		fn(NewExpenseRepository(tx, zap.NewNop()), NewDimensionRepository(tx, zap.NewNop()))
		return errRollback
	})
	if !errors.Is(err, errRollback) {
		t.Fatalf("transaction: %v", err)
	}
}

func TestExpenseRoundTripAgainstDatabase(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()

	inRollback(t, pool, func(expenses *ExpenseRepository, dimensions *DimensionRepository) {
		suffix := uuid.NewString()[:8]
		names := map[models.Dimension]string{
			models.DimensionCategory:      "Cat " + suffix,
			models.DimensionVendor:        "Vendor " + suffix,
			models.DimensionPaymentMethod: "Pay " + suffix,
		}
		keys := map[models.Dimension]int64{}
		for dim, name := range names {
			id, err := dimensions.Ensure(ctx, dim, name, "")
			if err != nil {
				t.Fatalf("Ensure(%s): %v", dim, err)
			}
			resolved, err := dimensions.Resolve(ctx, dim, name)
			if err != nil || resolved != id {
				t.Fatalf("Resolve(%s) = %d, %v, want %d", dim, resolved, err, id)
			}
			keys[dim] = id
		}

		description := "Lunch"
		qty := int64(2)
		unitPrice := decimal.RequireFromString("6.17")
		date := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

		id, err := expenses.Create(ctx, &models.ExpenseRecord{
			Date:            date,
			Amount:          decimal.RequireFromString("12.34"),
			CategoryID:      keys[models.DimensionCategory],
			VendorID:        keys[models.DimensionVendor],
			PaymentMethodID: keys[models.DimensionPaymentMethod],
			Description:     &description,
			Qty:             &qty,
			UnitPrice:       &unitPrice,
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}

		got, err := expenses.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if !got.Date.Equal(date) {
			t.Errorf("date = %v, want %v", got.Date, date)
		}
		if !got.Amount.Equal(decimal.RequireFromString("12.34")) {
			t.Errorf("amount = %s, want 12.34", got.Amount)
		}
		if got.Qty == nil || *got.Qty != 2 {
			t.Errorf("qty = %v, want 2", got.Qty)
		}
		if got.UnitPrice == nil || !got.UnitPrice.Equal(unitPrice) {
			t.Errorf("unit_price = %v, want 6.17", got.UnitPrice)
		}
		if got.CategoryName == nil || *got.CategoryName != names[models.DimensionCategory] {
			t.Errorf("category = %v, want %s", got.CategoryName, names[models.DimensionCategory])
		}
		if got.PaymentMethodName == nil || *got.PaymentMethodName != names[models.DimensionPaymentMethod] {
			t.Errorf("payment method = %v, want %s", got.PaymentMethodName, names[models.DimensionPaymentMethod])
		}

		err = expenses.Update(ctx, id, models.ExpenseChanges{
			Amount:    models.Some(decimal.RequireFromString("99999999.99")),
			Qty:       models.Some[*int64](nil),
			UnitPrice: models.Some[*decimal.Decimal](nil),
		})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		got, err = expenses.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID after update: %v", err)
		}
		if got.Amount.String() != "99999999.99" || got.Qty != nil || got.UnitPrice != nil {
			t.Errorf("after update = %s %v %v", got.Amount, got.Qty, got.UnitPrice)
		}

		if err := expenses.Delete(ctx, id); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := expenses.GetByID(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetByID after delete = %v, want ErrNotFound", err)
		}
	})
}

func TestResolveUnknownNameAgainstDatabase(t *testing.T) {
	pool := openTestDB(t)

	inRollback(t, pool, func(_ *ExpenseRepository, dimensions *DimensionRepository) {
		_, err := dimensions.Resolve(context.Background(), models.DimensionVendor, "missing "+uuid.NewString())
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve = %v, want ErrNotFound", err)
		}
	})
}
