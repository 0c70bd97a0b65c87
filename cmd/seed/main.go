package main

import (
	"context"
	"flag"
	"log"
	"time"

	"cost-tracker/internal/models"
	"cost-tracker/internal/repository"
	"cost-tracker/pkg/config"
	"cost-tracker/pkg/logger"
	"cost-tracker/pkg/postgres"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var dimensionSeeds = map[models.Dimension][]string{
	models.DimensionCategory: {
		"Food", "Transportation", "Utilities", "Entertainment",
		"Healthcare", "Shopping", "Rent", "Education",
	},
	models.DimensionVendor: {
		"Jollibee", "McDonalds", "Starbucks", "Grab", "Meralco",
		"Maynilad", "Netflix", "Mercury Drug", "SM Store", "Landlord",
	},
	models.DimensionPaymentMethod: {
		"Cash", "Credit Card", "Debit Card", "GCash", "Maya", "Bank Transfer",
	},
}

func main() {
	expenses := flag.Int("expenses", 20, "number of random expenses to insert")
	reset := flag.Bool("reset", false, "drop and recreate the schema before seeding")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	if err := postgres.ApplySchema(&cfg.Database, *reset, appLogger); err != nil {
		appLogger.Fatal("Failed to apply schema", zap.Error(err))
	}

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Starting database seeding...", zap.Int("expenses", *expenses), zap.Bool("reset", *reset))

	faker := gofakeit.New(0)

	err = pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		keys, err := seedDimensions(ctx, repository.NewDimensionRepository(tx, appLogger), faker)
		if err != nil {
			return err
		}

		expenseRepo := repository.NewExpenseRepository(tx, appLogger)
		now := time.Now()
		for i := 0; i < *expenses; i++ {
			if _, err := expenseRepo.Create(ctx, randomExpense(faker, keys, now)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		appLogger.Fatal("Seeding failed", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

// seedDimensions upserts the fixed reference lists and returns their keys.
func seedDimensions(ctx context.Context, repo *repository.DimensionRepository, faker *gofakeit.Faker) (map[models.Dimension][]int64, error) {
	keys := make(map[models.Dimension][]int64, len(dimensionSeeds))
	for _, dim := range models.Dimensions {
		for _, name := range dimensionSeeds[dim] {
			id, err := repo.Ensure(ctx, dim, name, dimensionNote(faker, dim))
			if err != nil {
				return nil, err
			}
			keys[dim] = append(keys[dim], id)
		}
	}
	return keys, nil
}

func dimensionNote(faker *gofakeit.Faker, dim models.Dimension) string {
	switch dim {
	case models.DimensionCategory:
		return faker.Sentence(6)
	case models.DimensionVendor:
		return faker.Phone() + " / " + faker.Email()
	default:
		return ""
	}
}

// randomExpense builds a fact row dated within the year before now, with
// amount in [50, 5000], qty in [1, 5] and unit_price = amount / qty.
func randomExpense(faker *gofakeit.Faker, keys map[models.Dimension][]int64, now time.Time) *models.ExpenseRecord {
	amount := decimal.NewFromFloat(faker.Float64Range(50, 5000)).Round(2)
	qty := int64(faker.Number(1, 5))
	unitPrice := amount.Div(decimal.NewFromInt(qty)).Round(2)
	description := faker.Sentence(4)

	day := now.AddDate(0, 0, -faker.Number(0, 364))
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	pick := func(dim models.Dimension) int64 {
		ids := keys[dim]
		return ids[faker.Number(0, len(ids)-1)]
	}

	return &models.ExpenseRecord{
		Date:            date,
		Amount:          amount,
		CategoryID:      pick(models.DimensionCategory),
		VendorID:        pick(models.DimensionVendor),
		PaymentMethodID: pick(models.DimensionPaymentMethod),
		Description:     &description,
		Qty:             &qty,
		UnitPrice:       &unitPrice,
	}
}
