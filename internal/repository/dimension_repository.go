package repository

import (
	"context"
	"errors"
	"fmt"

	"cost-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type dimensionTable struct {
	table      string
	idColumn   string
	nameColumn string
	// noteColumn is the free-text column filled by the seeder, if any.
	noteColumn string
}

var dimensionTables = map[models.Dimension]dimensionTable{
	models.DimensionCategory:      {table: "expense_categories", idColumn: "category_id", nameColumn: "category_name", noteColumn: "description"},
	models.DimensionVendor:        {table: "vendors", idColumn: "vendor_id", nameColumn: "vendor_name", noteColumn: "contact_info"},
	models.DimensionPaymentMethod: {table: "payment_methods", idColumn: "payment_method_id", nameColumn: "method_name"},
}

func tableFor(dim models.Dimension) (dimensionTable, error) {
	t, ok := dimensionTables[dim]
	if !ok {
		return dimensionTable{}, fmt.Errorf("unknown dimension %q", dim)
	}
	return t, nil
}

type DimensionRepository struct {
	db     Querier
	logger *zap.Logger
}

func NewDimensionRepository(db Querier, logger *zap.Logger) *DimensionRepository {
	return &DimensionRepository{
		db:     db,
		logger: logger,
	}
}

// Resolve returns the surrogate key of the row whose name equals name
// exactly, or ErrNotFound.
func (r *DimensionRepository) Resolve(ctx context.Context, dim models.Dimension, name string) (int64, error) {
	t, err := tableFor(dim)
	if err != nil {
		return 0, err
	}

	query := squirrel.Select(t.idColumn).
		From(t.table).
		Where(squirrel.Eq{t.nameColumn: name}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	return id, nil
}

// Ensure inserts name if missing and returns its key. note fills the
// dimension's free-text column when it has one.
func (r *DimensionRepository) Ensure(ctx context.Context, dim models.Dimension, name, note string) (int64, error) {
	t, err := tableFor(dim)
	if err != nil {
		return 0, err
	}

	sql, args, err := ensureQuery(t, name, note).ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("ensure %s %q: %w", dim, name, err)
	}

	r.logger.Debug("Dimension ensured", zap.String("dimension", string(dim)), zap.String("name", name), zap.Int64("id", id))
	return id, nil
}

func ensureQuery(t dimensionTable, name, note string) squirrel.InsertBuilder {
	columns := []string{t.nameColumn}
	values := []any{name}
	// The no-op update on conflict makes RETURNING yield the existing key.
	updated := t.nameColumn
	if t.noteColumn != "" {
		columns = append(columns, t.noteColumn)
		values = append(values, note)
		updated = t.noteColumn
	}

	return squirrel.Insert(t.table).
		Columns(columns...).
		Values(values...).
		Suffix(fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s RETURNING %s",
			t.nameColumn, updated, updated, t.idColumn)).
		PlaceholderFormat(squirrel.Dollar)
}
