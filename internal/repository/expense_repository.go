package repository

import (
	"context"
	"errors"

	"cost-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	factTable = "expenses_fact"
	viewTable = "expenses_denorm"
)

var errNoChanges = errors.New("update has no columns to set")

var expenseColumns = []string{
	"expense_id", "expense_date", "amount", "description", "qty", "unit_price",
	"category_name", "vendor_name", "payment_method_name",
}

type ExpenseRepository struct {
	db     Querier
	logger *zap.Logger
}

func NewExpenseRepository(db Querier, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, rec *models.ExpenseRecord) (int64, error) {
	sql, args, err := insertQuery(rec).ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, err
	}

	r.logger.Debug("Expense inserted", zap.Int64("expense_id", id))
	return id, nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*models.Expense, error) {
	sql, args, err := selectExpenses().Where(squirrel.Eq{"expense_id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	expense, err := scanExpense(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return expense, nil
}

func (r *ExpenseRepository) List(ctx context.Context) ([]*models.Expense, error) {
	sql, args, err := selectExpenses().ToSql()
	if err != nil {
		return nil, err
	}
	return r.query(ctx, sql, args)
}

func (r *ExpenseRepository) Search(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error) {
	sql, args, err := searchQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}
	return r.query(ctx, sql, args)
}

func (r *ExpenseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := squirrel.Select("1").
		From(factTable).
		Where(squirrel.Eq{"expense_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, id int64, changes models.ExpenseChanges) error {
	query, err := updateQuery(id, changes)
	if err != nil {
		return err
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete(factTable).
		Where(squirrel.Eq{"expense_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) query(ctx context.Context, sql string, args []any) ([]*models.Expense, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]*models.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var e models.Expense
	if err := row.Scan(
		&e.ID, &e.Date, &e.Amount, &e.Description, &e.Qty, &e.UnitPrice,
		&e.CategoryName, &e.VendorName, &e.PaymentMethodName,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func selectExpenses() squirrel.SelectBuilder {
	return squirrel.Select(expenseColumns...).
		From(viewTable).
		OrderBy("expense_id").
		PlaceholderFormat(squirrel.Dollar)
}

func insertQuery(rec *models.ExpenseRecord) squirrel.InsertBuilder {
	return squirrel.Insert(factTable).
		Columns("expense_date", "amount", "category_id", "vendor_id", "payment_method_id", "description", "qty", "unit_price").
		Values(rec.Date, rec.Amount, rec.CategoryID, rec.VendorID, rec.PaymentMethodID, rec.Description, rec.Qty, rec.UnitPrice).
		Suffix("RETURNING expense_id").
		PlaceholderFormat(squirrel.Dollar)
}

func updateQuery(id int64, changes models.ExpenseChanges) (squirrel.UpdateBuilder, error) {
	assignments := changes.Assignments()
	if len(assignments) == 0 {
		return squirrel.UpdateBuilder{}, errNoChanges
	}

	query := squirrel.Update(factTable).PlaceholderFormat(squirrel.Dollar)
	for _, a := range assignments {
		query = query.Set(a.Column, a.Value)
	}
	return query.Where(squirrel.Eq{"expense_id": id}), nil
}

// searchQuery ANDs every supplied criterion. Text criteria are
// case-insensitive substring matches.
func searchQuery(f models.ExpenseFilter) squirrel.SelectBuilder {
	conds := squirrel.And{}

	if f.Query != "" {
		like := contains(f.Query)
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"description": like},
			squirrel.ILike{"vendor_name": like},
			squirrel.ILike{"category_name": like},
		})
	}
	if f.Category != "" {
		conds = append(conds, squirrel.ILike{"category_name": contains(f.Category)})
	}
	if f.Vendor != "" {
		conds = append(conds, squirrel.ILike{"vendor_name": contains(f.Vendor)})
	}
	if f.PaymentMethod != "" {
		conds = append(conds, squirrel.ILike{"payment_method_name": contains(f.PaymentMethod)})
	}
	if f.MinAmount != nil {
		conds = append(conds, squirrel.GtOrEq{"amount": *f.MinAmount})
	}
	if f.MaxAmount != nil {
		conds = append(conds, squirrel.LtOrEq{"amount": *f.MaxAmount})
	}
	if f.StartDate != nil {
		conds = append(conds, squirrel.GtOrEq{"expense_date": *f.StartDate})
	}
	if f.EndDate != nil {
		conds = append(conds, squirrel.LtOrEq{"expense_date": *f.EndDate})
	}

	query := selectExpenses()
	if len(conds) > 0 {
		query = query.Where(conds)
	}
	return query
}

func contains(s string) string {
	return "%" + s + "%"
}
