package repository

import (
	"context"
	"errors"

	"cost-tracker/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a lookup or a write by key matches no row.
var ErrNotFound = errors.New("record not found")

// Querier is the statement surface shared by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ExpenseStore interface {
	Create(ctx context.Context, rec *models.ExpenseRecord) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Expense, error)
	List(ctx context.Context) ([]*models.Expense, error)
	Search(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, changes models.ExpenseChanges) error
	Delete(ctx context.Context, id int64) error
}

type DimensionStore interface {
	Resolve(ctx context.Context, dim models.Dimension, name string) (int64, error)
}

// TxFunc runs against repositories bound to one transaction.
type TxFunc func(expenses ExpenseStore, dimensions DimensionStore) error

// Store owns the pool and hands out repositories bound either to the pool
// or to a transaction.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewStore(pool *pgxpool.Pool, logger *zap.Logger) *Store {
	return &Store{
		pool:   pool,
		logger: logger,
	}
}

func (s *Store) Expenses() ExpenseStore {
	return NewExpenseRepository(s.pool, s.logger)
}

func (s *Store) Dimensions() DimensionStore {
	return NewDimensionRepository(s.pool, s.logger)
}

// WithinTx commits when fn returns nil and rolls back otherwise.
func (s *Store) WithinTx(ctx context.Context, fn TxFunc) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(NewExpenseRepository(tx, s.logger), NewDimensionRepository(tx, s.logger))
	})
}
