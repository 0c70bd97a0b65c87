package service

import (
	"context"
	"errors"
	"fmt"

	"cost-tracker/internal/dto"
	"cost-tracker/internal/models"
	"cost-tracker/internal/repository"

	"go.uber.org/zap"
)

// Store is the persistence the expense service runs against.
type Store interface {
	Expenses() repository.ExpenseStore
	WithinTx(ctx context.Context, fn repository.TxFunc) error
}

type ExpenseService struct {
	store  Store
	logger *zap.Logger
}

func NewExpenseService(store Store, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		store:  store,
		logger: logger,
	}
}

func (s *ExpenseService) List(ctx context.Context) ([]*models.Expense, error) {
	expenses, err := s.store.Expenses().List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list expenses", Err: err}
	}
	return expenses, nil
}

func (s *ExpenseService) Get(ctx context.Context, id int64) (*models.Expense, error) {
	expense, err := s.store.Expenses().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, &StorageError{Op: fmt.Sprintf("get expense %d", id), Err: err}
	}
	return expense, nil
}

func (s *ExpenseService) Search(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error) {
	expenses, err := s.store.Expenses().Search(ctx, filter)
	if err != nil {
		return nil, &StorageError{Op: "search expenses", Err: err}
	}
	return expenses, nil
}

// Create resolves the three dimension names, inserts the fact row and
// re-reads it from the denormalized view, all in one transaction.
func (s *ExpenseService) Create(ctx context.Context, in *dto.ExpenseInput) (*models.Expense, error) {
	var created *models.Expense

	err := s.store.WithinTx(ctx, func(expenses repository.ExpenseStore, dimensions repository.DimensionStore) error {
		keys, err := resolveDimensions(ctx, dimensions, in)
		if err != nil {
			return err
		}

		id, err := expenses.Create(ctx, &models.ExpenseRecord{
			Date:            in.ExpenseDate.Value,
			Amount:          in.Amount.Value,
			CategoryID:      keys[models.DimensionCategory],
			VendorID:        keys[models.DimensionVendor],
			PaymentMethodID: keys[models.DimensionPaymentMethod],
			Description:     in.Description.Value,
			Qty:             in.Qty.Value,
			UnitPrice:       in.UnitPrice.Value,
		})
		if err != nil {
			return &StorageError{Op: "insert expense", Err: err}
		}

		created, err = expenses.GetByID(ctx, id)
		if err != nil {
			return &StorageError{Op: fmt.Sprintf("read created expense %d", id), Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, txError("create expense", err)
	}

	s.logger.Info("Expense created", zap.Int64("expense_id", created.ID))
	return created, nil
}

// Update applies exactly the supplied fields. A missing expense wins over an
// unknown dimension name.
func (s *ExpenseService) Update(ctx context.Context, id int64, in *dto.ExpenseInput) (*models.Expense, error) {
	var updated *models.Expense

	err := s.store.WithinTx(ctx, func(expenses repository.ExpenseStore, dimensions repository.DimensionStore) error {
		exists, err := expenses.Exists(ctx, id)
		if err != nil {
			return &StorageError{Op: fmt.Sprintf("check expense %d", id), Err: err}
		}
		if !exists {
			return ErrExpenseNotFound
		}

		keys, err := resolveDimensions(ctx, dimensions, in)
		if err != nil {
			return err
		}

		changes := models.ExpenseChanges{
			Date:        in.ExpenseDate,
			Amount:      in.Amount,
			Description: in.Description,
			Qty:         in.Qty,
			UnitPrice:   in.UnitPrice,
		}
		if key, ok := keys[models.DimensionCategory]; ok {
			changes.CategoryID = models.Some(key)
		}
		if key, ok := keys[models.DimensionVendor]; ok {
			changes.VendorID = models.Some(key)
		}
		if key, ok := keys[models.DimensionPaymentMethod]; ok {
			changes.PaymentMethodID = models.Some(key)
		}

		if err := expenses.Update(ctx, id, changes); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrExpenseNotFound
			}
			return &StorageError{Op: fmt.Sprintf("update expense %d", id), Err: err}
		}

		updated, err = expenses.GetByID(ctx, id)
		if err != nil {
			return &StorageError{Op: fmt.Sprintf("read updated expense %d", id), Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, txError(fmt.Sprintf("update expense %d", id), err)
	}

	s.logger.Info("Expense updated", zap.Int64("expense_id", id), zap.Strings("fields", in.Fields()))
	return updated, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Expenses().Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExpenseNotFound
		}
		return &StorageError{Op: fmt.Sprintf("delete expense %d", id), Err: err}
	}

	s.logger.Info("Expense deleted", zap.Int64("expense_id", id))
	return nil
}

// resolveDimensions looks up every dimension name present in the input, in
// category, vendor, payment method order, stopping at the first miss.
func resolveDimensions(ctx context.Context, dimensions repository.DimensionStore, in *dto.ExpenseInput) (map[models.Dimension]int64, error) {
	keys := make(map[models.Dimension]int64, len(models.Dimensions))
	for _, dim := range models.Dimensions {
		name := in.DimensionName(dim)
		if !name.Set {
			continue
		}
		key, err := dimensions.Resolve(ctx, dim, name.Value)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, &DimensionNotFoundError{Dimension: dim, Value: name.Value}
			}
			return nil, &StorageError{Op: "resolve " + string(dim), Err: err}
		}
		keys[dim] = key
	}
	return keys, nil
}
