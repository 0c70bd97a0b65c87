package handlers

import (
	"context"
	"fmt"

	"cost-tracker/internal/dto"
	"cost-tracker/internal/models"
	"cost-tracker/internal/service"
	"cost-tracker/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExpenseService interface {
	List(ctx context.Context) ([]*models.Expense, error)
	Get(ctx context.Context, id int64) (*models.Expense, error)
	Search(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error)
	Create(ctx context.Context, in *dto.ExpenseInput) (*models.Expense, error)
	Update(ctx context.Context, id int64, in *dto.ExpenseInput) (*models.Expense, error)
	Delete(ctx context.Context, id int64) error
}

type ExpenseHandler struct {
	expenseService ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

// ListExpenses godoc
// @Summary List expenses
// @Description All expenses in denormalized form, ordered by id
// @Tags expenses
// @Produce json,xml
// @Param format query string false "Response format (json or xml)"
// @Security Bearer
// @Success 200 {object} dto.ExpenseListResponse
// @Failure 401 {object} response.ErrorEnvelope
// @Failure 500 {object} response.ErrorEnvelope
// @Router /api/expenses [get]
func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	expenses, err := h.expenseService.List(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Send(c, fiber.StatusOK, dto.NewExpenseListResponse(expenses))
}

// GetExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json,xml
// @Param id path int true "Expense ID"
// @Param format query string false "Response format (json or xml)"
// @Security Bearer
// @Success 200 {object} dto.ExpenseEnvelope
// @Failure 401 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /api/expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *fiber.Ctx) error {
	id, err := expenseID(c)
	if err != nil {
		return err
	}

	expense, err := h.expenseService.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Send(c, fiber.StatusOK, dto.ExpenseEnvelope{Data: dto.NewExpenseResponse(expense)})
}

// CreateExpense godoc
// @Summary Create an expense
// @Description Dimension names must already exist; an unknown name is rejected with code not_found
// @Tags expenses
// @Accept json
// @Produce json,xml
// @Param request body object true "expense_date, amount, category_name, vendor_name, payment_method_name, optional description, qty, unit_price"
// @Param format query string false "Response format (json or xml)"
// @Security Bearer
// @Success 201 {object} dto.ExpenseEnvelope
// @Header 201 {string} Location "/api/expenses/{id}"
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 401 {object} response.ErrorEnvelope
// @Failure 415 {object} response.ErrorEnvelope
// @Router /api/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	data, err := parseJSONObject(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	in, err := service.ValidateExpenseInput(data, service.ModeFull)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	expense, err := h.expenseService.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/expenses/%d", expense.ID))
	return response.Send(c, fiber.StatusCreated, dto.ExpenseEnvelope{Data: dto.NewExpenseResponse(expense)})
}

// UpdateExpense godoc
// @Summary Update an expense
// @Description Only the supplied fields change; null clears description, qty or unit_price
// @Tags expenses
// @Accept json
// @Produce json,xml
// @Param id path int true "Expense ID"
// @Param request body object true "Any subset of the create fields"
// @Param format query string false "Response format (json or xml)"
// @Security Bearer
// @Success 200 {object} dto.ExpenseEnvelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 401 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /api/expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *fiber.Ctx) error {
	id, err := expenseID(c)
	if err != nil {
		return err
	}

	data, err := parseJSONObject(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	in, err := service.ValidateExpenseInput(data, service.ModePartial)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	expense, err := h.expenseService.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Send(c, fiber.StatusOK, dto.ExpenseEnvelope{Data: dto.NewExpenseResponse(expense)})
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Param id path int true "Expense ID"
// @Security Bearer
// @Success 204
// @Failure 401 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /api/expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *fiber.Ctx) error {
	id, err := expenseID(c)
	if err != nil {
		return err
	}

	if err := h.expenseService.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.logger, err)
	}
	return response.NoContent(c)
}

// SearchExpenses godoc
// @Summary Search expenses
// @Description All supplied criteria must match; text criteria are case-insensitive partial matches
// @Tags expenses
// @Produce json,xml
// @Param q query string false "Matches description, vendor or category"
// @Param category query string false "Category name contains"
// @Param vendor query string false "Vendor name contains"
// @Param payment_method query string false "Payment method name contains"
// @Param min_amount query number false "Lower amount bound"
// @Param max_amount query number false "Upper amount bound"
// @Param start_date query string false "Earliest date (YYYY-MM-DD)"
// @Param end_date query string false "Latest date (YYYY-MM-DD)"
// @Param format query string false "Response format (json or xml)"
// @Security Bearer
// @Success 200 {object} dto.ExpenseListResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 401 {object} response.ErrorEnvelope
// @Router /api/expenses/search [get]
func (h *ExpenseHandler) SearchExpenses(c *fiber.Ctx) error {
	filter, err := service.ParseSearchFilter(c.Queries())
	if err != nil {
		return writeError(c, h.logger, err)
	}

	expenses, err := h.expenseService.Search(c.UserContext(), filter)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Send(c, fiber.StatusOK, dto.NewExpenseListResponse(expenses))
}

// expenseID reads the :id route parameter. The route constraint already
// guarantees an integer, so a failure here falls through to the 404 handler.
func expenseID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, fiber.ErrNotFound
	}
	return int64(id), nil
}
