package dto

import (
	"time"

	"cost-tracker/internal/models"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// ExpenseInput is a validated, normalized request body. Each field is Set
// only when the caller supplied it and it passed validation.
type ExpenseInput struct {
	ExpenseDate       models.Optional[time.Time]
	Amount            models.Optional[decimal.Decimal]
	CategoryName      models.Optional[string]
	VendorName        models.Optional[string]
	PaymentMethodName models.Optional[string]
	Description       models.Optional[*string]
	Qty               models.Optional[*int64]
	UnitPrice         models.Optional[*decimal.Decimal]
}

// Fields lists the request keys present in the input, in a fixed order.
func (in *ExpenseInput) Fields() []string {
	var out []string
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"expense_date", in.ExpenseDate.Set},
		{"amount", in.Amount.Set},
		{"category_name", in.CategoryName.Set},
		{"vendor_name", in.VendorName.Set},
		{"payment_method_name", in.PaymentMethodName.Set},
		{"description", in.Description.Set},
		{"qty", in.Qty.Set},
		{"unit_price", in.UnitPrice.Set},
	} {
		if f.set {
			out = append(out, f.name)
		}
	}
	return out
}

// DimensionName returns the supplied name for dim, if any.
func (in *ExpenseInput) DimensionName(dim models.Dimension) models.Optional[string] {
	switch dim {
	case models.DimensionCategory:
		return in.CategoryName
	case models.DimensionVendor:
		return in.VendorName
	case models.DimensionPaymentMethod:
		return in.PaymentMethodName
	default:
		return models.Optional[string]{}
	}
}

type ExpenseResponse struct {
	ExpenseID         int64    `json:"expense_id"`
	ExpenseDate       string   `json:"expense_date"`
	Amount            float64  `json:"amount"`
	Description       *string  `json:"description"`
	Qty               *int64   `json:"qty"`
	UnitPrice         *float64 `json:"unit_price"`
	CategoryName      *string  `json:"category_name"`
	VendorName        *string  `json:"vendor_name"`
	PaymentMethodName *string  `json:"payment_method_name"`
}

type ExpenseEnvelope struct {
	Data ExpenseResponse `json:"data"`
}

type ExpenseListResponse struct {
	Data  []ExpenseResponse `json:"data"`
	Count int               `json:"count"`
}

func NewExpenseResponse(e *models.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ExpenseID:         e.ID,
		ExpenseDate:       e.Date.Format(DateLayout),
		Amount:            e.Amount.InexactFloat64(),
		Description:       e.Description,
		Qty:               e.Qty,
		CategoryName:      e.CategoryName,
		VendorName:        e.VendorName,
		PaymentMethodName: e.PaymentMethodName,
	}
	if e.UnitPrice != nil {
		v := e.UnitPrice.InexactFloat64()
		resp.UnitPrice = &v
	}
	return resp
}

func NewExpenseListResponse(expenses []*models.Expense) ExpenseListResponse {
	data := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		data = append(data, NewExpenseResponse(e))
	}
	return ExpenseListResponse{Data: data, Count: len(data)}
}
