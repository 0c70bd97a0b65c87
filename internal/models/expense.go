package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is one row of the expenses_denorm view. Dimension names are
// nullable because the view left-joins the dimension tables.
type Expense struct {
	ID                int64            `db:"expense_id"`
	Date              time.Time        `db:"expense_date"`
	Amount            decimal.Decimal  `db:"amount"`
	Description       *string          `db:"description"`
	Qty               *int64           `db:"qty"`
	UnitPrice         *decimal.Decimal `db:"unit_price"`
	CategoryName      *string          `db:"category_name"`
	VendorName        *string          `db:"vendor_name"`
	PaymentMethodName *string          `db:"payment_method_name"`
}

// ExpenseRecord is a fact row ready for insertion, dimension names already
// resolved to keys.
type ExpenseRecord struct {
	Date            time.Time
	Amount          decimal.Decimal
	CategoryID      int64
	VendorID        int64
	PaymentMethodID int64
	Description     *string
	Qty             *int64
	UnitPrice       *decimal.Decimal
}

// ExpenseChanges is the closed set of updatable fact columns.
type ExpenseChanges struct {
	Date            Optional[time.Time]
	Amount          Optional[decimal.Decimal]
	CategoryID      Optional[int64]
	VendorID        Optional[int64]
	PaymentMethodID Optional[int64]
	Description     Optional[*string]
	Qty             Optional[*int64]
	UnitPrice       Optional[*decimal.Decimal]
}

// Assignment is a single column = value pair of an UPDATE.
type Assignment struct {
	Column string
	Value  any
}

// Assignments returns the supplied changes in a fixed column order.
func (c ExpenseChanges) Assignments() []Assignment {
	var out []Assignment
	add := func(set bool, column string, value any) {
		if set {
			out = append(out, Assignment{Column: column, Value: value})
		}
	}

	add(c.Date.Set, "expense_date", c.Date.Value)
	add(c.Amount.Set, "amount", c.Amount.Value)
	add(c.CategoryID.Set, "category_id", c.CategoryID.Value)
	add(c.VendorID.Set, "vendor_id", c.VendorID.Value)
	add(c.PaymentMethodID.Set, "payment_method_id", c.PaymentMethodID.Value)
	add(c.Description.Set, "description", c.Description.Value)
	add(c.Qty.Set, "qty", c.Qty.Value)
	add(c.UnitPrice.Set, "unit_price", c.UnitPrice.Value)

	return out
}

// ExpenseFilter is a conjunctive search over expenses_denorm. Empty strings
// and nil bounds are ignored.
type ExpenseFilter struct {
	Query         string
	Category      string
	Vendor        string
	PaymentMethod string
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	StartDate     *time.Time
	EndDate       *time.Time
}

func (f ExpenseFilter) IsEmpty() bool {
	return f.Query == "" && f.Category == "" && f.Vendor == "" && f.PaymentMethod == "" &&
		f.MinAmount == nil && f.MaxAmount == nil && f.StartDate == nil && f.EndDate == nil
}
