package service

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"cost-tracker/internal/dto"
	"cost-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// ValidationMode selects create (every required field) or update (only
// what is present) semantics.
type ValidationMode int

const (
	ModeFull ValidationMode = iota
	ModePartial
)

const maxDescriptionLength = 255

// Money columns are NUMERIC(10, 2); qty is INT.
const moneyScale = 2

var (
	maxMoney = decimal.New(1, 8).Sub(decimal.New(1, -moneyScale))
	maxQty   = decimal.NewFromInt(math.MaxInt32)
)

var allowedExpenseFields = map[string]bool{
	"expense_date":        true,
	"amount":              true,
	"category_name":       true,
	"vendor_name":         true,
	"payment_method_name": true,
	"description":         true,
	"qty":                 true,
	"unit_price":          true,
}

var dimensionNameLimits = map[models.Dimension]int{
	models.DimensionCategory:      50,
	models.DimensionVendor:        80,
	models.DimensionPaymentMethod: 30,
}

// ValidateExpenseInput checks a decoded JSON object (numbers as
// json.Number) and returns the normalized input. Every field is checked
// before returning, so all problems are reported together.
func ValidateExpenseInput(data map[string]any, mode ValidationMode) (*dto.ExpenseInput, error) {
	var unknown []string
	for key := range data {
		if !allowedExpenseFields[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &ValidationError{
			Message: "Unknown fields",
			Details: map[string][]string{"unknown": unknown},
			Unknown: true,
		}
	}

	partial := mode == ModePartial
	wants := func(key string) bool {
		if !partial {
			return true
		}
		_, ok := data[key]
		return ok
	}

	in := &dto.ExpenseInput{}
	errs := map[string]string{}

	if wants("expense_date") {
		if date, msg := validateDate(data["expense_date"]); msg != "" {
			errs["expense_date"] = msg
		} else {
			in.ExpenseDate = models.Some(date)
		}
	}

	if wants("amount") {
		amount, ok := toDecimal(data["amount"])
		switch {
		case !ok:
			errs["amount"] = "amount is required and must be a number"
		case amount.IsNegative():
			errs["amount"] = "amount must be >= 0"
		case amount.Round(moneyScale).GreaterThan(maxMoney):
			errs["amount"] = "amount must be <= " + maxMoney.StringFixed(moneyScale)
		default:
			in.Amount = models.Some(amount.Round(moneyScale))
		}
	}

	for _, dim := range models.Dimensions {
		field := dim.Field()
		if !wants(field) {
			continue
		}
		name, msg := validateName(field, data[field], dimensionNameLimits[dim])
		if msg != "" {
			errs[field] = msg
			continue
		}
		switch dim {
		case models.DimensionCategory:
			in.CategoryName = models.Some(name)
		case models.DimensionVendor:
			in.VendorName = models.Some(name)
		case models.DimensionPaymentMethod:
			in.PaymentMethodName = models.Some(name)
		}
	}

	if raw, ok := data["description"]; ok {
		switch v := raw.(type) {
		case nil:
			in.Description = models.Some[*string](nil)
		case string:
			if utf8.RuneCountInString(v) > maxDescriptionLength {
				errs["description"] = fmt.Sprintf("description must be <= %d characters", maxDescriptionLength)
			} else {
				in.Description = models.Some(&v)
			}
		default:
			errs["description"] = "description must be a string"
		}
	}

	if raw, ok := data["qty"]; ok {
		if raw == nil {
			in.Qty = models.Some[*int64](nil)
		} else if qty, ok := toInt(raw); !ok {
			errs["qty"] = "qty must be an integer"
		} else if qty.IsNegative() {
			errs["qty"] = "qty must be >= 0"
		} else if qty.GreaterThan(maxQty) {
			errs["qty"] = "qty must be <= " + maxQty.String()
		} else {
			n := qty.IntPart()
			in.Qty = models.Some(&n)
		}
	}

	if raw, ok := data["unit_price"]; ok {
		if raw == nil {
			in.UnitPrice = models.Some[*decimal.Decimal](nil)
		} else if price, ok := toDecimal(raw); !ok {
			errs["unit_price"] = "unit_price must be a number"
		} else if price.IsNegative() {
			errs["unit_price"] = "unit_price must be >= 0"
		} else if price = price.Round(moneyScale); price.GreaterThan(maxMoney) {
			errs["unit_price"] = "unit_price must be <= " + maxMoney.StringFixed(moneyScale)
		} else {
			in.UnitPrice = models.Some(&price)
		}
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Message: "Validation failed", Details: errs}
	}
	if partial && len(in.Fields()) == 0 {
		return nil, &ValidationError{Message: "At least one field must be provided"}
	}

	return in, nil
}

func validateDate(raw any) (time.Time, string) {
	s, isString := raw.(string)
	if raw == nil || (isString && s == "") {
		return time.Time{}, "expense_date is required (YYYY-MM-DD)"
	}
	if !isString {
		return time.Time{}, "expense_date must be YYYY-MM-DD format"
	}
	date, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, "expense_date must be YYYY-MM-DD format"
	}
	return date, ""
}

func validateName(field string, raw any, limit int) (string, string) {
	s, ok := raw.(string)
	s = strings.TrimSpace(s)
	if !ok || s == "" {
		return "", field + " is required and must be a non-empty string"
	}
	if utf8.RuneCountInString(s) > limit {
		return "", fmt.Sprintf("%s must be <= %d characters", field, limit)
	}
	return s, ""
}

// toDecimal accepts a JSON number or a numeric string.
func toDecimal(raw any) (decimal.Decimal, bool) {
	var s string
	switch v := raw.(type) {
	case json.Number:
		s = v.String()
	case string:
		s = strings.TrimSpace(v)
	case float64:
		return decimal.NewFromFloat(v), true
	default:
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// toInt accepts an integral JSON number or an integer string. The value is
// returned as a decimal so callers can range-check it before narrowing.
func toInt(raw any) (decimal.Decimal, bool) {
	var d decimal.Decimal
	switch v := raw.(type) {
	case json.Number:
		parsed, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Decimal{}, false
		}
		d = parsed
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil || strings.ContainsAny(v, ".eE") {
			return decimal.Decimal{}, false
		}
		d = parsed
	case float64:
		d = decimal.NewFromFloat(v)
	default:
		return decimal.Decimal{}, false
	}
	if !d.IsInteger() {
		return decimal.Decimal{}, false
	}
	return d, true
}
