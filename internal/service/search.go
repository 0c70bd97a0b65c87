package service

import (
	"strings"
	"time"

	"cost-tracker/internal/dto"
	"cost-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// ParseSearchFilter builds a filter from raw query parameters. A bound that
// is present but malformed is rejected even when empty; a filter with no
// criterion at all is rejected.
func ParseSearchFilter(params map[string]string) (models.ExpenseFilter, error) {
	filter := models.ExpenseFilter{
		Query:         strings.TrimSpace(params["q"]),
		Category:      strings.TrimSpace(params["category"]),
		Vendor:        strings.TrimSpace(params["vendor"]),
		PaymentMethod: strings.TrimSpace(params["payment_method"]),
	}

	for _, bound := range []struct {
		key    string
		target **decimal.Decimal
	}{
		{"min_amount", &filter.MinAmount},
		{"max_amount", &filter.MaxAmount},
	} {
		raw, ok := params[bound.key]
		if !ok {
			continue
		}
		v, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return models.ExpenseFilter{}, &ValidationError{Message: bound.key + " must be a number"}
		}
		*bound.target = &v
	}

	for _, bound := range []struct {
		key    string
		target **time.Time
	}{
		{"start_date", &filter.StartDate},
		{"end_date", &filter.EndDate},
	} {
		raw := strings.TrimSpace(params[bound.key])
		if raw == "" {
			continue
		}
		v, err := time.Parse(dto.DateLayout, raw)
		if err != nil {
			return models.ExpenseFilter{}, &ValidationError{Message: bound.key + " must be YYYY-MM-DD"}
		}
		*bound.target = &v
	}

	if filter.IsEmpty() {
		return models.ExpenseFilter{}, &ValidationError{Message: "At least one search parameter is required"}
	}

	return filter, nil
}
