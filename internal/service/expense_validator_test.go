package service

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func decodeBody(t *testing.T, body string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return data
}

func validationDetails(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	details, _ := verr.Details.(map[string]string)
	return details
}

func TestValidateExpenseInputFull(t *testing.T) {
	body := `{
		"expense_date": "2024-03-01",
		"amount": 12.50,
		"category_name": "  Groceries ",
		"vendor_name": "Walmart",
		"payment_method_name": "Cash",
		"description": "weekly shop",
		"qty": 2,
		"unit_price": "6.25"
	}`

	in, err := ValidateExpenseInput(decodeBody(t, body), ModeFull)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := in.ExpenseDate.Value.Format("2006-01-02"); got != "2024-03-01" {
		t.Errorf("expense_date = %s", got)
	}
	if got := in.Amount.Value.String(); got != "12.5" {
		t.Errorf("amount = %s, want 12.5", got)
	}
	if in.CategoryName.Value != "Groceries" {
		t.Errorf("category_name = %q, want trimmed", in.CategoryName.Value)
	}
	if in.Qty.Value == nil || *in.Qty.Value != 2 {
		t.Errorf("qty = %v, want 2", in.Qty.Value)
	}
	if in.UnitPrice.Value == nil || in.UnitPrice.Value.String() != "6.25" {
		t.Errorf("unit_price = %v, want 6.25", in.UnitPrice.Value)
	}
	if in.Description.Value == nil || *in.Description.Value != "weekly shop" {
		t.Errorf("description = %v", in.Description.Value)
	}
}

func TestValidateExpenseInputFullReportsEveryMissingField(t *testing.T) {
	_, err := ValidateExpenseInput(map[string]any{}, ModeFull)
	details := validationDetails(t, err)

	want := []string{"expense_date", "amount", "category_name", "vendor_name", "payment_method_name"}
	if len(details) != len(want) {
		t.Fatalf("details = %v, want keys %v", details, want)
	}
	for _, key := range want {
		if details[key] == "" {
			t.Errorf("missing error for %s", key)
		}
	}
	if err.Error() != "Validation failed" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestValidateExpenseInputUnknownFields(t *testing.T) {
	_, err := ValidateExpenseInput(decodeBody(t, `{"amount": 1, "zeta": 1, "alpha": 2}`), ModePartial)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !verr.Unknown || verr.Message != "Unknown fields" {
		t.Errorf("got %+v, want unknown fields error", verr)
	}
	want := map[string][]string{"unknown": {"alpha", "zeta"}}
	if !reflect.DeepEqual(verr.Details, want) {
		t.Errorf("details = %v, want %v", verr.Details, want)
	}
}

func TestValidateExpenseInputFieldRules(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		want  string
	}{
		{"bad date", `{"expense_date": "01/03/2024"}`, "expense_date", "expense_date must be YYYY-MM-DD format"},
		{"impossible date", `{"expense_date": "2024-02-30"}`, "expense_date", "expense_date must be YYYY-MM-DD format"},
		{"empty date", `{"expense_date": ""}`, "expense_date", "expense_date is required (YYYY-MM-DD)"},
		{"negative amount", `{"amount": -1}`, "amount", "amount must be >= 0"},
		{"amount not numeric", `{"amount": "ten"}`, "amount", "amount is required and must be a number"},
		{"amount bool", `{"amount": true}`, "amount", "amount is required and must be a number"},
		{"blank category", `{"category_name": "   "}`, "category_name", "category_name is required and must be a non-empty string"},
		{"long vendor", `{"vendor_name": "` + strings.Repeat("v", 81) + `"}`, "vendor_name", "vendor_name must be <= 80 characters"},
		{"long payment method", `{"payment_method_name": "` + strings.Repeat("p", 31) + `"}`, "payment_method_name", "payment_method_name must be <= 30 characters"},
		{"long description", `{"description": "` + strings.Repeat("d", 256) + `"}`, "description", "description must be <= 255 characters"},
		{"description number", `{"description": 5}`, "description", "description must be a string"},
		{"fractional qty", `{"qty": 1.5}`, "qty", "qty must be an integer"},
		{"negative qty", `{"qty": -2}`, "qty", "qty must be >= 0"},
		{"qty bool", `{"qty": false}`, "qty", "qty must be an integer"},
		{"negative unit price", `{"unit_price": -0.01}`, "unit_price", "unit_price must be >= 0"},
		{"qty past int range", `{"qty": 18446744073709551621}`, "qty", "qty must be <= 2147483647"},
		{"qty exponent", `{"qty": 1e20}`, "qty", "qty must be <= 2147483647"},
		{"qty just past column", `{"qty": 2147483648}`, "qty", "qty must be <= 2147483647"},
		{"qty string past column", `{"qty": "2147483648"}`, "qty", "qty must be <= 2147483647"},
		{"qty decimal string", `{"qty": "3.0"}`, "qty", "qty must be an integer"},
		{"amount past column", `{"amount": 100000000}`, "amount", "amount must be <= 99999999.99"},
		{"amount rounds past column", `{"amount": 99999999.996}`, "amount", "amount must be <= 99999999.99"},
		{"unit price past column", `{"unit_price": "1e10"}`, "unit_price", "unit_price must be <= 99999999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateExpenseInput(decodeBody(t, tt.body), ModePartial)
			details := validationDetails(t, err)
			if details[tt.field] != tt.want {
				t.Errorf("%s error = %q, want %q", tt.field, details[tt.field], tt.want)
			}
		})
	}
}

func TestValidateExpenseInputBoundaries(t *testing.T) {
	body := `{
		"category_name": "` + strings.Repeat("c", 50) + `",
		"vendor_name": "` + strings.Repeat("é", 80) + `",
		"description": "` + strings.Repeat("d", 255) + `",
		"amount": 0,
		"qty": "3"
	}`

	in, err := ValidateExpenseInput(decodeBody(t, body), ModePartial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !in.Amount.Set || !in.Amount.Value.IsZero() {
		t.Errorf("amount = %+v, want zero", in.Amount)
	}
	if *in.Qty.Value != 3 {
		t.Errorf("qty = %d, want 3", *in.Qty.Value)
	}

	upper, err := ValidateExpenseInput(decodeBody(t, `{
		"amount": 99999999.99,
		"qty": 2147483647,
		"unit_price": "99999999.994"
	}`), ModePartial)
	if err != nil {
		t.Fatalf("unexpected error at column limits: %v", err)
	}
	if got := upper.Amount.Value.String(); got != "99999999.99" {
		t.Errorf("amount = %s, want 99999999.99", got)
	}
	if *upper.Qty.Value != 2147483647 {
		t.Errorf("qty = %d, want 2147483647", *upper.Qty.Value)
	}
	if got := upper.UnitPrice.Value.String(); got != "99999999.99" {
		t.Errorf("unit_price = %s, want 99999999.99", got)
	}
}

func TestValidateExpenseInputPartial(t *testing.T) {
	in, err := ValidateExpenseInput(decodeBody(t, `{"description": null, "qty": null, "unit_price": null}`), ModePartial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !in.Description.Set || in.Description.Value != nil {
		t.Errorf("description = %+v, want set to null", in.Description)
	}
	if !in.Qty.Set || in.Qty.Value != nil {
		t.Errorf("qty = %+v, want set to null", in.Qty)
	}
	if !in.UnitPrice.Set || in.UnitPrice.Value != nil {
		t.Errorf("unit_price = %+v, want set to null", in.UnitPrice)
	}
	if in.Amount.Set || in.ExpenseDate.Set || in.CategoryName.Set {
		t.Error("absent fields must stay unset")
	}
	if got := in.Fields(); !reflect.DeepEqual(got, []string{"description", "qty", "unit_price"}) {
		t.Errorf("Fields() = %v", got)
	}
}

func TestValidateExpenseInputPartialRequiresAField(t *testing.T) {
	_, err := ValidateExpenseInput(map[string]any{}, ModePartial)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Message != "At least one field must be provided" || verr.Unknown {
		t.Errorf("got %+v", verr)
	}
}

func TestValidateExpenseInputNormalizationIsStable(t *testing.T) {
	first, err := ValidateExpenseInput(decodeBody(t, `{"vendor_name": "  Shell  ", "amount": "7.10"}`), ModePartial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	again, err := ValidateExpenseInput(map[string]any{
		"vendor_name": first.VendorName.Value,
		"amount":      first.Amount.Value.String(),
	}, ModePartial)
	if err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}

	if again.VendorName.Value != first.VendorName.Value {
		t.Errorf("vendor_name changed: %q -> %q", first.VendorName.Value, again.VendorName.Value)
	}
	if !again.Amount.Value.Equal(first.Amount.Value) {
		t.Errorf("amount changed: %s -> %s", first.Amount.Value, again.Amount.Value)
	}
}
