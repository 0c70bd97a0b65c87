package models

// Dimension is one of the name-keyed reference tables an expense points at.
type Dimension string

const (
	DimensionCategory      Dimension = "category"
	DimensionVendor        Dimension = "vendor"
	DimensionPaymentMethod Dimension = "payment_method"
)

// Dimensions lists every dimension in resolution order.
var Dimensions = []Dimension{DimensionCategory, DimensionVendor, DimensionPaymentMethod}

// Field is the request field that carries this dimension's name.
func (d Dimension) Field() string {
	return string(d) + "_name"
}

// Label is the human readable name used in error messages.
func (d Dimension) Label() string {
	switch d {
	case DimensionCategory:
		return "Category"
	case DimensionVendor:
		return "Vendor"
	case DimensionPaymentMethod:
		return "Payment method"
	default:
		return string(d)
	}
}
