// Package pricing computes order shipping and totals. All amounts are in
// currency minor units (centimes of DA).
package pricing

const (
	// FreeShippingThreshold is the subtotal above which shipping is free.
	// The comparison is strict: a subtotal exactly at the threshold still
	// pays the flat fee.
	FreeShippingThreshold int64 = 50000

	// FlatShippingFee applies to every order at or below the threshold,
	// including an empty one.
	FlatShippingFee int64 = 2000
)

// Shipping returns the shipping fee for the given merchandise subtotal.
func Shipping(subtotal int64) int64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// Total returns the amount payable: subtotal plus shipping.
func Total(subtotal int64) int64 {
	return subtotal + Shipping(subtotal)
}
