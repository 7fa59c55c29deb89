package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parfumerie-dz/storefront/internal/catalog"
)

func product(name string, price int64) catalog.Product {
	return catalog.Product{ID: uuid.New(), Name: name, Price: price}
}

func Test_Cart_AddNewProduct(t *testing.T) {
	// given
	var c Cart
	p := product("Sauvage", 45000)
	// when
	c.Add(p)
	// then
	require.Len(t, c.Items, 1)
	assert.Equal(t, int32(1), c.Items[0].Quantity)
	assert.Equal(t, p.ID, c.Items[0].ID)
}

func Test_Cart_AddExistingProductIncrementsQuantity(t *testing.T) {
	// given
	var c Cart
	p := product("Sauvage", 45000)
	c.Add(p)
	// when the same product is added twice more
	c.Add(p)
	c.Add(p)
	// then the line grows instead of duplicating
	require.Len(t, c.Items, 1)
	assert.Equal(t, int32(3), c.Items[0].Quantity)
}

func Test_Cart_AddKeepsInsertionOrder(t *testing.T) {
	// given
	var c Cart
	first := product("Sauvage", 45000)
	second := product("Ambre Nuit", 30000)
	c.Add(first)
	c.Add(second)
	// when the first product is added again
	c.Add(first)
	// then it keeps its original position
	require.Len(t, c.Items, 2)
	assert.Equal(t, first.ID, c.Items[0].ID)
	assert.Equal(t, int32(2), c.Items[0].Quantity)
}

func Test_Cart_SetQuantity(t *testing.T) {
	p := product("Sauvage", 45000)
	testCases := []struct {
		name     string
		quantity int32
		expected int
	}{
		{name: "positive quantity replaces the line's quantity", quantity: 5, expected: 1},
		{name: "zero removes the line", quantity: 0, expected: 0},
		{name: "negative removes the line", quantity: -5, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var c Cart
			c.Add(p)
			// when
			c.SetQuantity(p.ID, tc.quantity)
			// then
			require.Len(t, c.Items, tc.expected)
			if tc.expected > 0 {
				assert.Equal(t, tc.quantity, c.Items[0].Quantity)
			}
		})
	}
}

func Test_Cart_SetQuantityUnknownIDIsNoop(t *testing.T) {
	// given
	var c Cart
	c.Add(product("Sauvage", 45000))
	// when
	c.SetQuantity(uuid.New(), 3)
	// then
	require.Len(t, c.Items, 1)
	assert.Equal(t, int32(1), c.Items[0].Quantity)
}

func Test_Cart_RemoveIsIdempotent(t *testing.T) {
	// given
	var c Cart
	keep := product("Ambre Nuit", 30000)
	gone := product("Sauvage", 45000)
	c.Add(gone)
	c.Add(keep)
	// when
	c.Remove(gone.ID)
	c.Remove(gone.ID)
	// then
	require.Len(t, c.Items, 1)
	assert.Equal(t, keep.ID, c.Items[0].ID)
}

func Test_Cart_CountAndSubtotal(t *testing.T) {
	// given two lines: 2 x 45000 and 1 x 30000
	var c Cart
	a := product("Sauvage", 45000)
	b := product("Ambre Nuit", 30000)
	c.Add(a)
	c.Add(a)
	c.Add(b)
	// then
	assert.Equal(t, int32(3), c.Count())
	assert.Equal(t, int64(120000), c.Subtotal())

	// and they track mutations
	c.SetQuantity(a.ID, 1)
	assert.Equal(t, int32(2), c.Count())
	assert.Equal(t, int64(75000), c.Subtotal())

	c.Clear()
	assert.Zero(t, c.Count())
	assert.Zero(t, c.Subtotal())
}

func Test_Cart_SubtotalUsesCapturedPrice(t *testing.T) {
	// given a product added at one price
	var c Cart
	p := product("Sauvage", 45000)
	c.Add(p)
	// when the catalog price later changes
	p.Price = 99000
	// then the cart still bills the captured snapshot
	assert.Equal(t, int64(45000), c.Subtotal())
}
