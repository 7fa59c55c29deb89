package checkout

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parfumerie-dz/storefront/internal/cart"
	"github.com/parfumerie-dz/storefront/internal/catalog"
	"github.com/parfumerie-dz/storefront/internal/order"
)

// mockCartService is a mock implementation of the CartService interface
type mockCartService struct {
	cart    cart.Cart
	cleared bool
}

func (m *mockCartService) Get(_ string) cart.Cart { return m.cart }

func (m *mockCartService) Add(_ string, _ catalog.Product) (cart.Cart, error) {
	return m.cart, nil
}

func (m *mockCartService) SetQuantity(_ string, _ uuid.UUID, _ int32) (cart.Cart, error) {
	return m.cart, nil
}

func (m *mockCartService) Remove(_ string, _ uuid.UUID) (cart.Cart, error) {
	return m.cart, nil
}

func (m *mockCartService) Clear(_ string) error {
	m.cleared = true
	return nil
}

// mockOrderService records the submitted order and optionally fails.
type mockOrderService struct {
	created *order.OrderCreateDto
	result  order.OrderDto
	error   error
}

func (m *mockOrderService) Create(_ context.Context, dto order.OrderCreateDto) (*order.OrderDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	m.created = &dto
	return &m.result, nil
}

func (m *mockOrderService) FindByID(_ context.Context, _ uuid.UUID) (*order.OrderDto, error) {
	return &m.result, m.error
}

func (m *mockOrderService) ListAll(_ context.Context) ([]order.OrderDto, error) {
	return nil, m.error
}

func (m *mockOrderService) UpdateStatus(_ context.Context, _ uuid.UUID, _ string) (*order.OrderDto, error) {
	return &m.result, m.error
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func cartWith(lines ...cart.LineItem) cart.Cart {
	return cart.Cart{Items: lines}
}

func line(name string, price int64, qty int32) cart.LineItem {
	return cart.LineItem{
		Product:  catalog.Product{ID: uuid.New(), Name: name, Price: price},
		Quantity: qty,
	}
}

func customer() CustomerDto {
	return CustomerDto{
		Name:    "Amine B.",
		Phone:   "0550000000",
		Address: "12 rue Didouche Mourad",
		City:    "Alger",
	}
}

func Test_Checkout_Success(t *testing.T) {
	orderID := uuid.New()
	// given a 45000 cart, below the free-shipping threshold
	carts := &mockCartService{cart: cartWith(line("Sauvage", 45000, 1))}
	orders := &mockOrderService{result: order.OrderDto{ID: orderID}}
	service := NewService(carts, orders, testLogger())
	// when
	result, err := service.Checkout(context.Background(), "session-1", customer())
	// then
	require.NoError(t, err)
	assert.Equal(t, orderID, result.OrderID)
	assert.Equal(t, int64(45000), result.Subtotal)
	assert.Equal(t, int64(2000), result.Shipping)
	assert.Equal(t, int64(47000), result.Total)
	assert.True(t, carts.cleared, "cart must be cleared after a successful checkout")

	// and the submitted order carries the captured prices and the shipped total
	require.NotNil(t, orders.created)
	assert.Equal(t, int64(47000), orders.created.TotalAmount)
	require.Len(t, orders.created.Items, 1)
	assert.Equal(t, int64(45000), orders.created.Items[0].UnitPrice)
}

func Test_Checkout_FreeShippingAboveThreshold(t *testing.T) {
	// given a 52000 cart
	carts := &mockCartService{cart: cartWith(line("La Vie Est Belle", 52000, 1))}
	orders := &mockOrderService{result: order.OrderDto{ID: uuid.New()}}
	service := NewService(carts, orders, testLogger())
	// when
	result, err := service.Checkout(context.Background(), "session-1", customer())
	// then
	require.NoError(t, err)
	assert.Zero(t, result.Shipping)
	assert.Equal(t, int64(52000), result.Total)
}

func Test_Checkout_EmptyCartRejected(t *testing.T) {
	// given
	carts := &mockCartService{}
	service := NewService(carts, &mockOrderService{}, testLogger())
	// when
	result, err := service.Checkout(context.Background(), "session-1", customer())
	// then
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, result)
	assert.False(t, carts.cleared)
}

func Test_Checkout_FailureLeavesCartUntouched(t *testing.T) {
	ErrSubmit := errors.New("order service down")
	// given
	carts := &mockCartService{cart: cartWith(line("Sauvage", 45000, 1))}
	service := NewService(carts, &mockOrderService{error: ErrSubmit}, testLogger())
	// when
	result, err := service.Checkout(context.Background(), "session-1", customer())
	// then
	assert.ErrorIs(t, err, ErrSubmit)
	assert.Nil(t, result)
	assert.False(t, carts.cleared, "cart must survive a failed submission")
}
