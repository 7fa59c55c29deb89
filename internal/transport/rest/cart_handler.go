package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/parfumerie-dz/storefront/internal/cart"
	"github.com/parfumerie-dz/storefront/internal/catalog"
	"github.com/parfumerie-dz/storefront/internal/pricing"
	"github.com/parfumerie-dz/storefront/pkg/web"
)

// CartItemAddDto selects the product to put in the cart.
type CartItemAddDto struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// CartItemQuantityDto replaces a line's quantity. Zero or a negative
// value removes the line.
type CartItemQuantityDto struct {
	Quantity int32 `json:"quantity"`
}

// CartResponseDto is the cart with its price breakdown.
type CartResponseDto struct {
	Items    []cart.LineItem `json:"items"`
	Count    int32           `json:"count"`
	Subtotal int64           `json:"subtotal"`
	Shipping int64           `json:"shipping"`
	Total    int64           `json:"total"`
}

func cartResponse(c cart.Cart) CartResponseDto {
	subtotal := c.Subtotal()
	items := c.Items
	if items == nil {
		items = []cart.LineItem{}
	}
	return CartResponseDto{
		Items:    items,
		Count:    c.Count(),
		Subtotal: subtotal,
		Shipping: pricing.Shipping(subtotal),
		Total:    pricing.Total(subtotal),
	}
}

// GetCart returns the session's cart with totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, cartResponse(h.carts.Get(sessionID)))
}

// AddCartItem puts one unit of the product in the session's cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeValid[CartItemAddDto](h, w, r, mLogger)
	if !ok {
		return
	}

	product, ok := h.fetchProduct(w, r, dto.ProductID)
	if !ok {
		return
	}
	updated, err := h.carts.Add(sessionID, product)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error adding product to cart", "ID", dto.ProductID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	mLogger.InfoContext(r.Context(), "Product added to cart", "ID", dto.ProductID)
	web.RespondJSON(w, mLogger, http.StatusOK, cartResponse(updated))
}

// SetCartItemQuantity replaces the quantity of a cart line.
func (h *Handler) SetCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return
	}
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeValid[CartItemQuantityDto](h, w, r, mLogger)
	if !ok {
		return
	}
	updated, err := h.carts.SetQuantity(sessionID, id, dto.Quantity)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error updating cart quantity", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, cartResponse(updated))
}

// RemoveCartItem deletes a line from the session's cart.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return
	}
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	updated, err := h.carts.Remove(sessionID, id)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error removing product from cart", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, cartResponse(updated))
}

// ClearCart empties the session's cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.carts.Clear(sessionID); err != nil {
		mLogger.ErrorContext(r.Context(), "Error clearing cart", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fetchProduct resolves a product ID to its current catalog snapshot.
// Responds with 404 or 500 and returns false on failure.
func (h *Handler) fetchProduct(w http.ResponseWriter, r *http.Request, id uuid.UUID) (catalog.Product, bool) {
	mLogger := h.loggerWithReqID(r)
	dto, err := h.products.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
			return catalog.Product{}, false
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %s", id))
		return catalog.Product{}, false
	}
	return productFromDto(dto), true
}

// productFromDto rebuilds the domain product snapshot from its DTO.
func productFromDto(dto *catalog.ProductDto) catalog.Product {
	id, _ := uuid.Parse(dto.ID)
	return catalog.Product{
		ID:            id,
		Name:          dto.Name,
		Brand:         dto.Brand,
		Price:         dto.Price,
		StockQuantity: dto.StockQuantity,
		Category:      catalog.Category(dto.Category),
		Description:   dto.Description,
		ImageURL:      dto.ImageURL,
		Rating:        dto.Rating,
		ReviewCount:   dto.ReviewCount,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	}
}
