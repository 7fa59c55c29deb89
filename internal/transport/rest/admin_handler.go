package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/parfumerie-dz/storefront/internal/catalog"
	"github.com/parfumerie-dz/storefront/internal/order"
	"github.com/parfumerie-dz/storefront/pkg/web"
)

// OrderStatusDto moves an order to a new fulfillment status.
type OrderStatusDto struct {
	Status string `json:"status" validate:"required"`
}

// CreateProduct handles the creation of a new catalog product.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	dto, ok := decodeValid[catalog.ProductCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}
	newProduct, err := h.products.Create(r.Context(), dto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", newProduct.ID, "Name", newProduct.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, newProduct)
}

// UpdateProduct modifies an existing catalog product.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeValid[catalog.ProductUpdateDto](h, w, r, mLogger)
	if !ok {
		return
	}
	updated, err := h.products.Update(r.Context(), id, dto)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for update", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update product with ID %s", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteProduct removes a catalog product.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.products.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for deletion", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete product with ID %s", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// ListOrders returns every order, newest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving order list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, orders)
}

// FindOrderByID retrieves an order with its items.
func (h *Handler) FindOrderByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.orders.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			mLogger.WarnContext(r.Context(), "Order not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Order with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving order", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve order with ID %s", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// UpdateOrderStatus moves an order through the fulfillment flow.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeValid[OrderStatusDto](h, w, r, mLogger)
	if !ok {
		return
	}
	updated, err := h.orders.UpdateStatus(r.Context(), id, dto.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			mLogger.WarnContext(r.Context(), "Invalid order status", "status", dto.Status)
			web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Invalid order status: %s", dto.Status))
		case errors.Is(err, order.ErrOrderNotFound):
			mLogger.WarnContext(r.Context(), "Order not found for status update", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Order with ID %s not found", id))
		default:
			mLogger.ErrorContext(r.Context(), "Error updating order status", "ID", id, "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update order with ID %s", id))
		}
		return
	}
	mLogger.InfoContext(r.Context(), "Order status updated", "ID", updated.ID, "status", updated.Status)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}
