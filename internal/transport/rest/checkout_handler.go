package rest

import (
	"errors"
	"net/http"

	"github.com/parfumerie-dz/storefront/internal/checkout"
	"github.com/parfumerie-dz/storefront/pkg/web"
)

// Checkout submits the session's cart as an order.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return
	}
	customer, ok := decodeValid[checkout.CustomerDto](h, w, r, mLogger)
	if !ok {
		return
	}

	result, err := h.checkout.Checkout(r.Context(), sessionID, customer)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			mLogger.WarnContext(r.Context(), "Checkout attempted with empty cart")
			web.RespondError(w, mLogger, http.StatusConflict, "Cart is empty")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error submitting order", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to submit order")
		return
	}
	mLogger.InfoContext(r.Context(), "Order placed", "order_id", result.OrderID, "total", result.Total)
	web.RespondJSON(w, mLogger, http.StatusCreated, result)
}
