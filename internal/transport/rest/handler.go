// Package rest provides the HTTP handlers for the storefront API.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/parfumerie-dz/storefront/internal/cart"
	"github.com/parfumerie-dz/storefront/internal/catalog"
	"github.com/parfumerie-dz/storefront/internal/checkout"
	"github.com/parfumerie-dz/storefront/internal/favorites"
	"github.com/parfumerie-dz/storefront/internal/order"
	"github.com/parfumerie-dz/storefront/pkg/web"
)

// Handler exposes the storefront services over HTTP.
type Handler struct {
	products  catalog.ProductService
	carts     cart.CartService
	favorites favorites.FavoritesService
	checkout  checkout.CheckoutService
	orders    order.OrderService
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewHandler creates a new Handler wired to the given services.
func NewHandler(
	products catalog.ProductService,
	carts cart.CartService,
	favs favorites.FavoritesService,
	checkoutSvc checkout.CheckoutService,
	orders order.OrderService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		products:  products,
		carts:     carts,
		favorites: favs,
		checkout:  checkoutSvc,
		orders:    orders,
		validate:  validator.New(),
		logger:    logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the storefront.
// adminOnly gates the back-office subtree.
func (h *Handler) RegisterRoutes(r *chi.Mux, adminOnly func(http.Handler) http.Handler) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/{id}", h.FindProductByID)
		})
		r.Get("/brands", h.ListBrands)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Put("/items/{id}", h.SetCartItemQuantity)
			r.Delete("/items/{id}", h.RemoveCartItem)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", h.ListFavorites)
			r.Post("/items", h.AddFavorite)
			r.Delete("/items/{id}", h.RemoveFavorite)
		})

		r.Post("/checkout", h.Checkout)

		r.Route("/admin", func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/products", h.CreateProduct)
			r.Put("/products/{id}", h.UpdateProduct)
			r.Delete("/products/{id}", h.DeleteProduct)
			r.Get("/orders", h.ListOrders)
			r.Get("/orders/{id}", h.FindOrderByID)
			r.Put("/orders/{id}/status", h.UpdateOrderStatus)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}

// decodeValid decodes the request body into T and validates it. On
// failure it writes the error response and returns false.
func decodeValid[T any](h *Handler, w http.ResponseWriter, r *http.Request, logger *slog.Logger) (T, bool) {
	var dto T
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return dto, false
	}
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, logger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return dto, false
		}
		logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return dto, false
	}
	return dto, true
}
