package rest

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/parfumerie-dz/storefront/internal/catalog"
	"github.com/parfumerie-dz/storefront/pkg/web"
)

// FavoriteAddDto selects the product to mark as a favorite.
type FavoriteAddDto struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// FavoritesResponseDto is the session's favorites list.
type FavoritesResponseDto struct {
	Items []catalog.Product `json:"items"`
	Count int               `json:"count"`
}

func favoritesResponse(items []catalog.Product) FavoritesResponseDto {
	if items == nil {
		items = []catalog.Product{}
	}
	return FavoritesResponseDto{Items: items, Count: len(items)}
}

// ListFavorites returns the session's favorites.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, favoritesResponse(h.favorites.List(sessionID)))
}

// AddFavorite marks a product as a favorite. Adding an existing favorite
// changes nothing.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeValid[FavoriteAddDto](h, w, r, mLogger)
	if !ok {
		return
	}
	product, ok := h.fetchProduct(w, r, dto.ProductID)
	if !ok {
		return
	}
	items, err := h.favorites.Add(sessionID, product)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error adding favorite", "ID", dto.ProductID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to update favorites")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, favoritesResponse(items))
}

// RemoveFavorite unmarks a product. Removing an absent favorite is a no-op.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return
	}
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	items, err := h.favorites.Remove(sessionID, id)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error removing favorite", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to update favorites")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, favoritesResponse(items))
}
