package handler

import (
	"errors"
	"net/http"

	"github.com/wishkeeper/wishkeeper-go/internal/model"
	"github.com/wishkeeper/wishkeeper-go/internal/service"
	"go.uber.org/zap"
)

// WishlistHandler handles /api/wishlists.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *zap.Logger
}

func NewWishlistHandler(svc *service.WishlistService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{service: svc, logger: logger}
}

func (h *WishlistHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	wishlists, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch wishlists")
		return
	}
	writeJSON(w, http.StatusOK, wishlists)
}

func (h *WishlistHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateWishlistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	wishlist, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err, "Failed to create wishlist")
		return
	}
	writeJSON(w, http.StatusCreated, wishlist)
}

// HandleUpdate answers an unknown id with 200 and a null body.
func (h *WishlistHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateWishlistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	wishlist, err := h.service.Update(r.Context(), req)
	if errors.Is(err, service.ErrWishlistNotFound) {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		writeError(w, h.logger, err, "Failed to update wishlist")
		return
	}
	writeJSON(w, http.StatusOK, wishlist)
}

func (h *WishlistHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.URL.Query().Get("id")); err != nil {
		writeError(w, h.logger, err, "Failed to delete wishlist")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}
