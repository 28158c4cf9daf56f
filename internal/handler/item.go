package handler

import (
	"errors"
	"net/http"

	"github.com/wishkeeper/wishkeeper-go/internal/model"
	"github.com/wishkeeper/wishkeeper-go/internal/service"
	"go.uber.org/zap"
)

// ItemHandler handles /api/items.
type ItemHandler struct {
	service *service.ItemService
	logger  *zap.Logger
}

func NewItemHandler(svc *service.ItemService, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{service: svc, logger: logger}
}

func (h *ItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err, "Failed to create item")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// HandleUpdate answers an unknown id with 200 and a null body.
func (h *ItemHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.Update(r.Context(), req)
	if errors.Is(err, service.ErrItemNotFound) {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		writeError(w, h.logger, err, "Failed to update item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.URL.Query().Get("id")); err != nil {
		writeError(w, h.logger, err, "Failed to delete item")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}
