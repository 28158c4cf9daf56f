package handler

import (
	"errors"
	"net/http"

	"github.com/wishkeeper/wishkeeper-go/internal/model"
	"github.com/wishkeeper/wishkeeper-go/internal/service"
	"go.uber.org/zap"
)

// ScrapeHandler handles POST /api/scrape.
type ScrapeHandler struct {
	service *service.EnrichService
	logger  *zap.Logger
}

func NewScrapeHandler(svc *service.EnrichService, logger *zap.Logger) *ScrapeHandler {
	return &ScrapeHandler{service: svc, logger: logger}
}

func (h *ScrapeHandler) HandleScrape(w http.ResponseWriter, r *http.Request) {
	var req model.ScrapeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields, err := h.service.Enrich(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExtractorNotConfigured):
			writeJSON(w, http.StatusInternalServerError, errorResponse("Scraping provider not configured"))
		case errors.Is(err, service.ErrExtractionFailed):
			writeJSON(w, http.StatusInternalServerError, errorResponse("Failed to scrape URL"))
		default:
			writeError(w, h.logger, err, "Internal server error during scraping")
		}
		return
	}

	writeJSON(w, http.StatusOK, model.ScrapeResponse{Success: true, Data: fields})
}
