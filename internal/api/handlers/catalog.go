package handlers

import (
	"net/http"
	"strconv"

	"github.com/snoody/tft-tierlist/internal/service"
	"github.com/snoody/tft-tierlist/internal/synergy"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewCatalogHandler(catalogService *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, logger: logger}
}

type SynergyPreviewRequest struct {
	Units []string `json:"units"`
}

func (h *CatalogHandler) Units(w http.ResponseWriter, r *http.Request) {
	cost := 0
	if raw := r.URL.Query().Get("cost"); raw != "" {
		c, err := strconv.Atoi(raw)
		if err != nil || c < 1 || c > 5 {
			respondError(w, http.StatusBadRequest, "cost must be between 1 and 5")
			return
		}
		cost = c
	}

	units := h.catalogService.Units(cost)
	respondList(w, units, len(units))
}

func (h *CatalogHandler) Traits(w http.ResponseWriter, r *http.Request) {
	traits := h.catalogService.Traits()
	respondList(w, traits, len(traits))
}

func (h *CatalogHandler) Items(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	switch kind {
	case "", "basic", "combined":
	default:
		respondError(w, http.StatusBadRequest, "kind must be basic or combined")
		return
	}

	items := h.catalogService.Items(kind)
	respondList(w, items, len(items))
}

func (h *CatalogHandler) PreviewSynergies(w http.ResponseWriter, r *http.Request) {
	var req SynergyPreviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	list, err := h.catalogService.PreviewSynergies(req.Units)
	if err != nil {
		respondFailure(w, h.logger, "CatalogHandler.PreviewSynergies", err, nil)
		return
	}

	resp := synergy.Summarize(list)
	respondList(w, resp, len(resp))
}
