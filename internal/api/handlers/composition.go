package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/snoody/tft-tierlist/internal/builder"
	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/snoody/tft-tierlist/internal/repository"
	"github.com/snoody/tft-tierlist/internal/service"
	"go.uber.org/zap"
)

type CompositionHandler struct {
	compService *service.CompositionService
	logger      *zap.Logger
}

func NewCompositionHandler(compService *service.CompositionService, logger *zap.Logger) *CompositionHandler {
	return &CompositionHandler{compService: compService, logger: logger}
}

var compositionErrors = map[error]int{
	service.ErrCompositionNotFound: http.StatusNotFound,
}

// CompositionResponse adds derived fields to the stored record.
type CompositionResponse struct {
	*domain.Composition
	EmbedURL string `json:"embedUrl,omitempty"`
}

func NewCompositionResponse(c *domain.Composition) CompositionResponse {
	embed, _ := c.EmbedVideoURL()
	return CompositionResponse{Composition: c, EmbedURL: embed}
}

func (h *CompositionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.CompositionFilter{
		Champion: q.Get("champion"),
		Synergy:  q.Get("synergy"),
	}
	if tier := q.Get("tier"); tier != "" {
		rank := domain.Rank(strings.ToUpper(tier))
		if !rank.IsValid() {
			respondError(w, http.StatusBadRequest, "tier must be one of S, A, B, C, D")
			return
		}
		filter.Tier = rank
	}
	if raw := q.Get("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "isActive must be true or false")
			return
		}
		filter.IsActive = &active
	}

	comps, err := h.compService.List(r.Context(), filter)
	if err != nil {
		respondFailure(w, h.logger, "CompositionHandler.List", err, nil)
		return
	}

	resp := make([]CompositionResponse, len(comps))
	for i, c := range comps {
		resp[i] = NewCompositionResponse(c)
	}
	respondList(w, resp, len(resp))
}

func (h *CompositionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.compositionID(w, r)
	if !ok {
		return
	}

	comp, err := h.compService.Get(r.Context(), id)
	if err != nil {
		respondFailure(w, h.logger, "CompositionHandler.Get", err, compositionErrors)
		return
	}

	respondJSON(w, http.StatusOK, NewCompositionResponse(comp))
}

func (h *CompositionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft builder.Draft
	if err := decodeJSON(r, &draft); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comp, err := h.compService.Create(r.Context(), &draft)
	if err != nil {
		respondFailure(w, h.logger, "CompositionHandler.Create", err, compositionErrors)
		return
	}

	respondJSON(w, http.StatusCreated, NewCompositionResponse(comp))
}

func (h *CompositionHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := h.compositionID(w, r)
	if !ok {
		return
	}

	var draft builder.Draft
	if err := decodeJSON(r, &draft); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comp, err := h.compService.Update(r.Context(), id, &draft)
	if err != nil {
		respondFailure(w, h.logger, "CompositionHandler.Replace", err, compositionErrors)
		return
	}

	respondJSON(w, http.StatusOK, NewCompositionResponse(comp))
}

func (h *CompositionHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.compositionID(w, r)
	if !ok {
		return
	}

	var patch domain.CompositionPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comp, err := h.compService.Patch(r.Context(), id, &patch)
	if err != nil {
		respondFailure(w, h.logger, "CompositionHandler.Patch", err, compositionErrors)
		return
	}

	respondJSON(w, http.StatusOK, NewCompositionResponse(comp))
}

func (h *CompositionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.compositionID(w, r)
	if !ok {
		return
	}

	if err := h.compService.Delete(r.Context(), id); err != nil {
		respondFailure(w, h.logger, "CompositionHandler.Delete", err, compositionErrors)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

func (h *CompositionHandler) Tierlist(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := service.TierlistQuery{
		Synergy: q.Get("synergy"),
		Carry:   q.Get("carry"),
		Search:  strings.TrimSpace(q.Get("search")),
	}
	if raw := q.Get("tiers"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			rank := domain.Rank(strings.ToUpper(strings.TrimSpace(part)))
			if !rank.IsValid() {
				respondError(w, http.StatusBadRequest, "tiers must be a comma list of S, A, B, C, D")
				return
			}
			query.Tiers = append(query.Tiers, rank)
		}
	}

	tl, err := h.compService.Tierlist(r.Context(), query)
	if err != nil {
		respondFailure(w, h.logger, "CompositionHandler.Tierlist", err, nil)
		return
	}

	respondJSON(w, http.StatusOK, tl)
}

func (h *CompositionHandler) compositionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid composition id")
		return uuid.Nil, false
	}
	return id, true
}
