package handlers

import (
	"net/http"
	"strconv"

	"github.com/snoody/tft-tierlist/internal/service"
	"go.uber.org/zap"
)

const maxVideoLimit = 50

type VideoHandler struct {
	videoService *service.VideoService
	logger       *zap.Logger
}

// NewVideoHandler accepts a nil service; every request then answers 503.
func NewVideoHandler(videoService *service.VideoService, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{videoService: videoService, logger: logger}
}

func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.videoService == nil {
		respondError(w, http.StatusServiceUnavailable, "Videos are not configured")
		return
	}

	q := r.URL.Query()
	limit := service.DefaultVideoLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxVideoLimit {
			respondError(w, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = n
	}
	fresh := q.Get("fresh") == "true"

	result, err := h.videoService.Latest(r.Context(), limit, fresh)
	if err != nil {
		respondFailure(w, h.logger, "VideoHandler.List", err, map[error]int{
			service.ErrNoVideos: http.StatusBadGateway,
		})
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *VideoHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if h.videoService == nil {
		respondError(w, http.StatusServiceUnavailable, "Videos are not configured")
		return
	}

	if err := h.videoService.ClearCache(r.Context()); err != nil {
		respondFailure(w, h.logger, "VideoHandler.ClearCache", err, nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}
