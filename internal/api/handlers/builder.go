package handlers

import (
	"net/http"

	ws "github.com/gorilla/websocket"
	"github.com/snoody/tft-tierlist/internal/service"
	"github.com/snoody/tft-tierlist/internal/websocket"
	"go.uber.org/zap"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the token query parameter is the access control
	},
}

type BuilderHandler struct {
	hub         *websocket.Hub
	authService *service.AuthService
	compService *service.CompositionService
	logger      *zap.Logger
}

func NewBuilderHandler(hub *websocket.Hub, authService *service.AuthService, compService *service.CompositionService, logger *zap.Logger) *BuilderHandler {
	return &BuilderHandler{
		hub:         hub,
		authService: authService,
		compService: compService,
		logger:      logger,
	}
}

// Handle upgrades an admin to a live builder session. Browsers cannot set
// headers on websocket requests, so the token travels as a query parameter.
func (h *BuilderHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Token required")
		return
	}

	user, err := h.authService.Authorize(r.Context(), token)
	if err != nil {
		respondFailure(w, h.logger, "BuilderHandler.Handle", err, map[error]int{
			service.ErrInvalidToken: http.StatusUnauthorized,
			service.ErrUserNotFound: http.StatusUnauthorized,
			service.ErrNotAdmin:     http.StatusForbidden,
		})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	session := websocket.NewSession(h.compService.NewBuilder(), h.compService, h.logger.Named("builder"))
	client := websocket.NewClient(h.hub, conn, user.ID, session)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
