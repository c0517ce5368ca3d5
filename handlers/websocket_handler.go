package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/bracket-hub/brackets"
	"github.com/Dosada05/bracket-hub/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin filtering happens at the CORS layer in front of us; bracket
		// events carry no sensitive data.
		return true
	},
}

type WebSocketHandler struct {
	hub                *brackets.Hub
	competitionService services.CompetitionService
	logger             *slog.Logger
}

func NewWebSocketHandler(hub *brackets.Hub, competitionService services.CompetitionService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:                hub,
		competitionService: competitionService,
		logger:             logger,
	}
}

// ServeWs handles GET /ws/bracket/{competitionID}: it verifies the
// competition exists, upgrades the connection and joins the client to the
// competition's room.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.competitionService.GetCompetition(r.Context(), competitionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error to the client.
		h.logger.Error("websocket upgrade failed",
			slog.Int("competition_id", competitionID), slog.Any("error", err))
		return
	}

	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: services.RoomID(competitionID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	h.logger.Info("bracket viewer connected", slog.Int("competition_id", competitionID))
}
