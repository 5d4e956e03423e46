package handlers

import (
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/adityarahman/gighub_be/internal/realtime"
	"github.com/adityarahman/gighub_be/internal/utils"
)

type NotifyWSHandler struct {
	Hub       *realtime.Hub
	JWTSecret string
}

func NewNotifyWSHandler(hub *realtime.Hub, secret string) *NotifyWSHandler {
	return &NotifyWSHandler{Hub: hub, JWTSecret: secret}
}

// Handle upgrades the connection and streams notification events to the
// user. Authentication is via the token query param since browsers cannot
// set headers on websocket upgrades.
func (h *NotifyWSHandler) Handle(c *websocket.Conn) {
	token := c.Query("token")
	if token == "" {
		log.Println("ws notify: token parameter missing")
		c.Close()
		return
	}

	claims, err := utils.ParseJWT(h.JWTSecret, token)
	if err != nil {
		log.Println("ws notify: invalid token:", err)
		c.Close()
		return
	}

	client := &realtime.Client{
		ID:     uuid.NewString(),
		UserID: claims.UserID,
		Conn:   realtime.NewWebSocketConn(c),
		Send:   make(chan []byte, 256),
	}

	h.Hub.RegisterClient(client)
	defer h.Hub.UnregisterClient(client)

	go func() {
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Println("ws notify: write error:", err)
				return
			}
		}
	}()

	// Keep reading so we notice when the client goes away.
	for {
		var payload map[string]interface{}
		if err := c.ReadJSON(&payload); err != nil {
			break
		}
		if t, ok := payload["type"].(string); ok && t == "pong" {
			continue
		}
	}
}
