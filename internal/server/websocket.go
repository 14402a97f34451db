package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"palaver/internal/bus"
	"palaver/internal/identity"
	"palaver/internal/repository"
	"palaver/internal/services"
	"palaver/internal/subscription"
	"palaver/internal/transport/httpdto"
	"palaver/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsEvent is the envelope live events cross the socket in.
type wsEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// SubscriptionHandler upgrades authenticated callers to a WebSocket
// carrying their filtered NewMessage and NewReaction feeds.
type SubscriptionHandler struct {
	bus         *bus.Bus
	authService *services.AuthService
	messageRepo repository.MessageRepository
	logger      *logger.Logger
}

func NewSubscriptionHandler(b *bus.Bus, authService *services.AuthService, messageRepo repository.MessageRepository, l *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		bus:         b,
		authService: authService,
		messageRepo: messageRepo,
		logger:      l,
	}
}

// Handle gates on identity before the upgrade, subscribes both
// filtered streams, and pumps events out in delivery order until the
// client goes away.
func (h *SubscriptionHandler) Handle(c *gin.Context) {
	ctx := c.Request.Context()

	// Browsers cannot set headers on WebSocket dials; accept the
	// token as a query parameter as well.
	if _, ok := identity.FromContext(ctx); !ok {
		if id, ok := h.authService.VerifyToken(ctx, c.Query("token")); ok {
			ctx = identity.WithIdentity(ctx, id)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := subscription.Subscribe(ctx, h.bus.NewMessage, subscription.MessageParticipant(), h.logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(err.Error(), "UNAUTHENTICATED"))
		return
	}
	defer messages.Close()

	reactions, err := subscription.Subscribe(ctx, h.bus.NewReaction, subscription.ReactionParticipant(h.messageRepo), h.logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(err.Error(), "UNAUTHENTICATED"))
		return
	}
	defer reactions.Close()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	// Reader: the client sends nothing meaningful; watch for close
	// and keep the pong deadline fresh.
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-messages.Events():
			if !ok {
				return
			}
			if !h.write(conn, wsEvent{Type: "NEW_MESSAGE", Payload: message}) {
				return
			}
		case reaction, ok := <-reactions.Events():
			if !ok {
				return
			}
			if !h.write(conn, wsEvent{Type: "NEW_REACTION", Payload: reaction}) {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *SubscriptionHandler) write(conn *websocket.Conn, event wsEvent) bool {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(event); err != nil {
		h.logger.Errorf("websocket write: %v", err)
		return false
	}
	return true
}
