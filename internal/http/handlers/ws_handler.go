package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/auth"
	"github.com/lead-studio/backend/internal/config"
	"github.com/lead-studio/backend/internal/events"
	"github.com/lead-studio/backend/internal/middleware"
	"github.com/lead-studio/backend/internal/rbac"
	"go.uber.org/zap"
)

// WSHub pushes lead and content events to operators with lead access.
type WSHub struct {
	cfg         *config.Config
	subscriber  events.Subscriber
	roles       middleware.RoleResolver
	log         *zap.Logger
	mu          sync.RWMutex
	connections map[string][]*wsClient
}

// wsClient serializes writes; the connection allows one writer at a time.
type wsClient struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	closed bool
}

func (cl *wsClient) write(data []byte) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.closed {
		return errClientClosed
	}
	return cl.conn.WriteMessage(websocket.TextMessage, data)
}

// close must run before HandleWS returns, the conn is reused afterwards.
func (cl *wsClient) close() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if !cl.closed {
		cl.closed = true
		_ = cl.conn.Close()
	}
}

var errClientClosed = errors.New("websocket client closed")

func NewWSHub(cfg *config.Config, subscriber events.Subscriber, roles middleware.RoleResolver, log *zap.Logger) *WSHub {
	return &WSHub{
		cfg:         cfg,
		subscriber:  subscriber,
		roles:       roles,
		log:         log,
		connections: make(map[string][]*wsClient),
	}
}

func (h *WSHub) Start(ctx context.Context) error {
	for _, stream := range []string{events.StreamLeads, events.StreamContent} {
		if err := h.subscriber.Subscribe(ctx, stream, h.broadcast); err != nil {
			return err
		}
	}
	return nil
}

func (h *WSHub) broadcast(event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	type target struct {
		principal string
		client    *wsClient
	}
	h.mu.RLock()
	var targets []target
	for principal, clients := range h.connections {
		for _, cl := range clients {
			targets = append(targets, target{principal, cl})
		}
	}
	h.mu.RUnlock()

	for _, t := range targets {
		if err := t.client.write(data); err != nil {
			h.log.Debug("dropping websocket client", zap.String("principal", t.principal), zap.Error(err))
			h.unregister(t.principal, t.client)
			t.client.close()
		}
	}
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *WSHub) register(principal string, conn *websocket.Conn) *wsClient {
	cl := &wsClient{conn: conn}
	h.mu.Lock()
	h.connections[principal] = append(h.connections[principal], cl)
	h.mu.Unlock()
	return cl
}

func (h *WSHub) unregister(principal string, cl *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.connections[principal]
	for i, c := range clients {
		if c == cl {
			h.connections[principal] = append(clients[:i:i], clients[i+1:]...)
			break
		}
	}
	if len(h.connections[principal]) == 0 {
		delete(h.connections, principal)
	}
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	// Token comes in the query string.
	tokenStr := conn.Query("token")
	if tokenStr == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing token"}`))
		conn.Close()
		return
	}

	claims, err := auth.ParseJWT(h.cfg.JWTSecret, h.cfg.JWTIssuer, tokenStr)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		conn.Close()
		return
	}
	principal := claims.Principal

	role, err := h.roles.Role(context.Background(), principal)
	if err != nil || !rbac.HasPermission(role, rbac.PermManageLeads) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"permission denied"}`))
		conn.Close()
		return
	}

	cl := h.register(principal, conn)
	defer func() {
		h.unregister(principal, cl)
		cl.close()
	}()

	// Read loop (keep alive / pings)
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
