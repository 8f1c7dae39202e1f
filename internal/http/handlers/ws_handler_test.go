package handlers

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"testing"
	"time"

	fws "github.com/fasthttp/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/auth"
	"github.com/lead-studio/backend/internal/config"
	"github.com/lead-studio/backend/internal/events"
	"github.com/lead-studio/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type streamSubscriber struct {
	mu       sync.Mutex
	handlers map[string]func(events.Event)
}

func (s *streamSubscriber) Subscribe(_ context.Context, stream string, handler func(events.Event)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[stream] = handler
	return nil
}

func (s *streamSubscriber) emit(stream string, e events.Event) {
	s.mu.Lock()
	h := s.handlers[stream]
	s.mu.Unlock()
	h(e)
}

type roleTable map[string]models.UserRole

func (r roleTable) Role(_ context.Context, principal string) (models.UserRole, error) {
	if role, ok := r[principal]; ok {
		return role, nil
	}
	return models.RoleGuest, nil
}

type wsEnv struct {
	cfg *config.Config
	hub *WSHub
	sub *streamSubscriber
	url string
}

func newWSEnv(t *testing.T) *wsEnv {
	t.Helper()
	cfg := &config.Config{JWTSecret: "ws-secret", JWTIssuer: "lead-studio"}
	sub := &streamSubscriber{handlers: map[string]func(events.Event){}}
	roles := roleTable{"agent": models.RoleUser, "boss": models.RoleAdmin}

	hub := NewWSHub(cfg, sub, roles, zap.NewNop())
	require.NoError(t, hub.Start(context.Background()))
	require.Len(t, sub.handlers, 2)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use("/ws", WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(hub.HandleWS))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return &wsEnv{cfg: cfg, hub: hub, sub: sub, url: "ws://" + ln.Addr().String() + "/ws"}
}

func (e *wsEnv) token(t *testing.T, principal string) string {
	t.Helper()
	tok, err := auth.GenerateJWT(e.cfg.JWTSecret, e.cfg.JWTIssuer, principal, time.Hour)
	require.NoError(t, err)
	return tok
}

func (e *wsEnv) dial(t *testing.T, token string) *fws.Conn {
	t.Helper()
	url := e.url
	if token != "" {
		url += "?token=" + token
	}
	conn, _, err := fws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func (e *wsEnv) clients() int {
	e.hub.mu.RLock()
	defer e.hub.mu.RUnlock()
	n := 0
	for _, cl := range e.hub.connections {
		n += len(cl)
	}
	return n
}

func (e *wsEnv) connect(t *testing.T, principal string) *fws.Conn {
	t.Helper()
	before := e.clients()
	conn := e.dial(t, e.token(t, principal))
	require.Eventually(t, func() bool { return e.clients() == before+1 }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *fws.Conn) events.Event {
	t.Helper()
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var e events.Event
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func TestWSHub_RejectsCallers(t *testing.T) {
	env := newWSEnv(t)

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"missing token", "", `{"error":"missing token"}`},
		{"invalid token", "not-a-jwt", `{"error":"invalid token"}`},
		{"wrong secret", func() string {
			tok, err := auth.GenerateJWT("other-secret", env.cfg.JWTIssuer, "agent", time.Hour)
			require.NoError(t, err)
			return tok
		}(), `{"error":"invalid token"}`},
		{"guest", env.token(t, "stranger"), `{"error":"permission denied"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := env.dial(t, tt.token)
			_, data, err := conn.ReadMessage()
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))

			_, _, err = conn.ReadMessage()
			assert.Error(t, err, "connection is closed after the refusal")
		})
	}
	assert.Zero(t, env.clients())
}

func TestWSHub_RelaysBothStreams(t *testing.T) {
	env := newWSEnv(t)
	agent := env.connect(t, "agent")
	boss := env.connect(t, "boss")

	env.sub.emit(events.StreamLeads, events.New(events.EventLeadCaptured, map[string]any{"lead_id": 1}))
	env.sub.emit(events.StreamContent, events.New(events.EventContentPackageCreated, map[string]any{"content_package_id": 2}))

	for _, conn := range []*fws.Conn{agent, boss} {
		first := readEvent(t, conn)
		second := readEvent(t, conn)
		assert.Equal(t, events.EventLeadCaptured, first.Type)
		assert.Equal(t, events.EventContentPackageCreated, second.Type)
		assert.EqualValues(t, 2, second.Payload["content_package_id"])
	}
}

func TestWSHub_ConcurrentStreamsShareConnection(t *testing.T) {
	env := newWSEnv(t)
	conn := env.connect(t, "agent")

	const perStream = 100
	var wg sync.WaitGroup
	for _, stream := range []string{events.StreamLeads, events.StreamContent} {
		wg.Add(1)
		go func(stream string) {
			defer wg.Done()
			for i := 0; i < perStream; i++ {
				env.sub.emit(stream, events.New(events.EventLeadNoteAdded, map[string]any{"stream": stream, "n": i}))
			}
		}(stream)
	}

	got := map[string]int{}
	for i := 0; i < 2*perStream; i++ {
		e := readEvent(t, conn)
		got[e.Payload["stream"].(string)]++
	}
	wg.Wait()
	assert.Equal(t, map[string]int{events.StreamLeads: perStream, events.StreamContent: perStream}, got)
}

func TestWSHub_DropsClosedClients(t *testing.T) {
	env := newWSEnv(t)
	conn := env.connect(t, "agent")
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return env.clients() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.NotPanics(t, func() {
		env.sub.emit(events.StreamLeads, events.New(events.EventLeadCaptured, nil))
	})
}
