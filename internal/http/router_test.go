package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/auth"
	"github.com/lead-studio/backend/internal/config"
	"github.com/lead-studio/backend/internal/contentgen"
	"github.com/lead-studio/backend/internal/events"
	"github.com/lead-studio/backend/internal/http/dto"
	"github.com/lead-studio/backend/internal/http/handlers"
	"github.com/lead-studio/backend/internal/models"
	"github.com/lead-studio/backend/internal/repositories/memrepo"
	"github.com/lead-studio/backend/internal/services"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type testEnv struct {
	app    *fiber.App
	cfg    *config.Config
	events *events.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, nil, false)
}

type idleSubscriber struct{}

func (idleSubscriber) Subscribe(context.Context, string, func(events.Event)) error { return nil }

// newTestEnvWith mounts the rate limiter when rdb is set and the websocket
// feed when withWS is true.
func newTestEnvWith(t *testing.T, rdb *redis.Client, withWS bool) *testEnv {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTIssuer:        "lead-studio",
		AdminPrincipals:  []string{"admin-1"},
		PublicBaseURL:    "https://dealer.example",
		CORSAllowOrigins: "*",
	}
	log := zap.NewNop()

	packages := memrepo.NewContentPackages()
	videos := memrepo.NewVideoAssets()
	leads := memrepo.NewLeads()
	users := memrepo.NewUsers()
	audit := memrepo.NewAudit()
	rec := events.NewRecorder()

	contentService := services.NewContentService(packages, videos, users, audit, rec, cfg.PublicBaseURL, log)
	leadService := services.NewLeadService(leads, packages, audit, rec, log)
	videoService := services.NewVideoService(videos, packages, log)
	userService := services.NewUserService(users, audit, cfg, log)
	analyticsService := services.NewAnalyticsService(packages, leads)
	auditService := services.NewAuditService(audit, userService)

	var hub *handlers.WSHub
	if withWS {
		hub = handlers.NewWSHub(cfg, idleSubscriber{}, userService, log)
	}

	app := fiber.New()
	SetupRouter(app, cfg, log, rdb, Handlers{
		Content:   handlers.NewContentHandler(contentService, analyticsService, log),
		Video:     handlers.NewVideoHandler(videoService, log),
		Lead:      handlers.NewLeadHandler(leadService, log),
		User:      handlers.NewUserHandler(userService, log),
		Dashboard: handlers.NewDashboardHandler(analyticsService, log),
		Audit:     handlers.NewAuditHandler(auditService, log),
		Public:    handlers.NewPublicHandler(contentService, leadService, log),
		Roles:     userService,
		WSHub:     hub,
	})
	return &testEnv{app: app, cfg: cfg, events: rec}
}

func (e *testEnv) token(t *testing.T, principal string) string {
	t.Helper()
	tok, err := auth.GenerateJWT(e.cfg.JWTSecret, e.cfg.JWTIssuer, principal, time.Hour)
	require.NoError(t, err)
	return tok
}

// do sends body as JSON and decodes the envelope of the response.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

var f150Request = map[string]any{
	"platform":  "tiktok",
	"objective": "leadGeneration",
	"model":     "f150",
	"tone":      "excited",
	"cta":       "scheduleTestDrive",
	"price":     "45000",
	"discount":  5000,
	"mileage":   "",
}

// withPackage saves a profile for u1 and one content package.
func (e *testEnv) withPackage(t *testing.T) (string, models.ContentPackage) {
	t.Helper()
	tok := e.token(t, "u1")
	status, _ := e.do(t, fiber.MethodPut, "/api/v1/me/profile", tok, map[string]any{"name": "Dana"})
	require.Equal(t, fiber.StatusOK, status)

	status, env := e.do(t, fiber.MethodPost, "/api/v1/content", tok, f150Request)
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	return tok, decode[models.ContentPackage](t, env.Data)
}

func validLead() map[string]any {
	return map[string]any{
		"name":             "Alex",
		"contact_info":     "alex@example.com",
		"vehicle_interest": "Ford F-150",
		"timeframe":        "Immediately",
		"consent":          true,
	}
}

func TestHealthAndMetrics(t *testing.T) {
	e := newTestEnv(t)

	status, _ := e.do(t, fiber.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	resp, err := e.app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "lead_studio_http_requests_total")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newTestEnv(t)

	status, env := e.do(t, fiber.MethodGet, "/api/v1/leads", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "missing authorization header", env.Error)

	status, _ = e.do(t, fiber.MethodGet, "/api/v1/leads", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestGuestMayOnlyGenerate(t *testing.T) {
	e := newTestEnv(t)
	tok := e.token(t, "visitor")

	status, env := e.do(t, fiber.MethodPost, "/api/v1/content/generate", tok, f150Request)
	require.Equal(t, fiber.StatusOK, status, env.Error)
	got := decode[contentgen.GeneratedContent](t, env.Data)
	assert.Len(t, got.Hashtags, 10)
	assert.Contains(t, got.Caption, "Save $5,000 - Now only $40,000!")

	status, _ = e.do(t, fiber.MethodPost, "/api/v1/content", tok, f150Request)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = e.do(t, fiber.MethodGet, "/api/v1/leads", tok, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env = e.do(t, fiber.MethodGet, "/api/v1/me/role", tok, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(env.Data), `"role":"guest"`)
}

func TestGenerateRejectsUnknownPlatform(t *testing.T) {
	e := newTestEnv(t)
	req := map[string]any{}
	for k, v := range f150Request {
		req[k] = v
	}
	req["platform"] = "myspace"

	status, env := e.do(t, fiber.MethodPost, "/api/v1/content/generate", e.token(t, "visitor"), req)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Error, "invalid platform")
}

func TestContentPackageFlow(t *testing.T) {
	e := newTestEnv(t)
	tok, pkg := e.withPackage(t)

	assert.Equal(t, "Dana", pkg.CreatedBy)
	assert.Equal(t, int64(45000), pkg.Offer.Price)
	assert.Equal(t, int64(0), pkg.Offer.Mileage)
	assert.Contains(t, pkg.Caption, "brand new Ford F-150")

	status, env := e.do(t, fiber.MethodPost, "/api/v1/content/1/hashtags", tok, map[string]any{"hashtags": []string{"Weekend"}})
	require.Equal(t, fiber.StatusOK, status, env.Error)
	updated := decode[models.ContentPackage](t, env.Data)
	assert.Equal(t, "#Weekend", updated.Hashtags[len(updated.Hashtags)-1])

	status, env = e.do(t, fiber.MethodPost, "/api/v1/content/1/videos", tok, map[string]any{"url": "https://cdn.example/a.mp4", "duration": "15"})
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	video := decode[models.VideoAsset](t, env.Data)
	assert.Equal(t, "Draft", video.Status)
	assert.Equal(t, "16:9", video.AspectRatio)
	assert.Equal(t, int64(15), video.DurationSeconds)

	status, env = e.do(t, fiber.MethodGet, "/api/v1/content/1/landing-url?utm_source=tiktok&ref=dana", tok, nil)
	require.Equal(t, fiber.StatusOK, status, env.Error)
	assert.Equal(t, "https://dealer.example/landing/1?ref=dana&utm_source=tiktok", decode[dto.LandingURLResponse](t, env.Data).URL)

	status, env = e.do(t, fiber.MethodGet, "/api/v1/public/content/1", "", nil)
	require.Equal(t, fiber.StatusOK, status, env.Error)
	assert.Contains(t, string(env.Data), `"model_name":"Ford F-150"`)
	assert.NotContains(t, string(env.Data), "Dana")

	status, env = e.do(t, fiber.MethodGet, "/api/v1/content?created_by=Dana", tok, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]models.ContentPackage](t, env.Data), 1)

	status, _ = e.do(t, fiber.MethodGet, "/api/v1/content/99", tok, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = e.do(t, fiber.MethodGet, "/api/v1/content/abc", tok, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, _ = e.do(t, fiber.MethodDelete, "/api/v1/content/1/videos/99", tok, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestLeadFlow(t *testing.T) {
	e := newTestEnv(t)
	tok, pkg := e.withPackage(t)

	lead := validLead()
	lead["status"] = "won"
	status, env := e.do(t, fiber.MethodPost, "/api/v1/public/content/1/leads", "", lead)
	require.Equal(t, fiber.StatusCreated, status, env.Error)

	incomplete := validLead()
	incomplete["consent"] = false
	status, env = e.do(t, fiber.MethodPost, "/api/v1/public/content/1/leads", "", incomplete)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Error, "please fill in all fields and accept the terms")

	status, _ = e.do(t, fiber.MethodPost, "/api/v1/public/content/99/leads", "", validLead())
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env = e.do(t, fiber.MethodGet, "/api/v1/leads?status=new", tok, nil)
	require.Equal(t, fiber.StatusOK, status)
	leads := decode[[]models.Lead](t, env.Data)
	require.Len(t, leads, 1)
	assert.Equal(t, models.LeadStatusNew, leads[0].Status)
	assert.Equal(t, pkg.ID, leads[0].ContentPackageID)
	assert.Empty(t, leads[0].Notes)

	status, env = e.do(t, fiber.MethodPut, "/api/v1/leads/1/status", tok, map[string]any{"status": "won"})
	require.Equal(t, fiber.StatusOK, status, env.Error)
	assert.Equal(t, models.LeadStatusWon, decode[models.Lead](t, env.Data).Status)

	status, env = e.do(t, fiber.MethodPut, "/api/v1/leads/1/status", tok, map[string]any{"status": "new"})
	require.Equal(t, fiber.StatusOK, status, env.Error)

	status, _ = e.do(t, fiber.MethodPut, "/api/v1/leads/1/status", tok, map[string]any{"status": "archived"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, _ = e.do(t, fiber.MethodPut, "/api/v1/leads/99/status", tok, map[string]any{"status": "won"})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env = e.do(t, fiber.MethodPost, "/api/v1/leads/1/notes", tok, map[string]any{"note": "  called back  "})
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	notes := decode[models.Lead](t, env.Data).Notes
	require.Len(t, notes, 1)
	assert.True(t, strings.HasPrefix(notes[0], "["))
	assert.True(t, strings.HasSuffix(notes[0], "] called back"))

	status, _ = e.do(t, fiber.MethodPost, "/api/v1/leads/1/notes", tok, map[string]any{"note": "   "})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = e.do(t, fiber.MethodGet, "/api/v1/dashboard", tok, nil)
	require.Equal(t, fiber.StatusOK, status)
	d := decode[services.Dashboard](t, env.Data)
	assert.Equal(t, 1, d.LeadCount)
	assert.Equal(t, "100.0%", d.ConversionRate)

	status, env = e.do(t, fiber.MethodGet, "/api/v1/content/1/attribution", tok, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1, decode[services.Attribution](t, env.Data).TotalLeads)

	streamTypes := []string{}
	for _, ev := range e.events.Events(events.StreamLeads) {
		streamTypes = append(streamTypes, ev.Type)
	}
	assert.Equal(t, []string{
		events.EventLeadCaptured,
		events.EventLeadStatusChanged,
		events.EventLeadStatusChanged,
		events.EventLeadNoteAdded,
	}, streamTypes)
}

func TestAdminRoutes(t *testing.T) {
	e := newTestEnv(t)
	userTok, _ := e.withPackage(t)
	adminTok := e.token(t, "admin-1")

	status, _ := e.do(t, fiber.MethodPut, "/api/v1/admin/roles", userTok, map[string]any{"principal": "u1", "role": "admin"})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env := e.do(t, fiber.MethodPut, "/api/v1/me/profile", adminTok, map[string]any{"name": "Root"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(env.Data), `"role":"admin"`)

	status, env = e.do(t, fiber.MethodPut, "/api/v1/admin/roles", adminTok, map[string]any{"principal": "u1", "role": "guest"})
	require.Equal(t, fiber.StatusOK, status, env.Error)

	status, _ = e.do(t, fiber.MethodGet, "/api/v1/leads", userTok, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env = e.do(t, fiber.MethodGet, "/api/v1/admin/audit/content_package/1", adminTok, nil)
	require.Equal(t, fiber.StatusOK, status, env.Error)
	logs := decode[[]models.AuditLog](t, env.Data)
	require.Len(t, logs, 1)
	assert.Equal(t, "content_package_created", logs[0].Action)
}

func TestLeadFormMeta(t *testing.T) {
	e := newTestEnv(t)

	status, env := e.do(t, fiber.MethodGet, "/api/v1/meta/lead-form", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	meta := decode[struct {
		VehicleInterests []string `json:"vehicle_interests"`
		Timeframes       []string `json:"timeframes"`
		Statuses         []struct {
			ID    string `json:"id"`
			Label string `json:"label"`
		} `json:"statuses"`
	}](t, env.Data)
	assert.Equal(t, models.VehicleInterestOptions, meta.VehicleInterests)
	assert.Equal(t, models.TimeframeOptions, meta.Timeframes)
	require.Len(t, meta.Statuses, 6)
	assert.Equal(t, "Test Drive", meta.Statuses[3].Label)
}

func TestLandingPage(t *testing.T) {
	e := newTestEnv(t)
	_, pkg := e.withPackage(t)

	resp, err := e.app.Test(httptest.NewRequest(fiber.MethodGet, "/landing/1?utm_source=tiktok", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Ford F-150", doc.Find("h1.model").Text())
	assert.Equal(t, "$40,000", doc.Find("p.price").Text())
	assert.Equal(t, pkg.Caption, doc.Find("pre.caption").Text())
	assert.Equal(t, len(pkg.Hashtags), doc.Find("ul.hashtags li").Length())

	action, _ := doc.Find("form#lead-form").Attr("action")
	assert.Equal(t, "/api/v1/public/content/1/leads?utm_source=tiktok", action)
	assert.Equal(t, len(models.VehicleInterestOptions), doc.Find(`select[name="vehicle_interest"] option`).Length())
	assert.Equal(t, len(models.TimeframeOptions), doc.Find(`select[name="timeframe"] option`).Length())

	resp, err = e.app.Test(httptest.NewRequest(fiber.MethodGet, "/landing/99", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLandingFormPost(t *testing.T) {
	e := newTestEnv(t)
	e.withPackage(t)

	form := "name=Alex&contact_info=555-0101&vehicle_interest=Other&timeframe=Just+browsing&consent=true"
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/public/content/1/leads?utm_source=tiktok", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestRouter_WebSocketUnderAPIPrefix(t *testing.T) {
	env := newTestEnvWith(t, nil, true)

	resp, err := env.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/ws", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode, "plain GET is refused before auth")

	resp, err = env.app.Test(httptest.NewRequest(fiber.MethodGet, "/ws", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRouter_PublicRoutesShareRateLimit(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = rdb.Close() })
	env := newTestEnvWith(t, rdb, false)

	handlerCount := map[string]int{}
	for _, r := range env.app.GetRoutes(true) {
		if r.Method == fiber.MethodGet || r.Method == fiber.MethodPost {
			handlerCount[r.Method+" "+r.Path] = len(r.Handlers)
		}
	}
	for _, route := range []string{
		"GET /api/v1/meta/lead-form",
		"GET /api/v1/public/content/:id",
		"POST /api/v1/public/content/:id/leads",
		"GET /landing/:id",
	} {
		assert.Equal(t, 2, handlerCount[route], "%s runs the limiter then the handler", route)
	}
}
