package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"career-sync/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testJWT() *jwt.HMACService {
	return jwt.NewHMACService(jwt.Options{
		AccessSecret:     "a",
		RefreshSecret:    "r",
		AccessExpiresIn:  time.Minute,
		RefreshExpiresIn: time.Hour,
	})
}

type body struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, app *fiber.App, req *http.Request) (int, body) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var b body
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
	return resp.StatusCode, b
}

func TestAuthMiddleware(t *testing.T) {
	svc := testJWT()
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	mw := NewAuthMiddleware(svc)
	whoami := func(c fiber.Ctx) error {
		id, _ := UserIDFromCtx(c)
		return c.JSON(fiber.Map{"status": 200, "message": id.String()})
	}
	app.Get("/me", mw.Middleware(), whoami)
	app.Get("/ws", mw.QueryTokenMiddleware(), whoami)

	userID := uuid.New()
	access, err := svc.GenerateAccessToken(userID, "dev@example.com")
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	status, _ := call(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, status)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	status, b := call(t, app, req)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, userID.String(), b.Message)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	status, b = call(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", b.Message)

	req = httptest.NewRequest(http.MethodGet, "/me?access_token="+access, nil)
	status, _ = call(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, status, "query tokens only work where allowed")

	req = httptest.NewRequest(http.MethodGet, "/ws?access_token="+access, nil)
	status, b = call(t, app, req)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, userID.String(), b.Message)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("bearer  abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	for _, h := range []string{"", "Bearer", "Basic abc", "Bearer   "} {
		_, ok := BearerToken(h)
		assert.False(t, ok, h)
	}
}

func TestErrorMiddleware_Mapping(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	app := fiber.New()
	app.Use(NewErrorMiddleware(zap.New(core)).Middleware())
	app.Get("/bad", func(fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "Nope", map[string]string{"code": "X"}, nil)
	})
	app.Get("/boom", func(fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "secret detail", nil, errors.New("db password wrong"))
	})
	app.Get("/busy", func(fiber.Ctx) error {
		return NewAppError(fiber.StatusServiceUnavailable, "No careers available for matching", nil, nil)
	})
	app.Get("/panic", func(fiber.Ctx) error {
		panic("kaboom")
	})

	status, b := call(t, app, httptest.NewRequest(http.MethodGet, "/bad", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Nope", b.Message)
	assert.JSONEq(t, `{"code":"X"}`, string(b.Data))

	status, b = call(t, app, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", b.Message)

	status, b = call(t, app, httptest.NewRequest(http.MethodGet, "/busy", nil))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "No careers available for matching", b.Message)

	status, _ = call(t, app, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, status)

	assert.GreaterOrEqual(t, logs.FilterMessage("request failed").Len(), 2)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestAccessLogMiddleware_SetsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(zap.New(core)).Middleware())
	app.Get("/ok", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "fixed-id")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", resp.Header.Get(HeaderRequestID))

	entries := logs.FilterMessage("http access").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "fixed-id", entries[1].ContextMap()["rid"])
}
