package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/forum-server/internal/auth"
	"github.com/anonto42/forum-server/internal/feed"
	"github.com/anonto42/forum-server/internal/handlers"
	"github.com/labstack/echo/v4"
	"gotest.tools/v3/assert"
)

func newRoutedEcho(t *testing.T) *echo.Echo {
	t.Helper()
	tokens, err := auth.NewTokenService("router-secret", time.Hour, time.Hour, false)
	assert.NilError(t, err)
	settings, err := feed.NewSettings(5, 3, "any")
	assert.NilError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	RegisterRoutes(e, Dependencies{Tokens: tokens, FeedSettings: settings})
	return e
}

func TestRouteTable(t *testing.T) {
	e := newRoutedEcho(t)

	registered := map[string]bool{}
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		"GET /", "GET /health",
		"POST /jwt", "GET /logout",
		"GET /users", "POST /addUser", "GET /getDataA", "GET /api/check-auth/:email",
		"GET /category", "GET /tags",
		"GET /posts", "POST /addPosts", "PATCH /updateLikes",
		"GET /comments", "POST /addComments", "DELETE /deleteComment/:id",
		"GET /mergedAllData", "POST /posts/popularity", "GET /myPost/:email",
		"GET /getAnn", "POST /announcement",
		"POST /makeReport", "POST /commentReport", "GET /reportsData",
		"GET /getDataAdmin", "PATCH /adminPriv", "DELETE /adminPriv/:id",
		"GET /getRandUUid", "POST /paymentsUuidRand/:id", "POST /create-payment-intent",
		"POST /paymentsData", "GET /paymentHistories",
	}
	for _, route := range want {
		assert.Assert(t, registered[route], "route %s is not registered", route)
	}
}

func TestGuardsAreRouteScoped(t *testing.T) {
	e := newRoutedEcho(t)

	cases := []struct {
		method string
		path   string
		code   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/unknown", http.StatusNotFound},
		{http.MethodGet, "/getDataA", http.StatusUnauthorized},
		{http.MethodPost, "/addPosts", http.StatusUnauthorized},
		{http.MethodGet, "/getDataAdmin", http.StatusUnauthorized},
		{http.MethodPatch, "/adminPriv", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, rec.Code, tc.code)
		})
	}
}
