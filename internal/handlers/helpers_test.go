package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"sppgmenu/internal/catalog"
	"sppgmenu/internal/db/mock"
	"sppgmenu/internal/nutrition"
)

var fixedNow = time.Date(2025, time.August, 12, 9, 30, 0, 0, time.UTC)

// configureForTest installs deps plus deterministic id and clock seams and
// restores the previous globals when the test finishes. Tests that call it
// must not run in parallel.
func configureForTest(t *testing.T, sm *scs.SessionManager, deps Dependencies) {
	t.Helper()

	prevSession, prevItems, prevMenus, prevLevel := sessionManager, itemSource, menuLister, defaultLevel
	prevID, prevNow := newEvaluationID, nowFunc
	t.Cleanup(func() {
		sessionManager, itemSource, menuLister, defaultLevel = prevSession, prevItems, prevMenus, prevLevel
		newEvaluationID, nowFunc = prevID, prevNow
	})

	defaultLevel = nutrition.LevelSD
	Configure(sm, deps)
	newEvaluationID = func() string { return "eval-test" }
	nowFunc = func() time.Time { return fixedNow }
}

func mockCatalog(t *testing.T) *catalog.GormSource {
	t.Helper()
	database, err := mock.New(context.Background())
	if err != nil {
		t.Fatalf("mock.New error = %v", err)
	}
	return catalog.NewGormSource(database)
}

// sessionClient replays session cookies across requests to a handler wrapped
// in scs.LoadAndSave.
type sessionClient struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newSessionClient(t *testing.T, sm *scs.SessionManager, h http.HandlerFunc) *sessionClient {
	return &sessionClient{t: t, handler: sm.LoadAndSave(h), cookies: map[string]*http.Cookie{}}
}

func (c *sessionClient) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	for _, cookie := range w.Result().Cookies() {
		c.cookies[cookie.Name] = cookie
	}
	return w
}
