package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pverlaine/convene/internal/store/gormstore"
)

func newTestApp(t *testing.T) (*fiber.App, *gormstore.Store) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "convene-test.db")
	testStore, err := gormstore.Open(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	handler := NewHandler(testStore, []byte("test-secret-key"), time.UTC, false)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, testStore
}

func jsonRequest(t *testing.T, method string, path string, payload any, cookie *http.Cookie) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request, wantStatus int, out any) *http.Response {
	t.Helper()

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s: %v", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d", req.Method, req.URL.Path, wantStatus, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

func registerTestUser(t *testing.T, app *fiber.App, name string) *http.Cookie {
	t.Helper()

	req := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     name,
		"password": "long enough pass",
	}, nil)
	resp := doJSON(t, app, req, http.StatusCreated, nil)

	cookie := responseCookie(resp.Cookies(), authCookieName)
	if cookie == nil {
		t.Fatalf("registration did not set the auth cookie")
	}
	return cookie
}

func createTestProposal(t *testing.T, app *fiber.App, cookie *http.Cookie, title string, kind string) map[string]any {
	t.Helper()

	req := jsonRequest(t, http.MethodPost, "/api/proposals", map[string]any{
		"title": title,
		"kind":  kind,
		"emoji": "🎲",
	}, cookie)
	proposal := map[string]any{}
	doJSON(t, app, req, http.StatusCreated, &proposal)
	return proposal
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
