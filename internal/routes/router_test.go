package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ansy5566/ctosaas/internal/config"
	"github.com/Ansy5566/ctosaas/internal/infrastructure/memory"
	"github.com/Ansy5566/ctosaas/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *testServer {
	t.Helper()
	cfg := config.Default()
	cfg.RateLimit.GeneralRPS = 1000
	cfg.RateLimit.GeneralBurst = 1000
	for _, fn := range mutate {
		fn(cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return &testServer{t: t, router: SetupRoutes(ctx, cfg, memory.NewStore())}
}

func (s *testServer) do(method, path string, body interface{}, credential string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if credential != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: credential})
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

// register signs a user up and returns the session credential.
func (s *testServer) register(email, password, name string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": email, "password": password, "name": name,
	}, "")
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	cookie := sessionCookie(w)
	require.NotNil(s.t, cookie)
	return cookie.Value
}

func TestHealthAndFeeds(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", nil, "").Code)

	var announcements []map[string]interface{}
	w := s.do(http.MethodGet, "/api/v1/system/announcements", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &announcements)
	assert.Len(t, announcements, 1)

	var changelog []map[string]interface{}
	w = s.do(http.MethodGet, "/api/v1/system/changelog", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &changelog)
	require.Len(t, changelog, 1)
	assert.Equal(t, "0.1.0", changelog[0]["version"])
}

func TestRegisterLoginSession(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": " Alice@Example.com ", "password": "secret123", "name": "Alice",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.False(t, cookie.Secure)
	assert.Equal(t, 30*24*60*60, cookie.MaxAge)

	var auth struct {
		User struct {
			ID           string `json:"id"`
			Email        string `json:"email"`
			PasswordHash string `json:"passwordHash"`
			Subscription struct {
				Plan  string `json:"plan"`
				Quota struct {
					Used int `json:"used"`
				} `json:"quota"`
			} `json:"subscription"`
		} `json:"user"`
		Token string `json:"token"`
	}
	env := decode(t, w, &auth)
	assert.True(t, env.Success)
	assert.Equal(t, "alice@example.com", auth.User.Email)
	assert.Empty(t, auth.User.PasswordHash)
	assert.Equal(t, "free", auth.User.Subscription.Plan)
	assert.Equal(t, 0, auth.User.Subscription.Quota.Used)
	assert.Equal(t, cookie.Value, auth.Token)

	w = s.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "ALICE@example.com", "password": "x", "name": "Other",
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodGet, "/api/v1/auth/session", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/v1/auth/session", nil, cookie.Value)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), auth.User.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	bw := httptest.NewRecorder()
	s.router.ServeHTTP(bw, req)
	assert.Equal(t, http.StatusOK, bw.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "alice@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, sessionCookie(w))

	wrong := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "alice@example.com", "password": "secret124"}, "")
	unknown := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "bob@example.com", "password": "secret123"}, "")
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, decode(t, wrong, nil).Error, decode(t, unknown, nil).Error)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "a@example.com", "password": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "a@example.com", "password": "x", "name": "   "}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/register", `{"email":`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutIsIdempotent(t *testing.T) {
	s := newTestServer(t)
	credential := s.register("a@example.com", "pw", "A")

	w := s.do(http.MethodPost, "/api/v1/auth/logout", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/logout", nil, credential)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := sessionCookie(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/auth/session", nil, credential).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/auth/logout", nil, credential).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/auth/session", nil, "garbage").Code)
}

func TestPasswordReset(t *testing.T) {
	s := newTestServer(t)
	s.register("a@example.com", "old-pass", "A")

	var forgot struct {
		Token string `json:"token"`
	}
	w := s.do(http.MethodPost, "/api/v1/auth/forgot-password", map[string]string{"email": "A@example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &forgot)
	assert.True(t, strings.HasPrefix(forgot.Token, "reset_"))

	w = s.do(http.MethodPost, "/api/v1/auth/forgot-password", map[string]string{"email": "nobody@example.com"}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/reset-password", map[string]string{"token": "reset_bogus", "newPassword": "x"}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/reset-password", map[string]string{"token": forgot.Token, "newPassword": "new-pass"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/reset-password", map[string]string{"token": forgot.Token, "newPassword": "again"}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@example.com", "password": "old-pass"}, "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@example.com", "password": "new-pass"}, "").Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/user/profile"},
		{http.MethodGet, "/api/v1/user/statistics"},
		{http.MethodPost, "/api/v1/user/delete"},
		{http.MethodGet, "/api/v1/tasks"},
		{http.MethodPost, "/api/v1/tasks"},
		{http.MethodGet, "/api/v1/products"},
		{http.MethodPost, "/api/v1/products/batch/delete"},
		{http.MethodGet, "/api/v1/export"},
		{http.MethodGet, "/api/v1/export/exp_1/download"},
	} {
		w := s.do(route.method, route.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}

func TestCollectionWorkflow(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice@example.com", "pw", "Alice")
	bob := s.register("bob@example.com", "pw", "Bob")

	var created struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		TotalProducts int    `json:"totalProducts"`
	}
	w := s.do(http.MethodPost, "/api/v1/tasks", map[string]string{
		"platform": "shopify", "type": "category", "url": "https://shop.example/collections/all",
	}, alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &created)
	assert.Equal(t, "completed", created.Status)
	assert.Equal(t, 5, created.TotalProducts)

	w = s.do(http.MethodPost, "/api/v1/tasks", map[string]string{"platform": "ebay", "type": "single", "url": "u"}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/tasks/"+created.ID, nil, bob).Code)

	w = s.do(http.MethodPost, "/api/v1/tasks/"+created.ID+"/cancel", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &created)
	assert.Equal(t, "completed", created.Status)

	var page struct {
		Items []struct {
			ID       string `json:"id"`
			Variants []struct {
				Price float64 `json:"price"`
			} `json:"variants"`
		} `json:"items"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	}
	w = s.do(http.MethodGet, "/api/v1/products?platform=shopify&limit=2&page=3", nil, alice)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &page)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 1)

	w = s.do(http.MethodGet, "/api/v1/products?status=gone", nil, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/products", nil, alice)
	decode(t, w, &page)
	require.Len(t, page.Items, 5)
	first := page.Items[0].ID

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/products/"+first, nil, bob).Code)

	w = s.do(http.MethodPatch, "/api/v1/products/"+first, map[string]interface{}{"title": "Renamed", "userId": "usr_x"}, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Renamed"`)

	w = s.do(http.MethodPatch, "/api/v1/products/"+first, map[string]interface{}{"description": " line one\nline two\u0007 "}, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"description":"line one\nline two"`)

	ids := []string{page.Items[0].ID, page.Items[1].ID}
	var updated struct {
		Updated int `json:"updated"`
	}
	w = s.do(http.MethodPost, "/api/v1/products/batch/update", map[string]interface{}{
		"action":     "updatePrice",
		"productIds": ids,
		"data":       map[string]interface{}{"priceModifier": map[string]interface{}{"type": "decrease", "value": 1000}},
	}, alice)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &updated)
	assert.Equal(t, 2, updated.Updated)

	w = s.do(http.MethodGet, "/api/v1/products/"+ids[0], nil, alice)
	assert.Contains(t, w.Body.String(), `"price":0`)

	var deleted struct {
		Deleted int `json:"deleted"`
	}
	w = s.do(http.MethodPost, "/api/v1/products/batch/delete", map[string]interface{}{"productIds": []string{ids[1]}}, bob)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &deleted)
	assert.Equal(t, 0, deleted.Deleted)

	w = s.do(http.MethodPost, "/api/v1/products/batch/delete", map[string]interface{}{"productIds": []string{}}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "productIds must not be empty")

	var stats struct {
		TotalProducts      int            `json:"totalProducts"`
		CompletedTasks     int            `json:"completedTasks"`
		ProductsByPlatform map[string]int `json:"productsByPlatform"`
	}
	w = s.do(http.MethodGet, "/api/v1/user/statistics", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &stats)
	assert.Equal(t, 5, stats.TotalProducts)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Len(t, stats.ProductsByPlatform, 7)

	var sub struct {
		Quota struct {
			Used int `json:"used"`
		} `json:"quota"`
	}
	w = s.do(http.MethodGet, "/api/v1/user/subscription", nil, alice)
	decode(t, w, &sub)
	assert.Equal(t, 5, sub.Quota.Used)
}

func TestExportWorkflow(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice@example.com", "pw", "Alice")
	bob := s.register("bob@example.com", "pw", "Bob")

	w := s.do(http.MethodPost, "/api/v1/tasks", map[string]string{"platform": "amazon", "type": "single", "url": "u"}, alice)
	require.Equal(t, http.StatusCreated, w.Code)

	var record struct {
		ID       string `json:"id"`
		FileURL  string `json:"fileUrl"`
		FileName string `json:"fileName"`
		CSV      string `json:"csv"`
	}
	w = s.do(http.MethodPost, "/api/v1/export", map[string]string{"format": "woocommerce"}, alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &record)
	assert.Empty(t, record.CSV)
	assert.Equal(t, "/api/v1/export/"+record.ID+"/download", record.FileURL)

	w = s.do(http.MethodPost, "/api/v1/export", map[string]string{"format": "magento"}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, record.FileURL, nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="`+record.FileName+`"`, w.Header().Get("Content-Disposition"))
	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "sku,name,description,regular_price,tags,type,status", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",19.99,\"demo, amazon\",simple,publish"), lines[1])

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, record.FileURL, nil, bob).Code)

	var records []map[string]interface{}
	w = s.do(http.MethodGet, "/api/v1/export", nil, alice)
	decode(t, w, &records)
	require.Len(t, records, 1)
	assert.NotContains(t, records[0], "csv")
}

func TestDeleteAccount(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice@example.com", "pw", "Alice")
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/tasks", map[string]string{"platform": "shopify", "type": "single", "url": "u"}, alice).Code)

	w := s.do(http.MethodPost, "/api/v1/user/delete", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := sessionCookie(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/user/profile", nil, alice).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "alice@example.com", "password": "pw"}, "").Code)

	s.register("alice@example.com", "pw2", "Alice again")
}

func TestQuotaEnforced(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) { cfg.Quota.Enforce = true })
	alice := s.register("alice@example.com", "pw", "Alice")

	for i := 0; i < 20; i++ {
		w := s.do(http.MethodPost, "/api/v1/tasks", map[string]string{"platform": "shopify", "type": "category", "url": "u"}, alice)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := s.do(http.MethodPost, "/api/v1/tasks", map[string]string{"platform": "shopify", "type": "single", "url": "u"}, alice)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "collection quota exceeded", decode(t, w, nil).Error)
}

func TestRequestTooLarge(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) { cfg.Request.MaxBytes = 16 })

	w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "someone@example.com", "password": "pw"}, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
