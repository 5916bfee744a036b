package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devdeck/internal/content"
	"devdeck/internal/repository/sqlstore"
	"devdeck/internal/service"
)

const (
	testSecret      = "test-jwt-secret"
	testRegisterPwd = "open-sesame"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testServer struct {
	router *gin.Engine
	store  *sqlstore.Store
}

func newTestServer(t *testing.T, mutate ...func(*Deps, *sqlstore.Store)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlstore.Open(sqlstore.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store := sqlstore.NewStore(db)
	require.NoError(t, store.Init(context.Background()))

	catalog, err := content.Load()
	require.NoError(t, err)

	users := service.NewUserService(store.Users, testRegisterPwd)
	todos := service.NewTodoService(store.Todos, store.Projects)
	prompts := service.NewPromptService(store.Prompts)
	profiles := service.NewProfileService(store.Profiles)
	quotes := service.NewQuoteService(store.Quotes)
	_, err = quotes.Seed(context.Background(), catalog.Quotes())
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	deps := Deps{
		Users:     users,
		Demo:      service.NewDemoService(service.DemoConfig{Enabled: true, Username: "demo", Password: "demo-password"}, users, todos, prompts, profiles),
		Profiles:  profiles,
		Todos:     todos,
		Prompts:   prompts,
		Assets:    service.NewAssetService(store.Assets, nil, service.AssetConfig{}),
		Sessions:  service.NewPomodoroService(store.Pomodoro),
		Contact:   service.NewContactService(store.Contacts),
		Quotes:    quotes,
		Assistant: service.NewAssistantService(nil, 0),
		Catalog:   catalog,
		DB:        db,
		JWTSecret: testSecret,
		TokenTTL:  time.Hour,
		Now:       func() time.Time { return testNow },
		Logger:    logger,
	}
	for _, m := range mutate {
		m(&deps, store)
	}

	router := gin.New()
	NewHandler(deps).RegisterRoutes(router)
	return &testServer{router: router, store: store}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) registerUser(t *testing.T, username string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username":         username,
		"password":         "password123",
		"registerPassword": testRegisterPwd,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[AuthResponse](t, rec).Token
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodOptions, "/api/todos", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRegisterLoginAndMe(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice", "password": "password123", "registerPassword": "nope",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	s.registerUser(t, "alice")

	rec = s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice", "password": "password123", "registerPassword": testRegisterPwd,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "password123"})
	require.Equal(t, http.StatusOK, rec.Code)
	auth := decode[AuthResponse](t, rec)
	assert.False(t, auth.Guest)
	require.NotNil(t, auth.User)
	assert.Equal(t, "alice", auth.User.Username)

	rec = s.do(t, http.MethodGet, "/api/auth/me", auth.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)

	rec = s.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	s := newTestServer(t)
	token := s.registerUser(t, "alice")

	later := newTestServer(t, func(d *Deps, _ *sqlstore.Store) {
		d.Now = func() time.Time { return testNow.Add(2 * time.Hour) }
	})
	rec := later.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuestCannotReadUserData(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/guest", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	auth := decode[AuthResponse](t, rec)
	assert.True(t, auth.Guest)
	assert.Nil(t, auth.User)

	for _, path := range []string{"/api/todos", "/api/prompts", "/api/profile", "/api/pomodoro"} {
		rec = s.do(t, http.MethodGet, path, auth.Token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}

	rec = s.do(t, http.MethodGet, "/api/todos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/tools/uuid", auth.Token, gin.H{"count": 2})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/pricing", auth.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/auth/me", auth.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"guest":true`)
}

func TestDemoLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/demo", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := decode[AuthResponse](t, rec).Token

	rec = s.do(t, http.MethodGet, "/api/todos", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]TodoResponse](t, rec), 4)

	disabled := newTestServer(t, func(d *Deps, _ *sqlstore.Store) { d.Demo = nil })
	rec = disabled.do(t, http.MethodPost, "/api/auth/demo", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
