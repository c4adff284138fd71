package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/auth"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/cache"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/core"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/metrics"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/middleware"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/models"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/services"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	router   *gin.Engine
	store    *store.Store
	identity *services.IdentityService
}

// newTestServer wires the handlers to an in-memory store with the same
// routes the application registers. External authentication is disabled.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithVerifier(t, nil)
}

// newTestServerWithVerifier builds the same routes with external
// authentication backed by external.
func newTestServerWithVerifier(t *testing.T, external core.ExternalVerifier) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.New(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	m := metrics.NewNoopMetrics()
	identity := services.NewIdentityService(
		s,
		auth.BcryptHasher{Cost: bcrypt.MinCost},
		token.NewLocalTokenProvider("handlers-test-secret", time.Hour),
		external,
		cache.NewMemoryCache[models.User](),
		time.Minute,
		m,
	)

	authHandler := NewAuthHandler(identity)
	externalHandler := NewExternalAuthHandler(identity)
	projectHandler := NewProjectHandler(services.NewProjectService(s, m))
	taskHandler := NewTaskHandler(services.NewTaskService(s, m))
	dashboardHandler := NewDashboardHandler(services.NewDashboardService(s, m))
	userHandler := NewUserHandler(identity)

	r := gin.New()
	requireAuth := middleware.RequireAuth(identity)

	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/profile", requireAuth, authHandler.Profile)
	authGroup.PUT("/profile", requireAuth, authHandler.UpdateProfile)
	authGroup.POST("/logout", requireAuth, authHandler.Logout)
	authGroup.POST("/entra/validate-token",
		middleware.OptionalExternalAuth(identity), externalHandler.ValidateToken)

	api := r.Group("/api", requireAuth)
	api.POST("/projects", projectHandler.Create)
	api.GET("/projects", projectHandler.List)
	api.GET("/projects/:id", projectHandler.Get)
	api.PUT("/projects/:id", projectHandler.Update)
	api.DELETE("/projects/:id", projectHandler.Delete)
	api.POST("/projects/:id/collaborators", projectHandler.AddCollaborator)
	api.DELETE("/projects/:id/collaborators/:userId", projectHandler.RemoveCollaborator)
	api.POST("/tasks", taskHandler.Create)
	api.GET("/tasks", taskHandler.List)
	api.GET("/tasks/:id", taskHandler.Get)
	api.PUT("/tasks/:id", taskHandler.Update)
	api.PATCH("/tasks/:id/reorder", taskHandler.Reorder)
	api.DELETE("/tasks/:id", taskHandler.Delete)
	api.GET("/dashboard/stats", dashboardHandler.Stats)
	api.GET("/users/search", userHandler.Search)

	return &testServer{router: r, store: s, identity: identity}
}

func (ts *testServer) do(
	t *testing.T,
	method, path, bearer string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// register creates a local user through the API and returns its id and token.
func (ts *testServer) register(t *testing.T, name, email string) (string, string) {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	user := body["user"].(map[string]any)
	return user["id"].(string), body["token"].(string)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func field(t *testing.T, body map[string]any, object, key string) any {
	t.Helper()
	inner, ok := body[object].(map[string]any)
	require.True(t, ok, "missing %q in response", object)
	return inner[key]
}
