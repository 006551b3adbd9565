package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/lhajoosten/studdit-api/internal/constants"
	"github.com/lhajoosten/studdit-api/internal/database"
	"github.com/lhajoosten/studdit-api/internal/dto"
	"github.com/lhajoosten/studdit-api/internal/middleware"
	"github.com/lhajoosten/studdit-api/internal/models"
	"github.com/lhajoosten/studdit-api/internal/repository"
	"github.com/lhajoosten/studdit-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Question{},
		&models.Answer{},
		&models.Vote{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	database.SetDB(db)

	authService := services.NewAuthService(repository.NewUserRepository(db))
	handler := NewAuthHandler(authService)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/signup", handler.Signup)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", handler.Logout)
	r.GET("/api/auth/me", middleware.RequireAuth(), handler.GetCurrentUser)

	return authTestEnv{db: db, router: r, authService: authService}
}

func (env authTestEnv) signup(t *testing.T, username string) {
	t.Helper()
	_, err := env.authService.Signup(services.SignupInput{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "supersecret",
		DisplayName: username,
	})
	require.NoError(t, err)
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func putJSON(t *testing.T, router *gin.Engine, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/signup", map[string]string{
		"username":     "newuser",
		"email":        "newuser@example.com",
		"password":     "supersecret",
		"display_name": "New User",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserProfileDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newuser", response.Username)
	require.Equal(t, 1, response.Reputation)
	require.True(t, response.IsActive)
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/signup", map[string]string{
		"username": "newuser",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Signup_DuplicateUsername(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.signup(t, "existing")

	w := postJSON(t, env.router, "/api/auth/signup", map[string]string{
		"username":     "existing",
		"email":        "other@example.com",
		"password":     "supersecret",
		"display_name": "Existing",
	})

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_LoginAndMe(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.signup(t, "alice")

	w := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The session cookie authenticates the /me call.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	meW := httptest.NewRecorder()
	env.router.ServeHTTP(meW, req)

	require.Equal(t, http.StatusOK, meW.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(meW.Body.Bytes(), &response))
	require.Equal(t, "alice", response.Username)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.signup(t, "alice")

	w := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me_RequiresSession(t *testing.T) {
	env := setupAuthTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
