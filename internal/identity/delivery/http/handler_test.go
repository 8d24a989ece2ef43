package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/storefront/internal/identity/repository"
	"github.com/tair/storefront/pkg/auth"
)

func setupTest(t *testing.T) *mux.Router {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	repo := repository.NewGormUserRepository(db)
	require.NoError(t, repo.AutoMigrate())

	tokens := auth.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	handler := NewUserHandler(repo, tokens, auth.NewMemoryBlacklist(), nil)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doJSON(router *mux.Router, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, router *mux.Router, username string) {
	w := doJSON(router, "POST", "/register", "", map[string]interface{}{
		"username":     username,
		"email":        username + "@example.com",
		"password":     "password123",
		"phone_number": "+77001234567",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func login(t *testing.T, router *mux.Router, username string) (access, refresh string) {
	w := doJSON(router, "POST", "/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		User struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, username, resp.User.Username)
	return resp.Access, resp.Refresh
}

func TestRegisterValidation(t *testing.T) {
	router := setupTest(t)

	w := doJSON(router, "POST", "/register", "", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Detail string            `json:"detail"`
		Fields map[string]string `json:"fields"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "email")
	assert.Contains(t, resp.Fields, "password")
	assert.Contains(t, resp.Fields, "phone_number")
}

func TestRegisterNeverReturnsPassword(t *testing.T) {
	router := setupTest(t)

	w := doJSON(router, "POST", "/register", "", map[string]interface{}{
		"username":     "alice",
		"email":        "alice@example.com",
		"password":     "password123",
		"phone_number": "+77001234567",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	router := setupTest(t)
	register(t, router, "alice")

	w := doJSON(router, "POST", "/register", "", map[string]interface{}{
		"username":     "alice",
		"email":        "other@example.com",
		"password":     "password123",
		"phone_number": "+77001234567",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "username")
}

func TestRegisterAgeBounds(t *testing.T) {
	router := setupTest(t)

	for _, age := range []int{15, 71} {
		w := doJSON(router, "POST", "/register", "", map[string]interface{}{
			"username":     fmt.Sprintf("user%d", age),
			"email":        fmt.Sprintf("user%d@example.com", age),
			"password":     "password123",
			"phone_number": "+77001234567",
			"age":          age,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestLoginWrongPasswordIsGeneric(t *testing.T) {
	router := setupTest(t)
	register(t, router, "alice")

	w := doJSON(router, "POST", "/login", "", map[string]string{
		"username": "alice",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")

	// Unknown username reads exactly the same
	w2 := doJSON(router, "POST", "/login", "", map[string]string{
		"username": "nobody",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, w.Body.String(), w2.Body.String())
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	router := setupTest(t)
	register(t, router, "alice")
	_, refresh := login(t, router, "alice")

	w := doJSON(router, "POST", "/login/refresh", "", map[string]string{"refresh": refresh})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Access string `json:"access"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Access)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	router := setupTest(t)
	register(t, router, "alice")
	access, _ := login(t, router, "alice")

	w := doJSON(router, "POST", "/login/refresh", "", map[string]string{"refresh": access})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutBlacklistsRefreshToken(t *testing.T) {
	router := setupTest(t)
	register(t, router, "alice")
	_, refresh := login(t, router, "alice")

	w := doJSON(router, "POST", "/logout", "", map[string]string{"refresh": refresh})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "successfully logged out")

	// The revoked token no longer refreshes
	w = doJSON(router, "POST", "/login/refresh", "", map[string]string{"refresh": refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "blacklisted")

	// And cannot be logged out twice
	w = doJSON(router, "POST", "/logout", "", map[string]string{"refresh": refresh})
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestLogoutWithoutToken(t *testing.T) {
	router := setupTest(t)

	w := doJSON(router, "POST", "/logout", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "refresh token not provided")
}

func TestProfileRequiresAuth(t *testing.T) {
	router := setupTest(t)

	w := doJSON(router, "GET", "/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileListContainsOnlySelf(t *testing.T) {
	router := setupTest(t)
	register(t, router, "alice")
	register(t, router, "bob")
	access, _ := login(t, router, "alice")

	w := doJSON(router, "GET", "/user", access, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var users []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 1)
	assert.Equal(t, "alice", users[0]["username"])
}

func TestForeignProfileReadsAsAbsent(t *testing.T) {
	router := setupTest(t)
	register(t, router, "alice")
	register(t, router, "bob")
	access, _ := login(t, router, "alice")

	// alice is user 1, bob is user 2
	w := doJSON(router, "GET", "/user/2", access, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "GET", "/user/1", access, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateProfileKeepsImmutableFields(t *testing.T) {
	router := setupTest(t)
	register(t, router, "alice")
	access, _ := login(t, router, "alice")

	w := doJSON(router, "PUT", "/user/1", access, map[string]interface{}{
		"email":        "new@example.com",
		"phone_number": "+77009999999",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new@example.com", resp["email"])
	assert.Equal(t, "simple", resp["status"])
}

func TestDeleteAccount(t *testing.T) {
	router := setupTest(t)
	register(t, router, "alice")
	access, _ := login(t, router, "alice")

	w := doJSON(router, "DELETE", "/user/1", access, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The account is gone
	w = doJSON(router, "POST", "/login", "", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
