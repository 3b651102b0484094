package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gghubblog/internal/config"
	"gghubblog/internal/service"
)

func newAuthService(ttl time.Duration) service.AuthService {
	return service.NewAuthService(nil, &config.Config{
		JWTSecretKey:  "test-secret-key",
		TokenDuration: ttl,
	})
}

func issueToken(t *testing.T, svc service.AuthService, userID int) string {
	token, _, err := svc.IssueToken(userID, "test@example.com")
	require.NoError(t, err)
	return token
}

func echoUserID(t *testing.T, called *bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*called = true
		json.NewEncoder(w).Encode(map[string]int{"user_id": UserIDFromContext(r.Context())})
	}
}

func assertUnauthorized(t *testing.T, rr *httptest.ResponseRecorder, expectedMessage string) {
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, true, response["isError"])
	assert.Equal(t, expectedMessage, response["message"])
}

func TestRequireAuth(t *testing.T) {
	svc := newAuthService(time.Hour)
	requireAuth := RequireAuth(svc)

	t.Run("Валидный токен кладет id в контекст", func(t *testing.T) {
		var called bool
		handler := requireAuth(echoUserID(t, &called))

		req := httptest.NewRequest(http.MethodGet, "/status", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, 42))
		rr := httptest.NewRecorder()

		handler(rr, req)

		require.True(t, called)
		var response map[string]int
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, 42, response["user_id"])
	})

	t.Run("Префикс Bearer не обязателен", func(t *testing.T) {
		var called bool
		handler := requireAuth(echoUserID(t, &called))

		req := httptest.NewRequest(http.MethodGet, "/status", nil)
		req.Header.Set("Authorization", issueToken(t, svc, 7))
		rr := httptest.NewRecorder()

		handler(rr, req)

		require.True(t, called)
		var response map[string]int
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, 7, response["user_id"])
	})

	t.Run("Без токена - 401", func(t *testing.T) {
		var called bool
		handler := requireAuth(echoUserID(t, &called))

		req := httptest.NewRequest(http.MethodGet, "/status", nil)
		rr := httptest.NewRecorder()

		handler(rr, req)

		assert.False(t, called)
		assertUnauthorized(t, rr, "Токен отсутствует")
	})

	t.Run("Просроченный токен - отдельное сообщение", func(t *testing.T) {
		expiredSvc := newAuthService(-time.Minute)

		var called bool
		handler := requireAuth(echoUserID(t, &called))

		req := httptest.NewRequest(http.MethodGet, "/status", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, expiredSvc, 1))
		rr := httptest.NewRecorder()

		handler(rr, req)

		assert.False(t, called)
		assertUnauthorized(t, rr, "Токен просрочен")
	})

	t.Run("Мусор вместо токена - 401", func(t *testing.T) {
		var called bool
		handler := requireAuth(echoUserID(t, &called))

		req := httptest.NewRequest(http.MethodGet, "/status", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rr := httptest.NewRecorder()

		handler(rr, req)

		assert.False(t, called)
		assertUnauthorized(t, rr, "Невалидный токен")
	})
}

func TestOptionalAuth(t *testing.T) {
	svc := newAuthService(time.Hour)
	optionalAuth := OptionalAuth(svc)

	t.Run("Валидный токен кладет id в контекст", func(t *testing.T) {
		var called bool
		handler := optionalAuth(echoUserID(t, &called))

		req := httptest.NewRequest(http.MethodGet, "/profile/3", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, 3))
		rr := httptest.NewRecorder()

		handler(rr, req)

		require.True(t, called)
		var response map[string]int
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, 3, response["user_id"])
	})

	t.Run("Без токена запрос идет дальше анонимно", func(t *testing.T) {
		var called bool
		handler := optionalAuth(echoUserID(t, &called))

		req := httptest.NewRequest(http.MethodGet, "/profile/3", nil)
		rr := httptest.NewRecorder()

		handler(rr, req)

		require.True(t, called)
		var response map[string]int
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, 0, response["user_id"])
	})

	t.Run("Невалидный токен не ошибка, а анонимный запрос", func(t *testing.T) {
		var called bool
		handler := optionalAuth(echoUserID(t, &called))

		req := httptest.NewRequest(http.MethodGet, "/profile/3", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rr := httptest.NewRecorder()

		handler(rr, req)

		require.True(t, called)
		assert.Equal(t, http.StatusOK, rr.Code)

		var response map[string]int
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, 0, response["user_id"])
	})
}

func TestCORSMiddleware(t *testing.T) {
	cfg := &config.Config{AllowedOrigin: "http://localhost:3000"}

	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	handler := CORSMiddleware(cfg)(next)

	t.Run("Заголовки выставляются на обычный запрос", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.True(t, called)
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight обрывается на миддлвари", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodOptions, "/posts", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
