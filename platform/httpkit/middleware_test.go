package httpkit

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"storefront_backend/platform/logger"
)

type secretConfig string

func (s secretConfig) GetJWTAccessSecret() string { return string(s) }

const testSecret = secretConfig("middleware-secret")

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func accessClaims(sub string, roles ...string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   sub,
		"store": "DEFAULT",
		"type":  AccessTokenType,
		"roles": roles,
		"exp":   time.Now().Add(time.Minute).Unix(),
	}
}

func newAuthEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/me", AuthRequired(testSecret), func(c *gin.Context) {
		id := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"subject": id.Subject(), "store": c.GetString(ContextTokenStoreKey)})
	})
	engine.GET("/admin", AuthRequired(testSecret), RequireRole("ADMIN"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return engine
}

func get(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequiredAcceptsAccessToken(t *testing.T) {
	engine := newAuthEngine()

	rec := get(engine, "/me", signToken(t, string(testSecret), accessClaims("alice")))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"subject":"alice","store":"DEFAULT"}`, rec.Body.String())
}

func TestAuthRequiredRejectsBadTokens(t *testing.T) {
	engine := newAuthEngine()

	require.Equal(t, http.StatusUnauthorized, get(engine, "/me", "").Code)
	require.Equal(t, http.StatusUnauthorized, get(engine, "/me", signToken(t, "other-secret", accessClaims("alice"))).Code)

	refresh := accessClaims("alice")
	refresh["type"] = "refresh"
	require.Equal(t, http.StatusUnauthorized, get(engine, "/me", signToken(t, string(testSecret), refresh)).Code)

	expired := accessClaims("alice")
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	require.Equal(t, http.StatusUnauthorized, get(engine, "/me", signToken(t, string(testSecret), expired)).Code)

	require.Equal(t, http.StatusUnauthorized, get(engine, "/me", signToken(t, string(testSecret), accessClaims(" "))).Code)
}

func TestRequireRole(t *testing.T) {
	engine := newAuthEngine()

	require.Equal(t, http.StatusForbidden, get(engine, "/admin", signToken(t, string(testSecret), accessClaims("alice", "CUSTOMER"))).Code)
	require.Equal(t, http.StatusNoContent, get(engine, "/admin", signToken(t, string(testSecret), accessClaims("root", "ADMIN"))).Code)
}

func TestRequestIDIsEchoedOrGenerated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}

func TestRateLimitRejectsBurstOverflow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewIPRateLimiter(0.001, 2, logger.NewWithWriter("production", io.Discard))
	engine := gin.New()
	engine.Use(limiter.RateLimit())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
