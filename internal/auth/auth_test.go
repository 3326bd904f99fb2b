package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)

	t.Run("Token: Round Trip", func(t *testing.T) {
		token, err := m.GenerateAccessToken("u1", "a@example.com", RoleAdmin)
		require.NoError(t, err)

		claims, err := m.ParseAndValidate(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "a@example.com", claims.Email)
		assert.Equal(t, RoleAdmin, claims.Role)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("Token: Unique IDs", func(t *testing.T) {
		a, _ := m.GenerateAccessToken("u1", "a@example.com", "user")
		b, _ := m.GenerateAccessToken("u1", "a@example.com", "user")
		ca, err := m.ParseAndValidate(a)
		require.NoError(t, err)
		cb, err := m.ParseAndValidate(b)
		require.NoError(t, err)
		assert.NotEqual(t, ca.ID, cb.ID)
	})

	t.Run("Token: Wrong Secret", func(t *testing.T) {
		token, _ := NewJWTManager("other", time.Minute).GenerateAccessToken("u1", "a@example.com", "user")
		_, err := m.ParseAndValidate(token)
		assert.Error(t, err)
	})

	t.Run("Token: Expired", func(t *testing.T) {
		token, _ := m.GenerateAccessToken("u1", "a@example.com", "user")
		later := NewJWTManager("secret", time.Minute)
		later.now = func() time.Time { return time.Now().Add(time.Hour) }
		_, err := later.ParseAndValidate(token)
		assert.Error(t, err)
	})
}

func TestRevoker(t *testing.T) {
	r := NewRevoker()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	r.Revoke("a", now.Add(time.Minute))
	r.Revoke("b", now.Add(-time.Minute))
	assert.True(t, r.IsRevoked("a"))
	assert.False(t, r.IsRevoked("b"))

	now = now.Add(2 * time.Minute)
	assert.False(t, r.IsRevoked("a"))

	r.Revoke("c", now.Add(time.Minute))
	assert.Len(t, r.revoked, 1)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "password123"))
	assert.Error(t, h.Compare(hash, "password124"))

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).(*bcryptHasher).cost)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewJWTManager("secret", time.Minute)
	revoker := NewRevoker()

	newRouter := func(mw gin.HandlerFunc) *gin.Engine {
		r := gin.New()
		r.GET("/", mw, func(c *gin.Context) {
			c.String(http.StatusOK, "%s|%t", GetUserID(c), IsAdmin(c))
		})
		return r
	}
	do := func(r *gin.Engine, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	token, err := m.GenerateAccessToken("u1", "a@example.com", RoleAdmin)
	require.NoError(t, err)

	t.Run("AuthRequired: Valid Token", func(t *testing.T) {
		w := do(newRouter(AuthRequired(m, revoker)), "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1|true", w.Body.String())
	})

	t.Run("AuthRequired: Missing Header", func(t *testing.T) {
		w := do(newRouter(AuthRequired(m, revoker)), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("AuthRequired: Bad Scheme", func(t *testing.T) {
		w := do(newRouter(AuthRequired(m, revoker)), "Basic "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("OptionalAuth: Anonymous", func(t *testing.T) {
		w := do(newRouter(OptionalAuth(m, revoker)), "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "|false", w.Body.String())
	})

	t.Run("OptionalAuth: Invalid Token", func(t *testing.T) {
		w := do(newRouter(OptionalAuth(m, revoker)), "Bearer nope")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("AuthRequired: Revoked Token", func(t *testing.T) {
		claims, err := m.ParseAndValidate(token)
		require.NoError(t, err)
		revoker.Revoke(claims.ID, claims.ExpiresAt.Time)

		w := do(newRouter(AuthRequired(m, revoker)), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
