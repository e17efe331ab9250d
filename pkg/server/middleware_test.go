package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/storefront/pkg/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSessionReader struct {
	sessions map[string]*repository.Session
}

func (f *fakeSessionReader) GetSession(_ context.Context, token string) (*repository.Session, error) {
	session, ok := f.sessions[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return session, nil
}

func newAuthTestRouter(sessions SessionReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthRequired(sessions, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":   c.GetString(ctxUserID),
			"username": c.GetString(ctxUsername),
		})
	})
	return router
}

func TestAuthRequired_NoToken(t *testing.T) {
	router := newAuthTestRouter(&fakeSessionReader{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token provided")
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	router := newAuthTestRouter(&fakeSessionReader{sessions: map[string]*repository.Session{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthRequired_ValidToken(t *testing.T) {
	router := newAuthTestRouter(&fakeSessionReader{
		sessions: map[string]*repository.Session{
			"tok-1": {UserID: "user-1", Username: "alice", Email: "alice@example.com"},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "alice")
}
