package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/example/storefront/pkg/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxUserID   = "userID"
	ctxUsername = "username"
	ctxEmail    = "email"
)

// SessionReader resolves a bearer token into the identity it was issued for.
type SessionReader interface {
	GetSession(ctx context.Context, token string) (*repository.Session, error)
}

// AuthRequired rejects requests without a valid bearer token: 401 when the
// header is missing, 400 when the token does not resolve to a session.
func AuthRequired(sessions SessionReader, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			logger.Warn("Access denied - no token provided", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Access denied. No token provided.",
			})
			return
		}

		session, err := sessions.GetSession(c.Request.Context(), token)
		if err != nil {
			logger.Warn("Invalid token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid token.",
			})
			return
		}

		c.Set(ctxUserID, session.UserID)
		c.Set(ctxUsername, session.Username)
		c.Set(ctxEmail, session.Email)
		c.Next()
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
