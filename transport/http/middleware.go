package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/propstack/walletgate/core"
	"github.com/propstack/walletgate/service"
)

func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if len(auth) < 8 || !strings.EqualFold(auth[:7], "Bearer ") {
		return "", false
	}
	return auth[7:], true
}

// WalletSession creates best-effort middleware that validates any presented
// bearer token and attaches the outcome to the request context. It never
// rejects a request: absence or invalidity just means "unauthenticated", and
// only RequireWallet downstream turns that into a failure.
func WalletSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		session, err := authService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			setAuthFailure(c, err)
			c.Next()
			return
		}

		setSession(c, session)
		c.Next()
	}
}

// RequireWallet creates middleware that fails the request unless it carries
// a valid session. It consults the WalletSession pre-pass first and only
// parses the header itself when the pre-pass did not run.
func RequireWallet(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); ok {
			c.Next()
			return
		}
		if err, failed := AuthFailure(c); failed {
			abortUnauthenticated(c, err)
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			abortUnauthenticated(c, core.ErrUnauthenticated)
			return
		}

		session, err := authService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthenticated(c, err)
			return
		}

		setSession(c, session)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, err error) {
	msg := "Not authenticated. Please sign in with your wallet."
	if errors.Is(err, core.ErrTokenExpired) {
		msg = "Token expired"
	} else if errors.Is(err, core.ErrInvalidToken) {
		msg = "Invalid token"
	}

	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
