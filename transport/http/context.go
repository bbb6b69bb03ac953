package http

import (
	"github.com/gin-gonic/gin"

	"github.com/propstack/walletgate/core"
)

const (
	sessionContextKey = "walletSession"
	addressContextKey = "walletAddress"
	failureContextKey = "walletAuthFailure"
)

func setSession(c *gin.Context, session *core.Session) {
	c.Set(sessionContextKey, session)
	c.Set(addressContextKey, session.Address)
}

func setAuthFailure(c *gin.Context, err error) {
	c.Set(failureContextKey, err)
}

// CurrentSession returns the validated session attached to the request, if
// any. It never fails: an absent or invalid credential simply reports false.
func CurrentSession(c *gin.Context) (*core.Session, bool) {
	v, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	session, ok := v.(*core.Session)
	return session, ok
}

// CurrentAddress returns the verified wallet address attached to the
// request, if any.
func CurrentAddress(c *gin.Context) (string, bool) {
	v, exists := c.Get(addressContextKey)
	if !exists {
		return "", false
	}
	address, ok := v.(string)
	return address, ok
}

// MustAddress returns the verified wallet address set by RequireWallet. It
// must only be called from handlers behind that middleware.
func MustAddress(c *gin.Context) string {
	return c.GetString(addressContextKey)
}

// AuthFailure reports why the best-effort validation pass rejected the
// presented credential, for logging and metrics. It is never surfaced to the
// unauthenticated caller.
func AuthFailure(c *gin.Context) (error, bool) {
	v, exists := c.Get(failureContextKey)
	if !exists {
		return nil, false
	}
	err, ok := v.(error)
	return err, ok
}
