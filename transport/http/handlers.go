package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propstack/walletgate/core"
	"github.com/propstack/walletgate/service"
)

// AuthHandlers contains HTTP handlers for auth endpoints
type AuthHandlers struct {
	authService *service.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
	}
}

// Nonce handles GET /auth/nonce?address=0x...
func (h *AuthHandlers) Nonce(c *gin.Context) {
	address := c.Query("address")

	issued, err := h.authService.CreateChallenge(c.Request.Context(), address)
	if err != nil {
		if errors.Is(err, core.ErrInvalidAddress) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid Ethereum address format. Must be 0x followed by 40 hex characters.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"nonce":      issued.Nonce,
		"message":    issued.Message,
		"expires_in": issued.ExpiresIn,
	})
}

// Verify handles POST /auth/verify
func (h *AuthHandlers) Verify(c *gin.Context) {
	var req struct {
		Message   string `json:"message" binding:"required"`
		Signature string `json:"signature" binding:"required"`
		Nonce     string `json:"nonce" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	address, err := h.authService.Verify(c.Request.Context(), req.Message, req.Signature, req.Nonce)
	if err != nil {
		status, msg := verifyError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	session, err := h.authService.IssueSession(c.Request.Context(), address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": session.AccessToken,
		"token_type":   session.TokenType,
		"expires_at":   session.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z"),
		"expires_in":   session.ExpiresIn,
		"address":      session.Address,
	})
}

// verifyError maps a verification failure to a status code and a stable
// client-facing reason.
func verifyError(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrMalformedSignature):
		return http.StatusBadRequest, "Invalid signature format. Must be a 0x prefixed 65-byte hex string."
	case errors.Is(err, core.ErrChallengeNotFound):
		return http.StatusUnauthorized, "Invalid or expired nonce"
	case errors.Is(err, core.ErrChallengeUsed):
		return http.StatusUnauthorized, "Nonce already used"
	case errors.Is(err, core.ErrChallengeExpired):
		return http.StatusUnauthorized, "Nonce expired"
	case errors.Is(err, core.ErrNonceMismatch):
		return http.StatusUnauthorized, "Message does not match challenge"
	case errors.Is(err, core.ErrInvalidSignature):
		return http.StatusUnauthorized, "Invalid signature"
	case errors.Is(err, core.ErrAddressMismatch):
		return http.StatusUnauthorized, "Address mismatch"
	default:
		return http.StatusInternalServerError, "Authentication failed"
	}
}

// Me handles GET /auth/me for an authenticated wallet
func (h *AuthHandlers) Me(c *gin.Context) {
	session, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":          session.Address,
		"is_authenticated": true,
		"auth_method":      session.AuthMethod,
	})
}

// Logout handles POST /auth/logout. Tokens are stateless, so this is an
// informational acknowledgement only.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if address, ok := CurrentAddress(c); ok {
		h.authService.Logout(c.Request.Context(), address)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
		"note":    "Please discard your token on the client side",
	})
}

// Status handles GET /auth/status
func (h *AuthHandlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "operational",
		"auth_method": "SIWE (Sign-In With Ethereum)",
		"standard":    "EIP-4361",
		"features": gin.H{
			"nonce_expiry_seconds": int(h.authService.ChallengeTTL().Seconds()),
			"jwt_expiry_seconds":   int(h.authService.SessionTTL().Seconds()),
			"chain_id":             h.authService.ChainID(),
		},
	})
}
