package http

import (
	"github.com/gin-gonic/gin"

	"github.com/propstack/walletgate/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService) *gin.Engine {
	router := gin.Default()

	// Best-effort session extraction runs on every request; it never
	// rejects by itself.
	router.Use(WalletSession(authService))

	handlers := NewAuthHandlers(authService)

	auth := router.Group("/auth")
	{
		auth.GET("/nonce", handlers.Nonce)
		auth.POST("/verify", handlers.Verify)
		auth.POST("/logout", handlers.Logout)
		auth.GET("/status", handlers.Status)
		auth.GET("/me", RequireWallet(authService), handlers.Me)
	}

	return router
}
