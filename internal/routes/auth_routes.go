package routes

import (
	"ain-oman-crm/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the public authentication routes. These do not
// go through the token middleware.
func RegisterAuthRoutes(r *gin.Engine) {
	r.POST("/login", handlers.LoginHandler)
	r.GET("/logout", handlers.LogoutHandler)
}
