package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the public auth endpoints; authMW guards /auth/me.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	r.POST("/login", handler.Login)
	r.POST("/verify-otp", handler.VerifyOTP)
	r.GET("/auth/me", authMW, handler.Me)
}
