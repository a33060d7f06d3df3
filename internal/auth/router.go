package auth

import (
	"github.com/gin-gonic/gin"
)

type Router struct {
	controller *Controller
	protect    gin.HandlerFunc
}

// NewRouter takes the auth middleware guarding /logout and /me
func NewRouter(controller *Controller, protect gin.HandlerFunc) *Router {
	return &Router{controller: controller, protect: protect}
}

func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", authRouter.controller.Register)
		auth.POST("/login", authRouter.controller.Login)
		auth.POST("/refresh", authRouter.controller.RefreshToken)

		protected := auth.Group("")
		protected.Use(authRouter.protect)
		{
			protected.POST("/logout", authRouter.controller.Logout)
			protected.GET("/me", authRouter.controller.GetMe)
		}
	}
}
