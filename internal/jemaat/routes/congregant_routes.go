package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/gmit-kupang/sensus-jemaat/internal/common/middlewares"
	"github.com/gmit-kupang/sensus-jemaat/internal/jemaat/controllers"
)

// RegisterCongregantRoutes memasang endpoint jemaat di bawah grup api.
func RegisterCongregantRoutes(api *echo.Group, cc *controllers.CongregantController, jwtSecret []byte) {
	congregants := api.Group("/congregants")
	congregants.POST("", cc.CreateCongregant) // Tidak pakai JWT
	congregants.GET("/:id/status", cc.GetStatus)

	admin := []echo.MiddlewareFunc{middlewares.JWTMiddleware(jwtSecret), middlewares.RequireRole("admin")}
	congregants.GET("", cc.ListCongregants, admin...)
	congregants.GET("/:id", cc.GetForm, admin...)
	congregants.PUT("/:id/status", cc.UpdateStatus, admin...)
}
