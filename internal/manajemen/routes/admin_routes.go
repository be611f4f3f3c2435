package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/gmit-kupang/sensus-jemaat/internal/common/middlewares"
	"github.com/gmit-kupang/sensus-jemaat/internal/manajemen/controllers"
)

func RegisterAdminRoutes(api *echo.Group, ac *controllers.AdminController, dc *controllers.DashboardController, jwtSecret []byte) {
	admin := api.Group("/admin")
	admin.POST("/login", ac.Login) // Tidak pakai JWT
	admin.GET("/dashboard", dc.GetDashboard, middlewares.JWTMiddleware(jwtSecret), middlewares.RequireRole("admin"))
}
