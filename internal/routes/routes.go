package routes

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/internal/common/middlewares"
	common "github.com/gmit-kupang/sensus-jemaat/internal/common/models"
	formControllers "github.com/gmit-kupang/sensus-jemaat/internal/formulir/controllers"
	formRoutes "github.com/gmit-kupang/sensus-jemaat/internal/formulir/routes"
	formServices "github.com/gmit-kupang/sensus-jemaat/internal/formulir/services"
	jemaatControllers "github.com/gmit-kupang/sensus-jemaat/internal/jemaat/controllers"
	jemaatRoutes "github.com/gmit-kupang/sensus-jemaat/internal/jemaat/routes"
	jemaatServices "github.com/gmit-kupang/sensus-jemaat/internal/jemaat/services"
	manajemenControllers "github.com/gmit-kupang/sensus-jemaat/internal/manajemen/controllers"
	manajemenRoutes "github.com/gmit-kupang/sensus-jemaat/internal/manajemen/routes"
	manajemenServices "github.com/gmit-kupang/sensus-jemaat/internal/manajemen/services"
)

// Deps berisi semua dependensi yang dibutuhkan routes.
type Deps struct {
	DB          *sql.DB
	Congregants *jemaatServices.CongregantService
	Sessions    *formServices.SessionService
	JWTSecret   []byte
	Logger      *zap.Logger
}

// Init menginisialisasi semua routes menggunakan Echo framework
func Init(e *echo.Echo, d Deps) {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	e.Use(middleware.Recover())
	e.Use(middlewares.RequestLogger(d.Logger))
	e.Use(middleware.CORS())

	// Inisialisasi service
	congregantService := d.Congregants
	if congregantService == nil {
		congregantService = jemaatServices.NewCongregantService(d.DB, d.Logger)
	}
	adminService := manajemenServices.NewAdminService(d.DB)
	dashboardService := manajemenServices.NewDashboardService(d.DB)

	// Inisialisasi controller dengan service yang sesuai
	congregantController := jemaatControllers.NewCongregantController(congregantService)
	adminController := manajemenControllers.NewAdminController(adminService, d.JWTSecret)
	dashboardController := manajemenControllers.NewDashboardController(dashboardService)
	wizardController := formControllers.NewWizardController(d.Sessions, d.Logger)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, common.Response{Status: http.StatusOK, Message: "OK"})
	})

	// Grup API utama
	api := e.Group("/api")

	jemaatRoutes.RegisterCongregantRoutes(api, congregantController, d.JWTSecret)
	manajemenRoutes.RegisterAdminRoutes(api, adminController, dashboardController, d.JWTSecret)
	formRoutes.RegisterWizardRoutes(api, wizardController)
	formRoutes.RegisterLookupRoutes(api)
}
