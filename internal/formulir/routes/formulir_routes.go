package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/controllers"
)

// RegisterWizardRoutes memasang endpoint wizard. Semua tanpa JWT; sesi
// diidentifikasi oleh id sesi.
func RegisterWizardRoutes(api *echo.Group, wc *controllers.WizardController) {
	wizard := api.Group("/wizard")
	wizard.POST("/sessions", wc.CreateSession)
	wizard.GET("/devices/:deviceId/last-registration", wc.LastRegistration)

	s := wizard.Group("/sessions/:id")
	s.GET("", wc.GetSession)
	s.DELETE("", wc.CloseSession)
	s.GET("/ws", wc.Events)
	s.PATCH("/form", wc.PatchForm)
	s.POST("/advance", wc.Advance)
	s.POST("/retreat", wc.Retreat)
	s.POST("/confirm", wc.Confirm)
	s.PUT("/assets", wc.UpdateAsset)
	s.PUT("/disability", wc.UpdateDisability)

	s.POST("/members", wc.AddMember)
	s.POST("/members/close", wc.CloseMember)
	s.PUT("/members/:index", wc.UpdateMember)
	s.DELETE("/members/:index", wc.RemoveMember)
	s.POST("/members/:index/edit", wc.EditMember)
	s.POST("/members/:index/skills", wc.AddSkill)
	s.DELETE("/members/:index/skills", wc.RemoveSkill)
	s.POST("/members/:index/contributions", wc.AddContribution)
	s.DELETE("/members/:index/contributions", wc.RemoveContribution)
}

// RegisterLookupRoutes memasang tabel statis pilihan wilayah.
func RegisterLookupRoutes(api *echo.Group) {
	lookup := api.Group("/lookup")
	lookup.GET("/lingkungan", controllers.GetLingkungan)
	lookup.GET("/wilayah", controllers.GetWilayah)
}
