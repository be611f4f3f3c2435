package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	common "github.com/gmit-kupang/sensus-jemaat/internal/common/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/manajemen/services"
)

type DashboardController struct {
	Service *services.DashboardService
	loc     *time.Location
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	loc, err := time.LoadLocation("Asia/Makassar")
	if err != nil {
		loc = time.FixedZone("WITA", 8*60*60)
	}
	return &DashboardController{Service: svc, loc: loc}
}

// GetDashboard handles GET /api/admin/dashboard?lingkungan=&rentang_awal=dd/mm/yyyy&rentang_akhir=dd/mm/yyyy
func (dc *DashboardController) GetDashboard(c echo.Context) error {
	now := time.Now().In(dc.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, dc.loc)
	// tanpa rentang: hari ini saja
	parse := func(s string) (time.Time, error) {
		if s == "" {
			return today, nil
		}
		return time.ParseInLocation("02/01/2006", s, dc.loc)
	}

	start, err := parse(c.QueryParam("rentang_awal"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, common.Response{Status: http.StatusBadRequest, Message: "invalid rentang_awal"})
	}
	end, err := parse(c.QueryParam("rentang_akhir"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, common.Response{Status: http.StatusBadRequest, Message: "invalid rentang_akhir"})
	}
	if end.Before(start) {
		return c.JSON(http.StatusBadRequest, common.Response{Status: http.StatusBadRequest, Message: "rentang_akhir sebelum rentang_awal"})
	}

	dash, err := dc.Service.GetDashboardData(c.Request().Context(), c.QueryParam("lingkungan"), start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, common.Response{
			Status:  http.StatusInternalServerError,
			Message: "failed to get dashboard: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, common.Response{Status: http.StatusOK, Message: "Dashboard sensus", Data: dash})
}
