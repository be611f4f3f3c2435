package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	common "github.com/gmit-kupang/sensus-jemaat/internal/common/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/lookup"
)

// GetLingkungan mengembalikan seluruh tabel lingkungan, atau rayon milik satu
// lingkungan bila query lingkungan diisi.
// GET /api/lookup/lingkungan?lingkungan=
func GetLingkungan(c echo.Context) error {
	name := c.QueryParam("lingkungan")
	if name == "" {
		return c.JSON(http.StatusOK, common.Response{
			Status:  http.StatusOK,
			Message: "Daftar lingkungan",
			Data:    map[string]interface{}{"names": lookup.LingkunganNames(), "rayon": lookup.Lingkungan},
		})
	}
	rayons := lookup.Rayons(name)
	if rayons == nil {
		return c.JSON(http.StatusNotFound, common.Response{Status: http.StatusNotFound, Message: "Lingkungan tidak dikenal"})
	}
	return c.JSON(http.StatusOK, common.Response{Status: http.StatusOK, Message: "Daftar rayon", Data: rayons})
}

// GetWilayah menelusuri kota → kecamatan → kelurahan.
// GET /api/lookup/wilayah?city=&district=
func GetWilayah(c echo.Context) error {
	city, district := c.QueryParam("city"), c.QueryParam("district")
	var data []string
	switch {
	case city == "":
		data = lookup.Cities()
	case district == "":
		data = lookup.Districts(city)
	default:
		data = lookup.Subdistricts(city, district)
	}
	if len(data) == 0 {
		return c.JSON(http.StatusNotFound, common.Response{Status: http.StatusNotFound, Message: "Wilayah tidak dikenal"})
	}
	return c.JSON(http.StatusOK, common.Response{Status: http.StatusOK, Message: "Daftar wilayah", Data: data})
}
