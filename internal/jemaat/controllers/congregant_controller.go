package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	common "github.com/gmit-kupang/sensus-jemaat/internal/common/models"
	formModels "github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/validation"
	"github.com/gmit-kupang/sensus-jemaat/internal/jemaat/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/jemaat/services"
)

type CongregantController struct {
	Service *services.CongregantService
}

func NewCongregantController(service *services.CongregantService) *CongregantController {
	return &CongregantController{Service: service}
}

// CreateCongregant menerima formulir utuh dari wizard.
// POST /api/congregants
func (cc *CongregantController) CreateCongregant(c echo.Context) error {
	f := formModels.NewFormAggregate()
	if err := json.NewDecoder(c.Request().Body).Decode(f); err != nil {
		return c.JSON(http.StatusBadRequest, common.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload: " + err.Error(),
		})
	}
	f.Normalize()

	id, err := cc.Service.CreateCongregant(c.Request().Context(), f)
	if err != nil {
		var v *validation.Violation
		if errors.As(err, &v) {
			return c.JSON(http.StatusUnprocessableEntity, common.Response{
				Status:  http.StatusUnprocessableEntity,
				Message: v.Message,
				Data:    v,
			})
		}
		return c.JSON(http.StatusInternalServerError, common.Response{
			Status:  http.StatusInternalServerError,
			Message: "Gagal menyimpan data jemaat",
		})
	}

	return c.JSON(http.StatusCreated, common.Response{
		Status:  http.StatusCreated,
		Message: "Data jemaat berhasil disimpan",
		Data:    map[string]interface{}{"id": id},
	})
}

// GetStatus dipakai alur "cek status" pendaftaran.
// GET /api/congregants/:id/status
func (cc *CongregantController) GetStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, common.Response{
			Status:  http.StatusBadRequest,
			Message: "ID pendaftaran tidak valid",
		})
	}

	st, err := cc.Service.GetStatus(c.Request().Context(), id)
	if errors.Is(err, services.ErrCongregantNotFound) {
		return c.JSON(http.StatusNotFound, common.Response{
			Status:  http.StatusNotFound,
			Message: err.Error(),
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, common.Response{
			Status:  http.StatusInternalServerError,
			Message: "Gagal mengambil status: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, common.Response{
		Status:  http.StatusOK,
		Message: "Status pendaftaran ditemukan",
		Data:    st,
	})
}

// GetForm mengembalikan formulir lengkap untuk admin.
// GET /api/congregants/:id
func (cc *CongregantController) GetForm(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, common.Response{
			Status:  http.StatusBadRequest,
			Message: "ID jemaat tidak valid",
		})
	}
	f, err := cc.Service.GetForm(c.Request().Context(), id)
	if errors.Is(err, services.ErrCongregantNotFound) {
		return c.JSON(http.StatusNotFound, common.Response{Status: http.StatusNotFound, Message: err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, common.Response{
			Status:  http.StatusInternalServerError,
			Message: "Gagal mengambil data jemaat: " + err.Error(),
		})
	}
	return c.JSON(http.StatusOK, common.Response{Status: http.StatusOK, Message: "Data jemaat ditemukan", Data: f})
}

// ListCongregants menampilkan daftar jemaat berhalaman.
// GET /api/congregants?page=1&per_page=20&lingkungan=&rayon=&q=
func (cc *CongregantController) ListCongregants(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	filter := models.ListFilter{
		Lingkungan: c.QueryParam("lingkungan"),
		Rayon:      c.QueryParam("rayon"),
		Q:          c.QueryParam("q"),
	}

	list, total, err := cc.Service.List(c.Request().Context(), filter, page, perPage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, common.Response{
			Status:  http.StatusInternalServerError,
			Message: "Gagal mengambil daftar jemaat: " + err.Error(),
		})
	}

	page, perPage, _ = common.NormalizePage(page, perPage)
	return c.JSON(http.StatusOK, common.Response{
		Status:  http.StatusOK,
		Message: "Daftar jemaat berhasil diambil",
		Data:    common.Page{List: list, Total: total, Page: page, PerPage: perPage},
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus dipakai admin untuk menandai pendaftaran sudah diverifikasi.
// PUT /api/congregants/:id/status
func (cc *CongregantController) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, common.Response{
			Status:  http.StatusBadRequest,
			Message: "ID jemaat tidak valid",
		})
	}
	var req updateStatusRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusBadRequest, common.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload: " + err.Error(),
		})
	}

	err = cc.Service.UpdateStatus(c.Request().Context(), id, req.Status)
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, common.Response{Status: http.StatusBadRequest, Message: err.Error()})
	case errors.Is(err, services.ErrCongregantNotFound):
		return c.JSON(http.StatusNotFound, common.Response{Status: http.StatusNotFound, Message: err.Error()})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, common.Response{
			Status:  http.StatusInternalServerError,
			Message: "Gagal mengubah status: " + err.Error(),
		})
	}
	return c.JSON(http.StatusOK, common.Response{
		Status:  http.StatusOK,
		Message: "Status pendaftaran diperbarui",
		Data:    map[string]interface{}{"id": id, "status": req.Status},
	})
}
