package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	common "github.com/gmit-kupang/sensus-jemaat/internal/common/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/manajemen/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/manajemen/services"
	"github.com/gmit-kupang/sensus-jemaat/pkg/utils"
)

const tokenTTL = 12 * time.Hour

type AdminController struct {
	Service   *services.AdminService
	JWTSecret []byte
	validate  *validator.Validate
}

func NewAdminController(service *services.AdminService, jwtSecret []byte) *AdminController {
	return &AdminController{Service: service, JWTSecret: jwtSecret, validate: validator.New()}
}

// Login menukar username dan password dengan token JWT.
// POST /api/admin/login
func (ac *AdminController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, common.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	if err := ac.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, common.Response{
			Status:  http.StatusBadRequest,
			Message: "Username and Password are required",
		})
	}

	a, err := ac.Service.AuthenticateAdmin(c.Request().Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, common.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid username or password",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, common.Response{
			Status:  http.StatusInternalServerError,
			Message: "Login gagal: " + err.Error(),
		})
	}

	token, err := utils.GenerateJWTToken(ac.JWTSecret, a.ID, a.Username, a.Role, time.Now().Add(tokenTTL))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, common.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, common.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"id":       a.ID,
			"nama":     a.Nama,
			"username": a.Username,
			"role":     a.Role,
			"token":    token,
		},
	})
}
