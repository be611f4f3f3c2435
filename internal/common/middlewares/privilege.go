package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole memeriksa apakah klaim JWT memiliki salah satu role yang diizinkan.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return unauthorized(c, "Missing or invalid JWT claims")
			}
			for _, r := range roles {
				if claims.Role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]interface{}{
				"status":  http.StatusForbidden,
				"message": "Akses ditolak untuk role " + claims.Role,
				"data":    nil,
			})
		}
	}
}
