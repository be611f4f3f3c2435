package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gmit-kupang/sensus-jemaat/pkg/utils"
)

// ContextKeyClaims adalah kunci echo.Context untuk klaim JWT.
const ContextKeyClaims = "claims"

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"status":  http.StatusUnauthorized,
		"message": message,
		"data":    nil,
	})
}

// JWTMiddleware memeriksa header "Authorization: Bearer <token>".
func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized(c, "Authorization header missing")
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return unauthorized(c, "Invalid authorization header")
			}
			claims, err := utils.ValidateJWTToken(secret, parts[1])
			if err != nil {
				return unauthorized(c, "Invalid token: "+err.Error())
			}
			c.Set(ContextKeyClaims, claims)
			return next(c)
		}
	}
}

// ClaimsFrom mengambil klaim yang dipasang JWTMiddleware.
func ClaimsFrom(c echo.Context) (*utils.Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*utils.Claims)
	return claims, ok
}
