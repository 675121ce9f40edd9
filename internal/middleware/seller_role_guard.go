package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SellerRoleGuard lets only SELLER tokens through. Runs after AuthJWT.
func SellerRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Not Authorized"))
			}

			if role != RoleSeller {
				return c.JSON(http.StatusForbidden, errorJSON("seller only"))
			}

			return next(c)
		}
	}
}
