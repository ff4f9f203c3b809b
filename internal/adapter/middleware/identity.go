package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// HeaderUserID carries the caller identity set by the upstream auth layer.
const HeaderUserID = "X-User-Id"

// RequireUser rejects requests without a 32-hex X-User-Id.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
			if !reHex32.MatchString(id) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or invalid " + HeaderUserID})
			}
			return next(c)
		}
	}
}
