package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"SchoolBridge/internal/apperr"
	"SchoolBridge/internal/auth"
	"SchoolBridge/pkg/response"
)

// JWTMiddleware authenticates the bearer token and stashes the claims in
// the request context for handlers and the RBAC layer.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Error(c, apperr.New(apperr.KindUnauthorized, "missing token"))
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := auth.ParseToken(tokenString)
		if err != nil {
			return response.Error(c, apperr.New(apperr.KindUnauthorized, "invalid or expired token"))
		}

		c.Set("user", claims)
		return next(c)
	}
}
