package middleware

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/labstack/echo/v4"

	"SchoolBridge/internal/apperr"
	"SchoolBridge/internal/auth"
	"SchoolBridge/pkg/response"
)

var (
	enforcer     *casbin.Enforcer
	enforcerOnce sync.Once
	enforcerErr  error
)

// initEnforcer loads the RBAC model and policy once. Objects in the
// policy are the registered echo route patterns (including :id params).
func initEnforcer() (*casbin.Enforcer, error) {
	enforcerOnce.Do(func() {
		enforcer, enforcerErr = casbin.NewEnforcer("rbac_model.conf", "rbac_policy.csv")
	})
	return enforcer, enforcerErr
}

// CasbinMiddleware checks the (role, route, method) policy for every
// authenticated request.
func CasbinMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*auth.Claims)
		if !ok || claims == nil {
			return response.Error(c, apperr.New(apperr.KindUnauthorized, "missing user claims"))
		}

		enf, err := initEnforcer()
		if err != nil {
			return response.Error(c, apperr.Wrap(apperr.KindInternal, "authorization system error", err))
		}

		allowed, err := enf.Enforce(claims.Role, c.Path(), c.Request().Method)
		if err != nil {
			return response.Error(c, apperr.Wrap(apperr.KindInternal, "authorization system error", err))
		}
		if !allowed {
			return response.Error(c, apperr.New(apperr.KindForbidden, "insufficient permissions"))
		}
		return next(c)
	}
}
