package middleware

import (
	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/controller"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/core/utils"

	"github.com/labstack/echo/v4"
	"net/http"
)

// Middleware bundles the request middlewares shared by module routers.
type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// AuthMiddleware validates the bearer token and stores claims in the context
// under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, appErr := utils.GetTokenFromHeader(c)
			if appErr != nil {
				return controller.NewErrorResponse(http.StatusUnauthorized, appErr.Code, appErr.Message)
			}

			claims, appErr := utils.ValidateAndParseToken(tokenString)
			if appErr != nil {
				return controller.NewErrorResponse(http.StatusUnauthorized, appErr.Code, appErr.Message)
			}

			if claims.Scope != constants.ScopeTokenAccess {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Token scope not allowed")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
