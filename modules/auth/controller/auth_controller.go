package controller

import (
	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/controller"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/core/utils"
	"blend-calendar-api/modules/auth/dto"
	"blend-calendar-api/modules/auth/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthController handles authentication HTTP requests
type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

// NewAuthController creates a new controller
func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
	}
}

// Register handles POST /auth/register
// @Summary Register
// @Description Create a new account together with its personal schedule
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration fields"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /public/auth/register [post]
func (c *AuthController) Register(ctx echo.Context) error {
	var req dto.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.AuthService.Register(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Registered successfully")
}

// Login handles POST /auth/login
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} errors.AppError
// @Router /public/auth/login [post]
func (c *AuthController) Login(ctx echo.Context) error {
	var req dto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.AuthService.Login(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Logged in successfully")
}

// RefreshToken handles POST /auth/refresh
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenPair
// @Failure 401 {object} errors.AppError
// @Router /public/auth/refresh [post]
func (c *AuthController) RefreshToken(ctx echo.Context) error {
	var req dto.RefreshTokenRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.AuthService.RefreshToken(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Token refreshed")
}

// GetMe handles GET /auth/me
// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} errors.AppError
// @Router /private/auth/me [get]
func (c *AuthController) GetMe(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.AuthService.GetMe(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

func (c *AuthController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}
