package account

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wellcheck_backend/internal/controller/httperr"
	"wellcheck_backend/internal/controller/middleware"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/service"
)

type AccountController struct {
	accountService service.AccountService
}

func NewAccountController(accountService service.AccountService) *AccountController {
	return &AccountController{accountService: accountService}
}

// Register godoc
// @Summary Register a new user account
// @Description Creates an account and sends an email verification link.
// @Tags Account
// @Accept json
// @Produce json
// @Param registration body dto.RegisterDTO true "Registration data"
// @Success 201 {object} dto.UserDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or email already taken"
// @Failure 500 {object} dto.ErrorResponse
// @Router /accounts/register [post]
func (c *AccountController) Register(ctx *gin.Context) {
	var req dto.RegisterDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	user, err := c.accountService.Register(req)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("Register failed")
		httperr.Respond(ctx, err, "Failed to register")
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Log in with email and password
// @Tags Account
// @Accept json
// @Produce json
// @Param credentials body dto.LoginDTO true "Login credentials"
// @Success 200 {object} dto.AuthTokenDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid email or password"
// @Router /accounts/login [post]
func (c *AccountController) Login(ctx *gin.Context) {
	var req dto.LoginDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	auth, err := c.accountService.Login(req)
	if err != nil {
		httperr.Respond(ctx, err, "Login failed")
		return
	}
	ctx.JSON(http.StatusOK, auth)
}

// VerifyEmail godoc
// @Summary Verify an email address
// @Description Redeems the verification token sent at registration.
// @Tags Account
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired token"
// @Router /accounts/verify-email [get]
func (c *AccountController) VerifyEmail(ctx *gin.Context) {
	msg, err := c.accountService.VerifyEmail(ctx.Query("token"))
	if err != nil {
		httperr.Respond(ctx, err, "Email verification failed")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}

// RequestPasswordReset godoc
// @Summary Request a password reset email
// @Description Always returns 200; whether the email exists is not revealed.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetRequestDTO true "Account email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /accounts/password-reset/request [post]
func (c *AccountController) RequestPasswordReset(ctx *gin.Context) {
	var req dto.PasswordResetRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.accountService.RequestPasswordReset(req); err != nil {
		httperr.Respond(ctx, err, "Failed to request password reset")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "If the email exists, a reset link has been sent"})
}

// ResetPassword godoc
// @Summary Reset the password with a reset token
// @Tags Account
// @Accept json
// @Produce json
// @Param reset body dto.PasswordResetDTO true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired token"
// @Router /accounts/password-reset [post]
func (c *AccountController) ResetPassword(ctx *gin.Context) {
	var req dto.PasswordResetDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.accountService.ResetPassword(req); err != nil {
		httperr.Respond(ctx, err, "Password reset failed")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated"})
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /accounts/me [get]
func (c *AccountController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}
	user, err := c.accountService.GetProfile(userID)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to load profile")
		return
	}
	ctx.JSON(http.StatusOK, user)
}
