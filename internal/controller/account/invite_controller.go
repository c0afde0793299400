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

type InviteController struct {
	inviteService service.InviteService
}

func NewInviteController(inviteService service.InviteService) *InviteController {
	return &InviteController{inviteService: inviteService}
}

// CreateInvite godoc
// @Summary Invite a new user to the platform
// @Description Creates a bare account for the receiver and emails them an invite link.
// @Tags Invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invite body dto.InviteCreateDTO true "Invite data"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "User already exists"
// @Failure 401 {object} dto.ErrorResponse
// @Router /invites [post]
func (c *InviteController) CreateInvite(ctx *gin.Context) {
	senderID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}

	var req dto.InviteCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.inviteService.Create(senderID, req); err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("CreateInvite failed")
		httperr.Respond(ctx, err, "Failed to create invite")
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Invite sent"})
}

// AcceptInvite godoc
// @Summary Accept an individual invite
// @Description The receiver redeems their invite token and sets a password. Succeeds at most once per invite.
// @Tags Invites
// @Accept json
// @Produce json
// @Param acceptance body dto.InviteAcceptDTO true "Invite token and chosen password"
// @Success 200 {object} dto.InviteAcceptedDTO
// @Failure 401 {object} dto.ErrorResponse "Unknown token"
// @Failure 409 {object} dto.ErrorResponse "Invite already used or cancelled"
// @Router /invites/accept [post]
func (c *InviteController) AcceptInvite(ctx *gin.Context) {
	var req dto.InviteAcceptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.inviteService.Accept(req)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to accept invite")
		return
	}
	ctx.JSON(http.StatusOK, result)
}
