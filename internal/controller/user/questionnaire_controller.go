package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wellcheck_backend/internal/controller/httperr"
	"wellcheck_backend/internal/controller/middleware"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/model"
	"wellcheck_backend/internal/service"
)

type QuestionnaireController struct {
	catalogService    service.CatalogService
	submissionService service.SubmissionService
}

func NewQuestionnaireController(cs service.CatalogService, ss service.SubmissionService) *QuestionnaireController {
	return &QuestionnaireController{catalogService: cs, submissionService: ss}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// ListQuestionnaires godoc
// @Summary List published questionnaires
// @Tags Questionnaires
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuestionnaireSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /questionnaires [get]
func (c *QuestionnaireController) ListQuestionnaires(ctx *gin.Context) {
	questionnaires, err := c.catalogService.ListPublished()
	if err != nil {
		log.Error().Err(err).Msg("ListQuestionnaires failed")
		httperr.Respond(ctx, err, "Failed to list questionnaires")
		return
	}
	ctx.JSON(http.StatusOK, questionnaires)
}

// GetQuestionnaire godoc
// @Summary Get a questionnaire with its questions and choices
// @Tags Questionnaires
// @Produce json
// @Security BearerAuth
// @Param questionnaire_id path int true "Questionnaire ID"
// @Success 200 {object} dto.QuestionnaireDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /questionnaires/{questionnaire_id} [get]
func (c *QuestionnaireController) GetQuestionnaire(ctx *gin.Context) {
	id, ok := pathID(ctx, "questionnaire_id")
	if !ok {
		return
	}
	questionnaire, err := c.catalogService.GetQuestionnaire(id, false)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to load questionnaire")
		return
	}
	ctx.JSON(http.StatusOK, questionnaire)
}

// Submit godoc
// @Summary Submit answers for a questionnaire
// @Description Validates the answer set, computes the score and risk level and persists the whole response atomically.
// @Tags Questionnaires
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionnaire_id path int true "Questionnaire ID"
// @Param submission body dto.SubmissionDTO true "Answers, optionally bound to a sponsoring company"
// @Success 201 {object} dto.QuestionnaireResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Incomplete submission, foreign question or invalid choice"
// @Failure 404 {object} dto.ErrorResponse
// @Router /questionnaires/{questionnaire_id}/responses [post]
func (c *QuestionnaireController) Submit(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}
	questionnaireID, ok := pathID(ctx, "questionnaire_id")
	if !ok {
		return
	}

	var req dto.SubmissionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	response, err := c.submissionService.Submit(questionnaireID, userID, req)
	if err != nil {
		log.Warn().Err(err).Uint("questionnaireID", questionnaireID).Uint("userID", userID).Msg("Submit failed")
		httperr.Respond(ctx, err, "Failed to submit questionnaire")
		return
	}
	ctx.JSON(http.StatusCreated, response)
}

// MyResponses godoc
// @Summary List the authenticated user's past submissions
// @Tags Questionnaires
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ResponseSummaryDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /responses [get]
func (c *QuestionnaireController) MyResponses(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}
	responses, err := c.submissionService.GetUserResponses(userID)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to list responses")
		return
	}
	ctx.JSON(http.StatusOK, responses)
}

// GetResponse godoc
// @Summary Get a submission with its per-question answers
// @Tags Questionnaires
// @Produce json
// @Security BearerAuth
// @Param response_id path int true "Response ID"
// @Success 200 {object} dto.QuestionnaireResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /responses/{response_id} [get]
func (c *QuestionnaireController) GetResponse(ctx *gin.Context) {
	id, ok := pathID(ctx, "response_id")
	if !ok {
		return
	}
	response, err := c.submissionService.GetResponseDetails(id)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to load response")
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// Tips godoc
// @Summary List tips for a questionnaire at a given risk level
// @Tags Questionnaires
// @Produce json
// @Security BearerAuth
// @Param questionnaire_id path int true "Questionnaire ID"
// @Param risk_level query string true "Risk level" Enums(LOW, MEDIUM, HIGH)
// @Success 200 {array} dto.TipDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /questionnaires/{questionnaire_id}/tips [get]
func (c *QuestionnaireController) Tips(ctx *gin.Context) {
	id, ok := pathID(ctx, "questionnaire_id")
	if !ok {
		return
	}
	riskLevel := model.RiskLevel(ctx.Query("risk_level"))
	switch riskLevel {
	case model.RiskLow, model.RiskMedium, model.RiskHigh:
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "risk_level must be LOW, MEDIUM or HIGH"})
		return
	}

	tips, err := c.catalogService.TipsFor(id, riskLevel)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to load tips")
		return
	}
	ctx.JSON(http.StatusOK, tips)
}

// Pending godoc
// @Summary List active company questionnaires the user has not answered yet
// @Tags Questionnaires
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PendingQuestionnaireDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /questionnaires/pending [get]
func (c *QuestionnaireController) Pending(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}
	pending, err := c.catalogService.PendingForUser(userID)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to list pending questionnaires")
		return
	}
	ctx.JSON(http.StatusOK, pending)
}

// Mandatory godoc
// @Summary List published mandatory questionnaires the user has not answered
// @Tags Questionnaires
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuestionnaireSummaryDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /questionnaires/mandatory [get]
func (c *QuestionnaireController) Mandatory(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}
	mandatory, err := c.catalogService.MandatoryForUser(userID)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to list mandatory questionnaires")
		return
	}
	ctx.JSON(http.StatusOK, mandatory)
}
