package company

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wellcheck_backend/internal/controller/httperr"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/service"
)

type CompanyQuestionnaireController struct {
	cqService service.CompanyQuestionnaireService
}

func NewCompanyQuestionnaireController(cqService service.CompanyQuestionnaireService) *CompanyQuestionnaireController {
	return &CompanyQuestionnaireController{cqService: cqService}
}

// Attach godoc
// @Summary Attach a questionnaire to a company
// @Description A questionnaire can be attached to a company at most once. New pairings start active.
// @Tags Company Questionnaires
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param company_id path int true "Company ID"
// @Param pairing body dto.CompanyQuestionnaireCreateDTO true "Questionnaire to attach"
// @Success 201 {object} dto.CompanyQuestionnaireDTO
// @Failure 400 {object} dto.ErrorResponse "Already attached"
// @Failure 404 {object} dto.ErrorResponse
// @Router /companies/{company_id}/questionnaires [post]
func (c *CompanyQuestionnaireController) Attach(ctx *gin.Context) {
	companyID, ok := pathID(ctx, "company_id")
	if !ok {
		return
	}
	var req dto.CompanyQuestionnaireCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	cq, err := c.cqService.Attach(companyID, req)
	if err != nil {
		log.Warn().Err(err).Uint("companyID", companyID).Msg("Attach questionnaire failed")
		httperr.Respond(ctx, err, "Failed to attach questionnaire")
		return
	}
	ctx.JSON(http.StatusCreated, cq)
}

// List godoc
// @Summary List a company's attached questionnaires
// @Tags Company Questionnaires
// @Produce json
// @Security BearerAuth
// @Param company_id path int true "Company ID"
// @Success 200 {array} dto.CompanyQuestionnaireDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/{company_id}/questionnaires [get]
func (c *CompanyQuestionnaireController) List(ctx *gin.Context) {
	companyID, ok := pathID(ctx, "company_id")
	if !ok {
		return
	}
	cqs, err := c.cqService.ListByCompany(companyID)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to list company questionnaires")
		return
	}
	ctx.JSON(http.StatusOK, cqs)
}

// SetActive godoc
// @Summary Toggle a company questionnaire's active flag
// @Description Persists the flag, then flips the enabled state of every scheduler job attached through notification rules.
// @Tags Company Questionnaires
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param company_questionnaire_id path int true "Company Questionnaire ID"
// @Param update body dto.CompanyQuestionnaireUpdateDTO true "New active state"
// @Success 200 {object} dto.CompanyQuestionnaireDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /company-questionnaires/{company_questionnaire_id} [patch]
func (c *CompanyQuestionnaireController) SetActive(ctx *gin.Context) {
	id, ok := pathID(ctx, "company_questionnaire_id")
	if !ok {
		return
	}
	var req dto.CompanyQuestionnaireUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	cq, err := c.cqService.SetCurrentlyActive(id, *req.CurrentlyActive)
	if err != nil {
		log.Warn().Err(err).Uint("companyQuestionnaireID", id).Msg("SetActive failed")
		httperr.Respond(ctx, err, "Failed to update company questionnaire")
		return
	}
	ctx.JSON(http.StatusOK, cq)
}

// CreateRule godoc
// @Summary Create a recurring notification rule
// @Description Registers a cron job that reminds the company's employees to fill the questionnaire. The job follows the pairing's active flag.
// @Tags Company Questionnaires
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param company_questionnaire_id path int true "Company Questionnaire ID"
// @Param rule body dto.RuleCreateDTO true "Rule type and cron expression"
// @Success 201 {object} dto.RuleDTO
// @Failure 400 {object} dto.ErrorResponse "Bad cron expression"
// @Failure 404 {object} dto.ErrorResponse
// @Router /company-questionnaires/{company_questionnaire_id}/rules [post]
func (c *CompanyQuestionnaireController) CreateRule(ctx *gin.Context) {
	id, ok := pathID(ctx, "company_questionnaire_id")
	if !ok {
		return
	}
	var req dto.RuleCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	rule, err := c.cqService.CreateRule(id, req)
	if err != nil {
		log.Warn().Err(err).Uint("companyQuestionnaireID", id).Msg("CreateRule failed")
		httperr.Respond(ctx, err, "Failed to create rule")
		return
	}
	ctx.JSON(http.StatusCreated, rule)
}

// ListRules godoc
// @Summary List a company questionnaire's notification rules
// @Tags Company Questionnaires
// @Produce json
// @Security BearerAuth
// @Param company_questionnaire_id path int true "Company Questionnaire ID"
// @Success 200 {array} dto.RuleDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /company-questionnaires/{company_questionnaire_id}/rules [get]
func (c *CompanyQuestionnaireController) ListRules(ctx *gin.Context) {
	id, ok := pathID(ctx, "company_questionnaire_id")
	if !ok {
		return
	}
	rules, err := c.cqService.ListRules(id)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to list rules")
		return
	}
	ctx.JSON(http.StatusOK, rules)
}

// DeleteRule godoc
// @Summary Delete a notification rule
// @Description Soft deletes the rule and disables its scheduler job.
// @Tags Company Questionnaires
// @Produce json
// @Security BearerAuth
// @Param rule_id path int true "Rule ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /rules/{rule_id} [delete]
func (c *CompanyQuestionnaireController) DeleteRule(ctx *gin.Context) {
	id, ok := pathID(ctx, "rule_id")
	if !ok {
		return
	}
	if err := c.cqService.DeleteRule(id); err != nil {
		httperr.Respond(ctx, err, "Failed to delete rule")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Rule deleted"})
}
