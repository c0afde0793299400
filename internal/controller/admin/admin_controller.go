package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wellcheck_backend/internal/controller/httperr"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/notify"
	"wellcheck_backend/internal/service"
)

// AdminController owns the platform-admin surface: catalog management and
// company verification.
type AdminController struct {
	catalogService service.CatalogService
	companyService service.CompanyService
	dispatcher     notify.Dispatcher
}

func NewAdminController(cs service.CatalogService, comps service.CompanyService, dispatcher notify.Dispatcher) *AdminController {
	return &AdminController{catalogService: cs, companyService: comps, dispatcher: dispatcher}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// CreateQuestionnaire godoc
// @Summary (Admin) Create a questionnaire with questions and choices
// @Description TEXT questions must carry no choices; MCQ and BINARY questions need at least one.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionnaire body dto.QuestionnaireCreateDTO true "Questionnaire data"
// @Success 201 {object} dto.QuestionnaireDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/questionnaires [post]
func (c *AdminController) CreateQuestionnaire(ctx *gin.Context) {
	var req dto.QuestionnaireCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	questionnaire, notifications, err := c.catalogService.CreateQuestionnaire(req)
	if err != nil {
		log.Warn().Err(err).Str("title", req.Title).Msg("CreateQuestionnaire failed")
		httperr.Respond(ctx, err, "Failed to create questionnaire")
		return
	}
	// Non-empty when the questionnaire was created already published.
	for _, n := range notifications {
		c.dispatcher.Enqueue(n)
	}
	ctx.JSON(http.StatusCreated, questionnaire)
}

// PublishQuestionnaire godoc
// @Summary (Admin) Publish a questionnaire
// @Description Stamps published_on exactly once and notifies company admins; mandatory questionnaires fan out to every user. Republishing is rejected.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param questionnaire_id path int true "Questionnaire ID"
// @Success 200 {object} dto.QuestionnaireDTO
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already published"
// @Router /admin/questionnaires/{questionnaire_id}/publish [post]
func (c *AdminController) PublishQuestionnaire(ctx *gin.Context) {
	id, ok := pathID(ctx, "questionnaire_id")
	if !ok {
		return
	}

	questionnaire, notifications, err := c.catalogService.Publish(id)
	if err != nil {
		log.Warn().Err(err).Uint("questionnaireID", id).Msg("PublishQuestionnaire failed")
		httperr.Respond(ctx, err, "Failed to publish questionnaire")
		return
	}
	for _, n := range notifications {
		c.dispatcher.Enqueue(n)
	}
	ctx.JSON(http.StatusOK, questionnaire)
}

// GetQuestionnaire godoc
// @Summary (Admin) Get a questionnaire, including unpublished and inactive
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param questionnaire_id path int true "Questionnaire ID"
// @Success 200 {object} dto.QuestionnaireDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questionnaires/{questionnaire_id} [get]
func (c *AdminController) GetQuestionnaire(ctx *gin.Context) {
	id, ok := pathID(ctx, "questionnaire_id")
	if !ok {
		return
	}
	questionnaire, err := c.catalogService.GetQuestionnaire(id, true)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to load questionnaire")
		return
	}
	ctx.JSON(http.StatusOK, questionnaire)
}

// AddTip godoc
// @Summary (Admin) Add a tip to a questionnaire
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionnaire_id path int true "Questionnaire ID"
// @Param tip body dto.TipCreateDTO true "Tip text and risk level"
// @Success 201 {object} dto.TipDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questionnaires/{questionnaire_id}/tips [post]
func (c *AdminController) AddTip(ctx *gin.Context) {
	id, ok := pathID(ctx, "questionnaire_id")
	if !ok {
		return
	}
	var req dto.TipCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	tip, err := c.catalogService.AddTip(id, req)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to add tip")
		return
	}
	ctx.JSON(http.StatusCreated, tip)
}

// DeleteQuestionnaire godoc
// @Summary (Admin) Soft delete a questionnaire
// @Description Hides the questionnaire from default reads. Pass permanent=true to remove the row and its questions.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param questionnaire_id path int true "Questionnaire ID"
// @Param permanent query bool false "Remove permanently"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questionnaires/{questionnaire_id} [delete]
func (c *AdminController) DeleteQuestionnaire(ctx *gin.Context) {
	id, ok := pathID(ctx, "questionnaire_id")
	if !ok {
		return
	}

	var err error
	if ctx.Query("permanent") == "true" {
		err = c.catalogService.PermanentDelete(id)
	} else {
		err = c.catalogService.SoftDelete(id)
	}
	if err != nil {
		httperr.Respond(ctx, err, "Failed to delete questionnaire")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Questionnaire deleted"})
}

// ListCompanies godoc
// @Summary (Admin) List all companies
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CompanyDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/companies [get]
func (c *AdminController) ListCompanies(ctx *gin.Context) {
	companies, err := c.companyService.List()
	if err != nil {
		httperr.Respond(ctx, err, "Failed to list companies")
		return
	}
	ctx.JSON(http.StatusOK, companies)
}

// CountCompanies godoc
// @Summary (Admin) Count registered companies
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/companies/count [get]
func (c *AdminController) CountCompanies(ctx *gin.Context) {
	count, err := c.companyService.Count()
	if err != nil {
		httperr.Respond(ctx, err, "Failed to count companies")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

// VerifyCompany godoc
// @Summary (Admin) Mark a company verified
// @Description Verifying an already verified company is a no-op. Employees are notified on the first verification.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param company_id path int true "Company ID"
// @Success 200 {object} dto.CompanyDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/companies/{company_id}/verify [post]
func (c *AdminController) VerifyCompany(ctx *gin.Context) {
	id, ok := pathID(ctx, "company_id")
	if !ok {
		return
	}
	company, err := c.companyService.Verify(id)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to verify company")
		return
	}
	ctx.JSON(http.StatusOK, company)
}

// DeleteCompany godoc
// @Summary (Admin) Soft delete a company
// @Description Pass permanent=true to remove the row entirely.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param company_id path int true "Company ID"
// @Param permanent query bool false "Remove permanently"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/companies/{company_id} [delete]
func (c *AdminController) DeleteCompany(ctx *gin.Context) {
	id, ok := pathID(ctx, "company_id")
	if !ok {
		return
	}

	var err error
	if ctx.Query("permanent") == "true" {
		err = c.companyService.PermanentDelete(id)
	} else {
		err = c.companyService.SoftDelete(id)
	}
	if err != nil {
		httperr.Respond(ctx, err, "Failed to delete company")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Company deleted"})
}
