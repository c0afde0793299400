package company

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wellcheck_backend/internal/controller/httperr"
	"wellcheck_backend/internal/controller/middleware"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/service"
)

type CompanyController struct {
	companyService       service.CompanyService
	companyInviteService service.CompanyInviteService
	submissionService    service.SubmissionService
}

func NewCompanyController(cs service.CompanyService, cis service.CompanyInviteService, ss service.SubmissionService) *CompanyController {
	return &CompanyController{companyService: cs, companyInviteService: cis, submissionService: ss}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func callerID(ctx *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
	}
	return userID, ok
}

// CreateCompany godoc
// @Summary Register a company
// @Description The authenticated creator becomes the company's first admin employee.
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param company body dto.CompanyCreateDTO true "Company data"
// @Success 201 {object} dto.CompanyDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /companies [post]
func (c *CompanyController) CreateCompany(ctx *gin.Context) {
	creatorID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.CompanyCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	company, err := c.companyService.Create(creatorID, req)
	if err != nil {
		log.Warn().Err(err).Str("name", req.Name).Msg("CreateCompany failed")
		httperr.Respond(ctx, err, "Failed to create company")
		return
	}
	ctx.JSON(http.StatusCreated, company)
}

// GetCompany godoc
// @Summary Get a company
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param company_id path int true "Company ID"
// @Success 200 {object} dto.CompanyDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /companies/{company_id} [get]
func (c *CompanyController) GetCompany(ctx *gin.Context) {
	id, ok := pathID(ctx, "company_id")
	if !ok {
		return
	}
	company, err := c.companyService.Get(id)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to load company")
		return
	}
	ctx.JSON(http.StatusOK, company)
}

// ListEmployees godoc
// @Summary List a company's employees
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param company_id path int true "Company ID"
// @Success 200 {array} dto.EmployeeDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /companies/{company_id}/employees [get]
func (c *CompanyController) ListEmployees(ctx *gin.Context) {
	id, ok := pathID(ctx, "company_id")
	if !ok {
		return
	}
	employees, err := c.companyService.Employees(id)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to list employees")
		return
	}
	ctx.JSON(http.StatusOK, employees)
}

// QuestionnaireFillRate godoc
// @Summary Questionnaire fill rate for a company
// @Description Company admins only. Share of employees with at least one company-sponsored submission since the cutoff date.
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param company_id path int true "Company ID"
// @Param questionnaire_id path int true "Questionnaire ID"
// @Param since query string false "Cutoff date (YYYY-MM-DD); all time when omitted"
// @Success 200 {object} dto.FillRateDTO
// @Failure 400 {object} dto.ErrorResponse "Not an admin or bad date"
// @Router /companies/{company_id}/questionnaires/{questionnaire_id}/fill-rate [get]
func (c *CompanyController) QuestionnaireFillRate(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	companyID, ok := pathID(ctx, "company_id")
	if !ok {
		return
	}
	questionnaireID, ok := pathID(ctx, "questionnaire_id")
	if !ok {
		return
	}

	var since time.Time
	if raw := ctx.Query("since"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid since date, want YYYY-MM-DD"})
			return
		}
		since = parsed
	}

	rate, err := c.submissionService.CompanyFillRate(userID, companyID, questionnaireID, since)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to compute fill rate")
		return
	}
	ctx.JSON(http.StatusOK, rate)
}

// CreateInvite godoc
// @Summary Invite a user to join a company
// @Description Company admins only. Unknown emails get an account with a generated initial password included in the invite email.
// @Tags Company Invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param company_id path int true "Company ID"
// @Param invite body dto.CompanyInviteCreateDTO true "Invite data"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Not an admin or already an employee"
// @Failure 404 {object} dto.ErrorResponse
// @Router /companies/{company_id}/invites [post]
func (c *CompanyController) CreateInvite(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	companyID, ok := pathID(ctx, "company_id")
	if !ok {
		return
	}
	var req dto.CompanyInviteCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	msg, err := c.companyInviteService.Create(companyID, userID, req)
	if err != nil {
		log.Warn().Err(err).Uint("companyID", companyID).Msg("CreateInvite failed")
		httperr.Respond(ctx, err, "Failed to create company invite")
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: msg})
}

// AcceptInvite godoc
// @Summary Accept a company invite
// @Description Only the invite's receiver may accept. Succeeds at most once; joining creates the employee membership atomically.
// @Tags Company Invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param acceptance body dto.CompanyInviteActionDTO true "Invite token"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Unknown token"
// @Failure 403 {object} dto.ErrorResponse "Invite belongs to someone else"
// @Failure 409 {object} dto.ErrorResponse "Invite already used or cancelled"
// @Router /company-invites/accept [post]
func (c *CompanyController) AcceptInvite(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.CompanyInviteActionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	msg, err := c.companyInviteService.Accept(userID, req)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to accept company invite")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}

// CancelInvite godoc
// @Summary Cancel a company invite
// @Description The receiver or a company admin may cancel an invite still in SENT.
// @Tags Company Invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cancellation body dto.CompanyInviteActionDTO true "Invite token"
// @Success 200 {object} dto.MessageResponse
// @Failure 409 {object} dto.ErrorResponse "Invite not in SENT state"
// @Router /company-invites/cancel [post]
func (c *CompanyController) CancelInvite(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.CompanyInviteActionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	msg, err := c.companyInviteService.Cancel(userID, req)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to cancel company invite")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}

// ListInvites godoc
// @Summary List a company's invites
// @Tags Company Invites
// @Produce json
// @Security BearerAuth
// @Param company_id path int true "Company ID"
// @Success 200 {array} dto.CompanyInviteDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/{company_id}/invites [get]
func (c *CompanyController) ListInvites(ctx *gin.Context) {
	companyID, ok := pathID(ctx, "company_id")
	if !ok {
		return
	}
	invites, err := c.companyInviteService.List(companyID)
	if err != nil {
		httperr.Respond(ctx, err, "Failed to list company invites")
		return
	}
	ctx.JSON(http.StatusOK, invites)
}
