package service

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"wellcheck_backend/internal/apperr"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/model"
	"wellcheck_backend/internal/repository"
)

// SubmissionService validates a batch of answers against a questionnaire,
// computes the risk score, and persists the full response graph atomically.
type SubmissionService interface {
	Submit(questionnaireID, userID uint, req dto.SubmissionDTO) (*dto.QuestionnaireResponseDTO, error)
	GetResponseDetails(responseID uint) (*dto.QuestionnaireResponseDTO, error)
	GetUserResponses(userID uint) ([]dto.ResponseSummaryDTO, error)
	CompanyFillRate(callerID, companyID, questionnaireID uint, since time.Time) (*dto.FillRateDTO, error)
}

type submissionService struct {
	questionnaireRepo repository.QuestionnaireRepository
	responseRepo      repository.ResponseRepository
	employeeRepo      repository.EmployeeRepository
	db                *gorm.DB
}

func NewSubmissionService(
	questionnaireRepo repository.QuestionnaireRepository,
	responseRepo repository.ResponseRepository,
	employeeRepo repository.EmployeeRepository,
	db *gorm.DB,
) SubmissionService {
	return &submissionService{
		questionnaireRepo: questionnaireRepo,
		responseRepo:      responseRepo,
		employeeRepo:      employeeRepo,
		db:                db,
	}
}

// scoredAnswer pairs a validated answer with its weightage contribution.
type scoredAnswer struct {
	questionID   uint
	userInput    string
	contribution int
	scored       bool
}

// Submit runs full validation before any write, then persists the header and
// all line rows in a single transaction. Resubmitting identical answers
// creates a new, independent response; no deduplication is performed.
func (s *submissionService) Submit(questionnaireID, userID uint, req dto.SubmissionDTO) (*dto.QuestionnaireResponseDTO, error) {
	questionnaire, err := s.questionnaireRepo.FindByIDWithQuestions(questionnaireID, false)
	if err != nil {
		log.Warn().Err(err).Uint("questionnaireID", questionnaireID).Msg("Submit: questionnaire not found")
		return nil, apperr.NotFoundf("questionnaire %d", questionnaireID)
	}

	answers, score, riskLevel, err := s.validateAndScore(questionnaire, req.Answers)
	if err != nil {
		return nil, err
	}

	response := model.QuestionnaireResponse{
		UserID:          userID,
		CompanyID:       req.CompanyID,
		QuestionnaireID: questionnaireID,
		RiskLevel:       model.RiskLow,
	}
	response.IsActive = true

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&response).Error; err != nil {
			return fmt.Errorf("create response header: %w", err)
		}

		lines := make([]model.QuestionResponse, 0, len(answers))
		for _, a := range answers {
			line := model.QuestionResponse{
				QuestionnaireResponseID: response.ID,
				QuestionID:              a.questionID,
				UserInput:               a.userInput,
			}
			line.IsActive = true
			lines = append(lines, line)
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return fmt.Errorf("create response lines: %w", err)
			}
		}

		// Score and risk level are attached to the header inside the same
		// transaction; the header is never externally visible half-scored.
		if err := tx.Model(&model.QuestionnaireResponse{}).
			Where("id = ?", response.ID).
			Updates(map[string]any{"score": score, "risk_level": riskLevel}).Error; err != nil {
			return fmt.Errorf("attach score to response: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("questionnaireID", questionnaireID).Uint("userID", userID).Msg("Submit: transaction failed")
		return nil, err
	}

	log.Info().
		Uint("responseID", response.ID).
		Int("score", score).
		Str("riskLevel", string(riskLevel)).
		Msg("Questionnaire submitted")

	return s.GetResponseDetails(response.ID)
}

// validateAndScore checks the answer batch against the questionnaire
// definition and computes the aggregate score. Pure computation, no writes.
func (s *submissionService) validateAndScore(
	questionnaire *model.Questionnaire,
	answerDTOs []dto.AnswerDTO,
) ([]scoredAnswer, int, model.RiskLevel, error) {
	questionMap := make(map[uint]model.Question, len(questionnaire.Questions))
	for _, q := range questionnaire.Questions {
		questionMap[q.ID] = q
	}

	if len(answerDTOs) != len(questionnaire.Questions) {
		return nil, 0, "", fmt.Errorf(
			"expected %d answers, got %d: %w",
			len(questionnaire.Questions), len(answerDTOs), apperr.ErrIncompleteSubmission,
		)
	}

	answers := make([]scoredAnswer, 0, len(answerDTOs))
	answered := make(map[uint]bool, len(answerDTOs))

	for _, a := range answerDTOs {
		question, ok := questionMap[a.QuestionID]
		if !ok {
			return nil, 0, "", fmt.Errorf(
				"question %d: %w", a.QuestionID, apperr.ErrQuestionNotInQuestionnaire,
			)
		}
		if answered[a.QuestionID] {
			// A duplicated answer implies some other question went unanswered.
			return nil, 0, "", fmt.Errorf(
				"question %d answered twice: %w", a.QuestionID, apperr.ErrIncompleteSubmission,
			)
		}
		answered[a.QuestionID] = true

		sa := scoredAnswer{questionID: a.QuestionID, userInput: a.UserInput}
		if question.QuestionType.Scored() {
			matched := false
			for _, choice := range question.Choices {
				if choice.Text == a.UserInput {
					// Fractional weightages truncate to integer before summation.
					sa.contribution = int(choice.Weightage)
					sa.scored = true
					matched = true
					break
				}
			}
			if !matched {
				return nil, 0, "", fmt.Errorf(
					"question %d has no choice %q: %w", a.QuestionID, a.UserInput, apperr.ErrInvalidChoice,
				)
			}
		}
		answers = append(answers, sa)
	}

	scoredCount := 0
	total := 0
	for _, a := range answers {
		if a.scored {
			scoredCount++
			total += a.contribution
		}
	}

	// Integer average, floored. A submission of only TEXT questions scores 0.
	score := 0
	if scoredCount > 0 {
		score = total / scoredCount
	}
	return answers, score, model.RiskLevelForScore(score), nil
}

func (s *submissionService) GetResponseDetails(responseID uint) (*dto.QuestionnaireResponseDTO, error) {
	response, err := s.responseRepo.FindByIDWithDetails(responseID)
	if err != nil {
		return nil, apperr.NotFoundf("questionnaire response %d", responseID)
	}

	var resp dto.QuestionnaireResponseDTO
	if err := copier.Copy(&resp, response); err != nil {
		log.Error().Err(err).Msg("GetResponseDetails: copy to DTO failed")
		return nil, fmt.Errorf("prepare response: %w", err)
	}
	resp.RiskLevel = string(response.RiskLevel)
	resp.QuestionnaireTitle = response.Questionnaire.Title

	resp.QuestionResponses = make([]dto.QuestionResponseDTO, len(response.QuestionResponses))
	for i, line := range response.QuestionResponses {
		resp.QuestionResponses[i] = dto.QuestionResponseDTO{
			ID:           line.ID,
			QuestionID:   line.QuestionID,
			QuestionText: line.Question.Text,
			UserInput:    line.UserInput,
		}
	}
	return &resp, nil
}

// CompanyFillRate reports what share of the company's employees have answered
// the questionnaire since the cutoff. Distinct respondents, so an employee
// submitting twice counts once.
func (s *submissionService) CompanyFillRate(callerID, companyID, questionnaireID uint, since time.Time) (*dto.FillRateDTO, error) {
	isAdmin, err := s.employeeRepo.IsCompanyAdmin(callerID, companyID)
	if err != nil {
		return nil, fmt.Errorf("check admin for company %d: %w", companyID, err)
	}
	if !isAdmin {
		return nil, apperr.Validationf("only company admins can view fill rates")
	}

	employees, err := s.employeeRepo.CountByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("count employees of company %d: %w", companyID, err)
	}
	responded, err := s.responseRepo.CountDistinctRespondents(companyID, questionnaireID, since)
	if err != nil {
		return nil, fmt.Errorf("count respondents for questionnaire %d: %w", questionnaireID, err)
	}

	rate := 0.0
	if employees > 0 {
		rate = float64(responded) / float64(employees)
	}
	return &dto.FillRateDTO{
		CompanyID:       companyID,
		QuestionnaireID: questionnaireID,
		Since:           since,
		EmployeeCount:   employees,
		RespondedCount:  responded,
		FillRate:        rate,
	}, nil
}

func (s *submissionService) GetUserResponses(userID uint) ([]dto.ResponseSummaryDTO, error) {
	responses, err := s.responseRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("fetch responses for user %d: %w", userID, err)
	}

	summaries := make([]dto.ResponseSummaryDTO, 0, len(responses))
	for _, r := range responses {
		summary := dto.ResponseSummaryDTO{
			ID:                 r.ID,
			QuestionnaireID:    r.QuestionnaireID,
			QuestionnaireTitle: r.Questionnaire.Title,
			CompanyID:          r.CompanyID,
			Score:              r.Score,
			RiskLevel:          string(r.RiskLevel),
			CreatedAt:          r.CreatedAt,
		}
		if r.Company != nil {
			summary.CompanyName = r.Company.Name
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
