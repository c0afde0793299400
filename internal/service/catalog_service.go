package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"wellcheck_backend/internal/apperr"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/model"
	"wellcheck_backend/internal/notify"
	"wellcheck_backend/internal/repository"
)

// CatalogService is the read-mostly store of questionnaires, questions,
// choices and tips, plus the admin-side catalog mutations.
type CatalogService interface {
	// CreateQuestionnaire returns the publish effects when the request asks
	// for an already-published questionnaire; they mirror Publish's and the
	// caller enqueues them the same way.
	CreateQuestionnaire(req dto.QuestionnaireCreateDTO) (*dto.QuestionnaireDTO, []notify.Notification, error)
	GetQuestionnaire(id uint, includeInactive bool) (*dto.QuestionnaireDTO, error)
	ListPublished() ([]dto.QuestionnaireSummaryDTO, error)
	TipsFor(questionnaireID uint, riskLevel model.RiskLevel) ([]dto.TipDTO, error)
	AddTip(questionnaireID uint, req dto.TipCreateDTO) (*dto.TipDTO, error)
	// Publish flips is_published false->true, stamping published_on exactly
	// once. The returned notifications are the transition's explicit effects;
	// the caller enqueues them on the dispatcher.
	Publish(id uint) (*dto.QuestionnaireDTO, []notify.Notification, error)
	PendingForUser(userID uint) ([]dto.PendingQuestionnaireDTO, error)
	MandatoryForUser(userID uint) ([]dto.QuestionnaireSummaryDTO, error)
	SoftDelete(id uint) error
	PermanentDelete(id uint) error
}

type catalogService struct {
	questionnaireRepo        repository.QuestionnaireRepository
	tipRepo                  repository.TipRepository
	employeeRepo             repository.EmployeeRepository
	userRepo                 repository.UserRepository
	companyQuestionnaireRepo repository.CompanyQuestionnaireRepository
	responseRepo             repository.ResponseRepository
}

func NewCatalogService(
	questionnaireRepo repository.QuestionnaireRepository,
	tipRepo repository.TipRepository,
	employeeRepo repository.EmployeeRepository,
	userRepo repository.UserRepository,
	companyQuestionnaireRepo repository.CompanyQuestionnaireRepository,
	responseRepo repository.ResponseRepository,
) CatalogService {
	return &catalogService{
		questionnaireRepo:        questionnaireRepo,
		tipRepo:                  tipRepo,
		employeeRepo:             employeeRepo,
		userRepo:                 userRepo,
		companyQuestionnaireRepo: companyQuestionnaireRepo,
		responseRepo:             responseRepo,
	}
}

func (s *catalogService) CreateQuestionnaire(req dto.QuestionnaireCreateDTO) (*dto.QuestionnaireDTO, []notify.Notification, error) {
	questionnaire := model.Questionnaire{
		Title:       req.Title,
		Description: req.Description,
		IsMandatory: req.IsMandatory,
	}
	questionnaire.IsActive = true

	for i, q := range req.Questions {
		qt := model.QuestionType(q.QuestionType)
		if qt == model.QuestionText && len(q.Choices) > 0 {
			return nil, nil, apperr.Validationf("question %d: TEXT questions cannot carry choices", i)
		}
		if qt.Scored() && len(q.Choices) == 0 {
			return nil, nil, apperr.Validationf("question %d: %s questions need at least one choice", i, qt)
		}

		order := q.Order
		if order == 0 {
			order = i + 1
		}
		question := model.Question{
			Text:         q.Text,
			QuestionType: qt,
			Order:        order,
		}
		question.IsActive = true
		for _, c := range q.Choices {
			choice := model.Choice{Text: c.Text, Weightage: c.Weightage}
			choice.IsActive = true
			question.Choices = append(question.Choices, choice)
		}
		questionnaire.Questions = append(questionnaire.Questions, question)
	}

	if err := s.questionnaireRepo.Create(&questionnaire); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateQuestionnaire: create failed")
		return nil, nil, fmt.Errorf("create questionnaire: %w", err)
	}

	// Creating in the published state runs the same transition as Publish,
	// effects included.
	if req.IsPublished {
		return s.Publish(questionnaire.ID)
	}
	created, err := s.GetQuestionnaire(questionnaire.ID, false)
	return created, nil, err
}

func (s *catalogService) GetQuestionnaire(id uint, includeInactive bool) (*dto.QuestionnaireDTO, error) {
	questionnaire, err := s.questionnaireRepo.FindByIDWithQuestions(id, includeInactive)
	if err != nil {
		return nil, apperr.NotFoundf("questionnaire %d", id)
	}

	var resp dto.QuestionnaireDTO
	if err := copier.Copy(&resp, questionnaire); err != nil {
		return nil, fmt.Errorf("prepare questionnaire response: %w", err)
	}
	return &resp, nil
}

func (s *catalogService) ListPublished() ([]dto.QuestionnaireSummaryDTO, error) {
	questionnaires, err := s.questionnaireRepo.FindAllPublished()
	if err != nil {
		return nil, fmt.Errorf("list questionnaires: %w", err)
	}
	return s.toSummaries(questionnaires), nil
}

func (s *catalogService) toSummaries(questionnaires []model.Questionnaire) []dto.QuestionnaireSummaryDTO {
	summaries := make([]dto.QuestionnaireSummaryDTO, 0, len(questionnaires))
	for _, q := range questionnaires {
		summaries = append(summaries, dto.QuestionnaireSummaryDTO{
			ID:            q.ID,
			Title:         q.Title,
			Description:   q.Description,
			QuestionCount: len(q.Questions),
			IsMandatory:   q.IsMandatory,
		})
	}
	return summaries
}

func (s *catalogService) TipsFor(questionnaireID uint, riskLevel model.RiskLevel) ([]dto.TipDTO, error) {
	if _, err := s.questionnaireRepo.FindByID(questionnaireID, false); err != nil {
		return nil, apperr.NotFoundf("questionnaire %d", questionnaireID)
	}
	tips, err := s.tipRepo.FindByQuestionnaireAndRisk(questionnaireID, riskLevel)
	if err != nil {
		return nil, fmt.Errorf("fetch tips: %w", err)
	}
	dtos := make([]dto.TipDTO, 0, len(tips))
	for _, t := range tips {
		dtos = append(dtos, dto.TipDTO{ID: t.ID, Text: t.Text, RiskLevel: string(t.RiskLevel)})
	}
	return dtos, nil
}

func (s *catalogService) AddTip(questionnaireID uint, req dto.TipCreateDTO) (*dto.TipDTO, error) {
	if _, err := s.questionnaireRepo.FindByID(questionnaireID, false); err != nil {
		return nil, apperr.NotFoundf("questionnaire %d", questionnaireID)
	}
	tip := model.Tip{
		QuestionnaireID: questionnaireID,
		Text:            req.Text,
		RiskLevel:       model.RiskLevel(req.RiskLevel),
	}
	tip.IsActive = true
	if err := s.tipRepo.Create(&tip); err != nil {
		return nil, fmt.Errorf("create tip: %w", err)
	}
	return &dto.TipDTO{ID: tip.ID, Text: tip.Text, RiskLevel: string(tip.RiskLevel)}, nil
}

func (s *catalogService) Publish(id uint) (*dto.QuestionnaireDTO, []notify.Notification, error) {
	questionnaire, err := s.questionnaireRepo.FindByID(id, false)
	if err != nil {
		return nil, nil, apperr.NotFoundf("questionnaire %d", id)
	}
	if questionnaire.IsPublished {
		return nil, nil, apperr.InvalidStatef("questionnaire %d is already published", id)
	}

	now := time.Now()
	questionnaire.IsPublished = true
	questionnaire.PublishedOn = &now
	if err := s.questionnaireRepo.Update(questionnaire); err != nil {
		return nil, nil, fmt.Errorf("publish questionnaire %d: %w", id, err)
	}
	log.Info().Uint("questionnaireID", id).Msg("Questionnaire published")

	effects := s.publicationEffects(questionnaire)
	resp, err := s.GetQuestionnaire(id, false)
	return resp, effects, err
}

// publicationEffects builds the notification fan-out of a publish transition:
// company admins always hear about a new questionnaire; mandatory
// questionnaires additionally fan out to every user.
func (s *catalogService) publicationEffects(questionnaire *model.Questionnaire) []notify.Notification {
	payload := map[string]string{
		"title":            questionnaire.Title,
		"description":      questionnaire.Description,
		"questionnaire_id": strconv.FormatUint(uint64(questionnaire.ID), 10),
	}

	var effects []notify.Notification
	adminEmails, err := s.employeeRepo.CompanyAdminEmails()
	if err != nil {
		log.Error().Err(err).Msg("Publish: could not collect company admin emails")
	} else if len(adminEmails) > 0 {
		effects = append(effects, notify.Notification{
			Kind:       notify.KindQuestionnairePublished,
			Recipients: adminEmails,
			Payload:    payload,
		})
	}

	if questionnaire.IsMandatory {
		userEmails, err := s.userRepo.AllEmails()
		if err != nil {
			log.Error().Err(err).Msg("Publish: could not collect user emails")
		} else if len(userEmails) > 0 {
			effects = append(effects, notify.Notification{
				Kind:       notify.KindMandatoryQuestionnaire,
				Recipients: userEmails,
				Payload:    payload,
			})
		}
	}
	return effects
}

func (s *catalogService) PendingForUser(userID uint) ([]dto.PendingQuestionnaireDTO, error) {
	companyQuestionnaires, err := s.companyQuestionnaireRepo.FindActiveForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("fetch company questionnaires for user %d: %w", userID, err)
	}

	pending := make([]dto.PendingQuestionnaireDTO, 0, len(companyQuestionnaires))
	for _, cq := range companyQuestionnaires {
		companyID := cq.CompanyID
		answeredIDs, err := s.responseRepo.AnsweredQuestionnaireIDs(userID, &companyID)
		if err != nil {
			return nil, fmt.Errorf("fetch answered questionnaires: %w", err)
		}
		if containsID(answeredIDs, cq.QuestionnaireID) {
			continue
		}
		pending = append(pending, dto.PendingQuestionnaireDTO{
			CompanyQuestionnaireID: cq.ID,
			CompanyID:              cq.CompanyID,
			CompanyName:            cq.Company.Name,
			QuestionnaireID:        cq.QuestionnaireID,
			QuestionnaireTitle:     cq.Questionnaire.Title,
		})
	}
	return pending, nil
}

func (s *catalogService) MandatoryForUser(userID uint) ([]dto.QuestionnaireSummaryDTO, error) {
	questionnaires, err := s.questionnaireRepo.FindMandatoryPublished()
	if err != nil {
		return nil, fmt.Errorf("list mandatory questionnaires: %w", err)
	}
	answeredIDs, err := s.responseRepo.AnsweredQuestionnaireIDs(userID, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch answered questionnaires: %w", err)
	}

	remaining := questionnaires[:0]
	for _, q := range questionnaires {
		if !containsID(answeredIDs, q.ID) {
			remaining = append(remaining, q)
		}
	}
	return s.toSummaries(remaining), nil
}

func (s *catalogService) SoftDelete(id uint) error {
	if _, err := s.questionnaireRepo.FindByID(id, false); err != nil {
		return apperr.NotFoundf("questionnaire %d", id)
	}
	return s.questionnaireRepo.SoftDelete(id)
}

func (s *catalogService) PermanentDelete(id uint) error {
	if _, err := s.questionnaireRepo.FindByID(id, true); err != nil {
		return apperr.NotFoundf("questionnaire %d", id)
	}
	return s.questionnaireRepo.PermanentDelete(id)
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
