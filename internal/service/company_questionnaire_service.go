package service

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wellcheck_backend/internal/apperr"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/model"
	"wellcheck_backend/internal/notify"
	"wellcheck_backend/internal/repository"
	"wellcheck_backend/internal/scheduler"
)

// CompanyQuestionnaireService binds questionnaires to companies and manages
// their recurring notification rules. Toggling a pairing's CurrentlyActive
// flag cascades to the scheduler jobs of every rule attached to it.
type CompanyQuestionnaireService interface {
	Attach(companyID uint, req dto.CompanyQuestionnaireCreateDTO) (*dto.CompanyQuestionnaireDTO, error)
	SetCurrentlyActive(id uint, active bool) (*dto.CompanyQuestionnaireDTO, error)
	ListByCompany(companyID uint) ([]dto.CompanyQuestionnaireDTO, error)
	CreateRule(companyQuestionnaireID uint, req dto.RuleCreateDTO) (*dto.RuleDTO, error)
	ListRules(companyQuestionnaireID uint) ([]dto.RuleDTO, error)
	DeleteRule(ruleID uint) error
}

type companyQuestionnaireService struct {
	cqRepo       repository.CompanyQuestionnaireRepository
	ruleRepo     repository.QuestionnaireRuleRepository
	qRepo        repository.QuestionnaireRepository
	companyRepo  repository.CompanyRepository
	employeeRepo repository.EmployeeRepository
	sched        scheduler.Scheduler
	dispatcher   notify.Dispatcher
}

func NewCompanyQuestionnaireService(
	cqRepo repository.CompanyQuestionnaireRepository,
	ruleRepo repository.QuestionnaireRuleRepository,
	qRepo repository.QuestionnaireRepository,
	companyRepo repository.CompanyRepository,
	employeeRepo repository.EmployeeRepository,
	sched scheduler.Scheduler,
	dispatcher notify.Dispatcher,
) CompanyQuestionnaireService {
	return &companyQuestionnaireService{
		cqRepo:       cqRepo,
		ruleRepo:     ruleRepo,
		qRepo:        qRepo,
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		sched:        sched,
		dispatcher:   dispatcher,
	}
}

func (s *companyQuestionnaireService) Attach(companyID uint, req dto.CompanyQuestionnaireCreateDTO) (*dto.CompanyQuestionnaireDTO, error) {
	if _, err := s.companyRepo.FindByID(companyID, false); err != nil {
		return nil, apperr.NotFoundf("company %d", companyID)
	}
	questionnaire, err := s.qRepo.FindByID(req.QuestionnaireID, false)
	if err != nil {
		return nil, apperr.NotFoundf("questionnaire %d", req.QuestionnaireID)
	}
	if _, err := s.cqRepo.FindByCompanyAndQuestionnaire(companyID, req.QuestionnaireID); err == nil {
		return nil, apperr.Validationf("questionnaire %d already attached to company %d", req.QuestionnaireID, companyID)
	}

	cq := model.CompanyQuestionnaire{
		CompanyID:       companyID,
		QuestionnaireID: req.QuestionnaireID,
		CurrentlyActive: true,
	}
	cq.IsActive = true
	if err := s.cqRepo.Create(&cq); err != nil {
		return nil, fmt.Errorf("attach questionnaire: %w", err)
	}

	log.Info().Uint("companyID", companyID).Uint("questionnaireID", req.QuestionnaireID).Msg("Questionnaire attached to company")
	return &dto.CompanyQuestionnaireDTO{
		ID:                 cq.ID,
		CompanyID:          cq.CompanyID,
		QuestionnaireID:    cq.QuestionnaireID,
		QuestionnaireTitle: questionnaire.Title,
		CurrentlyActive:    cq.CurrentlyActive,
	}, nil
}

// SetCurrentlyActive persists the flag first, then reads back the rule
// handles and flips their scheduler jobs. Reading after the write means a
// rule created concurrently is still covered by the cascade.
func (s *companyQuestionnaireService) SetCurrentlyActive(id uint, active bool) (*dto.CompanyQuestionnaireDTO, error) {
	cq, err := s.cqRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFoundf("company questionnaire %d", id)
	}

	if err := s.cqRepo.SetCurrentlyActive(id, active); err != nil {
		return nil, fmt.Errorf("set currently_active: %w", err)
	}

	refs, err := s.ruleRepo.NotificationRefs(id)
	if err != nil {
		return nil, fmt.Errorf("collect rule handles: %w", err)
	}
	if len(refs) > 0 {
		if err := s.sched.SetEnabled(refs, active); err != nil {
			return nil, fmt.Errorf("cascade to scheduler jobs: %w", err)
		}
	}

	log.Info().Uint("companyQuestionnaireID", id).Bool("active", active).Int("jobs", len(refs)).Msg("Company questionnaire toggled")
	return &dto.CompanyQuestionnaireDTO{
		ID:                 cq.ID,
		CompanyID:          cq.CompanyID,
		QuestionnaireID:    cq.QuestionnaireID,
		QuestionnaireTitle: cq.Questionnaire.Title,
		CurrentlyActive:    active,
	}, nil
}

func (s *companyQuestionnaireService) ListByCompany(companyID uint) ([]dto.CompanyQuestionnaireDTO, error) {
	cqs, err := s.cqRepo.FindAllByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("list company questionnaires: %w", err)
	}
	dtos := make([]dto.CompanyQuestionnaireDTO, 0, len(cqs))
	for _, cq := range cqs {
		dtos = append(dtos, dto.CompanyQuestionnaireDTO{
			ID:                 cq.ID,
			CompanyID:          cq.CompanyID,
			QuestionnaireID:    cq.QuestionnaireID,
			QuestionnaireTitle: cq.Questionnaire.Title,
			CurrentlyActive:    cq.CurrentlyActive,
		})
	}
	return dtos, nil
}

// CreateRule registers a recurring reminder job with the scheduler and
// persists the rule carrying the job handle. The job name embeds a fresh
// uuid so recreated rules never collide. A rule created on an inactive
// pairing is registered disabled.
func (s *companyQuestionnaireService) CreateRule(companyQuestionnaireID uint, req dto.RuleCreateDTO) (*dto.RuleDTO, error) {
	cq, err := s.cqRepo.FindByID(companyQuestionnaireID)
	if err != nil {
		return nil, apperr.NotFoundf("company questionnaire %d", companyQuestionnaireID)
	}

	emails, err := s.employeeRepo.CompanyEmails(cq.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("collect employee emails: %w", err)
	}

	name := "questionnaire_reminder_" + strconv.FormatUint(uint64(companyQuestionnaireID), 10) + "_" + uuid.NewString()
	dispatcher := s.dispatcher
	title := cq.Questionnaire.Title
	task := func(kwargs scheduler.JobKwargs) {
		if len(kwargs.Emails) == 0 {
			return
		}
		dispatcher.Enqueue(notify.Notification{
			Kind:       notify.KindQuestionnaireReminder,
			Recipients: kwargs.Emails,
			Payload: map[string]string{
				"title":            title,
				"questionnaire_id": strconv.FormatUint(uint64(kwargs.QuestionnaireID), 10),
			},
		})
	}

	handle, err := s.sched.CreateJob(name, req.Cron, task, scheduler.JobKwargs{
		Emails:          emails,
		QuestionnaireID: cq.QuestionnaireID,
		CompanyID:       cq.CompanyID,
	})
	if err != nil {
		return nil, fmt.Errorf("register scheduler job: %w", err)
	}
	if !cq.CurrentlyActive {
		if err := s.sched.SetEnabled([]string{handle}, false); err != nil {
			return nil, fmt.Errorf("disable scheduler job: %w", err)
		}
	}

	rule := model.QuestionnaireRule{
		CompanyQuestionnaireID: companyQuestionnaireID,
		RuleType:               model.RuleType(req.RuleType),
		NotificationRef:        handle,
	}
	rule.IsActive = true
	if err := s.ruleRepo.Create(&rule); err != nil {
		return nil, fmt.Errorf("create rule: %w", err)
	}

	log.Info().Uint("ruleID", rule.ID).Uint("companyQuestionnaireID", companyQuestionnaireID).
		Str("ruleType", req.RuleType).Str("handle", handle).Msg("Questionnaire rule created")
	return &dto.RuleDTO{
		ID:                     rule.ID,
		CompanyQuestionnaireID: rule.CompanyQuestionnaireID,
		RuleType:               string(rule.RuleType),
		NotificationRef:        rule.NotificationRef,
		Enabled:                cq.CurrentlyActive,
	}, nil
}

func (s *companyQuestionnaireService) ListRules(companyQuestionnaireID uint) ([]dto.RuleDTO, error) {
	cq, err := s.cqRepo.FindByID(companyQuestionnaireID)
	if err != nil {
		return nil, apperr.NotFoundf("company questionnaire %d", companyQuestionnaireID)
	}
	rules, err := s.ruleRepo.FindAllByCompanyQuestionnaire(companyQuestionnaireID)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	dtos := make([]dto.RuleDTO, 0, len(rules))
	for _, rule := range rules {
		dtos = append(dtos, dto.RuleDTO{
			ID:                     rule.ID,
			CompanyQuestionnaireID: rule.CompanyQuestionnaireID,
			RuleType:               string(rule.RuleType),
			NotificationRef:        rule.NotificationRef,
			Enabled:                cq.CurrentlyActive,
		})
	}
	return dtos, nil
}

// DeleteRule soft deletes the rule and disables its scheduler job.
func (s *companyQuestionnaireService) DeleteRule(ruleID uint) error {
	rule, err := s.ruleRepo.FindByID(ruleID)
	if err != nil {
		return apperr.NotFoundf("rule %d", ruleID)
	}
	if err := s.ruleRepo.SoftDelete(ruleID); err != nil {
		return fmt.Errorf("delete rule: %w", err)
	}
	if err := s.sched.SetEnabled([]string{rule.NotificationRef}, false); err != nil {
		return fmt.Errorf("disable scheduler job: %w", err)
	}
	return nil
}
