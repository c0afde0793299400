package service

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"wellcheck_backend/internal/apperr"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/model"
	"wellcheck_backend/internal/notify"
	"wellcheck_backend/internal/repository"
	"wellcheck_backend/internal/scheduler"
)

type cqFixture struct {
	svc        CompanyQuestionnaireService
	sched      *fakeScheduler
	dispatcher *fakeDispatcher
	db         *gorm.DB
	company    *model.Company
	cqID       uint
}

func newCQFixture(t *testing.T) *cqFixture {
	t.Helper()
	db := openTestDB(t)
	sched := newFakeScheduler()
	dispatcher := &fakeDispatcher{}

	svc := NewCompanyQuestionnaireService(
		repository.NewCompanyQuestionnaireRepository(db),
		repository.NewQuestionnaireRuleRepository(db),
		repository.NewQuestionnaireRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewEmployeeRepository(db),
		sched,
		dispatcher,
	)

	company := createTestCompany(t, db, "Umbrella")
	employee := createTestUser(t, db, "emp@umbrella.com")
	createTestEmployee(t, db, employee.ID, company.ID, false)
	questionnaire := createTestQuestionnaire(t, db, "Quarterly Check", true, nil)

	cq, err := svc.Attach(company.ID, dto.CompanyQuestionnaireCreateDTO{QuestionnaireID: questionnaire.ID})
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}

	return &cqFixture{svc: svc, sched: sched, dispatcher: dispatcher, db: db, company: company, cqID: cq.ID}
}

func TestAttachRejectsDuplicatePairing(t *testing.T) {
	f := newCQFixture(t)

	var cq model.CompanyQuestionnaire
	if err := f.db.First(&cq, f.cqID).Error; err != nil {
		t.Fatalf("load pairing: %v", err)
	}
	_, err := f.svc.Attach(f.company.ID, dto.CompanyQuestionnaireCreateDTO{QuestionnaireID: cq.QuestionnaireID})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("duplicate Attach error = %v, want validation", err)
	}
}

func TestCreateRuleRegistersEnabledJob(t *testing.T) {
	f := newCQFixture(t)

	rule, err := f.svc.CreateRule(f.cqID, dto.RuleCreateDTO{RuleType: "WEEKLY", Cron: "0 9 * * 1"})
	if err != nil {
		t.Fatalf("CreateRule: %v", err)
	}
	if rule.NotificationRef == "" {
		t.Fatal("rule must persist the scheduler job handle")
	}
	if !f.sched.enabled(rule.NotificationRef) {
		t.Fatal("rule on an active pairing must start enabled")
	}
}

func TestCreateRuleOnInactivePairingStartsDisabled(t *testing.T) {
	f := newCQFixture(t)

	if _, err := f.svc.SetCurrentlyActive(f.cqID, false); err != nil {
		t.Fatalf("SetCurrentlyActive: %v", err)
	}
	rule, err := f.svc.CreateRule(f.cqID, dto.RuleCreateDTO{RuleType: "DAILY", Cron: "0 9 * * *"})
	if err != nil {
		t.Fatalf("CreateRule: %v", err)
	}
	if f.sched.enabled(rule.NotificationRef) {
		t.Fatal("rule on an inactive pairing must start disabled")
	}
}

func TestToggleCascadesToEveryRuleJob(t *testing.T) {
	f := newCQFixture(t)

	first, err := f.svc.CreateRule(f.cqID, dto.RuleCreateDTO{RuleType: "WEEKLY", Cron: "0 9 * * 1"})
	if err != nil {
		t.Fatalf("CreateRule: %v", err)
	}
	second, err := f.svc.CreateRule(f.cqID, dto.RuleCreateDTO{RuleType: "MONTHLY", Cron: "0 9 1 * *"})
	if err != nil {
		t.Fatalf("CreateRule: %v", err)
	}

	if _, err := f.svc.SetCurrentlyActive(f.cqID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if f.sched.enabled(first.NotificationRef) || f.sched.enabled(second.NotificationRef) {
		t.Fatal("deactivation must disable every rule job")
	}

	if _, err := f.svc.SetCurrentlyActive(f.cqID, true); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if !f.sched.enabled(first.NotificationRef) || !f.sched.enabled(second.NotificationRef) {
		t.Fatal("reactivation must re-enable every rule job")
	}
}

func TestDeleteRuleDisablesJob(t *testing.T) {
	f := newCQFixture(t)

	rule, err := f.svc.CreateRule(f.cqID, dto.RuleCreateDTO{RuleType: "WEEKLY", Cron: "0 9 * * 1"})
	if err != nil {
		t.Fatalf("CreateRule: %v", err)
	}
	if err := f.svc.DeleteRule(rule.ID); err != nil {
		t.Fatalf("DeleteRule: %v", err)
	}
	if f.sched.enabled(rule.NotificationRef) {
		t.Fatal("deleting a rule must disable its job")
	}

	// The soft-deleted rule leaves the cascade set.
	if _, err := f.svc.SetCurrentlyActive(f.cqID, true); err != nil {
		t.Fatalf("SetCurrentlyActive: %v", err)
	}
	if f.sched.enabled(rule.NotificationRef) {
		t.Fatal("cascade must not resurrect a deleted rule's job")
	}
}

func TestRuleTaskEnqueuesReminder(t *testing.T) {
	f := newCQFixture(t)

	db := f.db
	var cq model.CompanyQuestionnaire
	if err := db.First(&cq, f.cqID).Error; err != nil {
		t.Fatalf("load pairing: %v", err)
	}

	// Use a recording scheduler that captures the task for manual firing.
	var captured scheduler.Task
	var kwargs scheduler.JobKwargs
	capturing := &capturingScheduler{onCreate: func(task scheduler.Task, kw scheduler.JobKwargs) {
		captured = task
		kwargs = kw
	}}
	svc := NewCompanyQuestionnaireService(
		repository.NewCompanyQuestionnaireRepository(db),
		repository.NewQuestionnaireRuleRepository(db),
		repository.NewQuestionnaireRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewEmployeeRepository(db),
		capturing,
		f.dispatcher,
	)

	if _, err := svc.CreateRule(f.cqID, dto.RuleCreateDTO{RuleType: "WEEKLY", Cron: "0 9 * * 1"}); err != nil {
		t.Fatalf("CreateRule: %v", err)
	}
	if captured == nil {
		t.Fatal("scheduler never saw the task")
	}
	if len(kwargs.Emails) != 1 || kwargs.Emails[0] != "emp@umbrella.com" {
		t.Fatalf("job kwargs carry wrong recipients: %+v", kwargs)
	}

	captured(kwargs)

	sent := f.dispatcher.notifications()
	if len(sent) != 1 || sent[0].Kind != notify.KindQuestionnaireReminder {
		t.Fatalf("firing the job must enqueue a reminder, got %+v", sent)
	}
	if sent[0].Recipients[0] != "emp@umbrella.com" {
		t.Fatalf("reminder recipients = %v", sent[0].Recipients)
	}
}

type capturingScheduler struct {
	onCreate func(task scheduler.Task, kwargs scheduler.JobKwargs)
	n        int
}

func (s *capturingScheduler) CreateJob(name, cronSpec string, task scheduler.Task, kwargs scheduler.JobKwargs) (string, error) {
	s.n++
	s.onCreate(task, kwargs)
	return name, nil
}

func (s *capturingScheduler) SetEnabled(handles []string, enabled bool) error { return nil }
