package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"wellcheck_backend/internal/model"
	"wellcheck_backend/internal/notify"
	"wellcheck_backend/internal/scheduler"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// One connection keeps every goroutine on the same in-memory database
	// and serializes write transactions instead of returning busy errors.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	err = db.AutoMigrate(
		&model.User{},
		&model.Company{},
		&model.Employee{},
		&model.Invite{},
		&model.CompanyInvite{},
		&model.Questionnaire{},
		&model.Question{},
		&model.Choice{},
		&model.Tip{},
		&model.QuestionnaireResponse{},
		&model.QuestionResponse{},
		&model.CompanyQuestionnaire{},
		&model.QuestionnaireRule{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := model.User{Email: email, FirstName: "Test", PasswordHash: "x"}
	user.IsActive = true
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return &user
}

func createTestCompany(t *testing.T, db *gorm.DB, name string) *model.Company {
	t.Helper()
	company := model.Company{Name: name}
	company.IsActive = true
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("create company %s: %v", name, err)
	}
	return &company
}

func createTestEmployee(t *testing.T, db *gorm.DB, userID, companyID uint, admin bool) *model.Employee {
	t.Helper()
	employee := model.Employee{UserID: userID, CompanyID: companyID, IsCompanyAdmin: admin}
	employee.IsActive = true
	if err := db.Create(&employee).Error; err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return &employee
}

type testQuestion struct {
	text    string
	qtype   model.QuestionType
	choices map[string]float64
}

func createTestQuestionnaire(t *testing.T, db *gorm.DB, title string, published bool, questions []testQuestion) *model.Questionnaire {
	t.Helper()
	questionnaire := model.Questionnaire{Title: title, IsPublished: published}
	questionnaire.IsActive = true
	for i, q := range questions {
		question := model.Question{Text: q.text, QuestionType: q.qtype, Order: i + 1}
		question.IsActive = true
		for text, weightage := range q.choices {
			choice := model.Choice{Text: text, Weightage: weightage}
			choice.IsActive = true
			question.Choices = append(question.Choices, choice)
		}
		questionnaire.Questions = append(questionnaire.Questions, question)
	}
	if err := db.Create(&questionnaire).Error; err != nil {
		t.Fatalf("create questionnaire %s: %v", title, err)
	}
	return &questionnaire
}

// fakeDispatcher records notifications and resolves Done callbacks
// synchronously with sendErr.
type fakeDispatcher struct {
	mu      sync.Mutex
	sent    []notify.Notification
	sendErr error
}

func (d *fakeDispatcher) Enqueue(n notify.Notification) {
	d.mu.Lock()
	d.sent = append(d.sent, n)
	d.mu.Unlock()
	if n.Done != nil {
		n.Done(d.sendErr)
	}
}

func (d *fakeDispatcher) notifications() []notify.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]notify.Notification, len(d.sent))
	copy(out, d.sent)
	return out
}

// fakeScheduler records job registrations and enabled flips.
type fakeScheduler struct {
	mu      sync.Mutex
	jobs    map[string]bool
	created int
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{jobs: make(map[string]bool)}
}

func (s *fakeScheduler) CreateJob(name, cronSpec string, task scheduler.Task, kwargs scheduler.JobKwargs) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created++
	handle := fmt.Sprintf("job-%d", s.created)
	s.jobs[handle] = true
	return handle, nil
}

func (s *fakeScheduler) SetEnabled(handles []string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range handles {
		if _, ok := s.jobs[h]; ok {
			s.jobs[h] = enabled
		}
	}
	return nil
}

func (s *fakeScheduler) enabled(handle string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[handle]
}
