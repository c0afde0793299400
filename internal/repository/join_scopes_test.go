package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"wellcheck_backend/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	err = db.AutoMigrate(
		&model.User{},
		&model.Company{},
		&model.Employee{},
		&model.Questionnaire{},
		&model.CompanyQuestionnaire{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedMembership(t *testing.T, db *gorm.DB, email string, companyID uint, admin, active bool) *model.User {
	t.Helper()
	user := model.User{Email: email, FirstName: "Test", PasswordHash: "x"}
	user.IsActive = true
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	employee := model.Employee{UserID: user.ID, CompanyID: companyID, IsCompanyAdmin: admin}
	if err := db.Create(&employee).Error; err != nil {
		t.Fatalf("create employee: %v", err)
	}
	if !active {
		// Create can't persist IsActive=false directly: the column's
		// default:true tag makes GORM drop the zero value on insert.
		err := db.Model(&model.Employee{}).Where("id = ?", employee.ID).
			Update("is_active", false).Error
		if err != nil {
			t.Fatalf("soft delete employee: %v", err)
		}
	}
	return &user
}

// Every entity embeds BaseModel, so queries joining two tables carry two
// is_active columns; these tests pin the filters to the right table.
func TestCompanyEmailsJoinFiltersEmployeeRows(t *testing.T) {
	db := openTestDB(t)
	company := model.Company{Name: "Initech"}
	company.IsActive = true
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}

	seedMembership(t, db, "current@initech.com", company.ID, false, true)
	seedMembership(t, db, "departed@initech.com", company.ID, false, false)

	repo := NewEmployeeRepository(db)

	emails, err := repo.CompanyEmails(company.ID)
	if err != nil {
		t.Fatalf("CompanyEmails: %v", err)
	}
	if len(emails) != 1 || emails[0] != "current@initech.com" {
		t.Fatalf("CompanyEmails = %v, want only the active membership", emails)
	}
}

func TestCompanyAdminEmailsJoinFiltersEmployeeRows(t *testing.T) {
	db := openTestDB(t)
	company := model.Company{Name: "Globex"}
	company.IsActive = true
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}

	seedMembership(t, db, "boss@globex.com", company.ID, true, true)
	seedMembership(t, db, "exboss@globex.com", company.ID, true, false)
	seedMembership(t, db, "worker@globex.com", company.ID, false, true)

	repo := NewEmployeeRepository(db)

	emails, err := repo.CompanyAdminEmails()
	if err != nil {
		t.Fatalf("CompanyAdminEmails: %v", err)
	}
	if len(emails) != 1 || emails[0] != "boss@globex.com" {
		t.Fatalf("CompanyAdminEmails = %v, want only the active admin", emails)
	}
}

func TestFindActiveForUserJoinFiltersBothTables(t *testing.T) {
	db := openTestDB(t)
	company := model.Company{Name: "Umbrella"}
	company.IsActive = true
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}
	questionnaire := model.Questionnaire{Title: "Stress Check", IsPublished: true}
	questionnaire.IsActive = true
	if err := db.Create(&questionnaire).Error; err != nil {
		t.Fatalf("create questionnaire: %v", err)
	}
	user := seedMembership(t, db, "emp@umbrella.com", company.ID, false, true)

	attached := model.CompanyQuestionnaire{
		CompanyID:       company.ID,
		QuestionnaireID: questionnaire.ID,
		CurrentlyActive: true,
	}
	attached.IsActive = true
	if err := db.Create(&attached).Error; err != nil {
		t.Fatalf("create pairing: %v", err)
	}

	repo := NewCompanyQuestionnaireRepository(db)

	cqs, err := repo.FindActiveForUser(user.ID)
	if err != nil {
		t.Fatalf("FindActiveForUser: %v", err)
	}
	if len(cqs) != 1 || cqs[0].ID != attached.ID {
		t.Fatalf("FindActiveForUser returned %d pairings, want the attached one", len(cqs))
	}

	// Soft-deleting the pairing must hide it without touching the membership.
	if err := db.Model(&model.CompanyQuestionnaire{}).Where("id = ?", attached.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("soft delete pairing: %v", err)
	}
	cqs, err = repo.FindActiveForUser(user.ID)
	if err != nil {
		t.Fatalf("FindActiveForUser after soft delete: %v", err)
	}
	if len(cqs) != 0 {
		t.Fatalf("FindActiveForUser returned %d pairings after soft delete, want 0", len(cqs))
	}
}
