package service

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"wellcheck_backend/internal/apperr"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/notify"
	"wellcheck_backend/internal/repository"
)

func newCompanyFixture(t *testing.T) (CompanyService, *fakeDispatcher, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	dispatcher := &fakeDispatcher{}
	svc := NewCompanyService(
		repository.NewCompanyRepository(db),
		repository.NewEmployeeRepository(db),
		repository.NewUserRepository(db),
		dispatcher,
		db,
	)
	return svc, dispatcher, db
}

func TestCreateCompanyMakesCreatorAdmin(t *testing.T) {
	svc, _, db := newCompanyFixture(t)
	creator := createTestUser(t, db, "founder@example.com")

	company, err := svc.Create(creator.ID, dto.CompanyCreateDTO{Name: "Hooli"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	employees, err := svc.Employees(company.ID)
	if err != nil {
		t.Fatalf("Employees: %v", err)
	}
	if len(employees) != 1 || !employees[0].IsCompanyAdmin || employees[0].Email != "founder@example.com" {
		t.Fatalf("creator must become the first admin employee: %+v", employees)
	}
}

func TestVerifyCompanyNotifiesOnce(t *testing.T) {
	svc, dispatcher, db := newCompanyFixture(t)
	creator := createTestUser(t, db, "owner@example.com")

	company, err := svc.Create(creator.ID, dto.CompanyCreateDTO{Name: "Vandelay"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	verified, err := svc.Verify(company.ID)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !verified.IsVerified {
		t.Fatal("Verify must set the flag")
	}

	// A second verify is a no-op and sends nothing new.
	if _, err := svc.Verify(company.ID); err != nil {
		t.Fatalf("second Verify: %v", err)
	}

	var verifiedMails int
	for _, n := range dispatcher.notifications() {
		if n.Kind == notify.KindCompanyVerified {
			verifiedMails++
		}
	}
	if verifiedMails != 1 {
		t.Fatalf("got %d verification notifications, want 1", verifiedMails)
	}
}

func TestCompanySoftDeleteHides(t *testing.T) {
	svc, _, db := newCompanyFixture(t)
	creator := createTestUser(t, db, "gone@example.com")

	company, err := svc.Create(creator.ID, dto.CompanyCreateDTO{Name: "Ephemeral"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.SoftDelete(company.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if _, err := svc.Get(company.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Get after soft delete error = %v, want not found", err)
	}

	count, err := svc.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("Count = %d, want 0 after soft delete", count)
	}
}
