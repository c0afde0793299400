package service

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"gorm.io/gorm"

	"wellcheck_backend/internal/apperr"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/model"
	"wellcheck_backend/internal/repository"
)

type companyInviteFixture struct {
	svc        CompanyInviteService
	dispatcher *fakeDispatcher
	inviteRepo repository.CompanyInviteRepository
	userRepo   repository.UserRepository
	empRepo    repository.EmployeeRepository
	db         *gorm.DB
	company    *model.Company
	admin      *model.User
}

func newCompanyInviteFixture(t *testing.T) *companyInviteFixture {
	t.Helper()
	db := openTestDB(t)
	dispatcher := &fakeDispatcher{}
	inviteRepo := repository.NewCompanyInviteRepository(db)
	userRepo := repository.NewUserRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	companyRepo := repository.NewCompanyRepository(db)

	company := createTestCompany(t, db, "Initech")
	admin := createTestUser(t, db, "admin@initech.com")
	createTestEmployee(t, db, admin.ID, company.ID, true)

	return &companyInviteFixture{
		svc:        NewCompanyInviteService(inviteRepo, userRepo, empRepo, companyRepo, dispatcher, db),
		dispatcher: dispatcher,
		inviteRepo: inviteRepo,
		userRepo:   userRepo,
		empRepo:    empRepo,
		db:         db,
		company:    company,
		admin:      admin,
	}
}

func TestCompanyInviteRequiresAdmin(t *testing.T) {
	f := newCompanyInviteFixture(t)
	outsider := createTestUser(t, f.db, "outsider@example.com")

	_, err := f.svc.Create(f.company.ID, outsider.ID, dto.CompanyInviteCreateDTO{
		ReceiverEmail: "someone@example.com", FirstName: "Some",
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("Create error = %v, want validation", err)
	}
}

func TestCompanyInviteNewUserGetsInitialPassword(t *testing.T) {
	f := newCompanyInviteFixture(t)

	_, err := f.svc.Create(f.company.ID, f.admin.ID, dto.CompanyInviteCreateDTO{
		ReceiverEmail: "fresh@example.com", FirstName: "Fresh",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	receiver, err := f.userRepo.FindByEmail("fresh@example.com", false)
	if err != nil {
		t.Fatalf("account not created for unknown receiver: %v", err)
	}

	sent := f.dispatcher.notifications()
	if len(sent) != 1 {
		t.Fatalf("got %d notifications, want 1", len(sent))
	}
	password := sent[0].Payload["password"]
	if password == "" {
		t.Fatal("invite email for a new receiver must carry the initial password")
	}
	if !CheckPassword(receiver.PasswordHash, password) {
		t.Fatal("stored hash does not match the emailed initial password")
	}

	// Successful dispatch resolves PENDING to SENT.
	invite, _ := f.inviteRepo.FindByToken(sent[0].Payload["token"])
	if invite.Status != model.InviteSent {
		t.Fatalf("status = %s, want SENT after dispatch", invite.Status)
	}
}

func TestCompanyInviteExistingUserNoPassword(t *testing.T) {
	f := newCompanyInviteFixture(t)
	createTestUser(t, f.db, "known@example.com")

	_, err := f.svc.Create(f.company.ID, f.admin.ID, dto.CompanyInviteCreateDTO{
		ReceiverEmail: "known@example.com", FirstName: "Known",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if pw := f.dispatcher.notifications()[0].Payload["password"]; pw != "" {
		t.Fatal("existing receivers must not get a generated password")
	}
}

func TestCompanyInviteDispatchFailureResolvesSentFailed(t *testing.T) {
	f := newCompanyInviteFixture(t)
	f.dispatcher.sendErr = errors.New("smtp down")

	_, err := f.svc.Create(f.company.ID, f.admin.ID, dto.CompanyInviteCreateDTO{
		ReceiverEmail: "unlucky@example.com", FirstName: "Un",
	})
	if err != nil {
		t.Fatalf("Create must not surface dispatch failure: %v", err)
	}

	invite, _ := f.inviteRepo.FindByToken(f.dispatcher.notifications()[0].Payload["token"])
	if invite.Status != model.InviteSentFailed {
		t.Fatalf("status = %s, want SENT_FAILED", invite.Status)
	}
}

func TestCompanyInviteAcceptCreatesMembershipOnce(t *testing.T) {
	f := newCompanyInviteFixture(t)

	_, err := f.svc.Create(f.company.ID, f.admin.ID, dto.CompanyInviteCreateDTO{
		ReceiverEmail: "joiner@example.com", FirstName: "Joi",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	inviteToken := f.dispatcher.notifications()[0].Payload["token"]
	receiver, _ := f.userRepo.FindByEmail("joiner@example.com", false)

	if _, err := f.svc.Accept(receiver.ID, dto.CompanyInviteActionDTO{Token: inviteToken}); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	isEmployee, _ := f.empRepo.Exists(receiver.ID, f.company.ID)
	if !isEmployee {
		t.Fatal("acceptance must create the employee membership")
	}

	// A second redemption finds the receiver already employed.
	_, err = f.svc.Accept(receiver.ID, dto.CompanyInviteActionDTO{Token: inviteToken})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("second Accept error = %v, want validation", err)
	}

	var memberships int64
	f.db.Model(&model.Employee{}).Where("user_id = ? AND company_id = ?", receiver.ID, f.company.ID).Count(&memberships)
	if memberships != 1 {
		t.Fatalf("got %d membership rows, want exactly 1", memberships)
	}
}

func TestCompanyInviteConcurrentAcceptExactlyOnce(t *testing.T) {
	f := newCompanyInviteFixture(t)

	_, err := f.svc.Create(f.company.ID, f.admin.ID, dto.CompanyInviteCreateDTO{
		ReceiverEmail: "racer@example.com", FirstName: "Ra",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	inviteToken := f.dispatcher.notifications()[0].Payload["token"]
	receiver, _ := f.userRepo.FindByEmail("racer@example.com", false)

	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.svc.Accept(receiver.ID, dto.CompanyInviteActionDTO{Token: inviteToken})
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	// The loser fails either at the status compare-and-set or, when the
	// winner commits first, at the already-employee check.
	successes, losses := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperr.ErrInvalidState), errors.Is(err, apperr.ErrValidation):
			losses++
		default:
			t.Fatalf("unexpected Accept error: %v", err)
		}
	}
	if successes != 1 || losses != 1 {
		t.Fatalf("successes=%d losses=%d, want exactly one of each", successes, losses)
	}

	var memberships int64
	f.db.Model(&model.Employee{}).Where("user_id = ? AND company_id = ?", receiver.ID, f.company.ID).Count(&memberships)
	if memberships != 1 {
		t.Fatalf("got %d membership rows, want exactly 1", memberships)
	}
}

func TestCompanyInviteCreateFailureLeavesNoAccount(t *testing.T) {
	f := newCompanyInviteFixture(t)

	// Force the invite insert to fail after the account insert succeeded.
	if err := f.db.Migrator().DropTable(&model.CompanyInvite{}); err != nil {
		t.Fatalf("drop invites table: %v", err)
	}

	_, err := f.svc.Create(f.company.ID, f.admin.ID, dto.CompanyInviteCreateDTO{
		ReceiverEmail: "stranded@example.com", FirstName: "St",
	})
	if err == nil {
		t.Fatal("Create must fail when the invite cannot be stored")
	}
	if _, err := f.userRepo.FindByEmail("stranded@example.com", false); err == nil {
		t.Fatal("failed invite creation must roll back the generated account")
	}
	if len(f.dispatcher.notifications()) != 0 {
		t.Fatal("no email may be enqueued for a failed invite")
	}
}

func TestCompanyInviteAcceptWrongRecipient(t *testing.T) {
	f := newCompanyInviteFixture(t)

	_, err := f.svc.Create(f.company.ID, f.admin.ID, dto.CompanyInviteCreateDTO{
		ReceiverEmail: "intended@example.com", FirstName: "In",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	inviteToken := f.dispatcher.notifications()[0].Payload["token"]
	impostor := createTestUser(t, f.db, "impostor@example.com")

	_, err = f.svc.Accept(impostor.ID, dto.CompanyInviteActionDTO{Token: inviteToken})
	if !errors.Is(err, apperr.ErrWrongRecipient) {
		t.Fatalf("Accept error = %v, want wrong recipient", err)
	}
	// The raw address must not leak into the error.
	if strings.Contains(err.Error(), "intended@example.com") {
		t.Fatalf("error leaks the receiver email: %v", err)
	}
}

func TestCompanyInviteCancelledIsTerminal(t *testing.T) {
	f := newCompanyInviteFixture(t)

	_, err := f.svc.Create(f.company.ID, f.admin.ID, dto.CompanyInviteCreateDTO{
		ReceiverEmail: "revoked@example.com", FirstName: "Re",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	inviteToken := f.dispatcher.notifications()[0].Payload["token"]
	receiver, _ := f.userRepo.FindByEmail("revoked@example.com", false)

	if _, err := f.svc.Cancel(f.admin.ID, dto.CompanyInviteActionDTO{Token: inviteToken}); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	_, err = f.svc.Accept(receiver.ID, dto.CompanyInviteActionDTO{Token: inviteToken})
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("Accept after cancel error = %v, want invalid state", err)
	}

	// Cancelling twice must also be rejected.
	_, err = f.svc.Cancel(f.admin.ID, dto.CompanyInviteActionDTO{Token: inviteToken})
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("second Cancel error = %v, want invalid state", err)
	}
}
