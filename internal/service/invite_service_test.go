package service

import (
	"errors"
	"sync"
	"testing"

	"wellcheck_backend/internal/apperr"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/model"
	"wellcheck_backend/internal/repository"
	"wellcheck_backend/internal/token"
)

func newInviteFixture(t *testing.T) (InviteService, *fakeDispatcher, repository.InviteRepository, repository.UserRepository) {
	t.Helper()
	db := openTestDB(t)
	dispatcher := &fakeDispatcher{}
	inviteRepo := repository.NewInviteRepository(db)
	userRepo := repository.NewUserRepository(db)
	svc := NewInviteService(inviteRepo, userRepo, dispatcher, token.NewCodec("test-secret"), db)
	createTestUser(t, db, "sender@example.com")
	return svc, dispatcher, inviteRepo, userRepo
}

func TestInviteCreateRegistersBareAccount(t *testing.T) {
	svc, dispatcher, _, userRepo := newInviteFixture(t)

	sender, _ := userRepo.FindByEmail("sender@example.com", false)
	err := svc.Create(sender.ID, dto.InviteCreateDTO{Email: "New@Example.com", FirstName: "New"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	receiver, err := userRepo.FindByEmail("new@example.com", false)
	if err != nil {
		t.Fatalf("receiver account not created: %v", err)
	}
	if receiver.PasswordHash != "" || receiver.IsEmailVerified {
		t.Fatal("receiver account must start bare: no password, unverified")
	}

	sent := dispatcher.notifications()
	if len(sent) != 1 || sent[0].Recipients[0] != "new@example.com" {
		t.Fatalf("invite email not dispatched: %+v", sent)
	}
	if sent[0].Payload["token"] == "" {
		t.Fatal("invite email carries no token")
	}
}

func TestInviteCreateRejectsExistingUser(t *testing.T) {
	svc, _, _, userRepo := newInviteFixture(t)

	sender, _ := userRepo.FindByEmail("sender@example.com", false)
	err := svc.Create(sender.ID, dto.InviteCreateDTO{Email: "sender@example.com", FirstName: "Dup"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("Create error = %v, want validation", err)
	}
}

func TestInviteDispatchFailureRecordsSentFailed(t *testing.T) {
	svc, dispatcher, inviteRepo, userRepo := newInviteFixture(t)
	dispatcher.sendErr = errors.New("smtp down")

	sender, _ := userRepo.FindByEmail("sender@example.com", false)
	if err := svc.Create(sender.ID, dto.InviteCreateDTO{Email: "lost@example.com", FirstName: "Lost"}); err != nil {
		t.Fatalf("Create must not surface dispatch failure: %v", err)
	}

	invite, err := inviteRepo.FindByToken(dispatcher.notifications()[0].Payload["token"])
	if err != nil {
		t.Fatalf("FindByToken: %v", err)
	}
	if invite.Status != model.InviteSentFailed {
		t.Fatalf("status = %s, want SENT_FAILED", invite.Status)
	}
}

func TestInviteAcceptExactlyOnce(t *testing.T) {
	svc, dispatcher, inviteRepo, userRepo := newInviteFixture(t)

	sender, _ := userRepo.FindByEmail("sender@example.com", false)
	if err := svc.Create(sender.ID, dto.InviteCreateDTO{Email: "joiner@example.com", FirstName: "Joi"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	inviteToken := dispatcher.notifications()[0].Payload["token"]

	accepted, err := svc.Accept(dto.InviteAcceptDTO{Token: inviteToken, Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if accepted.AuthToken == "" {
		t.Fatal("acceptance must return a session token")
	}

	receiver, _ := userRepo.FindByEmail("joiner@example.com", false)
	if !receiver.IsEmailVerified {
		t.Fatal("acceptance must mark the email verified")
	}
	if !CheckPassword(receiver.PasswordHash, "hunter2hunter2") {
		t.Fatal("acceptance must store the chosen password")
	}

	// Second redemption of the same token must lose.
	_, err = svc.Accept(dto.InviteAcceptDTO{Token: inviteToken, Password: "other-password"})
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("second Accept error = %v, want invalid state", err)
	}

	invite, _ := inviteRepo.FindByToken(inviteToken)
	if invite.Status != model.InviteAccepted {
		t.Fatalf("status = %s, want ACCEPTED", invite.Status)
	}
}

func TestInviteAcceptConcurrentRace(t *testing.T) {
	svc, dispatcher, inviteRepo, userRepo := newInviteFixture(t)

	sender, _ := userRepo.FindByEmail("sender@example.com", false)
	if err := svc.Create(sender.ID, dto.InviteCreateDTO{Email: "racer@example.com", FirstName: "Ra"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	inviteToken := dispatcher.notifications()[0].Payload["token"]

	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Accept(dto.InviteAcceptDTO{Token: inviteToken, Password: "hunter2hunter2"})
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	successes, losses := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperr.ErrInvalidState):
			losses++
		default:
			t.Fatalf("unexpected Accept error: %v", err)
		}
	}
	if successes != 1 || losses != 1 {
		t.Fatalf("successes=%d losses=%d, want exactly one of each", successes, losses)
	}

	invite, _ := inviteRepo.FindByToken(inviteToken)
	if invite.Status != model.InviteAccepted {
		t.Fatalf("status = %s, want ACCEPTED", invite.Status)
	}
}

func TestInviteAcceptUnknownToken(t *testing.T) {
	svc, _, _, _ := newInviteFixture(t)
	_, err := svc.Accept(dto.InviteAcceptDTO{Token: "nope", Password: "hunter2hunter2"})
	if !errors.Is(err, apperr.ErrInvalidToken) {
		t.Fatalf("Accept error = %v, want invalid token", err)
	}
}

func TestInviteStatusCASRejectsStaleTransition(t *testing.T) {
	db := openTestDB(t)
	inviteRepo := repository.NewInviteRepository(db)
	user := createTestUser(t, db, "cas@example.com")

	invite := model.Invite{SenderID: user.ID, ReceiverID: user.ID, Status: model.InviteSent, Token: "cas-token"}
	invite.IsActive = true
	if err := inviteRepo.Create(&invite); err != nil {
		t.Fatalf("Create: %v", err)
	}

	moved, err := inviteRepo.TransitionStatus(nil, invite.ID, model.InviteSent, model.InviteAccepted)
	if err != nil || !moved {
		t.Fatalf("first transition: moved=%v err=%v", moved, err)
	}
	moved, err = inviteRepo.TransitionStatus(nil, invite.ID, model.InviteSent, model.InviteCancelled)
	if err != nil {
		t.Fatalf("second transition: %v", err)
	}
	if moved {
		t.Fatal("stale transition must not move the row")
	}
}

func TestPartiallyHideEmail(t *testing.T) {
	got := partiallyHideEmail("ab@cd.ef")
	if got == "ab@cd.ef" {
		t.Fatal("email must be masked")
	}
	if len(got) != len("ab@cd.ef") {
		t.Fatalf("mask changed length: %q", got)
	}
}
