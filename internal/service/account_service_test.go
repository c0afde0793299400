package service

import (
	"errors"
	"testing"

	"wellcheck_backend/internal/apperr"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/notify"
	"wellcheck_backend/internal/repository"
	"wellcheck_backend/internal/token"
)

func newAccountFixture(t *testing.T) (AccountService, *fakeDispatcher) {
	t.Helper()
	db := openTestDB(t)
	dispatcher := &fakeDispatcher{}
	svc := NewAccountService(repository.NewUserRepository(db), dispatcher, token.NewCodec("test-secret"))
	return svc, dispatcher
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc, dispatcher := newAccountFixture(t)

	user, err := svc.Register(dto.RegisterDTO{
		Email: "Alice@Example.com", FirstName: "Alice", Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %s", user.Email)
	}

	sent := dispatcher.notifications()
	if len(sent) != 1 || sent[0].Kind != notify.KindAccountVerification {
		t.Fatalf("expected one verification email, got %+v", sent)
	}

	auth, err := svc.Login(dto.LoginDTO{Email: "alice@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if auth.AuthToken == "" || auth.UserID != user.ID {
		t.Fatalf("bad auth result: %+v", auth)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAccountFixture(t)

	req := dto.RegisterDTO{Email: "dup@example.com", FirstName: "Dup", Password: "password-one"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(req)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("second Register error = %v, want validation", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newAccountFixture(t)
	if _, err := svc.Register(dto.RegisterDTO{Email: "bob@example.com", FirstName: "Bob", Password: "real-password"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cases := []dto.LoginDTO{
		{Email: "bob@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "real-password"},
	}
	for _, c := range cases {
		if _, err := svc.Login(c); !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("Login(%s) error = %v, want validation", c.Email, err)
		}
	}
}

func TestVerifyEmailFlow(t *testing.T) {
	svc, dispatcher := newAccountFixture(t)

	if _, err := svc.Register(dto.RegisterDTO{Email: "carol@example.com", FirstName: "Carol", Password: "long-password"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	verifyToken := dispatcher.notifications()[0].Payload["token"]

	if _, err := svc.VerifyEmail(verifyToken); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}

	// Verification fires a welcome email exactly once.
	var welcomes int
	for _, n := range dispatcher.notifications() {
		if n.Kind == notify.KindWelcome {
			welcomes++
		}
	}
	if welcomes != 1 {
		t.Fatalf("got %d welcome emails, want 1", welcomes)
	}

	// Re-verification is a friendly no-op.
	if _, err := svc.VerifyEmail(verifyToken); err != nil {
		t.Fatalf("second VerifyEmail: %v", err)
	}
}

func TestVerifyEmailRejectsWrongPurposeToken(t *testing.T) {
	svc, dispatcher := newAccountFixture(t)

	if _, err := svc.Register(dto.RegisterDTO{Email: "dave@example.com", FirstName: "Dave", Password: "long-password"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.RequestPasswordReset(dto.PasswordResetRequestDTO{Email: "dave@example.com"}); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}

	var resetToken string
	for _, n := range dispatcher.notifications() {
		if n.Kind == notify.KindPasswordReset {
			resetToken = n.Payload["token"]
		}
	}
	if resetToken == "" {
		t.Fatal("no reset email dispatched")
	}

	// A reset token cannot verify an email.
	if _, err := svc.VerifyEmail(resetToken); !errors.Is(err, apperr.ErrInvalidToken) {
		t.Fatalf("VerifyEmail with reset token error = %v, want invalid token", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, dispatcher := newAccountFixture(t)

	if _, err := svc.Register(dto.RegisterDTO{Email: "erin@example.com", FirstName: "Erin", Password: "old-password"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.RequestPasswordReset(dto.PasswordResetRequestDTO{Email: "erin@example.com"}); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}

	var resetToken string
	for _, n := range dispatcher.notifications() {
		if n.Kind == notify.KindPasswordReset {
			resetToken = n.Payload["token"]
		}
	}
	if err := svc.ResetPassword(dto.PasswordResetDTO{Token: resetToken, Password: "new-password"}); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := svc.Login(dto.LoginDTO{Email: "erin@example.com", Password: "old-password"}); err == nil {
		t.Fatal("old password must stop working")
	}
	if _, err := svc.Login(dto.LoginDTO{Email: "erin@example.com", Password: "new-password"}); err != nil {
		t.Fatalf("Login with new password: %v", err)
	}
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	svc, dispatcher := newAccountFixture(t)
	if err := svc.RequestPasswordReset(dto.PasswordResetRequestDTO{Email: "ghost@example.com"}); err != nil {
		t.Fatalf("RequestPasswordReset must not reveal unknown emails: %v", err)
	}
	if len(dispatcher.notifications()) != 0 {
		t.Fatal("no email should go out for an unknown address")
	}
}
