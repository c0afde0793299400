// Package notify is the fire-and-forget notification sink shared by the
// invite, catalog and scheduler components. Delivery is at-least-once at
// best; failures are reported only through the optional Done hook and are
// never propagated to request handlers.
package notify

type Kind string

const (
	KindInvite                 Kind = "invite"
	KindCompanyInvite          Kind = "company_invite"
	KindAccountVerification    Kind = "account_verification"
	KindPasswordReset          Kind = "password_reset"
	KindWelcome                Kind = "welcome"
	KindQuestionnairePublished Kind = "questionnaire_published"
	KindMandatoryQuestionnaire Kind = "mandatory_questionnaire"
	KindQuestionnaireReminder  Kind = "questionnaire_reminder"
	KindCompanyVerified        Kind = "company_verified"
)

// Notification is one unit of outbound fan-out.
type Notification struct {
	Kind       Kind
	Recipients []string
	Payload    map[string]string
	// Done, when set, receives the outcome of the dispatch attempt. Callers
	// use it to record SENT/SENT_FAILED transitions; it runs on the worker
	// goroutine.
	Done func(error)
}

// Dispatcher enqueues notifications without blocking on delivery. The caller
// never learns the outcome synchronously.
type Dispatcher interface {
	Enqueue(n Notification)
}
