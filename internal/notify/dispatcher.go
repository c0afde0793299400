package notify

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

const queueSize = 256

// AsyncDispatcher pushes notifications through a buffered queue consumed by a
// single worker goroutine. Request handlers only ever pay the cost of the
// channel send.
type AsyncDispatcher struct {
	mailer      Mailer
	frontendURL string
	queue       chan Notification
	wg          sync.WaitGroup
	stopOnce    sync.Once
}

func NewAsyncDispatcher(mailer Mailer, frontendURL string) *AsyncDispatcher {
	return &AsyncDispatcher{
		mailer:      mailer,
		frontendURL: frontendURL,
		queue:       make(chan Notification, queueSize),
	}
}

// Start launches the worker. Stop closes the queue and waits for the worker
// to drain it.
func (d *AsyncDispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

func (d *AsyncDispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.queue) })
	d.wg.Wait()
}

func (d *AsyncDispatcher) Enqueue(n Notification) {
	d.queue <- n
}

func (d *AsyncDispatcher) run() {
	defer d.wg.Done()
	for n := range d.queue {
		subject, body := d.compose(n)
		err := d.mailer.Send(n.Recipients, subject, body)
		if err != nil {
			log.Error().Err(err).Str("kind", string(n.Kind)).Strs("recipients", n.Recipients).Msg("Notification dispatch failed")
		}
		if n.Done != nil {
			n.Done(err)
		}
	}
}

func (d *AsyncDispatcher) compose(n Notification) (subject, body string) {
	p := n.Payload
	switch n.Kind {
	case KindInvite:
		subject = fmt.Sprintf("%s invited you to WellCheck", p["sender_name"])
		body = fmt.Sprintf(
			`<p>Hi %s,</p><p>%s invited you to join WellCheck. Accept the invite here: <a href="%s/invite/%s">join</a></p>`,
			p["receiver_name"], p["sender_name"], d.frontendURL, p["token"],
		)
	case KindCompanyInvite:
		subject = fmt.Sprintf("%s invited you to join them on WellCheck", p["company_name"])
		body = fmt.Sprintf(
			`<p>Hi %s,</p><p>Accept the invite here: <a href="%s/company-invite/%s">join %s</a></p>`,
			p["receiver_name"], d.frontendURL, p["token"], p["company_name"],
		)
		if pw, ok := p["password"]; ok {
			body += fmt.Sprintf(`<p>An account was created for you. Initial password: <b>%s</b></p>`, pw)
		}
	case KindAccountVerification:
		subject = "Confirm your email to activate your WellCheck account"
		body = fmt.Sprintf(`<p>Verify your email: <a href="%s/email-verify/%s">verify</a></p>`, d.frontendURL, p["token"])
	case KindPasswordReset:
		subject = "Reset your WellCheck password"
		body = fmt.Sprintf(`<p>Reset your password: <a href="%s/reset/%s">reset</a></p>`, d.frontendURL, p["token"])
	case KindWelcome:
		subject = "Welcome to WellCheck"
		body = fmt.Sprintf(`<p>Welcome %s!</p><p>Please fill the mandatory questionnaires listed in your dashboard.</p>`, p["name"])
	case KindQuestionnairePublished:
		subject = fmt.Sprintf("New questionnaire published: %s", p["title"])
		body = fmt.Sprintf(
			`<p>%s</p><p><a href="%s/questionnaires/%s">View questionnaire</a></p>`,
			p["description"], d.frontendURL, p["questionnaire_id"],
		)
	case KindMandatoryQuestionnaire:
		subject = fmt.Sprintf("Mandatory questionnaire: %s", p["title"])
		body = fmt.Sprintf(
			`<p>%s</p><p>This questionnaire is mandatory for all users: <a href="%s/questionnaires/%s">fill now</a></p>`,
			p["description"], d.frontendURL, p["questionnaire_id"],
		)
	case KindQuestionnaireReminder:
		subject = fmt.Sprintf("Reminder: please fill %s", p["title"])
		body = fmt.Sprintf(
			`<p>Your company asks you to fill this questionnaire: <a href="%s/questionnaires/%s">fill now</a></p>`,
			d.frontendURL, p["questionnaire_id"],
		)
	case KindCompanyVerified:
		subject = fmt.Sprintf("%s is now verified on WellCheck", p["company_name"])
		body = fmt.Sprintf(`<p>Congratulations, %s has been verified.</p>`, p["company_name"])
	default:
		subject = "WellCheck notification"
		body = "<p>You have a new notification.</p>"
	}
	return subject, body
}
