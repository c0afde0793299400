// Package scheduler wraps the external periodic scheduler behind the narrow
// contract the rule binding depends on: create a named cron job carrying
// invocation kwargs, and flip the enabled flag of existing jobs.
package scheduler

// JobKwargs is the invocation payload of a recurring questionnaire
// notification job.
type JobKwargs struct {
	Emails          []string
	QuestionnaireID uint
	CompanyID       uint
}

// Task is what a job runs when it fires.
type Task func(kwargs JobKwargs)

// Scheduler is the external collaborator contract. Job handles are opaque to
// callers; QuestionnaireRule persists them as NotificationRef.
type Scheduler interface {
	// CreateJob registers a recurring job. The job starts enabled.
	CreateJob(name, cronSpec string, task Task, kwargs JobKwargs) (string, error)
	// SetEnabled flips the enabled flag of every given job. Unknown handles
	// are skipped.
	SetEnabled(handles []string, enabled bool) error
}
