// Package notify maps application status transitions to notification
// intents. It performs no I/O; an external delivery collaborator consumes
// the intents.
package notify

import (
	"strconv"

	"github.com/jonathan/talent-screener/internal/types"
)

// Recipient identifies who a notification intent is addressed to.
type Recipient string

// Recipient constants
const (
	RecipientCandidate Recipient = "candidate"
	RecipientHR        Recipient = "hr"
)

// Template keys for rendered notifications.
const (
	TemplateApplicationReceived    = "application_received"
	TemplateNewApplication         = "new_application"
	TemplateApplicationScreening   = "application_screening"
	TemplateApplicationShortlisted = "application_shortlisted"
	TemplateInterviewInvitation    = "interview_invitation"
	TemplateInterviewScheduled     = "interview_scheduled_confirm"
	TemplateApplicationRejected    = "application_rejected"
	TemplateOfferExtended          = "offer_extended"
	TemplateCandidateHired         = "candidate_hired"
	TemplateApplicationWithdrawn   = "application_withdrawn"
)

// NotificationIntent names a recipient, a template, and the data needed to
// render it. Delivery mechanics (email, SMS, push) are out of scope.
type NotificationIntent struct {
	Recipient Recipient         `json:"recipient"`
	Template  string            `json:"template"`
	Data      map[string]string `json:"data"`
}

// Dispatcher decides which notifications a transition should emit.
type Dispatcher interface {
	OnTransition(app *types.Application, from, to types.ApplicationStatus) []NotificationIntent
}

// TemplateDispatcher is the default Dispatcher: a pure mapping from
// (from, to) pairs to intents.
type TemplateDispatcher struct{}

// OnTransition implements Dispatcher. An empty from status denotes
// application creation.
func (TemplateDispatcher) OnTransition(app *types.Application, from, to types.ApplicationStatus) []NotificationIntent {
	data := intentData(app)

	if from == "" && to == types.StatusSubmitted {
		return []NotificationIntent{
			{Recipient: RecipientCandidate, Template: TemplateApplicationReceived, Data: data},
			{Recipient: RecipientHR, Template: TemplateNewApplication, Data: data},
		}
	}

	switch to {
	case types.StatusShortlisted:
		return []NotificationIntent{
			{Recipient: RecipientCandidate, Template: TemplateApplicationShortlisted, Data: data},
		}
	case types.StatusInterviewScheduled:
		return []NotificationIntent{
			{Recipient: RecipientCandidate, Template: TemplateInterviewInvitation, Data: data},
			{Recipient: RecipientHR, Template: TemplateInterviewScheduled, Data: data},
		}
	case types.StatusRejected:
		return []NotificationIntent{
			{Recipient: RecipientCandidate, Template: TemplateApplicationRejected, Data: data},
		}
	case types.StatusHired:
		return []NotificationIntent{
			{Recipient: RecipientCandidate, Template: TemplateOfferExtended, Data: data},
			{Recipient: RecipientHR, Template: TemplateCandidateHired, Data: data},
		}
	case types.StatusWithdrawn:
		return []NotificationIntent{
			{Recipient: RecipientHR, Template: TemplateApplicationWithdrawn, Data: data},
		}
	}

	// Screening and interviewed are internal steps with no outbound notice.
	return nil
}

func intentData(app *types.Application) map[string]string {
	data := map[string]string{
		"application_id": app.ID.String(),
		"candidate_id":   app.CandidateID.String(),
		"job_id":         app.JobID.String(),
		"status":         string(app.Status),
		"score":          strconv.Itoa(app.Score),
	}
	if entry := app.CurrentTimelineEntry(); entry != nil && entry.Reason != "" {
		data["reason"] = entry.Reason
	}
	return data
}
