// Package notify defines the notification-dispatch port and the payloads of
// the account emails. Delivery itself happens outside this service; only the
// publish contract lives here.
package notify

import "context"

// Subject selects the email template on the consumer side.
type Subject string

const (
	SubjectActivation    Subject = "Activation code"
	SubjectResetPassword Subject = "Reset password"
)

// Context is the template payload of a notification. It is a sealed union:
// exactly ActivationContext or ResetPasswordContext. Dispatchers distinguish
// the variants by tag, not by structural overlap.
type Context interface {
	Subject() Subject
}

// ActivationContext fills the account-activation template.
type ActivationContext struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Code      string  `json:"code"`
	ExpiresIn int64   `json:"expire_time"`
}

func (ActivationContext) Subject() Subject { return SubjectActivation }

// ResetPasswordContext fills the reset-password template. It carries its own
// field set even though it currently mirrors ActivationContext.
type ResetPasswordContext struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Code      string  `json:"code"`
	ExpiresIn int64   `json:"expire_time"`
}

func (ResetPasswordContext) Subject() Subject { return SubjectResetPassword }

// Message is one notification to a single recipient.
type Message struct {
	To      string
	Context Context
}

// Dispatcher publishes notification messages. Send is fire-and-forget from
// the caller's perspective: a failed dispatch must not roll back the account
// operation that triggered it.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}
