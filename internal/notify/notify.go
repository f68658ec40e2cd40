// Package notify sends outbound notifications: transactional email for
// contact-form intake and approval requests, and a messaging-platform push
// for live-stream starts. Delivery is best-effort; request handlers log and
// swallow failures so a notification outage never fails the parent request.
package notify

import (
	"context"
	"errors"
)

// ErrDisabled is returned when a sender is not configured.
var ErrDisabled = errors.New("notification sender is disabled")

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// Pusher sends a message to the messaging-platform push API.
type Pusher interface {
	Push(ctx context.Context, message string) error
}
