package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

// RequestApproval emails every approver of a section that new content is
// waiting for review. Delivery is best-effort: failures are logged and
// swallowed, and a nil or disabled mailer is a no-op.
func RequestApproval(ctx context.Context, m Mailer, approvers []models.User, section, title string) {
	if m == nil || len(approvers) == 0 {
		return
	}

	to := make([]string, 0, len(approvers))
	for _, a := range approvers {
		if a.Email != "" {
			to = append(to, a.Email)
		}
	}

	if len(to) == 0 {
		return
	}

	subject := fmt.Sprintf("[%s] approval requested: %s", section, title)
	body := fmt.Sprintf(
		"New content in the %s section is waiting for review.\r\n\r\nTitle: %s\r\n",
		section, title,
	)

	if err := m.Send(ctx, to, subject, body); err != nil {
		log.Warn().Err(err).Str("section", section).Msg("approval notification failed")
	}
}

// AnnounceOnAir pushes a live-stream start message. Best-effort like
// RequestApproval.
func AnnounceOnAir(ctx context.Context, p Pusher, title, url string) {
	if p == nil {
		return
	}

	msg := fmt.Sprintf("Live now: %s\n%s", title, url)

	if err := p.Push(ctx, msg); err != nil {
		log.Warn().Err(err).Msg("on-air push notification failed")
	}
}
