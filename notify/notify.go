// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"log/slog"
)

// Recipient is one person a nudge goes to.
type Recipient struct {
	Name  string
	Email string
}

// Nudge is a reminder to voters who answered "maybe" for a date.
type Nudge struct {
	PollID     string
	PollTitle  string
	Date       string // ISO yyyy-mm-dd
	Summary    string // human phrasing of the date, e.g. "Saturday the 1st of June"
	Recipients []Recipient
}

// Sender delivers nudges. Implementations must be safe for concurrent use.
type Sender interface {
	SendNudge(ctx context.Context, n Nudge) error
}

// LogSender writes nudges to the structured log instead of delivering
// them. Used in development and as the default when no mail transport
// is configured.
type LogSender struct{}

func (LogSender) SendNudge(ctx context.Context, n Nudge) error {
	for _, r := range n.Recipients {
		slog.Info("nudge",
			"poll_id", n.PollID,
			"poll_title", n.PollTitle,
			"date", n.Date,
			"summary", n.Summary,
			"recipient_name", r.Name,
			"recipient_email", r.Email,
		)
	}
	return nil
}
