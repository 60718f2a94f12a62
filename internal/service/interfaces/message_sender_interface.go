package interfaces

import (
	"context"

	"loanservicing/internal/pkg/consts"
)

// MessageSender delivers a rendered reminder to a customer over a channel.
type MessageSender interface {
	Send(ctx context.Context, channel consts.ReminderChannel, recipient string, message string) error
}
