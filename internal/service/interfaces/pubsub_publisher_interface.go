package interfaces

import (
	"context"

	"loanservicing/internal/pkg/pubsub"
)

type PubSubPublisherInterface interface {
	Close()
	PublishMessage(context.Context, pubsub.ReminderNotification) (string, error)
}
