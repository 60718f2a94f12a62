package notification

import (
	"context"
	"fmt"

	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/downstreams"
	"loanservicing/internal/pkg/pubsub"
	"loanservicing/internal/service/interfaces"
)

// Router sends WhatsApp reminders through the gateway session and fans the
// other channels out to the notification topic.
type Router struct {
	gateway   downstreams.WhatsAppGatewayAPI
	publisher interfaces.PubSubPublisherInterface
}

func NewRouter(gateway downstreams.WhatsAppGatewayAPI, publisher interfaces.PubSubPublisherInterface) *Router {
	return &Router{
		gateway:   gateway,
		publisher: publisher,
	}
}

func (r *Router) Send(ctx context.Context, channel consts.ReminderChannel, recipient string, message string) error {
	switch channel {
	case consts.ChannelWhatsApp:
		return r.gateway.SendText(ctx, recipient, message)
	case consts.ChannelEmail, consts.ChannelSMS:
		if r.publisher == nil {
			return fmt.Errorf("%w: no notification topic configured for channel %s", consts.ErrorMessageSendFailed, channel)
		}
		_, err := r.publisher.PublishMessage(ctx, pubsub.ReminderNotification{
			Channel:   string(channel),
			Recipient: recipient,
			Message:   message,
		})
		return err
	default:
		return fmt.Errorf("%w: unsupported channel %s", consts.ErrorMessageSendFailed, channel)
	}
}
