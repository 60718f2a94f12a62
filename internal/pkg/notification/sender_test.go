package notification

import (
	"context"
	"errors"
	"testing"

	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/pubsub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) SendText(ctx context.Context, number string, text string) error {
	args := m.Called(ctx, number, text)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Close() {
	m.Called()
}

func (m *MockPublisher) PublishMessage(ctx context.Context, notification pubsub.ReminderNotification) (string, error) {
	args := m.Called(ctx, notification)
	return args.String(0), args.Error(1)
}

func TestRouterSend(t *testing.T) {
	ctx := context.Background()

	t.Run("whatsapp goes through the gateway", func(t *testing.T) {
		gateway := new(MockGateway)
		publisher := new(MockPublisher)
		gateway.On("SendText", ctx, "5511999990000", "due tomorrow").Return(nil).Once()

		router := NewRouter(gateway, publisher)
		err := router.Send(ctx, consts.ChannelWhatsApp, "5511999990000", "due tomorrow")

		assert.NoError(t, err)
		publisher.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything)
	})

	t.Run("email rides the notification topic", func(t *testing.T) {
		gateway := new(MockGateway)
		publisher := new(MockPublisher)
		publisher.On("PublishMessage", ctx, pubsub.ReminderNotification{
			Channel:   "EMAIL",
			Recipient: "maria@example.com",
			Message:   "due tomorrow",
		}).Return("msg-1", nil).Once()

		router := NewRouter(gateway, publisher)
		err := router.Send(ctx, consts.ChannelEmail, "maria@example.com", "due tomorrow")

		assert.NoError(t, err)
		gateway.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("sms without a topic fails", func(t *testing.T) {
		router := NewRouter(new(MockGateway), nil)
		err := router.Send(ctx, consts.ChannelSMS, "5511999990000", "due tomorrow")

		assert.ErrorIs(t, err, consts.ErrorMessageSendFailed)
	})

	t.Run("gateway failure surfaces", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("SendText", ctx, mock.Anything, mock.Anything).
			Return(errors.New("session disconnected")).Once()

		router := NewRouter(gateway, new(MockPublisher))
		err := router.Send(ctx, consts.ChannelWhatsApp, "5511999990000", "hi")

		assert.Error(t, err)
	})
}
