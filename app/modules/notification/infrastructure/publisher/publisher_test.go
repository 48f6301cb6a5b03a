package notificationpublisher

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPublisher struct {
	calls int
}

func (f *failingPublisher) Publish(topic string, messages ...*message.Message) error {
	f.calls++
	if f.calls == 1 {
		return errors.New("broker unavailable")
	}
	return nil
}

func (f *failingPublisher) Close() error { return nil }

var _ message.Publisher = (*failingPublisher)(nil)

func TestPublisher_Notify(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 8}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, notificationevents.RequestedV1)
	require.NoError(t, err)

	matchID := int64(7)
	requests := []notificationevents.RequestedPayloadV1{
		{UserID: 11, MatchID: &matchID, Type: notificationevents.TypeMatchInvitation, Message: "invited"},
		{UserID: 12, MatchID: &matchID, Type: notificationevents.TypeMatchInvitation, Message: "invited", Channel: "sms"},
	}

	p := NewPublisher(pubSub, slog.Default(), nil)
	require.NoError(t, p.Notify(ctx, requests))

	var got []notificationevents.RequestedPayloadV1
	var correlationIDs []string
	for range requests {
		select {
		case msg := <-messages:
			var payload notificationevents.RequestedPayloadV1
			require.NoError(t, json.Unmarshal(msg.Payload, &payload))
			got = append(got, payload)
			correlationIDs = append(correlationIDs, middleware.MessageCorrelationID(msg))
			assert.NotEmpty(t, msg.UUID)
			msg.Ack()
		case <-ctx.Done():
			t.Fatal("timed out waiting for notification request")
		}
	}

	require.Len(t, got, 2)
	assert.Equal(t, int64(11), got[0].UserID)
	assert.Equal(t, "email", got[0].Channel)
	assert.Equal(t, "sms", got[1].Channel)
	assert.NotEmpty(t, correlationIDs[0])
	assert.Equal(t, correlationIDs[0], correlationIDs[1])
}

func TestPublisher_NotifyAttemptsEveryRequest(t *testing.T) {
	pub := &failingPublisher{}
	p := NewPublisher(pub, slog.Default(), nil)

	err := p.Notify(context.Background(), []notificationevents.RequestedPayloadV1{
		{UserID: 11, Type: notificationevents.TypeMatchCanceled},
		{UserID: 12, Type: notificationevents.TypeMatchCanceled},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
	assert.Equal(t, 2, pub.calls)
}
