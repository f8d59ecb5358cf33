// Package event carries interaction events from the logging call site to
// the interest profile updater over an in-process bus. The decoupling is the
// point: a profile update failure must never fail the interaction request.
package event

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"
)

const TopicInteractionRecorded = "interaction.recorded"

// InteractionRecorded is the bus payload emitted after an interaction row
// has been appended.
type InteractionRecorded struct {
	UserID string `json:"user_id"`
	PostID string `json:"post_id"`
	Type   string `json:"type"`
}

// NewBus builds the in-process event bus shared by publisher and
// subscribers.
func NewBus() *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            100,
			BlockPublishUntilSubscriberAck: false,
		},
		watermill.NewStdLogger(false, false),
	)
}

// PublishInteraction emits an InteractionRecorded event. Failing to publish
// is surfaced to the caller, who decides whether to swallow it.
func PublishInteraction(bus *gochannel.GoChannel, e InteractionRecorded) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "cannot encode interaction event")
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := bus.Publish(TopicInteractionRecorded, msg); err != nil {
		return errors.Wrap(err, "cannot publish interaction event")
	}
	return nil
}
