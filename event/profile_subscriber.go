package event

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/retronet/feedranker/ranking"
	Logger "github.com/retronet/feedranker/utils/log"
)

// ProfileSubscriber listens for interaction events and folds them into
// interest profiles. Updates are best-effort: any failure is logged and the
// event acked anyway, the primary request already succeeded.
type ProfileSubscriber struct {
	updater *ranking.ProfileUpdater
	bus     *gochannel.GoChannel
}

func NewProfileSubscriber(updater *ranking.ProfileUpdater, bus *gochannel.GoChannel) *ProfileSubscriber {
	return &ProfileSubscriber{updater: updater, bus: bus}
}

// Run consumes events until ctx is canceled. Call in its own goroutine.
func (s *ProfileSubscriber) Run(ctx context.Context) error {
	messages, err := s.bus.Subscribe(ctx, TopicInteractionRecorded)
	if err != nil {
		return err
	}

	for msg := range messages {
		msg.Ack()

		var e InteractionRecorded
		if err := json.Unmarshal(msg.Payload, &e); err != nil {
			Logger.Log.Warn("malformed interaction event dropped: ", err)
			continue
		}

		if err := s.updater.Apply(ctx, e.UserID, e.PostID, e.Type); err != nil {
			Logger.Log.Warn("interest profile update failed for user ", e.UserID, ": ", err)
		}
	}
	return nil
}
