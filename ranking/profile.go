package ranking

import (
	"context"

	"github.com/pkg/errors"
)

// ProfileUpdater folds interaction events into per-user tag weights.
type ProfileUpdater struct {
	content  ContentStore
	users    UserLookup
	profiles ProfileStore
	config   Config
}

func NewProfileUpdater(content ContentStore, users UserLookup, profiles ProfileStore, config Config) *ProfileUpdater {
	return &ProfileUpdater{content: content, users: users, profiles: profiles, config: config}
}

// Apply increments the user's weight for each tag on the interacted post by
// the interaction type's weight, clamped at the ceiling. A missing user, a
// missing post or a tagless post is a no-op, not an error: profile updates
// are best-effort and an event referencing a since-deleted user or post is
// an expected race.
func (u *ProfileUpdater) Apply(ctx context.Context, userID, postID, interactionType string) error {
	user, err := u.users.UserByID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "cannot look up interacting user")
	}
	if user == nil {
		return nil
	}

	post, err := u.content.PostByID(ctx, postID)
	if err != nil {
		return errors.Wrap(err, "cannot look up interacted post")
	}
	if post == nil || len(post.Tags) == 0 {
		return nil
	}

	weights, err := u.profiles.Weights(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "cannot load interest profile")
	}
	if weights == nil {
		weights = map[string]float64{}
	}

	delta := u.config.InteractionWeight(interactionType)
	for _, tag := range post.Tags {
		next := weights[tag] + delta
		if next > u.config.MaxTagWeight {
			next = u.config.MaxTagWeight
		}
		weights[tag] = next
	}

	if err := u.profiles.SaveWeights(ctx, userID, weights); err != nil {
		return errors.Wrap(err, "cannot save interest profile")
	}
	return nil
}
