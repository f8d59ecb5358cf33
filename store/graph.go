package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/retronet/feedranker/model"
)

// AcceptedFriendIDs resolves the other endpoint of every accepted edge
// touching userID. Edges are unordered pairs, so the user may sit on either
// side.
func (s *Store) AcceptedFriendIDs(ctx context.Context, userID string) ([]string, error) {
	var edges []model.Friendship
	err := s.db.WithContext(ctx).
		Where("status = ?", model.FriendshipStatusAccepted).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Find(&edges).Error
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read friendships for user %s", userID)
	}

	friendIDs := make([]string, 0, len(edges))
	for _, edge := range edges {
		if edge.UserAID == userID {
			friendIDs = append(friendIDs, edge.UserBID)
		} else {
			friendIDs = append(friendIDs, edge.UserAID)
		}
	}
	return friendIDs, nil
}
