package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/retronet/feedranker/model"
	"gorm.io/gorm"
)

// LogInteraction appends one row to the interaction event log. The log is
// append-only, nothing in this service updates or deletes rows.
func (s *Store) LogInteraction(ctx context.Context, userID, postID, interactionType string) error {
	interaction := model.Interaction{
		Id:     uuid.New().String(),
		UserID: userID,
		PostID: postID,
		Type:   interactionType,
	}
	if err := s.db.WithContext(ctx).Create(&interaction).Error; err != nil {
		return errors.Wrap(err, "cannot append interaction")
	}
	return nil
}

// UserByID returns nil, nil for an unknown user.
func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read user %s", id)
	}
	return &user, nil
}
