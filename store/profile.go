package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/retronet/feedranker/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Weights loads a user's tag affinity map. A user with no profile row yet
// gets an empty map, profiles are created lazily on first save.
func (s *Store) Weights(ctx context.Context, userID string) (map[string]float64, error) {
	var profile model.InterestProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return map[string]float64{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read interest profile for user %s", userID)
	}

	weights := map[string]float64{}
	if len(profile.Weights) > 0 {
		if err := json.Unmarshal(profile.Weights, &weights); err != nil {
			return nil, errors.Wrapf(err, "corrupt interest profile for user %s", userID)
		}
	}
	return weights, nil
}

// SaveWeights upserts the full affinity map for a user.
func (s *Store) SaveWeights(ctx context.Context, userID string, weights map[string]float64) error {
	raw, err := json.Marshal(weights)
	if err != nil {
		return errors.Wrap(err, "cannot encode interest profile")
	}

	profile := model.InterestProfile{
		UserID:    userID,
		UpdatedAt: time.Now(),
		Weights:   datatypes.JSON(raw),
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"weights", "updated_at"}),
		}).
		Create(&profile).Error
	if err != nil {
		return errors.Wrapf(err, "cannot save interest profile for user %s", userID)
	}
	return nil
}
