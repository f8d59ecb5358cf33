package model

import (
	"time"

	"gorm.io/datatypes"
)

/*
InterestProfile is the per-user record of tag affinity

UserID: primary key, one row per user, created lazily on first interaction

Weights:

	json object mapping tag -> non-negative weight. Weights grow additively
	as the user interacts with tagged content and are clamped at a maximum
	on write. There is no decay path: a weight only ever goes up until it
	hits the clamp ceiling.
*/
type InterestProfile struct {
	UserID    string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Weights   datatypes.JSON
}
