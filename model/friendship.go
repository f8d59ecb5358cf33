package model

import "time"

const (
	FriendshipStatusPending  = "pending"
	FriendshipStatusAccepted = "accepted"
)

/*
Friendship is an unordered pair of users with a request status

UserAID, UserBID:

	the two endpoints. The pair is unordered for ranking purposes: once
	accepted either endpoint is "friend of" the other. The friendship
	subsystem guarantees at most one row per unordered pair (it normalizes
	the pair before insert), the ranker does not re-check this.

Status: "pending" until the receiving user accepts, then "accepted"
*/
type Friendship struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UserAID   string `gorm:"index:idx_friendship_pair,unique"`
	UserBID   string `gorm:"index:idx_friendship_pair,unique"`
	Status    string
}
