package model

import "time"

// Interaction types recognized by the interest profile updater. Any other
// value is still recorded, it just contributes the default weight.
const (
	InteractionView    = "view"
	InteractionLike    = "like"
	InteractionRepost  = "repost"
	InteractionComment = "comment"
)

// Interaction is one append-only row of the (user, content, type) event log.
// Rows are never updated or deleted.
type Interaction struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UserID    string `gorm:"index"`
	PostID    string `gorm:"index"`
	Type      string
}
