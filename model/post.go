package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

/*

Post is a single piece of user generated content (bulletin)

Id: primary key
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

AuthorID:
Author: user who created the post, "belongs-to" relation

Type: content type, one of "text", "image", "video", "composite"
Tags: free-form topic tags attached at creation time, order is irrelevant

LikeCount, RepostCount, CommentCount:
		denormalized engagement counters, derived from the likes/reposts/comments
		collections owned by the content subsystem. The ranker only ever reads
		them, it never writes them back.

RepostOfID:
RepostOf:
		if the post is a repost, points at the post being reposted. Reposts may
		chain (a repost of a repost), but by construction a chain always bottoms
		out at a non-repost original. A post can only repost something that
		already exists, so a cycle cannot be created through normal writes.

CommunityID: optional community the post was published into
Approved: false only while a moderated community holds the post for review
*/

type Post struct {
	Id           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	DeletedAt    gorm.DeletedAt
	AuthorID     string `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Author       User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Type         string
	Tags         pq.StringArray `gorm:"type:text[]"`
	LikeCount    int
	RepostCount  int
	CommentCount int
	RepostOfID   *string
	RepostOf     *Post
	CommunityID  *string
	Approved     bool `gorm:"default:true"`
}

// IsRepost returns true iff the post references a parent post.
func (p *Post) IsRepost() bool {
	return p.RepostOfID != nil && *p.RepostOfID != ""
}

// AgeInHours is the elapsed time since creation, measured at now. Never
// negative, posts timestamped in the future count as age zero.
func (p *Post) AgeInHours(now time.Time) float64 {
	age := now.Sub(p.CreatedAt).Hours()
	if age < 0 {
		return 0
	}
	return age
}
