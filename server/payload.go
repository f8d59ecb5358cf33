package server

import (
	"time"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/retronet/feedranker/model"
	"github.com/retronet/feedranker/ranking"
)

// AuthorInfo is the lightweight author projection embedded in feed items.
type AuthorInfo struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle"`
}

// FeedItem is the outward shape of a post. It deliberately has no score or
// source field: ranking internals never leave the service.
type FeedItem struct {
	Id           string     `json:"id"`
	CreatedAt    time.Time  `json:"createdAt"`
	Type         string     `json:"type"`
	Tags         []string   `json:"tags"`
	LikeCount    int        `json:"likeCount"`
	RepostCount  int        `json:"repostCount"`
	CommentCount int        `json:"commentCount"`
	RepostOfID   *string    `json:"repostOfId,omitempty"`
	CommunityID  *string    `json:"communityId,omitempty"`
	Author       AuthorInfo `json:"author"`
}

// TrendingResponse is the pagination envelope of the standalone trending
// endpoint.
type TrendingResponse struct {
	Items   []FeedItem `json:"items"`
	Page    int        `json:"page"`
	Limit   int        `json:"limit"`
	Total   int        `json:"total"`
	HasMore bool       `json:"hasMore"`
}

// InteractionRequest is the body of the interaction logging endpoint.
type InteractionRequest struct {
	PostID string `json:"postId" binding:"required"`
	Type   string `json:"type" binding:"required"`
}

// toFeedItems projects posts into their outward shape, stripping anything
// the copier does not find a matching field for.
func toFeedItems(posts []model.Post) ([]FeedItem, error) {
	items := make([]FeedItem, 0, len(posts))
	for idx := range posts {
		var item FeedItem
		if err := copier.Copy(&item, &posts[idx]); err != nil {
			return nil, errors.Wrapf(err, "cannot project post %s", posts[idx].Id)
		}
		items = append(items, item)
	}
	return items, nil
}

func candidatePosts(candidates []ranking.Candidate) []model.Post {
	posts := make([]model.Post, 0, len(candidates))
	for _, candidate := range candidates {
		posts = append(posts, candidate.Post)
	}
	return posts
}
