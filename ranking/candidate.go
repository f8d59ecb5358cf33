package ranking

import (
	"context"
	"sort"
	"time"

	"github.com/retronet/feedranker/model"
)

// Source identifies which generator produced a candidate.
type Source string

const (
	SourceInterest Source = "interest"
	SourceFriend   Source = "friend"
	SourceTrending Source = "trending"
)

// Candidate wraps a post with its transient ranking score. Candidates only
// live for the duration of one feed composition request, the score is never
// persisted and is stripped before the post leaves the service.
type Candidate struct {
	Post   model.Post `json:"post"`
	Score  float64    `json:"score"`
	Source Source     `json:"source"`
}

// sortByScore orders candidates by descending score in place. Ties keep the
// newer post first so freshly created content does not sink below stale
// equal-scored content.
func sortByScore(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Post.CreatedAt.After(candidates[j].Post.CreatedAt)
	})
}

// PostFilter bounds a candidate pull from the content store. Zero-valued
// fields are "don't care": an empty Tags slice places no tag constraint, an
// empty Authors slice no author constraint, and so on. Window is always
// required, Limit of zero means store default.
type PostFilter struct {
	Tags          []string
	Authors       []string
	OriginalsOnly bool
	Window        time.Duration
	Limit         int
}

// ContentStore is the read surface of the content subsystem the ranker
// consumes. Implementations must only return approved, non-deleted posts.
type ContentStore interface {
	PostsByFilter(ctx context.Context, filter PostFilter) ([]model.Post, error)
	PostByID(ctx context.Context, id string) (*model.Post, error)
	// RecentPosts backs the empty-feed fallback: the newest posts sitewide,
	// unscored.
	RecentPosts(ctx context.Context, limit int) ([]model.Post, error)
}

// UserLookup resolves user existence. Implementations return nil, nil for an
// unknown or deleted user, not an error.
type UserLookup interface {
	UserByID(ctx context.Context, id string) (*model.User, error)
}

// SocialGraph resolves accepted friendship edges.
type SocialGraph interface {
	AcceptedFriendIDs(ctx context.Context, userID string) ([]string, error)
}

// ProfileStore reads and writes per-user tag affinity maps. Weights returns
// an empty map, not an error, for a user with no profile yet.
type ProfileStore interface {
	Weights(ctx context.Context, userID string) (map[string]float64, error)
	SaveWeights(ctx context.Context, userID string, weights map[string]float64) error
}
