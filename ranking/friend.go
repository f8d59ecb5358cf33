package ranking

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
)

// FriendGenerator produces candidates authored by the user's accepted
// friends (and the user themselves, so self-posts stay eligible).
type FriendGenerator struct {
	content ContentStore
	graph   SocialGraph
	config  Config
}

func NewFriendGenerator(content ContentStore, graph SocialGraph, config Config) *FriendGenerator {
	return &FriendGenerator{content: content, graph: graph, config: config}
}

func (g *FriendGenerator) Source() Source {
	return SourceFriend
}

// Generate scores friend posts with recency dominating engagement: friend
// content is meant to feel live, so the recency taper runs out to 24 hours
// where the interest source cuts off at 15.
func (g *FriendGenerator) Generate(ctx context.Context, userID string) ([]Candidate, error) {
	friendIDs, err := g.graph.AcceptedFriendIDs(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "cannot resolve friend ids")
	}
	if len(friendIDs) == 0 {
		return []Candidate{}, nil
	}
	authors := append(friendIDs, userID)

	posts, err := g.content.PostsByFilter(ctx, PostFilter{
		Authors: authors,
		Window:  g.config.FriendWindow(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "cannot fetch friend candidates")
	}

	now := time.Now()
	candidates := make([]Candidate, 0, len(posts))
	for _, post := range posts {
		recency := math.Max(0, g.config.FriendRecencyTaperHrs-post.AgeInHours(now))
		engagement := math.Log1p(float64(post.LikeCount + post.RepostCount + post.CommentCount))
		candidates = append(candidates, Candidate{
			Post:   post,
			Score:  recency + engagement,
			Source: SourceFriend,
		})
	}
	sortByScore(candidates)
	return candidates, nil
}
