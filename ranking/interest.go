package ranking

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// InterestGenerator produces candidates from posts matching the user's
// highest-weighted interest tags.
type InterestGenerator struct {
	content  ContentStore
	profiles ProfileStore
	config   Config
}

func NewInterestGenerator(content ContentStore, profiles ProfileStore, config Config) *InterestGenerator {
	return &InterestGenerator{content: content, profiles: profiles, config: config}
}

func (g *InterestGenerator) Source() Source {
	return SourceInterest
}

// Generate pulls posts from the trailing interest window whose tag set
// intersects the user's top tags and ranks them by affinity + recency +
// popularity. A user with no recorded interests gets an empty list, that is
// a valid state and not an error.
func (g *InterestGenerator) Generate(ctx context.Context, userID string) ([]Candidate, error) {
	weights, err := g.profiles.Weights(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load interest profile")
	}
	topTags := topWeightedTags(weights, g.config.InterestTopTags)
	if len(topTags) == 0 {
		return []Candidate{}, nil
	}

	posts, err := g.content.PostsByFilter(ctx, PostFilter{
		Tags:   topTags,
		Window: g.config.InterestWindow(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "cannot fetch interest candidates")
	}

	now := time.Now()
	topSet := make(map[string]bool, len(topTags))
	for _, tag := range topTags {
		topSet[tag] = true
	}

	candidates := make([]Candidate, 0, len(posts))
	for _, post := range posts {
		// A post matching several high-weight tags accumulates each weight,
		// not the union.
		affinity := 0.0
		for _, tag := range post.Tags {
			if topSet[tag] {
				affinity += weights[tag]
			}
		}
		recency := math.Max(0, g.config.InterestRecencyTaperHrs-post.AgeInHours(now))
		popularity := math.Log1p(float64(post.LikeCount + post.RepostCount))
		candidates = append(candidates, Candidate{
			Post:   post,
			Score:  affinity + recency + popularity,
			Source: SourceInterest,
		})
	}
	sortByScore(candidates)
	return candidates, nil
}

// topWeightedTags returns up to limit tags ordered by descending weight.
// Equal-weight tags tie-break lexicographically so the cut is stable.
func topWeightedTags(weights map[string]float64, limit int) []string {
	tags := make([]string, 0, len(weights))
	for tag := range weights {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if weights[tags[i]] != weights[tags[j]] {
			return weights[tags[i]] > weights[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}
