package ranking

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/retronet/feedranker/model"
	Logger "github.com/retronet/feedranker/utils/log"
)

// TrendingCache holds a scored trending candidate list for a short TTL so
// the standalone endpoint does not re-pull 500 posts on every page flip.
// Misses are reported as ok == false, never as an error the caller must act
// on.
type TrendingCache interface {
	Get(ctx context.Context, key string) ([]Candidate, bool)
	Set(ctx context.Context, key string, candidates []Candidate)
}

// TrendingGenerator scores sitewide original posts by decayed engagement.
// It backs both the "for you" trending bucket (wide window, no threshold)
// and the standalone trending surface (tight window, threshold, pagination).
type TrendingGenerator struct {
	content ContentStore
	cache   TrendingCache
	config  Config
}

func NewTrendingGenerator(content ContentStore, cache TrendingCache, config Config) *TrendingGenerator {
	return &TrendingGenerator{content: content, cache: cache, config: config}
}

func (g *TrendingGenerator) Source() Source {
	return SourceTrending
}

// score is the decayed-engagement formula. The age floor keeps brand-new
// posts from dividing by a near-zero denominator, the exponent makes decay
// super-linear so engagement value fades within hours, not days.
func (g *TrendingGenerator) score(post model.Post, now time.Time) float64 {
	// Views term reserved: the view counter is not yet denormalized onto
	// posts, so it contributes zero for now.
	raw := 3*float64(post.LikeCount) + 2*float64(post.RepostCount) + 2*float64(post.CommentCount)
	return raw / math.Pow(post.AgeInHours(now)+g.config.TrendingAgeFloorHrs, g.config.TrendingDecayExponent)
}

// Generate is the "for you" bucket: original posts from the wide trending
// window, capped, scored and ranked. No threshold filtering here, the blend
// budget does the cutting.
func (g *TrendingGenerator) Generate(ctx context.Context, _ string) ([]Candidate, error) {
	return g.pull(ctx, g.config.ForYouTrendingWindow())
}

// pull fetches, scores and ranks original posts from the given window.
func (g *TrendingGenerator) pull(ctx context.Context, window time.Duration) ([]Candidate, error) {
	posts, err := g.content.PostsByFilter(ctx, PostFilter{
		OriginalsOnly: true,
		Window:        window,
		Limit:         g.config.TrendingCandidateCap,
	})
	if err != nil {
		return nil, errors.Wrap(err, "cannot fetch trending candidates")
	}

	now := time.Now()
	candidates := make([]Candidate, 0, len(posts))
	for _, post := range posts {
		candidates = append(candidates, Candidate{
			Post:   post,
			Score:  g.score(post, now),
			Source: SourceTrending,
		})
	}
	sortByScore(candidates)
	return candidates, nil
}

// TrendingPage is one page of the standalone trending surface.
type TrendingPage struct {
	Items   []Candidate
	Page    int
	Limit   int
	Total   int
	HasMore bool
}

// Page serves the standalone trending endpoint: tight window, score
// threshold applied before pagination, then a full-list shuffle so repeat
// visitors don't see the identical top slice, then page/limit slicing.
// Total counts the filtered set, not the page.
func (g *TrendingGenerator) Page(ctx context.Context, page, limit int) (*TrendingPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > g.config.MaxTrendingPerPage {
		limit = g.config.MaxTrendingPerPage
	}

	thresholded, err := g.thresholded(ctx)
	if err != nil {
		return nil, err
	}
	// Work on a copy, the thresholded list may be shared with the cache.
	candidates := make([]Candidate, len(thresholded))
	copy(candidates, thresholded)

	// Shuffle the whole filtered set, not just the returned slice.
	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	total := len(candidates)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &TrendingPage{
		Items:   candidates[start:end],
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasMore: end < total,
	}, nil
}

// thresholded returns the scored, threshold-filtered standalone candidate
// set, consulting the cache first. The cache stores the pre-shuffle list so
// every page request still gets its own shuffle.
func (g *TrendingGenerator) thresholded(ctx context.Context) ([]Candidate, error) {
	const cacheKey = "trending_standalone"
	if g.cache != nil {
		if cached, ok := g.cache.Get(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	candidates, err := g.pull(ctx, g.config.TrendingWindow())
	if err != nil {
		return nil, err
	}
	filtered := make([]Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Score >= g.config.TrendingScoreThreshold {
			filtered = append(filtered, candidate)
		}
	}

	if g.cache != nil {
		g.cache.Set(ctx, cacheKey, filtered)
		Logger.Log.Debug("trending cache refreshed, candidates: ", len(filtered))
	}
	return filtered, nil
}
