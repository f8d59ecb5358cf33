package ranking

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/pkg/errors"
	"github.com/retronet/feedranker/model"
	"github.com/retronet/feedranker/utils"
	Logger "github.com/retronet/feedranker/utils/log"
)

// Generator is one candidate source feeding the composer.
type Generator interface {
	Source() Source
	Generate(ctx context.Context, userID string) ([]Candidate, error)
}

// Composer blends the three candidate sources into one "for you" feed.
type Composer struct {
	interest Generator
	friend   Generator
	trending Generator
	content  ContentStore
	config   Config
}

func NewComposer(interest, friend, trending Generator, content ContentStore, config Config) *Composer {
	return &Composer{
		interest: interest,
		friend:   friend,
		trending: trending,
		content:  content,
		config:   config,
	}
}

// ForYou composes a user's blended feed:
//
//  1. run the three generators concurrently, each under its own time budget,
//  2. deduplicate by post id with source priority interest > friend > trending,
//  3. fill the feed under proportional budgets with asymmetric backfill,
//  4. shuffle so same-source candidates are not clustered.
//
// If everything comes back empty the newest posts sitewide are returned
// as-is: unscored and unshuffled.
//
// The backfill order is asymmetric on purpose: an interest shortfall frees
// budget for both friend and trending slices, a friend shortfall only frees
// budget for trending.
func (c *Composer) ForYou(ctx context.Context, userID string) ([]model.Post, error) {
	lists, err := c.generateAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	interest := c.dedupe(ctx, lists[SourceInterest], seen)
	friend := c.dedupe(ctx, lists[SourceFriend], seen)
	trending := c.dedupe(ctx, lists[SourceTrending], seen)

	feedSize := c.config.FeedSize
	interestTarget := int(math.Floor(float64(feedSize) * c.config.InterestShare))
	friendTarget := int(math.Floor(float64(feedSize) * c.config.FriendShare))

	// The friend slice stays hard-capped at its target even when interest
	// falls short, while trending absorbs whatever budget is left after the
	// first two slices. That asymmetry is deliberate.
	combined := take(interest, interestTarget)
	remaining := feedSize - len(combined)
	combined = append(combined, take(friend, utils.Min(friendTarget, remaining))...)
	remaining = feedSize - len(combined)
	combined = append(combined, take(trending, remaining)...)

	if len(combined) == 0 {
		return c.fallback(ctx)
	}

	rand.Shuffle(len(combined), func(i, j int) {
		combined[i], combined[j] = combined[j], combined[i]
	})

	posts := make([]model.Post, 0, len(combined))
	for _, candidate := range combined {
		posts = append(posts, candidate.Post)
	}
	return posts, nil
}

// generateAll runs every generator in parallel and collects the lists by
// source. A generator error fails the whole request per the error contract,
// except a deadline blown by one slow source: that source just contributes
// an empty list.
func (c *Composer) generateAll(ctx context.Context, userID string) (map[Source][]Candidate, error) {
	generators := []Generator{c.interest, c.friend, c.trending}

	var (
		m     sync.Mutex
		wg    sync.WaitGroup
		lists = make(map[Source][]Candidate, len(generators))
		errs  []error
	)

	for _, generator := range generators {
		wg.Add(1)
		go func(g Generator) {
			defer wg.Done()
			genCtx, cancel := context.WithTimeout(ctx, c.config.GeneratorTimeout())
			defer cancel()

			candidates, err := g.Generate(genCtx, userID)

			m.Lock()
			defer m.Unlock()
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					Logger.Log.Warn("candidate source timed out: ", g.Source())
					lists[g.Source()] = []Candidate{}
					return
				}
				errs = append(errs, errors.Wrapf(err, "source %s failed", g.Source()))
				return
			}
			lists[g.Source()] = candidates
		}(generator)
	}
	wg.Wait()

	if len(errs) > 0 {
		return nil, errs[0]
	}
	return lists, nil
}

func (c *Composer) fallback(ctx context.Context) ([]model.Post, error) {
	posts, err := c.content.RecentPosts(ctx, c.config.FeedSize)
	if err != nil {
		return nil, errors.Wrap(err, "cannot fetch fallback posts")
	}
	return posts, nil
}

// dedupe drops candidates whose identity was already claimed by an earlier
// source and records the survivors. Callers establish source priority by
// call order. Identity is the origin of the repost chain, so a repost and
// its original cannot both take a feed slot.
func (c *Composer) dedupe(ctx context.Context, candidates []Candidate, seen map[string]bool) []Candidate {
	result := make([]Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		key := c.dedupeKey(ctx, candidate)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, candidate)
	}
	return result
}

func (c *Composer) dedupeKey(ctx context.Context, candidate Candidate) string {
	if !candidate.Post.IsRepost() {
		return candidate.Post.Id
	}
	origin, err := ResolveOrigin(ctx, c.content, &candidate.Post)
	if err != nil {
		// A broken chain degrades to identity by own id instead of failing
		// the feed.
		Logger.Log.Warn("cannot resolve repost origin for ", candidate.Post.Id, ": ", err)
		return candidate.Post.Id
	}
	return origin.Id
}

func take(candidates []Candidate, n int) []Candidate {
	if n < 0 {
		n = 0
	}
	if len(candidates) < n {
		n = len(candidates)
	}
	return candidates[:n]
}
