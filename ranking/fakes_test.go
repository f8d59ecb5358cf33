package ranking

import (
	"context"
	"sort"
	"time"

	"github.com/retronet/feedranker/model"
)

// fakeContent is an in-memory ContentStore honoring the same filter
// semantics as the gorm implementation.
type fakeContent struct {
	posts      []model.Post
	filterErr  error
	recentErr  error
	lastFilter PostFilter
}

func (f *fakeContent) PostsByFilter(ctx context.Context, filter PostFilter) ([]model.Post, error) {
	f.lastFilter = filter
	if f.filterErr != nil {
		return nil, f.filterErr
	}

	cutoff := time.Now().Add(-filter.Window)
	var result []model.Post
	for _, post := range f.posts {
		if !post.Approved || post.CreatedAt.Before(cutoff) {
			continue
		}
		if len(filter.Tags) > 0 && !tagsIntersect(post.Tags, filter.Tags) {
			continue
		}
		if len(filter.Authors) > 0 && !containsString(filter.Authors, post.AuthorID) {
			continue
		}
		if filter.OriginalsOnly && post.IsRepost() {
			continue
		}
		result = append(result, post)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (f *fakeContent) PostByID(ctx context.Context, id string) (*model.Post, error) {
	for idx := range f.posts {
		if f.posts[idx].Id == id {
			post := f.posts[idx]
			return &post, nil
		}
	}
	return nil, nil
}

func (f *fakeContent) RecentPosts(ctx context.Context, limit int) ([]model.Post, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	result := make([]model.Post, len(f.posts))
	copy(result, f.posts)
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type fakeGraph struct {
	friends map[string][]string
	err     error
}

func (f *fakeGraph) AcceptedFriendIDs(ctx context.Context, userID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.friends[userID], nil
}

// fakeUsers knows a fixed set of user ids, anyone else is unknown.
type fakeUsers struct {
	ids []string
	err error
}

func (f *fakeUsers) UserByID(ctx context.Context, id string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if containsString(f.ids, id) {
		return &model.User{Id: id}, nil
	}
	return nil, nil
}

type fakeProfiles struct {
	weights map[string]map[string]float64
	readErr error
	saveErr error
}

func (f *fakeProfiles) Weights(ctx context.Context, userID string) (map[string]float64, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if w, ok := f.weights[userID]; ok {
		return w, nil
	}
	return map[string]float64{}, nil
}

func (f *fakeProfiles) SaveWeights(ctx context.Context, userID string, weights map[string]float64) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.weights == nil {
		f.weights = map[string]map[string]float64{}
	}
	f.weights[userID] = weights
	return nil
}

type fakeCache struct {
	entries map[string][]Candidate
	gets    int
	hits    int
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]Candidate, bool) {
	f.gets++
	if c, ok := f.entries[key]; ok {
		f.hits++
		return c, true
	}
	return nil, false
}

func (f *fakeCache) Set(ctx context.Context, key string, candidates []Candidate) {
	if f.entries == nil {
		f.entries = map[string][]Candidate{}
	}
	f.entries[key] = candidates
}

// staticGenerator returns a fixed candidate list, used to drive the
// composer directly.
type staticGenerator struct {
	source     Source
	candidates []Candidate
	err        error
}

func (g *staticGenerator) Source() Source { return g.source }

func (g *staticGenerator) Generate(ctx context.Context, userID string) ([]Candidate, error) {
	return g.candidates, g.err
}

func tagsIntersect(a, b []string) bool {
	for _, tag := range a {
		if containsString(b, tag) {
			return true
		}
	}
	return false
}

func containsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// makePost builds a post fixture aged by age relative to now.
func makePost(id, author string, age time.Duration, tags []string, likes, reposts, comments int) model.Post {
	return model.Post{
		Id:           id,
		CreatedAt:    time.Now().Add(-age),
		AuthorID:     author,
		Type:         "text",
		Tags:         tags,
		LikeCount:    likes,
		RepostCount:  reposts,
		CommentCount: comments,
		Approved:     true,
	}
}
