package ranking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/retronet/feedranker/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterestGenerator_RanksByAffinity(t *testing.T) {
	// Two fresh zero-engagement posts, one tagged with a strong interest and
	// one with a weak interest: the strong one must rank first.
	content := &fakeContent{posts: []model.Post{
		makePost("p_music", "a1", 0, []string{"music"}, 0, 0, 0),
		makePost("p_art", "a2", 0, []string{"art"}, 0, 0, 0),
	}}
	profiles := &fakeProfiles{weights: map[string]map[string]float64{
		"u1": {"music": 50, "art": 10},
	}}
	g := NewInterestGenerator(content, profiles, DefaultConfig())

	candidates, err := g.Generate(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "p_music", candidates[0].Post.Id)
	assert.Equal(t, "p_art", candidates[1].Post.Id)
	// affinity + full recency bonus, no engagement.
	assert.InDelta(t, 65, candidates[0].Score, 0.01)
	assert.InDelta(t, 25, candidates[1].Score, 0.01)
}

func TestInterestGenerator_NoProfileYieldsEmpty(t *testing.T) {
	content := &fakeContent{posts: []model.Post{
		makePost("p1", "a1", time.Hour, []string{"music"}, 3, 1, 0),
	}}
	g := NewInterestGenerator(content, &fakeProfiles{}, DefaultConfig())

	candidates, err := g.Generate(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestInterestGenerator_MultiTagMatchStacksWeights(t *testing.T) {
	content := &fakeContent{posts: []model.Post{
		makePost("p_both", "a1", 20*time.Hour, []string{"retro", "y2k"}, 0, 0, 0),
		makePost("p_one", "a2", 20*time.Hour, []string{"retro"}, 0, 0, 0),
	}}
	profiles := &fakeProfiles{weights: map[string]map[string]float64{
		"u1": {"retro": 30, "y2k": 20},
	}}
	g := NewInterestGenerator(content, profiles, DefaultConfig())

	candidates, err := g.Generate(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	// Both posts are past the 15h recency taper, so scores are pure affinity.
	assert.Equal(t, "p_both", candidates[0].Post.Id)
	assert.InDelta(t, 50, candidates[0].Score, 0.01)
	assert.InDelta(t, 30, candidates[1].Score, 0.01)
}

func TestInterestGenerator_OnlyTopTagsCount(t *testing.T) {
	// Build 16 tags weighted 16..1. The weakest tag falls outside the top 15
	// and posts matching only it must not surface.
	weights := map[string]float64{}
	for i := 1; i <= 16; i++ {
		weights[fmt.Sprintf("tag%02d", i)] = float64(i)
	}
	content := &fakeContent{posts: []model.Post{
		makePost("p_weak", "a1", time.Hour, []string{"tag01"}, 0, 0, 0),
		makePost("p_strong", "a2", time.Hour, []string{"tag16"}, 0, 0, 0),
	}}
	profiles := &fakeProfiles{weights: map[string]map[string]float64{"u1": weights}}
	g := NewInterestGenerator(content, profiles, DefaultConfig())

	candidates, err := g.Generate(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "p_strong", candidates[0].Post.Id)
}

func TestTopWeightedTags(t *testing.T) {
	t.Run("orders by weight", func(t *testing.T) {
		tags := topWeightedTags(map[string]float64{"a": 1, "b": 5, "c": 3}, 15)
		assert.Equal(t, []string{"b", "c", "a"}, tags)
	})
	t.Run("truncates at limit", func(t *testing.T) {
		tags := topWeightedTags(map[string]float64{"a": 1, "b": 5, "c": 3}, 2)
		assert.Equal(t, []string{"b", "c"}, tags)
	})
	t.Run("empty map", func(t *testing.T) {
		assert.Empty(t, topWeightedTags(map[string]float64{}, 15))
	})
}
