package ranking

import (
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

/*
Config carries every tuning constant of the ranking engine. It is built once
at startup and passed by value into each component, nothing reads tuning
values from package level state.

The three trending windows are deliberately distinct knobs: the "for you"
trending bucket historically ran on a wider window than the standalone
trending surface, and unifying them would silently change ranking output.
*/
type Config struct {
	// Interest source.
	InterestWindowDays      int     `yaml:"INTEREST_WINDOW_DAYS"`
	InterestTopTags         int     `yaml:"INTEREST_TOP_TAGS"`
	InterestRecencyTaperHrs float64 `yaml:"INTEREST_RECENCY_TAPER_HOURS"`

	// Friend source.
	FriendWindowDays      int     `yaml:"FRIEND_WINDOW_DAYS"`
	FriendRecencyTaperHrs float64 `yaml:"FRIEND_RECENCY_TAPER_HOURS"`

	// Trending source.
	TrendingWindowDays       int     `yaml:"TRENDING_WINDOW_DAYS"`
	ForYouTrendingWindowDays int     `yaml:"FOR_YOU_TRENDING_WINDOW_DAYS"`
	TrendingCandidateCap     int     `yaml:"TRENDING_CANDIDATE_CAP"`
	TrendingScoreThreshold   float64 `yaml:"TRENDING_SCORE_THRESHOLD"`
	TrendingDecayExponent    float64 `yaml:"TRENDING_DECAY_EXPONENT"`
	TrendingAgeFloorHrs      float64 `yaml:"TRENDING_AGE_FLOOR_HOURS"`

	// "For you" blend.
	FeedSize           int     `yaml:"FEED_SIZE"`
	InterestShare      float64 `yaml:"INTEREST_SHARE"`
	FriendShare        float64 `yaml:"FRIEND_SHARE"`
	MaxTrendingPerPage int     `yaml:"MAX_TRENDING_PER_PAGE"`

	// Interest profile updater.
	MaxTagWeight       float64            `yaml:"MAX_TAG_WEIGHT"`
	InteractionWeights map[string]float64 `yaml:"INTERACTION_WEIGHTS"`
	DefaultInteraction float64            `yaml:"DEFAULT_INTERACTION_WEIGHT"`

	// Per-source time budget for concurrent candidate generation. A source
	// that blows the budget contributes nothing instead of stalling the feed.
	GeneratorTimeoutMs int `yaml:"GENERATOR_TIMEOUT_MS"`
}

// DefaultConfig returns the production tuning values.
func DefaultConfig() Config {
	return Config{
		InterestWindowDays:      21,
		InterestTopTags:         15,
		InterestRecencyTaperHrs: 15,

		FriendWindowDays:      4,
		FriendRecencyTaperHrs: 24,

		TrendingWindowDays:       4,
		ForYouTrendingWindowDays: 21,
		TrendingCandidateCap:     500,
		TrendingScoreThreshold:   5,
		TrendingDecayExponent:    1.2,
		TrendingAgeFloorHrs:      2,

		FeedSize:           50,
		InterestShare:      0.5,
		FriendShare:        0.3,
		MaxTrendingPerPage: 50,

		MaxTagWeight: 200,
		InteractionWeights: map[string]float64{
			"view":    0.5,
			"like":    3,
			"repost":  4,
			"comment": 4,
		},
		DefaultInteraction: 1,

		GeneratorTimeoutMs: 2000,
	}
}

// ParseConfigFile overlays yaml tuning overrides from path on top of the
// defaults. Keys absent from the file keep their default value.
func ParseConfigFile(path string) (Config, error) {
	c := DefaultConfig()
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return c, errors.Wrap(err, "cannot read ranking config file")
	}
	if err := yaml.Unmarshal(yamlFile, &c); err != nil {
		return c, errors.Wrap(err, "cannot parse ranking config file")
	}
	return c, nil
}

func (c Config) InterestWindow() time.Duration {
	return time.Duration(c.InterestWindowDays) * 24 * time.Hour
}

func (c Config) FriendWindow() time.Duration {
	return time.Duration(c.FriendWindowDays) * 24 * time.Hour
}

func (c Config) TrendingWindow() time.Duration {
	return time.Duration(c.TrendingWindowDays) * 24 * time.Hour
}

func (c Config) ForYouTrendingWindow() time.Duration {
	return time.Duration(c.ForYouTrendingWindowDays) * 24 * time.Hour
}

func (c Config) GeneratorTimeout() time.Duration {
	return time.Duration(c.GeneratorTimeoutMs) * time.Millisecond
}

// InteractionWeight maps an interaction type to its additive tag weight.
func (c Config) InteractionWeight(interactionType string) float64 {
	if w, ok := c.InteractionWeights[interactionType]; ok {
		return w
	}
	return c.DefaultInteraction
}
