package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-gonic/gin"
	"github.com/retronet/feedranker/event"
	"github.com/retronet/feedranker/model"
	"github.com/retronet/feedranker/ranking"
	"github.com/retronet/feedranker/server/middlewares"
	Logger "github.com/retronet/feedranker/utils/log"
)

// FeedComposer is the "for you" composition surface.
type FeedComposer interface {
	ForYou(ctx context.Context, userID string) ([]model.Post, error)
}

// TrendingPager is the standalone trending surface.
type TrendingPager interface {
	Page(ctx context.Context, page, limit int) (*ranking.TrendingPage, error)
}

// Directory covers the entity lookups handlers need for 404 decisions plus
// the interaction append.
type Directory interface {
	UserByID(ctx context.Context, id string) (*model.User, error)
	PostByID(ctx context.Context, id string) (*model.Post, error)
	LogInteraction(ctx context.Context, userID, postID, interactionType string) error
}

// Handlers wires the ranking engine into the REST surface.
type Handlers struct {
	composer  FeedComposer
	trending  TrendingPager
	directory Directory
	bus       *gochannel.GoChannel
}

func NewHandlers(composer FeedComposer, trending TrendingPager, directory Directory, bus *gochannel.GoChannel) *Handlers {
	return &Handlers{
		composer:  composer,
		trending:  trending,
		directory: directory,
		bus:       bus,
	}
}

// GetFeed serves GET /api/users/:id/feed: the blended "for you" list.
func (h *Handlers) GetFeed(c *gin.Context) {
	userID := c.Param("id")

	user, err := h.directory.UserByID(c.Request.Context(), userID)
	if err != nil {
		Logger.Log.Error("user lookup failed: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "unknown user"})
		return
	}

	posts, err := h.composer.ForYou(c.Request.Context(), userID)
	if err != nil {
		Logger.Log.Error("feed composition failed for user ", userID, ": ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}

	items, err := toFeedItems(posts)
	if err != nil {
		Logger.Log.Error("feed projection failed: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}

	middlewares.CountCandidates("for_you", len(items))
	c.JSON(http.StatusOK, items)
}

// GetTrending serves GET /api/trending with the pagination envelope.
func (h *Handlers) GetTrending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	result, err := h.trending.Page(c.Request.Context(), page, limit)
	if err != nil {
		Logger.Log.Error("trending page failed: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}

	items, err := toFeedItems(candidatePosts(result.Items))
	if err != nil {
		Logger.Log.Error("trending projection failed: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}

	middlewares.CountCandidates("trending", len(items))
	c.JSON(http.StatusOK, TrendingResponse{
		Items:   items,
		Page:    result.Page,
		Limit:   result.Limit,
		Total:   result.Total,
		HasMore: result.HasMore,
	})
}

// PostInteraction serves POST /api/users/:id/interactions. The interaction
// row is the primary effect, the profile update rides the event bus and can
// fail without affecting this response.
func (h *Handlers) PostInteraction(c *gin.Context) {
	userID := c.Param("id")

	var req InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "postId and type are required"})
		return
	}

	user, err := h.directory.UserByID(c.Request.Context(), userID)
	if err != nil {
		Logger.Log.Error("user lookup failed: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "unknown user"})
		return
	}

	post, err := h.directory.PostByID(c.Request.Context(), req.PostID)
	if err != nil {
		Logger.Log.Error("post lookup failed: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "unknown post"})
		return
	}

	if err := h.directory.LogInteraction(c.Request.Context(), userID, req.PostID, req.Type); err != nil {
		Logger.Log.Error("interaction append failed: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}

	// Best-effort from here on: the append already succeeded.
	if h.bus != nil {
		err := event.PublishInteraction(h.bus, event.InteractionRecorded{
			UserID: userID,
			PostID: req.PostID,
			Type:   req.Type,
		})
		if err != nil {
			Logger.Log.Warn("interaction event publish failed: ", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"msg": "recorded"})
}
