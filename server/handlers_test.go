package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retronet/feedranker/model"
	"github.com/retronet/feedranker/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComposer struct {
	posts []model.Post
	err   error
}

func (f *fakeComposer) ForYou(ctx context.Context, userID string) ([]model.Post, error) {
	return f.posts, f.err
}

type fakePager struct {
	page *ranking.TrendingPage
	err  error
}

func (f *fakePager) Page(ctx context.Context, page, limit int) (*ranking.TrendingPage, error) {
	return f.page, f.err
}

type fakeDirectory struct {
	users        map[string]*model.User
	posts        map[string]*model.Post
	interactions []string
	logErr       error
}

func (f *fakeDirectory) UserByID(ctx context.Context, id string) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeDirectory) PostByID(ctx context.Context, id string) (*model.Post, error) {
	return f.posts[id], nil
}

func (f *fakeDirectory) LogInteraction(ctx context.Context, userID, postID, interactionType string) error {
	if f.logErr != nil {
		return f.logErr
	}
	f.interactions = append(f.interactions, userID+"/"+postID+"/"+interactionType)
	return nil
}

func newTestRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/users/:id/feed", h.GetFeed)
	router.GET("/api/trending", h.GetTrending)
	router.POST("/api/users/:id/interactions", h.PostInteraction)
	return router
}

func knownUser() map[string]*model.User {
	return map[string]*model.User{"u1": {Id: "u1", Name: "Kei", Handle: "kei"}}
}

func TestGetFeed(t *testing.T) {
	t.Run("unknown user is 404", func(t *testing.T) {
		h := NewHandlers(&fakeComposer{}, &fakePager{}, &fakeDirectory{}, nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users/ghost/feed", nil)
		newTestRouter(h).ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns items without score fields", func(t *testing.T) {
		post := model.Post{
			Id:        "p1",
			CreatedAt: time.Now(),
			Type:      "text",
			Tags:      []string{"retro"},
			LikeCount: 3,
			Approved:  true,
			Author:    model.User{Id: "a1", Name: "Mori", Handle: "mori"},
		}
		h := NewHandlers(
			&fakeComposer{posts: []model.Post{post}},
			&fakePager{},
			&fakeDirectory{users: knownUser()},
			nil,
		)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users/u1/feed", nil)
		newTestRouter(h).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var items []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		require.Len(t, items, 1)
		assert.Equal(t, "p1", items[0]["id"])
		assert.Equal(t, "mori", items[0]["author"].(map[string]interface{})["handle"])
		assert.NotContains(t, items[0], "score")
		assert.NotContains(t, items[0], "source")
	})

	t.Run("composer failure is 500", func(t *testing.T) {
		h := NewHandlers(
			&fakeComposer{err: fmt.Errorf("store down")},
			&fakePager{},
			&fakeDirectory{users: knownUser()},
			nil,
		)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users/u1/feed", nil)
		newTestRouter(h).ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetTrending(t *testing.T) {
	page := &ranking.TrendingPage{
		Items: []ranking.Candidate{
			{Post: model.Post{Id: "p1", Approved: true}, Score: 12.5, Source: ranking.SourceTrending},
		},
		Page:    2,
		Limit:   10,
		Total:   31,
		HasMore: true,
	}
	h := NewHandlers(&fakeComposer{}, &fakePager{page: page}, &fakeDirectory{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/trending?page=2&limit=10", nil)
	newTestRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp TrendingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.Limit)
	assert.Equal(t, 31, resp.Total)
	assert.True(t, resp.HasMore)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p1", resp.Items[0].Id)
}

func TestPostInteraction(t *testing.T) {
	body := func(postID, interactionType string) *bytes.Buffer {
		raw, _ := json.Marshal(InteractionRequest{PostID: postID, Type: interactionType})
		return bytes.NewBuffer(raw)
	}

	t.Run("records and returns ok", func(t *testing.T) {
		directory := &fakeDirectory{
			users: knownUser(),
			posts: map[string]*model.Post{"p1": {Id: "p1"}},
		}
		h := NewHandlers(&fakeComposer{}, &fakePager{}, directory, nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/users/u1/interactions", body("p1", "like"))
		newTestRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, directory.interactions, 1)
		assert.Equal(t, "u1/p1/like", directory.interactions[0])
	})

	t.Run("unknown post is 404", func(t *testing.T) {
		h := NewHandlers(&fakeComposer{}, &fakePager{}, &fakeDirectory{users: knownUser()}, nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/users/u1/interactions", body("ghost", "like"))
		newTestRouter(h).ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing fields is 400", func(t *testing.T) {
		h := NewHandlers(&fakeComposer{}, &fakePager{}, &fakeDirectory{users: knownUser()}, nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/users/u1/interactions", bytes.NewBufferString(`{}`))
		newTestRouter(h).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
