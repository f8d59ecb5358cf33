package store

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/retronet/feedranker/model"
	"github.com/retronet/feedranker/ranking"
	"gorm.io/gorm"
)

// defaultFilterLimit bounds a candidate pull when the caller doesn't.
const defaultFilterLimit = 500

// PostsByFilter returns approved posts inside the filter's trailing window,
// newest first. Empty Tags/Authors place no constraint on that dimension.
func (s *Store) PostsByFilter(ctx context.Context, filter ranking.PostFilter) ([]model.Post, error) {
	query := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Preload("Author").
		Where("posts.approved").
		Where("posts.created_at > ?", time.Now().Add(-filter.Window))

	if len(filter.Tags) > 0 {
		query = query.Where("posts.tags && ?", pq.Array(filter.Tags))
	}
	if len(filter.Authors) > 0 {
		query = query.Where("posts.author_id IN ?", filter.Authors)
	}
	if filter.OriginalsOnly {
		query = query.Where("posts.repost_of_id IS NULL")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultFilterLimit
	}

	var posts []model.Post
	if err := query.Order("posts.created_at desc").Limit(limit).Find(&posts).Error; err != nil {
		return nil, errors.Wrap(err, "post filter query failed")
	}
	return posts, nil
}

// PostByID returns nil, nil when the post does not exist, callers treat a
// missing post as a valid empty state.
func (s *Store) PostByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read post %s", id)
	}
	return &post, nil
}

// RecentPosts backs the empty-feed fallback: newest approved posts sitewide.
func (s *Store) RecentPosts(ctx context.Context, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Preload("Author").
		Where("posts.approved").
		Order("posts.created_at desc").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "recent posts query failed")
	}
	return posts, nil
}
