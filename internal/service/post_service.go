package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"starblog/internal/cache"
	apperrors "starblog/internal/errors"
	"starblog/internal/model"
	"starblog/internal/repository"
)

const (
	postListCacheKey = "posts:all"
	postListCacheTTL = 30 * time.Second
)

// PostService handles post listing, creation and the like toggle.
type PostService interface {
	ListPosts(ctx context.Context) ([]model.Post, error)
	CreatePost(ctx context.Context, userID uint, title, content string) (*model.Post, error)
	ToggleLike(ctx context.Context, postID, userID uint) (post *model.Post, liked bool, err error)
}

type postService struct {
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
	cache    *cache.Client
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, likeRepo repository.LikeRepository, cache *cache.Client) PostService {
	return &postService{
		postRepo: postRepo,
		likeRepo: likeRepo,
		cache:    cache,
	}
}

// ListPosts returns all posts with their like counts, cached briefly.
func (s *postService) ListPosts(ctx context.Context) ([]model.Post, error) {
	if data, _ := s.cache.Get(ctx, postListCacheKey); data != nil {
		var cached []model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(posts); err == nil {
		_ = s.cache.Set(ctx, postListCacheKey, payload, postListCacheTTL)
	}
	return posts, nil
}

// CreatePost creates a post owned by the acting user.
func (s *postService) CreatePost(ctx context.Context, userID uint, title, content string) (*model.Post, error) {
	post := &model.Post{
		Title:   title,
		Content: content,
		UserID:  &userID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	_ = s.cache.Delete(ctx, postListCacheKey)
	return post, nil
}

// ToggleLike flips the existence of the acting user's like on a post and
// returns the post with its fresh like count.
//
// The toggle is insert-first: create the like and let the unique index on
// (user_id, post_id) reject a second one. On conflict the existing like is
// deleted instead. Two concurrent toggles therefore serialize on the index
// rather than both observing "absent" and double-inserting; a racing delete
// that removes zero rows is treated as success.
func (s *postService) ToggleLike(ctx context.Context, postID, userID uint) (*model.Post, bool, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperrors.ErrPostNotFound
		}
		return nil, false, fmt.Errorf("find post: %w", err)
	}

	liked := true
	err := s.likeRepo.Create(ctx, &model.Like{UserID: userID, PostID: postID})
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		liked = false
		if _, err := s.likeRepo.DeleteByUserAndPost(ctx, userID, postID); err != nil {
			return nil, false, fmt.Errorf("delete like: %w", err)
		}
	case err != nil:
		return nil, false, fmt.Errorf("create like: %w", err)
	}

	_ = s.cache.Delete(ctx, postListCacheKey)

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, false, fmt.Errorf("reload post: %w", err)
	}
	return post, liked, nil
}
