package repository

import (
	"context"

	"gorm.io/gorm"

	"starblog/internal/model"
)

// likeCountSelect computes the like count per read; the count is never stored.
const likeCountSelect = "posts.*, (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count"

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	FindByTitle(ctx context.Context, title string) (*model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// FindByID finds a post by ID, like count included.
func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Model(&model.Post{}).
		Select(likeCountSelect).
		Where("posts.id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByTitle finds a post by exact title. Used by the seeder for upserts.
func (r *postRepository) FindByTitle(ctx context.Context, title string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns all posts in natural storage order, like counts included.
func (r *postRepository) List(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).Model(&model.Post{}).
		Select(likeCountSelect).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
