package repository

import (
	"context"

	"gorm.io/gorm"

	"starblog/internal/model"
)

// LikeRepository defines like persistence operations.
type LikeRepository interface {
	Create(ctx context.Context, like *model.Like) error
	DeleteByUserAndPost(ctx context.Context, userID, postID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts a like. The unique index on (user_id, post_id) turns a
// repeat insert into gorm.ErrDuplicatedKey, which the toggle path handles.
func (r *likeRepository) Create(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// DeleteByUserAndPost removes the like for a (user, post) pair and reports
// how many rows went away. Zero rows is not an error: a concurrent toggle
// may have removed the row first.
func (r *likeRepository) DeleteByUserAndPost(ctx context.Context, userID, postID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{})
	return res.RowsAffected, res.Error
}
