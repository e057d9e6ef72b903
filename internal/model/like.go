package model

import "time"

// Like relates exactly one user to one post. The composite unique index keeps
// at most one row per (user, post) pair; the toggle path relies on the
// duplicate-key conflict it produces instead of a read-then-write check.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_likes_user_post"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_likes_user_post"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Post Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the table name in line with the original schema.
func (Like) TableName() string {
	return "likes"
}
