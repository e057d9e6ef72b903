package model

import "time"

// Post represents a blog post.
// UserID is nullable: when the owning user is deleted the post survives with
// its owner set to NULL. CreatedAt is set once on insert and never updated.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:225;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    *uint     `json:"user" gorm:"index"`
	CreatedAt time.Time `json:"created" gorm:"<-:create"`

	// LikeCount is the number of Like rows referencing this post. It is
	// computed per read with a COUNT subquery and never stored.
	LikeCount int64 `json:"likes" gorm:"->;-:migration"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}
