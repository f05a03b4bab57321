package model

import "time"

// Comment represents a user's comment on a post. A comment never outlives
// its post: deleting a post removes its comments in the same transaction.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Author User `json:"-" gorm:"foreignKey:AuthorID"`
	Post   Post `json:"-" gorm:"foreignKey:PostID"`
}
