// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment represents a comment on a post.
//
// ParentCommentID, when set, references another comment on the same post.
// Comments are hard-deleted; deleting a parent leaves its replies pointing
// at a nonexistent parent.
type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PostID          uint      `gorm:"not null;index" json:"post_id"`
	UserID          uint      `gorm:"not null" json:"user_id"`
	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id,omitempty"`
	Content         string    `gorm:"not null" json:"content"`
	User            User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
