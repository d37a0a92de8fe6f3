// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Sort orders accepted by the post listing.
const (
	SortLatest  = "latest"
	SortPopular = "popular"
)

// Post represents a blog post in the Inkwell application.
//
// ViewCount and LikeCount are persisted counters maintained exclusively by
// the repository layer. LikeCount always equals the number of Like rows
// referencing the post.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	ViewCount int            `gorm:"not null;default:0" json:"view_count"`
	LikeCount int            `gorm:"not null;default:0" json:"like_count"`
	Tags      []Tag          `gorm:"many2many:post_tags" json:"tags,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
