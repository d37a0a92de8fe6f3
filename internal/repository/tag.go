package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository defines the interface for tag operations
type TagRepository interface {
	GetOrCreate(ctx context.Context, name string) (*models.Tag, error)
	ListWithPostCounts(ctx context.Context) ([]models.TagCount, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// getOrCreateTag inserts the tag and re-selects on a uniqueness conflict, so
// two concurrent creators of the same name converge on one row.
func getOrCreateTag(db *gorm.DB, name string) (models.Tag, error) {
	tag := models.Tag{Name: name}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
		return models.Tag{}, err
	}
	if tag.ID != 0 {
		return tag, nil
	}
	// Conflict: another transaction inserted the name first.
	if err := db.Where("name = ?", name).First(&tag).Error; err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

func (r *tagRepository) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	tag, err := getOrCreateTag(r.db.WithContext(ctx), name)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListWithPostCounts returns every tag together with the number of live
// (non-soft-deleted) posts carrying it, most used first, ties broken by name.
func (r *tagRepository) ListWithPostCounts(ctx context.Context) ([]models.TagCount, error) {
	var counts []models.TagCount
	err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Select("tags.name AS name, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Joins("LEFT JOIN posts ON posts.id = post_tags.post_id AND posts.deleted_at IS NULL").
		Group("tags.id, tags.name").
		Order("post_count DESC, tags.name ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
