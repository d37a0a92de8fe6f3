// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListFilter narrows and orders a post listing. Page is 1-indexed.
type ListFilter struct {
	Page     int
	Limit    int
	Sort     string // models.SortLatest or models.SortPopular
	Query    string // case-insensitive substring match on title or content
	Tag      string // exact tag name
	AuthorID uint   // restrict to one author when non-zero
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post, tagNames []string) error
	GetByID(ctx context.Context, id uint, incrementView bool) (*models.Post, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post, title, content *string, tagNames *[]string) error
	Delete(ctx context.Context, id uint, soft bool) error
	ToggleLike(ctx context.Context, postID, userID uint) (int, bool, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	CountAll(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// dedupNames collapses duplicate tag names while preserving first-seen order.
func dedupNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func (r *postRepository) Create(ctx context.Context, post *models.Post, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(post).Error; err != nil {
			return err
		}
		return replacePostTags(tx, post, dedupNames(tagNames))
	})
}

// replacePostTags swaps the full tag-link set of a post for the given names,
// get-or-creating each tag. An empty list clears all links.
func replacePostTags(tx *gorm.DB, post *models.Post, names []string) error {
	if len(names) == 0 {
		if err := tx.Model(post).Association("Tags").Clear(); err != nil {
			return err
		}
		post.Tags = nil
		return nil
	}

	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, err := getOrCreateTag(tx, name)
		if err != nil {
			return err
		}
		tags = append(tags, tag)
	}

	if err := tx.Model(post).Association("Tags").Replace(&tags); err != nil {
		return err
	}
	post.Tags = tags
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, incrementView bool) (*models.Post, error) {
	if incrementView {
		// Increment in place so concurrent readers never lose a count.
		res := r.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("id = ?", id).
			UpdateColumn("view_count", gorm.Expr("view_count + 1"))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Tags").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// applyFilter adds the WHERE clauses shared by the count and page queries.
func (r *postRepository) applyFilter(db *gorm.DB, filter ListFilter) *gorm.DB {
	q := db.Model(&models.Post{})

	if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like)
	}
	if filter.Tag != "" {
		q = q.Where(
			"posts.id IN (SELECT post_tags.post_id FROM post_tags JOIN tags ON tags.id = post_tags.tag_id WHERE tags.name = ?)",
			filter.Tag,
		)
	}
	if filter.AuthorID != 0 {
		q = q.Where("user_id = ?", filter.AuthorID)
	}
	return q
}

func (r *postRepository) List(ctx context.Context, filter ListFilter) ([]*models.Post, int64, error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC, id ASC"
	if filter.Sort == models.SortPopular {
		order = "like_count DESC, id ASC"
	}

	offset := (filter.Page - 1) * filter.Limit

	var posts []*models.Post
	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Preload("User").
		Preload("Tags").
		Order(order).
		Limit(filter.Limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post, title, content *string, tagNames *[]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if title != nil {
			updates["title"] = *title
			post.Title = *title
		}
		if content != nil {
			updates["content"] = *content
			post.Content = *content
		}
		if len(updates) > 0 {
			if err := tx.Model(post).Updates(updates).Error; err != nil {
				return err
			}
		}
		if tagNames != nil {
			return replacePostTags(tx, post, dedupNames(*tagNames))
		}
		return nil
	})
}

func (r *postRepository) Delete(ctx context.Context, id uint, soft bool) error {
	if soft {
		res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}

	// Hard delete removes the row and all dependents, including rows already
	// soft-deleted (admin-only path).
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *postRepository) ToggleLike(ctx context.Context, postID, userID uint) (int, bool, error) {
	var likeCount int
	var liked bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, postID).Error; err != nil {
			return err
		}

		var existing models.Like
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == nil:
			res := tx.Delete(&models.Like{}, existing.ID)
			if res.Error != nil {
				return res.Error
			}
			// RowsAffected == 0 means a concurrent request deleted the row
			// first; the winner already adjusted the counter.
			if res.RowsAffected > 0 {
				// Floor at zero; the counter must never go negative.
				if err := tx.Model(&models.Post{}).Where("id = ?", postID).
					UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error; err != nil {
					return err
				}
			}
			liked = false

		case errors.Is(err, gorm.ErrRecordNotFound):
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Like{UserID: userID, PostID: postID})
			if res.Error != nil {
				return res.Error
			}
			// RowsAffected == 0 means a concurrent request inserted the row
			// first; the winner already adjusted the counter.
			if res.RowsAffected > 0 {
				if err := tx.Model(&models.Post{}).Where("id = ?", postID).
					UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
					return err
				}
			}
			liked = true

		default:
			return err
		}

		return tx.Model(&models.Post{}).
			Select("like_count").
			Where("id = ?", postID).
			Scan(&likeCount).Error
	})
	if err != nil {
		return 0, false, err
	}
	return likeCount, liked, nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *postRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
