package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

type TagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// ListTags returns all tags with their live-post usage counts, most used
// first.
func (s *TagService) ListTags(ctx context.Context) ([]models.TagCount, error) {
	counts, err := s.tagRepo.ListWithPostCounts(ctx)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return counts, nil
}
