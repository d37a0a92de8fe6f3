package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// AdminService backs the admin dashboard and moderation endpoints.
type AdminService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	now         func() time.Time
}

// DashboardStats summarizes site activity. "Today" starts at midnight UTC.
type DashboardStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TodaySignups  int64 `json:"todaySignups"`
	TotalPosts    int64 `json:"totalPosts"`
	TodayPosts    int64 `json:"todayPosts"`
	TotalComments int64 `json:"totalComments"`
}

// Admin delete modes. Soft keeps the row recoverable; hard removes it and
// all dependents.
const (
	DeleteTypeSoft = "soft"
	DeleteTypeHard = "hard"
)

func NewAdminService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		now:         time.Now,
	}
}

func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	midnight := s.now().UTC().Truncate(24 * time.Hour)

	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.CountAll(ctx); err != nil {
		return nil, models.NewStorageError(err)
	}
	if stats.TodaySignups, err = s.userRepo.CountCreatedSince(ctx, midnight); err != nil {
		return nil, models.NewStorageError(err)
	}
	if stats.TotalPosts, err = s.postRepo.CountAll(ctx); err != nil {
		return nil, models.NewStorageError(err)
	}
	if stats.TodayPosts, err = s.postRepo.CountCreatedSince(ctx, midnight); err != nil {
		return nil, models.NewStorageError(err)
	}
	if stats.TotalComments, err = s.commentRepo.CountAll(ctx); err != nil {
		return nil, models.NewStorageError(err)
	}
	return stats, nil
}

// DeletePost removes a post on behalf of an admin. deleteType selects soft
// or hard deletion; hard deletion also reaches posts already soft-deleted.
func (s *AdminService) DeletePost(ctx context.Context, postID uint, deleteType string) error {
	switch deleteType {
	case "", DeleteTypeSoft:
		deleteType = DeleteTypeSoft
	case DeleteTypeHard:
	default:
		return models.NewValidationError("deleteType must be one of: soft, hard")
	}

	if err := s.postRepo.Delete(ctx, postID, deleteType == DeleteTypeSoft); err != nil {
		return repoError(err, "Post", postID)
	}
	return nil
}

func (s *AdminService) DeleteComment(ctx context.Context, commentID uint) error {
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return repoError(err, "Comment", commentID)
	}
	return nil
}
