package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateComment(t *testing.T) {
	t.Run("RequiresContent", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), noopPostRepo(), nil)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 2})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("RequiresLivePost", func(t *testing.T) {
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint, _ bool) (*models.Post, error) {
			return nil, gorm.ErrRecordNotFound
		}

		svc := NewCommentService(noopCommentRepo(), postRepo, nil)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 2, Content: "hi"})
		assertAppErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("TopLevel", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		var created *models.Comment
		commentRepo.createFn = func(_ context.Context, comment *models.Comment) error {
			comment.ID = 10
			created = comment
			return nil
		}

		svc := NewCommentService(commentRepo, noopPostRepo(), nil)
		got, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 2, Content: "hi"})
		require.NoError(t, err)
		assert.Equal(t, uint(10), got.ID)
		require.NotNil(t, created)
		assert.Nil(t, created.ParentCommentID)
	})

	t.Run("ReplyToCommentOnSamePost", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 2}, nil
		}

		parentID := uint(7)
		svc := NewCommentService(commentRepo, noopPostRepo(), nil)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, PostID: 2, Content: "reply", ParentCommentID: &parentID,
		})
		assert.NoError(t, err)
	})

	t.Run("ReplyAcrossPostsRejected", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 99}, nil
		}

		parentID := uint(7)
		svc := NewCommentService(commentRepo, noopPostRepo(), nil)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, PostID: 2, Content: "reply", ParentCommentID: &parentID,
		})
		// A parent on another post reads the same as a missing parent.
		assertAppErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("MissingParentRejected", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return nil, gorm.ErrRecordNotFound
		}

		parentID := uint(7)
		svc := NewCommentService(commentRepo, noopPostRepo(), nil)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, PostID: 2, Content: "reply", ParentCommentID: &parentID,
		})
		assertAppErrorCode(t, err, "NOT_FOUND")
	})
}

func TestListCommentsRequiresLivePost(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, _ uint, _ bool) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewCommentService(noopCommentRepo(), postRepo, nil)
	_, err := svc.ListComments(context.Background(), 2)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestUpdateComment(t *testing.T) {
	t.Run("OwnerUpdates", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 1, Content: "old"}, nil
		}

		svc := NewCommentService(commentRepo, noopPostRepo(), nil)
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, CommentID: 3, Content: "new"})
		assert.NoError(t, err)
	})

	t.Run("StrangerRejected", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 1}, nil
		}

		svc := NewCommentService(commentRepo, noopPostRepo(), nil)
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 2, CommentID: 3, Content: "new"})
		assertAppErrorCode(t, err, "UNAUTHORIZED")
	})

	t.Run("AdminsMayNotEditOthers", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 1}, nil
		}

		isAdmin := func(_ context.Context, _ uint) (bool, error) { return true, nil }
		svc := NewCommentService(commentRepo, noopPostRepo(), isAdmin)
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 9, CommentID: 3, Content: "new"})
		assertAppErrorCode(t, err, "UNAUTHORIZED")
	})
}

func TestDeleteComment(t *testing.T) {
	t.Run("OwnerDeletes", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 1}, nil
		}

		svc := NewCommentService(commentRepo, noopPostRepo(), nil)
		err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 3})
		assert.NoError(t, err)
	})

	t.Run("AdminDeletes", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 1}, nil
		}

		isAdmin := func(_ context.Context, userID uint) (bool, error) { return userID == 9, nil }
		svc := NewCommentService(commentRepo, noopPostRepo(), isAdmin)
		err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 9, CommentID: 3})
		assert.NoError(t, err)
	})

	t.Run("StrangerRejected", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 1}, nil
		}

		notAdmin := func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc := NewCommentService(commentRepo, noopPostRepo(), notAdmin)
		err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 2, CommentID: 3})
		assertAppErrorCode(t, err, "UNAUTHORIZED")
	})
}
