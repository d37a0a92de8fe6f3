package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestCreatePostValidation(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopCommentRepo(), nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreatePostInput
	}{
		{"EmptyTitle", CreatePostInput{UserID: 1, Content: "body"}},
		{"EmptyContent", CreatePostInput{UserID: 1, Title: "title"}},
		{"TitleTooLong", CreatePostInput{UserID: 1, Title: strings.Repeat("a", 301), Content: "body"}},
		{"ContentTooLong", CreatePostInput{UserID: 1, Title: "title", Content: strings.Repeat("a", 50001)}},
		{"TooManyTags", CreatePostInput{UserID: 1, Title: "t", Content: "c", Tags: strings.Split(strings.Repeat("x,", 11), ",")[:11]}},
		{"EmptyTagName", CreatePostInput{UserID: 1, Title: "t", Content: "c", Tags: []string{""}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, tc.in)
			assertAppErrorCode(t, err, "VALIDATION_ERROR")
		})
	}
}

func TestCreatePost(t *testing.T) {
	repo := noopPostRepo()
	var gotTags []string
	repo.createFn = func(_ context.Context, post *models.Post, tagNames []string) error {
		post.ID = 42
		gotTags = tagNames
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id uint, incrementView bool) (*models.Post, error) {
		assert.False(t, incrementView)
		return &models.Post{ID: id, Title: "hello", User: models.User{ID: 1, Nickname: "ana"}}, nil
	}

	svc := NewPostService(repo, noopCommentRepo(), nil)
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:  1,
		Title:   "hello",
		Content: "world",
		Tags:    []string{"go", "web"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), post.ID)
	assert.Equal(t, "ana", post.User.Nickname)
	assert.Equal(t, []string{"go", "web"}, gotTags)
}

func TestGetPostNotFound(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _ uint, _ bool) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewPostService(repo, noopCommentRepo(), nil)
	_, err := svc.GetPost(context.Background(), 7, true)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestListPostsNormalization(t *testing.T) {
	t.Run("ClampsPageAndLimit", func(t *testing.T) {
		repo := noopPostRepo()
		var gotFilter repository.ListFilter
		repo.listFn = func(_ context.Context, filter repository.ListFilter) ([]*models.Post, int64, error) {
			gotFilter = filter
			return nil, 0, nil
		}

		svc := NewPostService(repo, noopCommentRepo(), nil)
		res, err := svc.ListPosts(context.Background(), ListPostsInput{Page: 0, Limit: 500})
		require.NoError(t, err)
		assert.Equal(t, 1, gotFilter.Page)
		assert.Equal(t, MaxPageLimit, gotFilter.Limit)
		assert.Equal(t, models.SortLatest, gotFilter.Sort)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, MaxPageLimit, res.Limit)
	})

	t.Run("DefaultsLimit", func(t *testing.T) {
		repo := noopPostRepo()
		var gotFilter repository.ListFilter
		repo.listFn = func(_ context.Context, filter repository.ListFilter) ([]*models.Post, int64, error) {
			gotFilter = filter
			return nil, 0, nil
		}

		svc := NewPostService(repo, noopCommentRepo(), nil)
		_, err := svc.ListPosts(context.Background(), ListPostsInput{Page: 2, Limit: -1})
		require.NoError(t, err)
		assert.Equal(t, DefaultPageLimit, gotFilter.Limit)
	})

	t.Run("RejectsUnknownSort", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), noopCommentRepo(), nil)
		_, err := svc.ListPosts(context.Background(), ListPostsInput{Sort: "trending"})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestListPostsCarriesCommentCounts(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.listFn = func(_ context.Context, _ repository.ListFilter) ([]*models.Post, int64, error) {
		return []*models.Post{{ID: 1}, {ID: 2}}, 2, nil
	}
	commentRepo := noopCommentRepo()
	commentRepo.countByPostsFn = func(_ context.Context, postIDs []uint) (map[uint]int64, error) {
		assert.Equal(t, []uint{1, 2}, postIDs)
		return map[uint]int64{1: 3}, nil
	}

	svc := NewPostService(postRepo, commentRepo, nil)
	res, err := svc.ListPosts(context.Background(), ListPostsInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TotalCount)
	assert.Equal(t, int64(3), res.CommentCounts[1])
	assert.Zero(t, res.CommentCounts[2])
}

func TestUpdatePostOwnership(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id uint, _ bool) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1}, nil
	}

	svc := NewPostService(repo, noopCommentRepo(), nil)
	title := "new title"
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 2, PostID: 5, Title: &title})
	assertAppErrorCode(t, err, "UNAUTHORIZED")
}

func TestUpdatePostEmptyTitleRejected(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopCommentRepo(), nil)
	empty := ""
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 5, Title: &empty})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestDeletePost(t *testing.T) {
	t.Run("OwnerSoftDeletes", func(t *testing.T) {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint, _ bool) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		}
		var gotSoft bool
		repo.deleteFn = func(_ context.Context, _ uint, soft bool) error {
			gotSoft = soft
			return nil
		}

		svc := NewPostService(repo, noopCommentRepo(), nil)
		err := svc.DeletePost(context.Background(), 1, 5)
		assert.NoError(t, err)
		assert.True(t, gotSoft)
	})

	t.Run("StrangerRejected", func(t *testing.T) {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint, _ bool) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		}

		notAdmin := func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc := NewPostService(repo, noopCommentRepo(), notAdmin)
		err := svc.DeletePost(context.Background(), 2, 5)
		assertAppErrorCode(t, err, "UNAUTHORIZED")
	})

	t.Run("AdminMayDelete", func(t *testing.T) {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint, _ bool) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		}

		isAdmin := func(_ context.Context, userID uint) (bool, error) { return userID == 9, nil }
		svc := NewPostService(repo, noopCommentRepo(), isAdmin)
		err := svc.DeletePost(context.Background(), 9, 5)
		assert.NoError(t, err)
	})
}

func TestToggleLike(t *testing.T) {
	t.Run("PassesThroughCounterState", func(t *testing.T) {
		repo := noopPostRepo()
		repo.toggleLikeFn = func(_ context.Context, _, _ uint) (int, bool, error) {
			return 3, true, nil
		}

		svc := NewPostService(repo, noopCommentRepo(), nil)
		count, liked, err := svc.ToggleLike(context.Background(), 5, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.True(t, liked)
	})

	t.Run("DeadPostIsNotFound", func(t *testing.T) {
		repo := noopPostRepo()
		repo.toggleLikeFn = func(_ context.Context, _, _ uint) (int, bool, error) {
			return 0, false, gorm.ErrRecordNotFound
		}

		svc := NewPostService(repo, noopCommentRepo(), nil)
		_, _, err := svc.ToggleLike(context.Background(), 5, 1)
		assertAppErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("StorageFailureWrapped", func(t *testing.T) {
		repo := noopPostRepo()
		repo.toggleLikeFn = func(_ context.Context, _, _ uint) (int, bool, error) {
			return 0, false, errors.New("connection reset")
		}

		svc := NewPostService(repo, noopCommentRepo(), nil)
		_, _, err := svc.ToggleLike(context.Background(), 5, 1)
		assertAppErrorCode(t, err, "STORAGE_ERROR")
	})
}
