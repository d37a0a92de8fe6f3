package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn            func(context.Context, *models.Post, []string) error
	getByIDFn           func(context.Context, uint, bool) (*models.Post, error)
	listFn              func(context.Context, repository.ListFilter) ([]*models.Post, int64, error)
	updateFn            func(context.Context, *models.Post, *string, *string, *[]string) error
	deleteFn            func(context.Context, uint, bool) error
	toggleLikeFn        func(context.Context, uint, uint) (int, bool, error)
	isLikedFn           func(context.Context, uint, uint) (bool, error)
	countAllFn          func(context.Context) (int64, error)
	countCreatedSinceFn func(context.Context, time.Time) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post, tagNames []string) error {
	return s.createFn(ctx, post, tagNames)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint, incrementView bool) (*models.Post, error) {
	return s.getByIDFn(ctx, id, incrementView)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.ListFilter) ([]*models.Post, int64, error) {
	return s.listFn(ctx, filter)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post, title, content *string, tagNames *[]string) error {
	return s.updateFn(ctx, post, title, content, tagNames)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint, soft bool) error {
	return s.deleteFn(ctx, id, soft)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, postID, userID uint) (int, bool, error) {
	return s.toggleLikeFn(ctx, postID, userID)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) CountAll(ctx context.Context) (int64, error) {
	return s.countAllFn(ctx)
}
func (s *postRepoStub) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countCreatedSinceFn(ctx, since)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, post *models.Post, _ []string) error {
			post.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint, _ bool) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		listFn: func(_ context.Context, _ repository.ListFilter) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		updateFn:            func(_ context.Context, _ *models.Post, _, _ *string, _ *[]string) error { return nil },
		deleteFn:            func(_ context.Context, _ uint, _ bool) error { return nil },
		toggleLikeFn:        func(_ context.Context, _, _ uint) (int, bool, error) { return 0, false, nil },
		isLikedFn:           func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		countAllFn:          func(_ context.Context) (int64, error) { return 0, nil },
		countCreatedSinceFn: func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getByIDFn      func(context.Context, uint) (*models.Comment, error)
	listByPostFn   func(context.Context, uint) ([]*models.Comment, error)
	updateFn       func(context.Context, *models.Comment) error
	deleteFn       func(context.Context, uint) error
	countByPostFn  func(context.Context, uint) (int64, error)
	countByPostsFn func(context.Context, []uint) (map[uint]int64, error)
	countAllFn     func(context.Context) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}
func (s *commentRepoStub) CountByPosts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	return s.countByPostsFn(ctx, postIDs)
}
func (s *commentRepoStub) CountAll(ctx context.Context) (int64, error) {
	return s.countAllFn(ctx)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, comment *models.Comment) error {
			comment.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn:  func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		countByPostFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countByPostsFn: func(_ context.Context, _ []uint) (map[uint]int64, error) {
			return map[uint]int64{}, nil
		},
		countAllFn: func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn            func(context.Context, *models.User) error
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByEmailFn        func(context.Context, string) (*models.User, error)
	getByNicknameFn     func(context.Context, string) (*models.User, error)
	updateFn            func(context.Context, *models.User) error
	countAllFn          func(context.Context) (int64, error)
	countCreatedSinceFn func(context.Context, time.Time) (int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return s.getByNicknameFn(ctx, nickname)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) CountAll(ctx context.Context) (int64, error) {
	return s.countAllFn(ctx)
}
func (s *userRepoStub) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countCreatedSinceFn(ctx, since)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, user *models.User) error {
			user.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		getByNicknameFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		updateFn:            func(_ context.Context, _ *models.User) error { return nil },
		countAllFn:          func(_ context.Context) (int64, error) { return 0, nil },
		countCreatedSinceFn: func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
	}
}
