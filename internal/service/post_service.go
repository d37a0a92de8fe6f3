package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
	Tags    []string
}

type ListPostsInput struct {
	Page     int
	Limit    int
	Sort     string
	Query    string
	Tag      string
	AuthorID uint
}

// ListPostsResult carries one listing page plus the data the response shaper
// needs alongside it.
type ListPostsResult struct {
	Posts         []*models.Post
	CommentCounts map[uint]int64
	TotalCount    int64
	Page          int
	Limit         int
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Title   *string
	Content *string
	Tags    *[]string
}

const (
	maxTitleLen    = 300
	maxContentLen  = 50000
	maxTagsPerPost = 10
	maxTagLen      = 50

	// DefaultPageLimit and MaxPageLimit bound the page size of listings.
	DefaultPageLimit = 10
	MaxPageLimit     = 50
)

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		isAdmin:     isAdmin,
	}
}

func validatePostFields(title, content *string) error {
	if title != nil {
		if *title == "" {
			return models.NewValidationError("Title is required")
		}
		if len(*title) > maxTitleLen {
			return models.NewValidationError("Title too long (max 300 characters)")
		}
	}
	if content != nil {
		if *content == "" {
			return models.NewValidationError("Content is required")
		}
		if len(*content) > maxContentLen {
			return models.NewValidationError("Content too long (max 50000 characters)")
		}
	}
	return nil
}

func validateTags(tags []string) error {
	if len(tags) > maxTagsPerPost {
		return models.NewValidationError("Too many tags (max 10)")
	}
	for _, tag := range tags {
		if tag == "" {
			return models.NewValidationError("Tag names must not be empty")
		}
		if len(tag) > maxTagLen {
			return models.NewValidationError("Tag name too long (max 50 characters)")
		}
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostFields(&in.Title, &in.Content); err != nil {
		return nil, err
	}
	if err := validateTags(in.Tags); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post, in.Tags); err != nil {
		return nil, models.NewStorageError(err)
	}
	observability.PostsCreated.Inc()

	// Re-read so the author association is populated for the response.
	created, err := s.postRepo.GetByID(ctx, post.ID, false)
	if err != nil {
		return nil, repoError(err, "Post", post.ID)
	}
	return created, nil
}

// GetPost loads one post, counting the view when incrementView is set.
func (s *PostService) GetPost(ctx context.Context, postID uint, incrementView bool) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, incrementView)
	if err != nil {
		return nil, repoError(err, "Post", postID)
	}
	return post, nil
}

// NormalizeListInput clamps pagination to page >= 1 and limit in [1, 50],
// defaults the sort to latest, and rejects unknown sort names.
func NormalizeListInput(in *ListPostsInput) error {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = DefaultPageLimit
	}
	if in.Limit > MaxPageLimit {
		in.Limit = MaxPageLimit
	}
	switch in.Sort {
	case "":
		in.Sort = models.SortLatest
	case models.SortLatest, models.SortPopular:
	default:
		return models.NewValidationError("Sort must be one of: latest, popular")
	}
	return nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*ListPostsResult, error) {
	if err := NormalizeListInput(&in); err != nil {
		return nil, err
	}

	posts, total, err := s.postRepo.List(ctx, repository.ListFilter{
		Page:     in.Page,
		Limit:    in.Limit,
		Sort:     in.Sort,
		Query:    in.Query,
		Tag:      in.Tag,
		AuthorID: in.AuthorID,
	})
	if err != nil {
		return nil, models.NewStorageError(err)
	}

	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	counts, err := s.commentRepo.CountByPosts(ctx, ids)
	if err != nil {
		return nil, models.NewStorageError(err)
	}

	return &ListPostsResult{
		Posts:         posts,
		CommentCounts: counts,
		TotalCount:    total,
		Page:          in.Page,
		Limit:         in.Limit,
	}, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}
	if in.Tags != nil {
		if err := validateTags(*in.Tags); err != nil {
			return nil, err
		}
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, false)
	if err != nil {
		return nil, repoError(err, "Post", in.PostID)
	}
	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	if err := s.postRepo.Update(ctx, post, in.Title, in.Content, in.Tags); err != nil {
		return nil, models.NewStorageError(err)
	}

	updated, err := s.postRepo.GetByID(ctx, in.PostID, false)
	if err != nil {
		return nil, repoError(err, "Post", in.PostID)
	}
	return updated, nil
}

// DeletePost soft-deletes a post. Owners may always delete their own posts;
// admins may delete anyone's.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, false)
	if err != nil {
		return repoError(err, "Post", postID)
	}

	if post.UserID != userID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
	}

	if err := s.postRepo.Delete(ctx, postID, true); err != nil {
		return repoError(err, "Post", postID)
	}
	return nil
}

// ToggleLike flips the caller's like on a post and returns the resulting
// counter state. Toggling twice restores the original state.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (int, bool, error) {
	count, liked, err := s.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return 0, false, repoError(err, "Post", postID)
	}
	if liked {
		observability.LikeToggles.WithLabelValues("liked").Inc()
	} else {
		observability.LikeToggles.WithLabelValues("unliked").Inc()
	}
	return count, liked, nil
}

func (s *PostService) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return false, models.NewStorageError(err)
	}
	return liked, nil
}

func (s *PostService) CommentCount(ctx context.Context, postID uint) (int64, error) {
	count, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return 0, models.NewStorageError(err)
	}
	return count, nil
}
