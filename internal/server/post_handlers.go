package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/view"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:  currentUserID(c),
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(view.NewPostDetail(post, nil))
}

// GetPosts handles GET /api/posts with pagination, filtering, and sorting.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	res, err := s.postService.ListPosts(c.Context(), parseListInput(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(s.buildPostList(res))
}

// GetMyPosts handles GET /api/me/posts
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	in := parseListInput(c)
	in.AuthorID = currentUserID(c)

	res, err := s.postService.ListPosts(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(s.buildPostList(res))
}

func (s *Server) buildPostList(res *service.ListPostsResult) view.PostList {
	summaries := make([]view.PostSummary, 0, len(res.Posts))
	for _, post := range res.Posts {
		summaries = append(summaries, view.NewPostSummary(post, int(res.CommentCounts[post.ID])))
	}
	return view.NewPostList(summaries, res.TotalCount, res.Limit, res.Page)
}

// GetPost handles GET /api/posts/:id. Each fetch counts as a view.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID, true)
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	detail := view.NewPostDetail(post, comments)

	// Authenticated readers also learn whether they liked the post.
	if userID := currentUserID(c); userID != 0 {
		liked, err := s.postService.IsLiked(c.Context(), userID, postID)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"post":    detail,
			"isLiked": liked,
		})
	}

	return c.JSON(fiber.Map{"post": detail})
}

// UpdatePost handles PATCH /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   *string   `json:"title"`
		Content *string   `json:"content"`
		Tags    *[]string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:  currentUserID(c),
		PostID:  postID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view.NewPostDetail(post, comments))
}

// DeletePost handles DELETE /api/posts/:id (soft delete)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), currentUserID(c), postID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ToggleLike handles POST /api/posts/:id/like. Liking twice undoes the like.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likeCount, liked, err := s.postService.ToggleLike(c.Context(), postID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"likeCount": likeCount,
		"isLiked":   liked,
	})
}
