package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboard handles GET /api/admin/dashboard
func (s *Server) AdminDashboard(c *fiber.Ctx) error {
	stats, err := s.adminService.Dashboard(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// AdminGetPosts handles GET /api/admin/posts. Same listing as the public
// endpoint; admins use it to find posts to moderate.
func (s *Server) AdminGetPosts(c *fiber.Ctx) error {
	res, err := s.postService.ListPosts(c.Context(), parseListInput(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(s.buildPostList(res))
}

// AdminDeletePost handles DELETE /api/admin/posts/:id. The deleteType query
// parameter selects soft (default) or hard deletion.
func (s *Server) AdminDeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	deleteType := c.Query("deleteType")
	if err := s.adminService.DeletePost(c.Context(), postID, deleteType); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// AdminDeleteComment handles DELETE /api/admin/comments/:id
func (s *Server) AdminDeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminService.DeleteComment(c.Context(), commentID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// CreateAnnouncement handles POST /api/admin/announcements
func (s *Server) CreateAnnouncement(c *fiber.Ctx) error {
	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		IsActive *bool  `json:"isActive"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == "" || req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and content are required"))
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	a := s.announcements.Create(req.Title, req.Content, isActive)
	return c.Status(fiber.StatusCreated).JSON(a)
}

// GetAnnouncements handles GET /api/announcements
func (s *Server) GetAnnouncements(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"announcements": s.announcements.ListActive()})
}
