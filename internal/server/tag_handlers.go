package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetTags handles GET /api/tags, listing every tag with its live-post count.
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.tagService.ListTags(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}
