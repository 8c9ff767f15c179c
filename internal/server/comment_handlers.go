package server

import (
	"waypoint/internal/models"
	"waypoint/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetComments handles GET /api/articles/:id/comments
// @Summary List an article's comments
// @Tags comments
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {array} models.Comment
// @Failure 404 {object} object{error=string}
// @Router /articles/{id}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	articleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	comments, err := s.commentService.ListComments(c.Context(), articleID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(comments)
}

// CreateComment handles POST /api/articles/:id/comments
// @Summary Comment on an article
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param request body object{content=string} true "Comment content"
// @Success 201 {object} models.Comment
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /articles/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	articleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:    userID,
		ArticleID: articleID,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/comments/:id (owner only)
// @Summary Update a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param request body object{content=string} true "New content"
// @Success 200 {object} models.Comment
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /comments/{id} [put]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    userID,
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id (owner or admin)
// @Summary Soft-delete a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		UserID:    userID,
		CommentID: commentID,
	}); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
