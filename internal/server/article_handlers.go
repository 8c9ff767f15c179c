package server

import (
	"waypoint/internal/models"
	"waypoint/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetArticles handles GET /api/articles
// @Summary Browse articles
// @Tags articles
// @Produce json
// @Param q query string false "Search in title and content"
// @Param sort query string false "Sort order (popular or new)"
// @Success 200 {array} models.Article
// @Router /articles [get]
func (s *Server) GetArticles(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	articles, err := s.articleService.ListArticles(c.Context(),
		page.Limit, page.Offset, c.Query("q"), c.Query("sort"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(articles)
}

// GetArticle handles GET /api/articles/:id
// @Summary Get an article
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} models.Article
// @Failure 404 {object} object{error=string}
// @Router /articles/{id} [get]
func (s *Server) GetArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	article, err := s.articleService.GetArticle(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(article)
}

// GetArticlesByAuthor handles GET /api/articles/author/:authorId
// @Summary List one author's articles
// @Tags articles
// @Produce json
// @Param authorId path string true "Author ID"
// @Success 200 {array} models.Article
// @Router /articles/author/{authorId} [get]
func (s *Server) GetArticlesByAuthor(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "authorId")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	articles, err := s.articleService.ListByAuthor(c.Context(), authorID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(articles)
}

// CreateArticle handles POST /api/articles (author or admin)
// @Summary Publish an article
// @Description Accepts JSON or a multipart form with "images" file parts
// @Tags articles
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Article
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /articles [post]
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	images, err := s.saveUploadedImages(c)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	var req struct {
		Title   string `json:"title" form:"title"`
		Content string `json:"content" form:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		for _, ref := range images {
			_ = s.assets.Remove(ref)
		}
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	article, err := s.articleService.CreateArticle(c.Context(), service.CreateArticleInput{
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		Images:   images,
	})
	if err != nil {
		// Uploaded files have no owning row yet, remove them
		for _, ref := range images {
			_ = s.assets.Remove(ref)
		}
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(article)
}

// UpdateArticle handles PUT /api/articles/:id (owner or admin)
// @Summary Update an article
// @Tags articles
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} models.Article
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /articles/{id} [put]
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	images, err := s.saveUploadedImages(c)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	var req struct {
		Title   string `json:"title" form:"title"`
		Content string `json:"content" form:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		for _, ref := range images {
			_ = s.assets.Remove(ref)
		}
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// New uploads are appended, existing references stay in place
	uploaded := images
	if len(uploaded) > 0 {
		current, err := s.articleService.GetArticle(c.Context(), id)
		if err != nil {
			for _, ref := range uploaded {
				_ = s.assets.Remove(ref)
			}
			return models.RespondWithError(c, mapServiceError(err), err)
		}
		images = append(current.Images, uploaded...)
	}

	article, err := s.articleService.UpdateArticle(c.Context(), service.UpdateArticleInput{
		UserID:    userID,
		ArticleID: id,
		Title:     req.Title,
		Content:   req.Content,
		Images:    images,
	})
	if err != nil {
		for _, ref := range uploaded {
			_ = s.assets.Remove(ref)
		}
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(article)
}

// DeleteArticle handles DELETE /api/articles/:id (owner or admin)
// @Summary Delete an article and its comments, actions and image files
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /articles/{id} [delete]
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.articleService.DeleteArticle(c.Context(), service.DeleteArticleInput{
		UserID:    userID,
		ArticleID: id,
	}); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Article deleted"})
}

// DeleteArticleImage handles DELETE /api/articles/:id/images (owner or admin)
// @Summary Remove one image from an article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param request body object{image=string} true "Asset reference to remove"
// @Success 200 {object} models.Article
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /articles/{id}/images [delete]
func (s *Server) DeleteArticleImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil || req.Image == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image reference is required"))
	}

	article, err := s.articleService.GetArticle(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	remaining, found := removeImageRef(article.Images, req.Image)
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Image", req.Image))
	}

	updated, err := s.articleService.UpdateArticle(c.Context(), service.UpdateArticleInput{
		UserID:    userID,
		ArticleID: id,
		Images:    remaining,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// The row no longer references the file, a failed unlink only orphans it
	_ = s.assets.Remove(req.Image)

	return c.JSON(updated)
}
