package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-report-service/internal/api/dto"
	"github.com/spec-kit/sales-report-service/internal/domain"
	"github.com/spec-kit/sales-report-service/internal/service"
	apperrors "github.com/spec-kit/sales-report-service/pkg/util"
)

// CommentsHandler manages comment endpoints nested under a report.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// ListComments GET /reports/:reportID/comments.
func (h *CommentsHandler) ListComments(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	reportID, err := paramID(c, "reportID")
	if err != nil {
		return err
	}

	var commentType *domain.CommentType
	if typeStr := c.Query("comment_type"); typeStr != "" {
		parsed := domain.CommentType(typeStr)
		if !parsed.Valid() {
			return apperrors.NewValidationError("invalid comment_type filter", nil)
		}
		commentType = &parsed
	}

	comments, err := h.service.ListComments(c.UserContext(), id, reportID, commentType)
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetComment GET /reports/:reportID/comments/:commentID.
func (h *CommentsHandler) GetComment(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	reportID, err := paramID(c, "reportID")
	if err != nil {
		return err
	}
	commentID, err := paramID(c, "commentID")
	if err != nil {
		return err
	}

	comment, err := h.service.GetComment(c.UserContext(), id, reportID, commentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": commentResponse(comment)})
}

// CreateComment POST /reports/:reportID/comments.
func (h *CommentsHandler) CreateComment(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	reportID, err := paramID(c, "reportID")
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.CommentContent) == "" {
		return apperrors.NewValidationError("comment_content required", nil)
	}
	if contentTooLong(&req.CommentContent) {
		return apperrors.NewValidationError("comment_content must be at most 10000 characters", nil)
	}

	comment, err := h.service.CreateComment(c.UserContext(), id, reportID, req.CommentType, req.CommentContent)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

// UpdateComment PUT /reports/:reportID/comments/:commentID.
func (h *CommentsHandler) UpdateComment(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	reportID, err := paramID(c, "reportID")
	if err != nil {
		return err
	}
	commentID, err := paramID(c, "commentID")
	if err != nil {
		return err
	}
	var req dto.UpdateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.CommentContent) == "" {
		return apperrors.NewValidationError("comment_content required", nil)
	}
	if contentTooLong(&req.CommentContent) {
		return apperrors.NewValidationError("comment_content must be at most 10000 characters", nil)
	}

	comment, err := h.service.UpdateComment(c.UserContext(), id, reportID, commentID, req.CommentContent)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": commentResponse(comment)})
}

// DeleteComment DELETE /reports/:reportID/comments/:commentID.
func (h *CommentsHandler) DeleteComment(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	reportID, err := paramID(c, "reportID")
	if err != nil {
		return err
	}
	commentID, err := paramID(c, "commentID")
	if err != nil {
		return err
	}

	if err := h.service.DeleteComment(c.UserContext(), id, reportID, commentID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
