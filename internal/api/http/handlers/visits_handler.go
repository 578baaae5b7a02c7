package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-report-service/internal/api/dto"
	"github.com/spec-kit/sales-report-service/internal/service"
	apperrors "github.com/spec-kit/sales-report-service/pkg/util"
)

// VisitsHandler manages visit record endpoints nested under a report.
type VisitsHandler struct {
	service *service.VisitService
}

// NewVisitsHandler constructs handler.
func NewVisitsHandler(visitService *service.VisitService) *VisitsHandler {
	return &VisitsHandler{service: visitService}
}

// ListVisits GET /reports/:reportID/visits.
func (h *VisitsHandler) ListVisits(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	reportID, err := paramID(c, "reportID")
	if err != nil {
		return err
	}

	visits, err := h.service.ListVisits(c.UserContext(), id, reportID)
	if err != nil {
		return err
	}
	items := make([]dto.VisitResponse, 0, len(visits))
	for i := range visits {
		items = append(items, visitResponse(&visits[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetVisit GET /reports/:reportID/visits/:visitID.
func (h *VisitsHandler) GetVisit(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	reportID, err := paramID(c, "reportID")
	if err != nil {
		return err
	}
	visitID, err := paramID(c, "visitID")
	if err != nil {
		return err
	}

	visit, err := h.service.GetVisit(c.UserContext(), id, reportID, visitID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": visitResponse(visit)})
}

// CreateVisit POST /reports/:reportID/visits.
func (h *VisitsHandler) CreateVisit(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	reportID, err := paramID(c, "reportID")
	if err != nil {
		return err
	}
	var req dto.CreateVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CustomerID <= 0 || strings.TrimSpace(req.VisitContent) == "" {
		return apperrors.NewValidationError("customer_id and visit_content required", nil)
	}
	if contentTooLong(&req.VisitContent) {
		return apperrors.NewValidationError("visit_content must be at most 10000 characters", nil)
	}

	visit, err := h.service.CreateVisit(c.UserContext(), id, reportID, service.VisitCreateInput{
		CustomerID:   req.CustomerID,
		VisitContent: req.VisitContent,
		VisitOrder:   req.VisitOrder,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": visitResponse(visit)})
}

// UpdateVisit PUT /reports/:reportID/visits/:visitID.
func (h *VisitsHandler) UpdateVisit(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	reportID, err := paramID(c, "reportID")
	if err != nil {
		return err
	}
	visitID, err := paramID(c, "visitID")
	if err != nil {
		return err
	}
	var req dto.UpdateVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if contentTooLong(req.VisitContent) {
		return apperrors.NewValidationError("visit_content must be at most 10000 characters", nil)
	}

	visit, err := h.service.UpdateVisit(c.UserContext(), id, reportID, visitID, service.VisitUpdateInput{
		CustomerID:   req.CustomerID,
		VisitContent: req.VisitContent,
		VisitOrder:   req.VisitOrder,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": visitResponse(visit)})
}

// DeleteVisit DELETE /reports/:reportID/visits/:visitID.
func (h *VisitsHandler) DeleteVisit(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	reportID, err := paramID(c, "reportID")
	if err != nil {
		return err
	}
	visitID, err := paramID(c, "visitID")
	if err != nil {
		return err
	}

	if err := h.service.DeleteVisit(c.UserContext(), id, reportID, visitID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
