package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-report-service/internal/api/dto"
	"github.com/spec-kit/sales-report-service/internal/domain"
	"github.com/spec-kit/sales-report-service/internal/service"
	apperrors "github.com/spec-kit/sales-report-service/pkg/util"
)

// StaffHandler manages sales staff administration endpoints.
type StaffHandler struct {
	service *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{service: staffService}
}

// ListStaff GET /sales-staff.
func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	filter := service.StaffListFilter{
		Search:     queryString(c, "search"),
		Department: queryString(c, "department"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 20),
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role := domain.StaffRole(roleStr)
		if !role.Valid() {
			return apperrors.NewValidationError("invalid role filter", nil)
		}
		filter.Role = &role
	}

	staff, total, err := h.service.ListStaff(c.UserContext(), id, filter)
	if err != nil {
		return err
	}
	items := make([]dto.StaffProfile, 0, len(staff))
	for i := range staff {
		items = append(items, staffProfile(&staff[i]))
	}
	return c.JSON(fiber.Map{"data": dto.StaffListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}})
}

// GetStaff GET /sales-staff/:salesID.
func (h *StaffHandler) GetStaff(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	salesID, err := paramID(c, "salesID")
	if err != nil {
		return err
	}

	detail, err := h.service.GetStaff(c.UserContext(), id, salesID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffDetailResponse(detail)})
}

// CreateStaff POST /sales-staff.
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email and password required", nil)
	}

	staff, err := h.service.CreateStaff(c.UserContext(), id, service.StaffCreateInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
		Position:   req.Position,
		Role:       req.Role,
		ManagerID:  req.ManagerID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": staffProfile(staff)})
}

// UpdateStaff PUT /sales-staff/:salesID.
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	salesID, err := paramID(c, "salesID")
	if err != nil {
		return err
	}
	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.StaffUpdateInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
		Position:   req.Position,
		Role:       req.Role,
		ManagerID:  req.ManagerID,
		ManagerSet: bodyHasKey(c.Body(), "manager_id"),
	}

	staff, err := h.service.UpdateStaff(c.UserContext(), id, salesID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffProfile(staff)})
}

// DeleteStaff DELETE /sales-staff/:salesID.
func (h *StaffHandler) DeleteStaff(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	salesID, err := paramID(c, "salesID")
	if err != nil {
		return err
	}

	if err := h.service.DeleteStaff(c.UserContext(), id, salesID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// bodyHasKey reports whether the JSON body carries the key at all; a present
// null clears the manager, an absent key leaves it unchanged.
func bodyHasKey(body []byte, key string) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return false
	}
	_, ok := raw[key]
	return ok
}

func staffDetailResponse(detail *service.StaffDetail) dto.StaffDetailResponse {
	resp := dto.StaffDetailResponse{
		StaffProfile: staffProfile(detail.Staff),
		Subordinates: make([]dto.StaffProfile, 0, len(detail.Subordinates)),
	}
	if detail.Manager != nil {
		manager := staffProfile(detail.Manager)
		resp.Manager = &manager
	}
	for i := range detail.Subordinates {
		resp.Subordinates = append(resp.Subordinates, staffProfile(&detail.Subordinates[i]))
	}
	return resp
}
