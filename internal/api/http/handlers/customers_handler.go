package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-report-service/internal/api/dto"
	"github.com/spec-kit/sales-report-service/internal/service"
	apperrors "github.com/spec-kit/sales-report-service/pkg/util"
)

// CustomersHandler manages customer master data endpoints.
type CustomersHandler struct {
	service *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customerService *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{service: customerService}
}

// ListCustomers GET /customers.
func (h *CustomersHandler) ListCustomers(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	filter := service.CustomerListFilter{
		Search: queryString(c, "search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}
	customers, total, err := h.service.ListCustomers(c.UserContext(), id, filter)
	if err != nil {
		return err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, customerResponse(&customers[i]))
	}
	return c.JSON(fiber.Map{"data": dto.CustomerListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}})
}

// GetCustomer GET /customers/:customerID.
func (h *CustomersHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	customerID, err := paramID(c, "customerID")
	if err != nil {
		return err
	}

	customer, err := h.service.GetCustomer(c.UserContext(), id, customerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// CreateCustomer POST /customers.
func (h *CustomersHandler) CreateCustomer(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	req, err := parseCustomerRequest(c)
	if err != nil {
		return err
	}

	customer, err := h.service.CreateCustomer(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": customerResponse(customer)})
}

// UpdateCustomer PUT /customers/:customerID.
func (h *CustomersHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	customerID, err := paramID(c, "customerID")
	if err != nil {
		return err
	}
	req, err := parseCustomerRequest(c)
	if err != nil {
		return err
	}

	customer, err := h.service.UpdateCustomer(c.UserContext(), id, customerID, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// DeleteCustomer DELETE /customers/:customerID.
func (h *CustomersHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	customerID, err := paramID(c, "customerID")
	if err != nil {
		return err
	}

	if err := h.service.DeleteCustomer(c.UserContext(), id, customerID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseCustomerRequest(c *fiber.Ctx) (service.CustomerInput, error) {
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return service.CustomerInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CompanyName) == "" {
		return service.CustomerInput{}, apperrors.NewValidationError("customer_name and company_name required", nil)
	}
	return service.CustomerInput{
		CustomerName: req.CustomerName,
		CompanyName:  req.CompanyName,
		Department:   req.Department,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
	}, nil
}
