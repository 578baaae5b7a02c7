package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-report-service/internal/api/dto"
	"github.com/spec-kit/sales-report-service/internal/auth"
	"github.com/spec-kit/sales-report-service/internal/domain"
	apperrors "github.com/spec-kit/sales-report-service/pkg/util"
)

const (
	dateLayout       = "2006-01-02"
	maxContentLength = 10000
)

func contentTooLong(fields ...*string) bool {
	for _, field := range fields {
		if field != nil && len(*field) > maxContentLength {
			return true
		}
	}
	return false
}

func requireIdentity(c *fiber.Ctx) (domain.Identity, error) {
	id, ok := auth.IdentityFromContext(c)
	if !ok {
		return domain.Identity{}, apperrors.NewUnauthorized("authentication required")
	}
	return id, nil
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	parsed, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || parsed <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, nil)
	}
	return parsed, nil
}

func queryInt(c *fiber.Ctx, name string, def int) int {
	val := c.Query(name)
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func queryDate(c *fiber.Ctx, name string) *time.Time {
	val := c.Query(name)
	if val == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, val)
	if err != nil {
		return nil
	}
	return &t
}

func queryString(c *fiber.Ctx, name string) *string {
	val := c.Query(name)
	if val == "" {
		return nil
	}
	return &val
}

func staffProfile(staff *domain.SalesStaff) dto.StaffProfile {
	return dto.StaffProfile{
		SalesID:    staff.SalesID,
		Name:       staff.Name,
		Email:      staff.Email,
		Department: staff.Department,
		Position:   staff.Position,
		Role:       staff.Role,
		ManagerID:  staff.ManagerID,
		CreatedAt:  staff.CreatedAt,
		UpdatedAt:  staff.UpdatedAt,
	}
}

func reportSummary(report *domain.DailyReport) dto.ReportSummary {
	return dto.ReportSummary{
		ReportID:   report.ReportID,
		SalesID:    report.SalesID,
		ReportDate: report.ReportDate.Format(dateLayout),
		Problem:    report.Problem,
		Plan:       report.Plan,
		Status:     report.Status,
		CreatedAt:  report.CreatedAt,
		UpdatedAt:  report.UpdatedAt,
	}
}

func visitResponse(visit *domain.VisitRecord) dto.VisitResponse {
	return dto.VisitResponse{
		VisitID:      visit.VisitID,
		ReportID:     visit.ReportID,
		CustomerID:   visit.CustomerID,
		VisitContent: visit.VisitContent,
		VisitOrder:   visit.VisitOrder,
		CreatedAt:    visit.CreatedAt,
		UpdatedAt:    visit.UpdatedAt,
	}
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		CommentID:      comment.CommentID,
		ReportID:       comment.ReportID,
		CommenterID:    comment.CommenterID,
		CommentType:    comment.CommentType,
		CommentContent: comment.CommentContent,
		CreatedAt:      comment.CreatedAt,
		UpdatedAt:      comment.UpdatedAt,
	}
}

func customerResponse(customer *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		CustomerID:   customer.CustomerID,
		CustomerName: customer.CustomerName,
		CompanyName:  customer.CompanyName,
		Department:   customer.Department,
		Phone:        customer.Phone,
		Email:        customer.Email,
		Address:      customer.Address,
		CreatedAt:    customer.CreatedAt,
		UpdatedAt:    customer.UpdatedAt,
	}
}
