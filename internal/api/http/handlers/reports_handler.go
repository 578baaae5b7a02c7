package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-report-service/internal/api/dto"
	"github.com/spec-kit/sales-report-service/internal/domain"
	"github.com/spec-kit/sales-report-service/internal/repository"
	"github.com/spec-kit/sales-report-service/internal/service"
	apperrors "github.com/spec-kit/sales-report-service/pkg/util"
)

// ReportsHandler manages daily report endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// CreateReport POST /reports.
func (h *ReportsHandler) CreateReport(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	reportDate, err := time.Parse(dateLayout, req.ReportDate)
	if err != nil {
		return apperrors.NewValidationError("report_date must be YYYY-MM-DD", nil)
	}
	if contentTooLong(req.Problem, req.Plan) {
		return apperrors.NewValidationError("problem and plan must be at most 10000 characters", nil)
	}

	seeds := make([]repository.VisitSeed, 0, len(req.Visits))
	for _, visit := range req.Visits {
		seeds = append(seeds, repository.VisitSeed{
			CustomerID: visit.CustomerID,
			Content:    visit.VisitContent,
		})
	}

	report, visits, err := h.service.CreateReport(c.UserContext(), id, service.ReportCreateInput{
		ReportDate: reportDate,
		Problem:    req.Problem,
		Plan:       req.Plan,
		Status:     req.Status,
		Visits:     seeds,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": reportDetail(report, visits, nil)})
}

// ListReports GET /reports.
func (h *ReportsHandler) ListReports(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	filter := service.ReportListFilter{
		DateFrom: queryDate(c, "date_from"),
		DateTo:   queryDate(c, "date_to"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.ReportStatus(statusStr)
		if !status.Valid() {
			return apperrors.NewValidationError("invalid status filter", nil)
		}
		filter.Status = &status
	}

	reports, total, err := h.service.ListReports(c.UserContext(), id, filter)
	if err != nil {
		return err
	}
	items := make([]dto.ReportSummary, 0, len(reports))
	for i := range reports {
		items = append(items, reportSummary(&reports[i]))
	}
	return c.JSON(fiber.Map{"data": dto.ReportListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}})
}

// GetReport GET /reports/:reportID.
func (h *ReportsHandler) GetReport(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	reportID, err := paramID(c, "reportID")
	if err != nil {
		return err
	}

	report, visits, comments, err := h.service.GetReport(c.UserContext(), id, reportID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportDetail(report, visits, comments)})
}

// UpdateReport PUT /reports/:reportID.
func (h *ReportsHandler) UpdateReport(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	reportID, err := paramID(c, "reportID")
	if err != nil {
		return err
	}
	var req dto.UpdateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if contentTooLong(req.Problem, req.Plan) {
		return apperrors.NewValidationError("problem and plan must be at most 10000 characters", nil)
	}

	report, err := h.service.UpdateReport(c.UserContext(), id, reportID, service.ReportUpdateInput{
		Problem: req.Problem,
		Plan:    req.Plan,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportSummary(report)})
}

// UpdateStatus PATCH /reports/:reportID/status.
func (h *ReportsHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	reportID, err := paramID(c, "reportID")
	if err != nil {
		return err
	}
	var req dto.UpdateReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.service.UpdateStatus(c.UserContext(), id, reportID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportSummary(report)})
}

// DeleteReport DELETE /reports/:reportID.
func (h *ReportsHandler) DeleteReport(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	reportID, err := paramID(c, "reportID")
	if err != nil {
		return err
	}

	if err := h.service.DeleteReport(c.UserContext(), id, reportID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func reportDetail(report *domain.DailyReport, visits []domain.VisitRecord, comments []domain.Comment) dto.ReportDetailResponse {
	visitItems := make([]dto.VisitResponse, 0, len(visits))
	for i := range visits {
		visitItems = append(visitItems, visitResponse(&visits[i]))
	}
	commentItems := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		commentItems = append(commentItems, commentResponse(&comments[i]))
	}
	return dto.ReportDetailResponse{
		ReportSummary: reportSummary(report),
		Visits:        visitItems,
		Comments:      commentItems,
	}
}
