package handlers

import (
	"net/http"

	"github.com/anonto42/forum-server/internal/models"
	"github.com/anonto42/forum-server/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ReportHandler handles post and comment reports
type ReportHandler struct {
	reportRepository repositories.ReportRepository
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportRepo repositories.ReportRepository) *ReportHandler {
	return &ReportHandler{reportRepository: reportRepo}
}

// RegisterReportRoutes registers report routes
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group, guards Guards) {
	g.POST("/makeReport", h.ReportPost, guards.Token)
	g.POST("/commentReport", h.ReportComment, guards.Token)
	g.GET("/reportsData", h.GetReports, guards.Token, guards.Admin)
}

// ReportPost files a report against a post and its author
func (h *ReportHandler) ReportPost(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}

	var req models.CreateReportRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	report := &models.Report{
		ReporterEmail:  email,
		ReportedUserID: req.ReportedUserID,
		PostID:         req.PostID,
		Details:        req.Details,
		Option:         req.Option,
	}
	if err := h.reportRepository.CreateReport(c.Request().Context(), report); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inserted(report.ObjectID, report.ReportID))
}

// ReportComment files a report against a single comment
func (h *ReportHandler) ReportComment(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentReportRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	report := &models.CommentReport{
		ReporterEmail: email,
		CommentID:     req.CommentID,
		PostID:        req.PostID,
		Details:       req.Details,
		Option:        req.Option,
	}
	if err := h.reportRepository.CreateCommentReport(c.Request().Context(), report); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inserted(report.ObjectID, report.ReportID))
}

// GetReports returns both report queues for moderation
func (h *ReportHandler) GetReports(c echo.Context) error {
	ctx := c.Request().Context()
	postReports, err := h.reportRepository.GetReports(ctx)
	if err != nil {
		return err
	}
	commentReports, err := h.reportRepository.GetCommentReports(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"postReports":    postReports,
		"commentReports": commentReports,
	})
}
