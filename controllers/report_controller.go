package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobboard-backend/models"
	"jobboard-backend/services"
	"jobboard-backend/utils"
)

type ReportController struct {
	ReportSvc *services.ReportService
}

func NewReportController(svc *services.ReportService) *ReportController {
	return &ReportController{ReportSvc: svc}
}

type createReportPayload struct {
	ReporterName  string  `json:"reporterName"`
	ReporterEmail string  `json:"reporterEmail"`
	Reason        string  `json:"reason"`
	Description   *string `json:"description"`
}

type resolveReportPayload struct {
	IsResolved *bool `json:"isResolved"`
}

// CreateReport handles POST /api/listings/:id/reports. Anonymous; the listing
// only needs to be approved — a closed listing can still be reported.
func (rc *ReportController) CreateReport(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload createReportPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if strings.TrimSpace(payload.Reason) == "" {
		utils.JSONError(c, http.StatusBadRequest, "reason is required")
		return
	}
	if !utils.ValidEmail(payload.ReporterEmail) {
		utils.JSONError(c, http.StatusBadRequest, "a valid reporter email is required")
		return
	}

	report := models.Report{
		ReporterName:  payload.ReporterName,
		ReporterEmail: payload.ReporterEmail,
		Reason:        payload.Reason,
		Description:   payload.Description,
	}

	if err := rc.ReportSvc.Create(id, &report); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "listing not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to save report")
		return
	}
	c.JSON(http.StatusCreated, report)
}

// GetReports handles GET /api/listings/:id/reports (admin-only, enforced in
// routing).
func (rc *ReportController) GetReports(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reports, err := rc.ReportSvc.GetByListingID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "listing not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load reports")
		return
	}
	c.JSON(http.StatusOK, reports)
}

// GetAllReports handles GET /api/reports: the admin triage queue, unresolved
// entries first.
func (rc *ReportController) GetAllReports(c *gin.Context) {
	reports, err := rc.ReportSvc.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load reports")
		return
	}
	c.JSON(http.StatusOK, reports)
}

// ResolveReport handles PUT /api/listings/:id/reports/:reportId/resolve
// (admin-only, enforced in routing). Resolution is reversible.
func (rc *ReportController) ResolveReport(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reportID, err := strconv.ParseUint(c.Param("reportId"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid report id")
		return
	}

	var payload resolveReportPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.IsResolved == nil {
		utils.JSONError(c, http.StatusBadRequest, "isResolved is required")
		return
	}

	report, err := rc.ReportSvc.SetResolved(id, uint(reportID), *payload.IsResolved)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "report not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update report")
		return
	}
	c.JSON(http.StatusOK, report)
}
