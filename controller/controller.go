package controller

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"baristasalary/logger"
	"baristasalary/report"
	"baristasalary/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Controller holds the services behind the HTTP handlers.
type Controller struct {
	catalog *service.CatalogService
	shifts  *service.ShiftService
	incomes *service.IncomeService
	reports *report.Service
}

func New(db *gorm.DB) *Controller {
	return &Controller{
		catalog: service.NewCatalogService(db),
		shifts:  service.NewShiftService(db),
		incomes: service.NewIncomeService(db),
		reports: report.NewService(db),
	}
}

// respondError maps a service error onto the HTTP status and error envelope.
func respondError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr) && errors.Is(err, service.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": vErr.Message})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": vErr.Message})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Record not found"})
	default:
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid ID format")
		return 0, false
	}
	return uint(id), true
}

// dateRange reads the optional start_date and end_date query parameters.
func dateRange(c *gin.Context) (report.DateRange, bool) {
	r, err := report.ParseRange(c.Query("start_date"), c.Query("end_date"), report.Now())
	if err != nil {
		respondError(c, err)
		return report.DateRange{}, false
	}
	return r, true
}

// sendWorkbook renders a workbook into memory and sends it as an attachment.
func sendWorkbook(c *gin.Context, filename string, write func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		respondError(c, fmt.Errorf("write workbook: %w", err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
