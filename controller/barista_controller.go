package controller

import (
	"bytes"
	"fmt"
	"net/http"

	"baristasalary/report"

	"github.com/gin-gonic/gin"
)

type baristaRequest struct {
	FullName string `form:"full_name" json:"full_name" binding:"required"`
}

// ListBaristas returns every barista with their rate at every cafe.
func (ctl *Controller) ListBaristas(c *gin.Context) {
	table, err := ctl.reports.RateTable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": table})
}

func (ctl *Controller) ExportRates(c *gin.Context) {
	table, err := ctl.reports.RateTable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sendWorkbook(c, "barista-rates.xlsx", func(buf *bytes.Buffer) error {
		return report.WriteRateTable(buf, table)
	})
}

// GetBarista returns the barista's shifts and total salary for the range.
func (ctl *Controller) GetBarista(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	r, ok := dateRange(c)
	if !ok {
		return
	}

	rep, err := ctl.reports.BaristaSalary(c.Request.Context(), id, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rep})
}

func (ctl *Controller) CreateBarista(c *gin.Context) {
	var req baristaRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Barista full name is required")
		return
	}

	barista, err := ctl.catalog.CreateBarista(c.Request.Context(), req.FullName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Barista created", "data": barista})
}

func (ctl *Controller) UpdateBarista(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req baristaRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Barista full name is required")
		return
	}

	barista, err := ctl.catalog.UpdateBarista(c.Request.Context(), id, req.FullName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Barista updated", "data": barista})
}

func (ctl *Controller) DeleteBarista(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.catalog.DeleteBarista(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": fmt.Sprintf("Barista %d deleted", id)})
}
