package controller

import (
	"bytes"
	"fmt"
	"net/http"

	"baristasalary/report"

	"github.com/gin-gonic/gin"
)

type cafeRequest struct {
	Name string `form:"name" json:"name" binding:"required"`
}

func (ctl *Controller) Summary(c *gin.Context) {
	sum, err := ctl.catalog.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sum})
}

func (ctl *Controller) ListCafes(c *gin.Context) {
	cafes, err := ctl.catalog.ListCafes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cafes})
}

// GetCafe returns the cafe with its daily incomes for the requested range.
func (ctl *Controller) GetCafe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	r, ok := dateRange(c)
	if !ok {
		return
	}

	rep, err := ctl.reports.CafeIncome(c.Request.Context(), id, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rep})
}

func (ctl *Controller) ExportCafeIncome(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	r, ok := dateRange(c)
	if !ok {
		return
	}

	rep, err := ctl.reports.CafeIncome(c.Request.Context(), id, r)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("cafe-%d-incomes-%s_%s.xlsx", id, r.StartDate(), r.EndDate())
	sendWorkbook(c, filename, func(buf *bytes.Buffer) error {
		return report.WriteCafeIncome(buf, rep)
	})
}

func (ctl *Controller) CreateCafe(c *gin.Context) {
	var req cafeRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Cafe name is required")
		return
	}

	cafe, err := ctl.catalog.CreateCafe(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Cafe created", "data": cafe})
}

func (ctl *Controller) UpdateCafe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req cafeRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Cafe name is required")
		return
	}

	cafe, err := ctl.catalog.UpdateCafe(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cafe updated", "data": cafe})
}

// DeleteCafe removes the cafe and everything recorded for it.
func (ctl *Controller) DeleteCafe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.catalog.DeleteCafe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cafe deleted"})
}

// ImportIncomes records the incomes listed in an uploaded workbook for the
// cafe. Bad rows are reported back, the rest are saved.
func (ctl *Controller) ImportIncomes(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := ctl.catalog.GetCafe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "Excel file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Unable to open Excel file"})
		return
	}
	defer file.Close()

	res, err := report.ImportIncomes(c.Request.Context(), ctl.incomes, id, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Imported %d incomes", res.Imported),
		"data":    res,
	})
}
