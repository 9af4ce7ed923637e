package controller

import (
	"bytes"
	"fmt"
	"net/http"

	"baristasalary/model"
	"baristasalary/report"
	"baristasalary/service"

	"github.com/gin-gonic/gin"
)

type shiftRequest struct {
	Date      string `form:"date" json:"date" binding:"required"`
	CafeID    uint   `form:"cafe_id" json:"cafe_id" binding:"required"`
	BaristaID uint   `form:"barista_id" json:"barista_id" binding:"required"`
}

func bindShift(c *gin.Context) (service.ShiftInput, bool) {
	var req shiftRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "date, cafe_id and barista_id are required")
		return service.ShiftInput{}, false
	}
	date, err := model.ParseDay(req.Date)
	if err != nil {
		badRequest(c, "date must be in YYYY-MM-DD format")
		return service.ShiftInput{}, false
	}
	return service.ShiftInput{Date: date, CafeID: req.CafeID, BaristaID: req.BaristaID}, true
}

// GetSchedule returns the day by cafe shift grid for the range.
func (ctl *Controller) GetSchedule(c *gin.Context) {
	r, ok := dateRange(c)
	if !ok {
		return
	}
	schedule, err := ctl.reports.ShiftSchedule(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": schedule})
}

func (ctl *Controller) ExportSchedule(c *gin.Context) {
	r, ok := dateRange(c)
	if !ok {
		return
	}
	schedule, err := ctl.reports.ShiftSchedule(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("schedule-%s_%s.xlsx", r.StartDate(), r.EndDate())
	sendWorkbook(c, filename, func(buf *bytes.Buffer) error {
		return report.WriteSchedule(buf, schedule)
	})
}

func (ctl *Controller) CreateShift(c *gin.Context) {
	in, ok := bindShift(c)
	if !ok {
		return
	}
	shift, err := ctl.shifts.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Shift created", "data": shift})
}

func (ctl *Controller) UpdateShift(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := bindShift(c)
	if !ok {
		return
	}
	shift, err := ctl.shifts.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Shift updated", "data": shift})
}

func (ctl *Controller) DeleteShift(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.shifts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Shift deleted"})
}
