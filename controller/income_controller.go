package controller

import (
	"net/http"

	"baristasalary/model"
	"baristasalary/service"

	"github.com/gin-gonic/gin"
)

type incomeRequest struct {
	Date   string `form:"date" json:"date" binding:"required"`
	CafeID uint   `form:"cafe_id" json:"cafe_id" binding:"required"`
	Income *int   `form:"income" json:"income" binding:"required"`
}

type incomeUpdateRequest struct {
	Income *int `form:"income" json:"income" binding:"required"`
}

// CreateIncome records a cafe's income for a day and returns it together with
// the shift whose salary was computed from it.
func (ctl *Controller) CreateIncome(c *gin.Context) {
	var req incomeRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "date, cafe_id and income are required")
		return
	}
	date, err := model.ParseDay(req.Date)
	if err != nil {
		badRequest(c, "date must be in YYYY-MM-DD format")
		return
	}

	res, err := ctl.incomes.Create(c.Request.Context(), service.IncomeInput{
		Date:   date,
		CafeID: req.CafeID,
		Amount: *req.Income,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Income created", "data": res})
}

func (ctl *Controller) UpdateIncome(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req incomeUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "income is required")
		return
	}

	res, err := ctl.incomes.Update(c.Request.Context(), id, *req.Income)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Income updated", "data": res})
}

func (ctl *Controller) DeleteIncome(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.incomes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Income deleted"})
}
