package controller

import (
	"net/http"

	"baristasalary/service"

	"github.com/gin-gonic/gin"
)

type rateParams struct {
	MinWage  *int `form:"min_wage" json:"min_wage" binding:"required"`
	Percent  *int `form:"percent" json:"percent" binding:"required"`
	Additive *int `form:"additive" json:"additive" binding:"required"`
}

type rateRequest struct {
	CafeID    uint `form:"cafe_id" json:"cafe_id" binding:"required"`
	BaristaID uint `form:"barista_id" json:"barista_id" binding:"required"`
	rateParams
}

func (ctl *Controller) ListRates(c *gin.Context) {
	rates, err := ctl.catalog.ListRates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rates})
}

func (ctl *Controller) CreateRate(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "cafe_id, barista_id, min_wage, percent and additive are required")
		return
	}

	rate, err := ctl.catalog.CreateRate(c.Request.Context(), service.RateInput{
		CafeID:    req.CafeID,
		BaristaID: req.BaristaID,
		MinWage:   *req.MinWage,
		Percent:   *req.Percent,
		Additive:  *req.Additive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Rate created", "data": rate})
}

// UpdateRate changes the formula parameters only; cafe and barista are fixed.
func (ctl *Controller) UpdateRate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req rateParams
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "min_wage, percent and additive are required")
		return
	}

	rate, err := ctl.catalog.UpdateRate(c.Request.Context(), id, *req.MinWage, *req.Percent, *req.Additive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Rate updated", "data": rate})
}

func (ctl *Controller) DeleteRate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.catalog.DeleteRate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Rate deleted"})
}
