package route

import (
	"baristasalary/auth"
	"baristasalary/controller"
	"baristasalary/model"
	"baristasalary/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func APIRoutes(router *gin.Engine, db *gorm.DB, tokens *utils.TokenManager) {
	ctl := controller.New(db)
	authHandler := auth.NewHandler(db, tokens)

	api := router.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	staff := api.Group("", utils.AuthMiddleware(tokens), utils.RequireRole(model.Admin, model.Manager))
	{
		staff.GET("/summary", ctl.Summary)

		staff.GET("/cafes", ctl.ListCafes)
		staff.GET("/cafes/:id", ctl.GetCafe)
		staff.GET("/cafes/:id/incomes.xlsx", ctl.ExportCafeIncome)
		staff.POST("/cafes/:id/incomes/import", ctl.ImportIncomes)

		staff.GET("/baristas", ctl.ListBaristas)
		staff.GET("/baristas/rates.xlsx", ctl.ExportRates)
		staff.GET("/baristas/:id", ctl.GetBarista)

		staff.GET("/shifts", ctl.GetSchedule)
		staff.GET("/shifts/schedule.xlsx", ctl.ExportSchedule)
		staff.POST("/shifts", ctl.CreateShift)
		staff.PUT("/shifts/:id", ctl.UpdateShift)
		staff.DELETE("/shifts/:id", ctl.DeleteShift)

		staff.POST("/incomes", ctl.CreateIncome)
		staff.PUT("/incomes/:id", ctl.UpdateIncome)
	}

	admin := api.Group("", utils.AuthMiddleware(tokens), utils.RequireRole(model.Admin))
	{
		admin.POST("/cafes", ctl.CreateCafe)
		admin.PUT("/cafes/:id", ctl.UpdateCafe)
		admin.DELETE("/cafes/:id", ctl.DeleteCafe)

		admin.POST("/baristas", ctl.CreateBarista)
		admin.PUT("/baristas/:id", ctl.UpdateBarista)
		admin.DELETE("/baristas/:id", ctl.DeleteBarista)

		admin.GET("/rates", ctl.ListRates)
		admin.POST("/rates", ctl.CreateRate)
		admin.PUT("/rates/:id", ctl.UpdateRate)
		admin.DELETE("/rates/:id", ctl.DeleteRate)

		admin.DELETE("/incomes/:id", ctl.DeleteIncome)
	}
}
