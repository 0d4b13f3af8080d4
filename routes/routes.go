package routes

import (
	"github.com/gin-gonic/gin"

	"foodvision/config"
	"foodvision/controllers"
	"foodvision/middlewares"
	"foodvision/services"
	"foodvision/utils"
)

// Deps carries everything the router wires into controllers. Built once in
// main; controllers never reach for globals.
type Deps struct {
	Config   *config.Config
	Meals    *services.MealService
	Stats    *services.StatsService
	Vision   *services.VisionService
	Hub      *services.RealtimeHub
	Uploader *utils.S3Uploader
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	mealCtl := controllers.NewMealController(d.Meals)
	statsCtl := controllers.NewStatsController(d.Stats)
	profileCtl := controllers.NewProfileController()
	authCtl := controllers.NewAuthController(d.Config.AppKey)
	scanCtl := controllers.NewScanController(d.Vision, d.Meals, d.Uploader)
	photoCtl := controllers.NewPhotoController(d.Uploader)
	rtCtl := controllers.NewRealtimeController(d.Hub)

	// Public auth route
	auth := r.Group("/auth")
	{
		auth.POST("/device", authCtl.IssueDeviceToken)
	}

	// Protected API
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/meals", mealCtl.LogMeal)
		api.GET("/meals", mealCtl.ListMeals)
		api.GET("/meals/recent", mealCtl.ListRecentMeals)
		api.GET("/meals/range", mealCtl.ListMealsByRange)
		api.GET("/meals/:id", mealCtl.GetMeal)
		api.PUT("/meals/:id", mealCtl.UpdateMeal)
		api.DELETE("/meals/:id", mealCtl.DeleteMeal)
		api.DELETE("/meals", mealCtl.DeleteAllMeals)

		api.GET("/stats/daily", statsCtl.GetDailyStats)
		api.GET("/stats/weekly", statsCtl.GetWeeklyReport)
		api.GET("/stats/streak", statsCtl.GetStreak)

		api.POST("/profile/targets", profileCtl.CalculateTargets)

		api.POST("/scan", scanCtl.ScanMeal)
		api.POST("/photos", photoCtl.UploadPhoto)

		api.GET("/ws/meals", rtCtl.MealsWS)
	}

	return r
}
