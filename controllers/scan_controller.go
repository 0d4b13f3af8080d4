package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodvision/models"
	"foodvision/services"
	"foodvision/utils"
)

// ScanController runs the photograph-to-meal flow: vision analysis, photo
// upload, then a stored scanned record.
type ScanController struct {
	Vision   *services.VisionService
	Meals    *services.MealService
	Uploader *utils.S3Uploader // nil when S3 is not configured
}

func NewScanController(vision *services.VisionService, meals *services.MealService, uploader *utils.S3Uploader) *ScanController {
	return &ScanController{Vision: vision, Meals: meals, Uploader: uploader}
}

func (h *ScanController) ScanMeal(c *gin.Context) {
	var body struct {
		ImageBase64 string `json:"imageBase64" binding:"required"`
		DateTime    string `json:"dateTime"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	est, err := h.Vision.AnalyzeMeal(c.Request.Context(), body.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	// Photo upload is best-effort: a failed upload should not lose the scan.
	photoURI := ""
	if h.Uploader != nil {
		photoURI, err = h.Uploader.UploadMealPhoto(c.Request.Context(), body.ImageBase64)
		if err != nil {
			log.Printf("meal photo upload failed, saving record without photo: %v", err)
			photoURI = ""
		}
	}

	meal, err := h.Meals.LogMeal(c.Request.Context(), services.MealInput{
		Name:                   est.DishName,
		PhotoURI:               photoURI,
		IngredientsDescription: est.IngredientsDescription,
		NutritionSummary:       est.NutritionSummary,
		CaloriesEstimate:       est.CaloriesEstimate,
		ProteinGrams:           est.ProteinGrams,
		CarbsGrams:             est.CarbsGrams,
		FatGrams:               est.FatGrams,
		FiberGrams:             est.FiberGrams,
		GoodPoints:             est.GoodPoints,
		BadPoints:              est.BadPoints,
		DateTime:               body.DateTime,
	}, models.MealSourceScanned)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}
