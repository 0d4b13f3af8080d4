package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodvision/models"
	"foodvision/services"
)

type MealController struct {
	Meals *services.MealService
}

func NewMealController(meals *services.MealService) *MealController {
	return &MealController{Meals: meals}
}

// mealRequest accepts both the canonical field names and the legacy aliases
// older app builds still send (dishName -> name, imageUri -> photoUri). The
// canonical value wins when both are present.
type mealRequest struct {
	Name                   string   `json:"name"`
	DishName               string   `json:"dishName"`
	PhotoURI               string   `json:"photoUri"`
	ImageURI               string   `json:"imageUri"`
	DateTime               string   `json:"dateTime"`
	IngredientsDescription string   `json:"ingredientsDescription"`
	Notes                  string   `json:"notes"`
	NutritionSummary       string   `json:"nutritionSummary"`
	CaloriesEstimate       float64  `json:"caloriesEstimate"`
	ProteinGrams           float64  `json:"proteinGrams"`
	CarbsGrams             float64  `json:"carbsGrams"`
	FatGrams               float64  `json:"fatGrams"`
	FiberGrams             float64  `json:"fiberGrams"`
	GoodPoints             []string `json:"goodPoints"`
	BadPoints              []string `json:"badPoints"`
	Source                 string   `json:"source"`
}

func (r mealRequest) toInput() services.MealInput {
	name := r.Name
	if name == "" {
		name = r.DishName
	}
	photo := r.PhotoURI
	if photo == "" {
		photo = r.ImageURI
	}
	return services.MealInput{
		Name:                   name,
		PhotoURI:               photo,
		DateTime:               r.DateTime,
		IngredientsDescription: r.IngredientsDescription,
		Notes:                  r.Notes,
		NutritionSummary:       r.NutritionSummary,
		CaloriesEstimate:       r.CaloriesEstimate,
		ProteinGrams:           r.ProteinGrams,
		CarbsGrams:             r.CarbsGrams,
		FatGrams:               r.FatGrams,
		FiberGrams:             r.FiberGrams,
		GoodPoints:             r.GoodPoints,
		BadPoints:              r.BadPoints,
	}
}

func (h *MealController) LogMeal(c *gin.Context) {
	var body mealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	source := models.MealSourceManual
	if body.Source == string(models.MealSourceScanned) {
		source = models.MealSourceScanned
	}
	meal, err := h.Meals.LogMeal(c.Request.Context(), body.toInput(), source)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *MealController) GetMeal(c *gin.Context) {
	meal, err := h.Meals.GetMeal(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if meal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealController) UpdateMeal(c *gin.Context) {
	var body mealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, err := h.Meals.UpdateMeal(c.Request.Context(), c.Param("id"), body.toInput())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if meal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealController) DeleteMeal(c *gin.Context) {
	if err := h.Meals.DeleteMeal(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MealController) DeleteAllMeals(c *gin.Context) {
	if err := h.Meals.DeleteAllMeals(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MealController) ListMeals(c *gin.Context) {
	meals, err := h.Meals.ListMeals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (h *MealController) ListRecentMeals(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))
	meals, err := h.Meals.ListRecentMeals(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

// ListMealsByRange expects inclusive ISO-8601 UTC bounds, the same
// representation records are stamped with. A reversed range is valid and
// returns an empty list.
func (h *MealController) ListMealsByRange(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end query params required"})
		return
	}
	meals, err := h.Meals.ListMealsByDateRange(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}
