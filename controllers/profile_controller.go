package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodvision/models"
	"foodvision/utils"
)

type ProfileController struct{}

func NewProfileController() *ProfileController { return &ProfileController{} }

// CalculateTargets is a pure endpoint: biometrics in, daily targets out.
// BMI is included when the inputs are plausible, omitted otherwise.
func (h *ProfileController) CalculateTargets(c *gin.Context) {
	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targets := utils.CalculateTargets(profile)
	resp := gin.H{"targets": targets}
	if bmi, err := utils.CalculateBMI(profile.HeightCm, profile.WeightKg); err == nil {
		resp["bmi"] = bmi
		resp["bmiCategory"] = utils.BMICategory(bmi)
	}
	c.JSON(http.StatusOK, resp)
}
