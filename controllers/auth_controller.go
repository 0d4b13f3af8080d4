package controllers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodvision/utils"
)

// AuthController exchanges the shared app key for a device bearer token.
// There are no user accounts; the app is single-profile per install.
type AuthController struct {
	AppKey string
}

func NewAuthController(appKey string) *AuthController {
	return &AuthController{AppKey: appKey}
}

func (h *AuthController) IssueDeviceToken(c *gin.Context) {
	var body struct {
		DeviceID string `json:"device_id" binding:"required"`
		AppKey   string `json:"app_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if subtle.ConstantTimeCompare([]byte(body.AppKey), []byte(h.AppKey)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid app key"})
		return
	}

	token, err := utils.GenerateDeviceToken(body.DeviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
