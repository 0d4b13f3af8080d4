package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodvision/utils"
)

// PhotoController uploads a meal photo on its own, for manual entries that
// attach a picture without running vision analysis.
type PhotoController struct {
	Uploader *utils.S3Uploader
}

func NewPhotoController(uploader *utils.S3Uploader) *PhotoController {
	return &PhotoController{Uploader: uploader}
}

func (h *PhotoController) UploadPhoto(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"imageBase64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo storage not configured"})
		return
	}

	url, err := h.Uploader.UploadMealPhoto(c.Request.Context(), req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
