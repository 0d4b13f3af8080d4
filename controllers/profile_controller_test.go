package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCalculateTargetsEndpoint(t *testing.T) {
	r := gin.New()
	r.POST("/profile/targets", NewProfileController().CalculateTargets)

	body := `{"age":30,"heightCm":170,"weightKg":70,"sex":"male","activityLevel":"moderate","goal":"maintain"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/profile/targets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Targets struct {
			CalorieTarget float64 `json:"calorieTarget"`
			Protein       float64 `json:"protein"`
			Carbs         float64 `json:"carbs"`
			Fats          float64 `json:"fats"`
		} `json:"targets"`
		BMI         float64 `json:"bmi"`
		BMICategory string  `json:"bmiCategory"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2507.0, resp.Targets.CalorieTarget)
	assert.Equal(t, 157.0, resp.Targets.Protein)
	assert.Equal(t, 313.0, resp.Targets.Carbs)
	assert.Equal(t, 70.0, resp.Targets.Fats)
	assert.InDelta(t, 24.22, resp.BMI, 0.01)
	assert.Equal(t, "Normal weight", resp.BMICategory)
}

func TestCalculateTargetsEndpointOmitsImplausibleBMI(t *testing.T) {
	r := gin.New()
	r.POST("/profile/targets", NewProfileController().CalculateTargets)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/profile/targets", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "targets")
	assert.NotContains(t, resp, "bmi")
}
