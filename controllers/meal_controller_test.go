package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodvision/models"
	"foodvision/services"
	"foodvision/store"
)

func newMealRouter(t *testing.T) *gin.Engine {
	t.Helper()
	st, err := store.OpenFile(filepath.Join(t.TempDir(), "meals.json"))
	require.NoError(t, err)
	h := NewMealController(services.NewMealService(st, nil))

	r := gin.New()
	r.POST("/meals", h.LogMeal)
	r.GET("/meals/:id", h.GetMeal)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// Older app builds still send dishName/imageUri; both must land on the
// canonical fields, with the canonical name winning when both are present.
func TestLogMealAcceptsLegacyFieldNames(t *testing.T) {
	r := newMealRouter(t)

	w := postJSON(t, r, "/meals", `{
		"dishName": "Pad thai",
		"imageUri": "file:///photos/pad-thai.jpg",
		"caloriesEstimate": 620
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var meal models.MealRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meal))
	assert.Equal(t, "Pad thai", meal.Name)
	assert.Equal(t, "file:///photos/pad-thai.jpg", meal.PhotoURI)
	assert.Equal(t, models.MealSourceManual, meal.Source)
	assert.Equal(t, "Added manually", meal.NutritionSummary)
}

func TestLogMealCanonicalFieldWinsOverAlias(t *testing.T) {
	r := newMealRouter(t)

	w := postJSON(t, r, "/meals", `{"name": "Canonical", "dishName": "Legacy"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var meal models.MealRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meal))
	assert.Equal(t, "Canonical", meal.Name)
}

func TestGetMealNotFound(t *testing.T) {
	r := newMealRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/meals/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
