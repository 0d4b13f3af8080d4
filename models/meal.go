package models

// MealSource tags where a logged meal came from.
type MealSource string

const (
	MealSourceScanned MealSource = "scanned" // produced by vision analysis
	MealSourceManual  MealSource = "manual"  // user-entered placeholder
)

// MealRecord is one logged meal. CreatedAt is assigned once at creation and
// is the canonical timestamp for ordering and range queries; DateTime is the
// user-editable "meal occurred at" timestamp and defaults to CreatedAt.
// Both are ISO-8601 UTC strings with millisecond precision so they sort
// correctly as plain strings.
type MealRecord struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	DateTime  string `json:"dateTime"`

	Name                   string `json:"name"`
	PhotoURI               string `json:"photoUri"`
	IngredientsDescription string `json:"ingredientsDescription"`
	Notes                  string `json:"notes,omitempty"`
	NutritionSummary       string `json:"nutritionSummary"`

	CaloriesEstimate float64 `json:"caloriesEstimate"`
	ProteinGrams     float64 `json:"proteinGrams"`
	CarbsGrams       float64 `json:"carbsGrams"`
	FatGrams         float64 `json:"fatGrams"`
	FiberGrams       float64 `json:"fiberGrams"`

	GoodPoints []string `json:"goodPoints"`
	BadPoints  []string `json:"badPoints"`

	Source MealSource `json:"source"`
}

// NutritionEstimate is what the vision analysis produces for one photo.
// Numeric fields default to zero and the point lists to empty when the
// provider omits them.
type NutritionEstimate struct {
	DishName               string   `json:"dishName"`
	IngredientsDescription string   `json:"ingredientsDescription"`
	NutritionSummary       string   `json:"nutritionSummary"`
	CaloriesEstimate       float64  `json:"caloriesEstimate"`
	ProteinGrams           float64  `json:"proteinGrams"`
	CarbsGrams             float64  `json:"carbsGrams"`
	FatGrams               float64  `json:"fatGrams"`
	FiberGrams             float64  `json:"fiberGrams"`
	GoodPoints             []string `json:"goodPoints"`
	BadPoints              []string `json:"badPoints"`
}
