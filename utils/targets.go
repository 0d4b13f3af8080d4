package utils

import (
	"math"

	"foodvision/models"
)

// Fallbacks applied when biometric inputs are missing.
const (
	defaultAge      = 30
	defaultHeightCm = 170.0
	defaultWeightKg = 70.0
)

var activityFactors = map[models.ActivityLevel]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

// CalculateTargets maps biometric inputs to daily calorie and macro targets.
//
// BMR is Mifflin-St Jeor: 10*weight + 6.25*height - 5*age + sexConstant,
// with -161 for female and +5 otherwise. "other"/unspecified intentionally
// gets the male constant; product has been asked to clarify, do not change
// it here. TDEE is BMR times the activity factor, adjusted ±500 kcal for
// weight loss/gain, floored at 1200 kcal. Macros split 25/50/25 across
// protein/carbs/fats at 4/4/9 kcal per gram, each rounded independently, so
// the grams will not re-sum to the calorie target exactly.
func CalculateTargets(p models.Profile) models.Targets {
	age := p.Age
	if age <= 0 {
		age = defaultAge
	}
	height := p.HeightCm
	if height <= 0 {
		height = defaultHeightCm
	}
	weight := p.WeightKg
	if weight <= 0 {
		weight = defaultWeightKg
	}

	sexConstant := 5.0
	if p.Sex == models.SexFemale {
		sexConstant = -161
	}
	bmr := 10*weight + 6.25*height - 5*float64(age) + sexConstant

	factor, ok := activityFactors[p.ActivityLevel]
	if !ok {
		factor = activityFactors[models.ActivitySedentary]
	}
	tdee := bmr * factor

	switch p.Goal {
	case models.GoalLose:
		tdee -= 500
	case models.GoalGain:
		tdee += 500
	}
	if tdee < 1200 {
		tdee = 1200
	}

	calories := math.Round(tdee)
	return models.Targets{
		CalorieTarget: calories,
		ProteinGrams:  math.Round(calories * 0.25 / 4),
		CarbsGrams:    math.Round(calories * 0.50 / 4),
		FatGrams:      math.Round(calories * 0.25 / 9),
	}
}
