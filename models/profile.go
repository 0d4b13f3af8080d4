package models

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// Profile holds the biometric inputs for the daily target calculation.
// Zero-valued fields fall back to fixed defaults rather than failing.
type Profile struct {
	Age           int           `json:"age"`
	HeightCm      float64       `json:"heightCm"`
	WeightKg      float64       `json:"weightKg"`
	Sex           Sex           `json:"sex"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
}

// Targets are the computed daily calorie and macro goals.
type Targets struct {
	CalorieTarget float64 `json:"calorieTarget"`
	ProteinGrams  float64 `json:"protein"`
	CarbsGrams    float64 `json:"carbs"`
	FatGrams      float64 `json:"fats"`
}
