package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodvision/models"
	"foodvision/store"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newStatsFixture(t *testing.T) (*StatsService, store.MealStore) {
	t.Helper()
	st, err := store.OpenFile(filepath.Join(t.TempDir(), "meals.json"))
	require.NoError(t, err)
	stats := NewStatsService(st)
	stats.loc = time.UTC
	stats.now = func() time.Time { return fixedNow }
	return stats, st
}

func mealAt(id string, ts time.Time, calories float64) models.MealRecord {
	iso := store.FormatISO(ts)
	return models.MealRecord{
		ID:               id,
		CreatedAt:        iso,
		DateTime:         iso,
		Name:             "Meal " + id,
		CaloriesEstimate: calories,
		ProteinGrams:     20,
		CarbsGrams:       30,
		FatGrams:         10,
		FiberGrams:       5,
		GoodPoints:       []string{"fresh"},
		BadPoints:        []string{},
		Source:           models.MealSourceManual,
	}
}

func seed(t *testing.T, st store.MealStore, recs ...models.MealRecord) {
	t.Helper()
	for _, r := range recs {
		require.NoError(t, st.Insert(context.Background(), r))
	}
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummarizeFold(t *testing.T) {
	records := []models.MealRecord{
		{CaloriesEstimate: 500, ProteinGrams: 30, CarbsGrams: 40, FatGrams: 15, FiberGrams: 3,
			GoodPoints: []string{"a", "b"}, BadPoints: []string{"c"}},
		{CaloriesEstimate: 700, ProteinGrams: 25, CarbsGrams: 80, FatGrams: 20, FiberGrams: 7,
			GoodPoints: []string{"a"}, BadPoints: nil},
	}
	got := Summarize(records)
	assert.Equal(t, Summary{
		TotalCalories:  1200,
		Protein:        55,
		Carbs:          120,
		Fats:           35,
		Fiber:          10,
		Count:          2,
		GoodPointCount: 3, // list lengths, not deduplicated
		BadPointCount:  1,
	}, got)
}

func TestStreakThreeConsecutiveDays(t *testing.T) {
	stats, st := newStatsFixture(t)
	seed(t, st,
		mealAt("today", fixedNow, 500),
		mealAt("yesterday", fixedNow.AddDate(0, 0, -1), 500),
		mealAt("day-before", fixedNow.AddDate(0, 0, -2), 500),
	)

	streak, err := stats.Streak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestStreakGapResets(t *testing.T) {
	stats, st := newStatsFixture(t)
	seed(t, st,
		mealAt("today", fixedNow, 500),
		mealAt("old", fixedNow.AddDate(0, 0, -3), 500),
	)

	streak, err := stats.Streak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestStreakAnchorsOnYesterdayWhenTodayEmpty(t *testing.T) {
	stats, st := newStatsFixture(t)
	seed(t, st, mealAt("yesterday", fixedNow.AddDate(0, 0, -1), 500))

	streak, err := stats.Streak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestStreakNoMeals(t *testing.T) {
	stats, _ := newStatsFixture(t)

	streak, err := stats.Streak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestStreakMultipleMealsOneDayCountOnce(t *testing.T) {
	stats, st := newStatsFixture(t)
	seed(t, st,
		mealAt("breakfast", fixedNow.Add(-4*time.Hour), 300),
		mealAt("lunch", fixedNow, 600),
	)

	streak, err := stats.Streak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestDayStatsProgress(t *testing.T) {
	stats, st := newStatsFixture(t)
	seed(t, st,
		mealAt("breakfast", fixedNow.Add(-4*time.Hour), 500),
		mealAt("lunch", fixedNow, 700),
		mealAt("other-day", fixedNow.AddDate(0, 0, -2), 900),
	)

	out, err := stats.DayStats(context.Background(), fixedNow, 2000)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", out.Date)
	assert.Equal(t, 1200.0, out.TotalCalories)
	assert.Equal(t, 2, out.Count)
	assert.InDelta(t, 0.6, out.Percent, 1e-9)
	assert.InDelta(t, 0.6, out.Ratio, 1e-9)
}

// Over target, the progress value clamps to 1 while the raw ratio stays
// distinguishable.
func TestDayStatsOverTargetClampsPercentNotRatio(t *testing.T) {
	stats, st := newStatsFixture(t)
	seed(t, st, mealAt("feast", fixedNow, 2500))

	out, err := stats.DayStats(context.Background(), fixedNow, 2000)
	require.NoError(t, err)
	assert.Equal(t, 1.0, out.Percent)
	assert.InDelta(t, 1.25, out.Ratio, 1e-9)
}

func TestDayStatsZeroTarget(t *testing.T) {
	stats, st := newStatsFixture(t)
	seed(t, st, mealAt("lunch", fixedNow, 800))

	out, err := stats.DayStats(context.Background(), fixedNow, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Percent)
	assert.Equal(t, 0.0, out.Ratio)
}

func TestWeeklyReportAveragingConventions(t *testing.T) {
	stats, st := newStatsFixture(t)
	seed(t, st,
		mealAt("today-1", fixedNow, 300),
		mealAt("today-2", fixedNow.Add(-2*time.Hour), 500),
		mealAt("midweek", fixedNow.AddDate(0, 0, -3), 700),
		mealAt("out-of-window", fixedNow.AddDate(0, 0, -8), 900),
	)

	out, err := stats.WeeklyReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-03-09", out.From)
	assert.Equal(t, "2024-03-15", out.To)
	require.Len(t, out.Days, 7)
	assert.Equal(t, "2024-03-09", out.Days[0].Date)
	assert.Equal(t, "2024-03-15", out.Days[6].Date)

	assert.Equal(t, 800.0, out.Days[6].TotalCalories)
	assert.Equal(t, 700.0, out.Days[3].TotalCalories)
	assert.Equal(t, 0.0, out.Days[0].TotalCalories, "empty days count as zero")

	assert.Equal(t, 1500.0, out.Totals.TotalCalories, "out-of-window meals excluded")
	assert.Equal(t, 2, out.DaysTracked)

	// divide-by-7 smoothing vs divide-by-days-tracked: both preserved.
	assert.InDelta(t, 1500.0/7, out.DailyAverage.Calories, 1e-9)
	assert.InDelta(t, 750.0, out.TrackedDayAverage.Calories, 1e-9)
}

func TestWeeklyReportEmpty(t *testing.T) {
	stats, _ := newStatsFixture(t)

	out, err := stats.WeeklyReport(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Days, 7)
	assert.Equal(t, Summary{}, out.Totals)
	assert.Equal(t, 0, out.DaysTracked)
	assert.Equal(t, Averages{}, out.DailyAverage)
	assert.Equal(t, Averages{}, out.TrackedDayAverage, "no tracked days means zero, not NaN")
}
