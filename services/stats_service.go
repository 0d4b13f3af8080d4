package services

import (
	"context"
	"log"
	"time"

	"foodvision/models"
	"foodvision/store"
)

// Summary is a plain fold over a set of meal records. Point counts are sums
// of list lengths, not deduplicated.
type Summary struct {
	TotalCalories  float64 `json:"totalCalories"`
	Protein        float64 `json:"protein"`
	Carbs          float64 `json:"carbs"`
	Fats           float64 `json:"fats"`
	Fiber          float64 `json:"fiber"`
	Count          int     `json:"count"`
	GoodPointCount int     `json:"goodPointCount"`
	BadPointCount  int     `json:"badPointCount"`
}

// Summarize folds the numeric fields of records into a Summary.
func Summarize(records []models.MealRecord) Summary {
	var sum Summary
	for _, r := range records {
		sum.TotalCalories += r.CaloriesEstimate
		sum.Protein += r.ProteinGrams
		sum.Carbs += r.CarbsGrams
		sum.Fats += r.FatGrams
		sum.Fiber += r.FiberGrams
		sum.Count++
		sum.GoodPointCount += len(r.GoodPoints)
		sum.BadPointCount += len(r.BadPoints)
	}
	return sum
}

// DayStats is one local calendar day against a calorie target. Percent is
// clamped to 1 for progress bars; Ratio is the raw quotient so "over target"
// rendering can tell 1.0 apart from 1.4.
type DayStats struct {
	Date string `json:"date"`
	Summary
	CalorieTarget float64 `json:"calorieTarget"`
	Percent       float64 `json:"percent"`
	Ratio         float64 `json:"ratio"`
}

// Averages holds per-day nutrition averages for a reporting window.
type Averages struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
}

// WeeklyDay is one bucket of the trailing-7-day report, keyed by the UTC
// date portion of createdAt.
type WeeklyDay struct {
	Date string `json:"date"`
	Summary
}

// WeeklyReport covers today plus the six prior days. DailyAverage divides by
// 7 regardless of how many days have data (empty days count as zero);
// TrackedDayAverage divides only by days that have at least one meal. The
// two conventions are deliberately distinct and not interchangeable.
type WeeklyReport struct {
	From              string      `json:"from"`
	To                string      `json:"to"`
	Days              []WeeklyDay `json:"days"`
	Totals            Summary     `json:"totals"`
	DaysTracked       int         `json:"daysTracked"`
	DailyAverage      Averages    `json:"dailyAverage"`
	TrackedDayAverage Averages    `json:"trackedDayAverage"`
}

// StatsService derives day/week summaries and the consecutive-day streak
// from raw records.
type StatsService struct {
	store store.MealStore
	loc   *time.Location
	now   func() time.Time
}

func NewStatsService(st store.MealStore) *StatsService {
	return &StatsService{store: st, loc: time.Local, now: time.Now}
}

// DayStats summarizes the meals of one local calendar day. The window is the
// local day converted to UTC bounds, matching how records were stamped.
func (s *StatsService) DayStats(ctx context.Context, day time.Time, calorieTarget float64) (*DayStats, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	end := start.Add(24*time.Hour - time.Millisecond)
	recs, err := s.store.GetByDateRange(ctx, store.FormatISO(start), store.FormatISO(end))
	if err != nil {
		return nil, err
	}
	out := &DayStats{
		Date:          start.Format("2006-01-02"),
		Summary:       Summarize(recs),
		CalorieTarget: calorieTarget,
	}
	if calorieTarget > 0 {
		out.Ratio = out.TotalCalories / calorieTarget
		out.Percent = out.Ratio
		if out.Percent > 1 {
			out.Percent = 1
		}
	}
	return out, nil
}

// Streak counts consecutive local calendar days with at least one meal,
// anchored at today, or at yesterday when nothing is logged yet today. A
// full day gap resets the streak to zero.
func (s *StatsService) Streak(ctx context.Context) (int, error) {
	dates, err := s.store.GetAllDates(ctx)
	if err != nil {
		return 0, err
	}
	days := make(map[string]struct{}, len(dates))
	for _, iso := range dates {
		t, err := store.ParseISO(iso)
		if err != nil {
			log.Printf("streak: skipping unparsable meal date %q: %v", iso, err)
			continue
		}
		days[t.In(s.loc).Format("2006-01-02")] = struct{}{}
	}

	cursor := s.now().In(s.loc)
	if _, ok := days[cursor.Format("2006-01-02")]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
		if _, ok := days[cursor.Format("2006-01-02")]; !ok {
			return 0, nil
		}
	}
	count := 0
	for {
		if _, ok := days[cursor.Format("2006-01-02")]; !ok {
			return count, nil
		}
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

// WeeklyReport partitions the trailing 7 UTC calendar days into one bucket
// per day and sums per-bucket and whole-window totals.
func (s *StatsService) WeeklyReport(ctx context.Context) (*WeeklyReport, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	first := today.AddDate(0, 0, -6)
	end := today.Add(24*time.Hour - time.Millisecond)

	recs, err := s.store.GetByDateRange(ctx, store.FormatISO(first), store.FormatISO(end))
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][]models.MealRecord, 7)
	for _, rec := range recs {
		if len(rec.CreatedAt) < 10 {
			continue
		}
		key := rec.CreatedAt[:10]
		buckets[key] = append(buckets[key], rec)
	}

	out := &WeeklyReport{
		From: first.Format("2006-01-02"),
		To:   today.Format("2006-01-02"),
		Days: make([]WeeklyDay, 0, 7),
	}
	for i := 0; i < 7; i++ {
		key := first.AddDate(0, 0, i).Format("2006-01-02")
		daySum := Summarize(buckets[key])
		out.Days = append(out.Days, WeeklyDay{Date: key, Summary: daySum})
		if daySum.Count > 0 {
			out.DaysTracked++
		}
	}
	out.Totals = Summarize(recs)
	out.DailyAverage = averages(out.Totals, 7)
	out.TrackedDayAverage = averages(out.Totals, out.DaysTracked)
	return out, nil
}

func averages(total Summary, days int) Averages {
	if days <= 0 {
		return Averages{}
	}
	n := float64(days)
	return Averages{
		Calories: total.TotalCalories / n,
		Protein:  total.Protein / n,
		Carbs:    total.Carbs / n,
		Fats:     total.Fats / n,
		Fiber:    total.Fiber / n,
	}
}
