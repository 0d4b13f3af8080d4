package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"foodvision/models"
)

// mealRow is the persisted shape of a meal record. The point lists live in
// JSON-text columns; conversion to and from models.MealRecord happens here
// so a corrupt column degrades to an empty list instead of poisoning reads.
type mealRow struct {
	ID                     string  `gorm:"column:id;primaryKey"`
	CreatedAt              string  `gorm:"column:created_at;<-:create"`
	DateTime               string  `gorm:"column:date_time"`
	Name                   string  `gorm:"column:name"`
	PhotoURI               string  `gorm:"column:photo_uri"`
	IngredientsDescription string  `gorm:"column:ingredients_description"`
	Notes                  string  `gorm:"column:notes"`
	NutritionSummary       string  `gorm:"column:nutrition_summary"`
	CaloriesEstimate       float64 `gorm:"column:calories_estimate"`
	ProteinGrams           float64 `gorm:"column:protein_grams"`
	CarbsGrams             float64 `gorm:"column:carbs_grams"`
	FatGrams               float64 `gorm:"column:fat_grams"`
	FiberGrams             float64 `gorm:"column:fiber_grams"`
	GoodPointsJSON         string  `gorm:"column:good_points"`
	BadPointsJSON          string  `gorm:"column:bad_points"`
	Source                 string  `gorm:"column:source"`
}

func (mealRow) TableName() string { return "meal_records" }

// baseSchema is the original table layout. Columns added in later app
// versions are grown additively by ensureColumn so existing databases keep
// working without a destructive migration.
const baseSchema = `
CREATE TABLE IF NOT EXISTS meal_records (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	photo_uri TEXT NOT NULL DEFAULT '',
	ingredients_description TEXT NOT NULL DEFAULT '',
	nutrition_summary TEXT NOT NULL DEFAULT '',
	calories_estimate REAL NOT NULL DEFAULT 0,
	protein_grams REAL NOT NULL DEFAULT 0,
	carbs_grams REAL NOT NULL DEFAULT 0,
	fat_grams REAL NOT NULL DEFAULT 0,
	good_points TEXT NOT NULL DEFAULT '[]',
	bad_points TEXT NOT NULL DEFAULT '[]'
)`

// SQLStore persists meal records through GORM, against embedded SQLite by
// default or Postgres for server deployments.
type SQLStore struct {
	db *gorm.DB
}

// OpenSQL opens (creating if needed) the meal table and applies additive
// schema evolution. Safe to call repeatedly; a failed column addition is
// fatal because the read/write contract cannot be guaranteed without it.
func OpenSQL(driver, dsn string) (*SQLStore, error) {
	var dial gorm.Dialector
	switch driver {
	case "postgres":
		dial = postgres.Open(dsn)
	case "", "sqlite":
		dial = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	db, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}

	s := &SQLStore{db: db}
	if err := db.Exec(baseSchema).Error; err != nil {
		return nil, fmt.Errorf("create meal table: %w", err)
	}
	for _, col := range []struct {
		name, sqlType, def string
	}{
		{"date_time", "TEXT", "''"},
		{"notes", "TEXT", "''"},
		{"fiber_grams", "REAL", "0"},
		{"source", "TEXT", "'scanned'"},
	} {
		if err := s.ensureColumn(col.name, col.sqlType, col.def); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ensureColumn adds a column if the live table does not have it yet.
// Each addition is independent, so order does not matter.
func (s *SQLStore) ensureColumn(name, sqlType, defaultLiteral string) error {
	if s.db.Migrator().HasColumn(&mealRow{}, name) {
		return nil
	}
	stmt := fmt.Sprintf("ALTER TABLE meal_records ADD COLUMN %s %s", name, sqlType)
	if defaultLiteral != "" {
		stmt += " DEFAULT " + defaultLiteral
	}
	if err := s.db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("add column %s: %w", name, err)
	}
	return nil
}

func (s *SQLStore) Insert(ctx context.Context, rec models.MealRecord) error {
	row, err := toRow(rec)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateID
		}
		return fmt.Errorf("insert meal %s: %w", rec.ID, err)
	}
	return nil
}

func (s *SQLStore) Update(ctx context.Context, rec models.MealRecord) error {
	row, err := toRow(rec)
	if err != nil {
		return err
	}
	// Select("*") forces zero values through; id and created_at stay as
	// written at insert time. Zero matched rows is deliberately not an error.
	res := s.db.WithContext(ctx).
		Model(&mealRow{}).
		Where("id = ?", rec.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(row)
	if res.Error != nil {
		return fmt.Errorf("update meal %s: %w", rec.ID, res.Error)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&mealRow{}).Error; err != nil {
		return fmt.Errorf("delete meal %s: %w", id, err)
	}
	return nil
}

func (s *SQLStore) DeleteAll(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec("DELETE FROM meal_records").Error; err != nil {
		return fmt.Errorf("delete all meals: %w", err)
	}
	return nil
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (*models.MealRecord, error) {
	var row mealRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal %s: %w", id, err)
	}
	rec := fromRow(row)
	return &rec, nil
}

func (s *SQLStore) GetAll(ctx context.Context) ([]models.MealRecord, error) {
	var rows []mealRow
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return fromRows(rows), nil
}

func (s *SQLStore) GetRecent(ctx context.Context, limit int) ([]models.MealRecord, error) {
	var rows []mealRow
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list recent meals: %w", err)
	}
	return fromRows(rows), nil
}

func (s *SQLStore) GetByDateRange(ctx context.Context, startISO, endISO string) ([]models.MealRecord, error) {
	var rows []mealRow
	err := s.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", startISO, endISO).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list meals in range: %w", err)
	}
	return fromRows(rows), nil
}

func (s *SQLStore) GetAllDates(ctx context.Context) ([]string, error) {
	var dates []string
	if err := s.db.WithContext(ctx).Model(&mealRow{}).Pluck("created_at", &dates).Error; err != nil {
		return nil, fmt.Errorf("list meal dates: %w", err)
	}
	return dates, nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRow(rec models.MealRecord) (mealRow, error) {
	good, err := json.Marshal(emptyIfNil(rec.GoodPoints))
	if err != nil {
		return mealRow{}, fmt.Errorf("encode good points for %s: %w", rec.ID, err)
	}
	bad, err := json.Marshal(emptyIfNil(rec.BadPoints))
	if err != nil {
		return mealRow{}, fmt.Errorf("encode bad points for %s: %w", rec.ID, err)
	}
	return mealRow{
		ID:                     rec.ID,
		CreatedAt:              rec.CreatedAt,
		DateTime:               rec.DateTime,
		Name:                   rec.Name,
		PhotoURI:               rec.PhotoURI,
		IngredientsDescription: rec.IngredientsDescription,
		Notes:                  rec.Notes,
		NutritionSummary:       rec.NutritionSummary,
		CaloriesEstimate:       rec.CaloriesEstimate,
		ProteinGrams:           rec.ProteinGrams,
		CarbsGrams:             rec.CarbsGrams,
		FatGrams:               rec.FatGrams,
		FiberGrams:             rec.FiberGrams,
		GoodPointsJSON:         string(good),
		BadPointsJSON:          string(bad),
		Source:                 string(rec.Source),
	}, nil
}

func fromRow(row mealRow) models.MealRecord {
	return models.MealRecord{
		ID:                     row.ID,
		CreatedAt:              row.CreatedAt,
		DateTime:               row.DateTime,
		Name:                   row.Name,
		PhotoURI:               row.PhotoURI,
		IngredientsDescription: row.IngredientsDescription,
		Notes:                  row.Notes,
		NutritionSummary:       row.NutritionSummary,
		CaloriesEstimate:       row.CaloriesEstimate,
		ProteinGrams:           row.ProteinGrams,
		CarbsGrams:             row.CarbsGrams,
		FatGrams:               row.FatGrams,
		FiberGrams:             row.FiberGrams,
		GoodPoints:             decodePoints(row.GoodPointsJSON, row.ID, "good_points"),
		BadPoints:              decodePoints(row.BadPointsJSON, row.ID, "bad_points"),
		Source:                 models.MealSource(row.Source),
	}
}

func fromRows(rows []mealRow) []models.MealRecord {
	out := make([]models.MealRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out
}

// decodePoints tolerates corrupt column data: one bad record must not hide
// the rest of a list, so it degrades to an empty slice and logs the id.
func decodePoints(raw, id, field string) []string {
	if raw == "" {
		return []string{}
	}
	var pts []string
	if err := json.Unmarshal([]byte(raw), &pts); err != nil {
		log.Printf("meal %s: corrupt %s JSON, substituting empty list: %v", id, field, err)
		return []string{}
	}
	if pts == nil {
		return []string{}
	}
	return pts
}

func emptyIfNil(pts []string) []string {
	if pts == nil {
		return []string{}
	}
	return pts
}
