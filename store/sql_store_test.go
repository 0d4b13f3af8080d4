package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"foodvision/models"
)

// A corrupt JSON column must degrade that record's list to empty without
// hiding the rest of the collection.
func TestCorruptPointsColumnDoesNotAbortList(t *testing.T) {
	s, err := OpenSQL("sqlite", filepath.Join(t.TempDir(), "meals.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, sampleMeal("fine", "2024-01-01T08:00:00.000Z", 500)))
	require.NoError(t, s.Insert(ctx, sampleMeal("broken", "2024-01-02T08:00:00.000Z", 700)))

	require.NoError(t, s.db.Exec(
		"UPDATE meal_records SET good_points = 'not-json' WHERE id = ?", "broken").Error)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, "broken", all[0].ID)
	assert.Equal(t, []string{}, all[0].GoodPoints)
	assert.Equal(t, []string{"a bit salty"}, all[0].BadPoints, "other columns untouched")

	assert.Equal(t, "fine", all[1].ID)
	assert.Equal(t, []string{"rich in omega-3", "high protein"}, all[1].GoodPoints)
}

// A database created by an older app version lacks the later-added optional
// columns; opening the store must grow them additively and leave the
// existing rows readable with defaults.
func TestSchemaEvolutionFromLegacyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meals.db")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`
		CREATE TABLE meal_records (
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
		)`).Error)
	require.NoError(t, db.Exec(`
		INSERT INTO meal_records (id, created_at, name, calories_estimate)
		VALUES ('legacy-1', '2023-06-01T12:00:00.000Z', 'Old pasta', 650)`).Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	s, err := OpenSQL("sqlite", path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	got, err := s.GetByID(ctx, "legacy-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Old pasta", got.Name)
	assert.Equal(t, 650.0, got.CaloriesEstimate)
	assert.Equal(t, "", got.Notes)
	assert.Equal(t, 0.0, got.FiberGrams)
	assert.Equal(t, models.MealSourceScanned, got.Source, "source column default")

	// the grown columns are fully writable
	rec := sampleMeal("new-1", "2024-01-01T08:00:00.000Z", 500)
	require.NoError(t, s.Insert(ctx, rec))
	roundTrip, err := s.GetByID(ctx, "new-1")
	require.NoError(t, err)
	assert.Equal(t, rec, *roundTrip)
}

func TestOpenSQLIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meals.db")

	s1, err := OpenSQL("sqlite", path)
	require.NoError(t, err)
	require.NoError(t, s1.Insert(context.Background(), sampleMeal("m-1", "2024-01-01T08:00:00.000Z", 500)))
	require.NoError(t, s1.Close())

	s2, err := OpenSQL("sqlite", path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetByID(context.Background(), "m-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 500.0, got.CaloriesEstimate)
}

func TestOpenSQLUnknownDriver(t *testing.T) {
	_, err := OpenSQL("oracle", "whatever")
	require.Error(t, err)
}
