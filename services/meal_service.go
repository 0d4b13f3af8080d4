package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"foodvision/models"
	"foodvision/store"
)

// MealService owns the meal lifecycle: record construction, full-record
// updates and deletion, plus realtime notifications to connected clients.
type MealService struct {
	store store.MealStore
	hub   *RealtimeHub
	now   func() time.Time
}

func NewMealService(st store.MealStore, hub *RealtimeHub) *MealService {
	return &MealService{store: st, hub: hub, now: time.Now}
}

// MealInput carries every mutable field of a meal record.
type MealInput struct {
	Name                   string
	PhotoURI               string
	IngredientsDescription string
	Notes                  string
	NutritionSummary       string
	CaloriesEstimate       float64
	ProteinGrams           float64
	CarbsGrams             float64
	FatGrams               float64
	FiberGrams             float64
	GoodPoints             []string
	BadPoints              []string
	DateTime               string
}

// LogMeal creates and stores a new record. The id and createdAt are assigned
// here, exactly once; dateTime defaults to createdAt when the caller leaves
// it empty. Manual entries get a placeholder nutrition summary.
func (s *MealService) LogMeal(ctx context.Context, in MealInput, source models.MealSource) (*models.MealRecord, error) {
	now := store.FormatISO(s.now())
	rec := models.MealRecord{
		ID:                     uuid.NewString(),
		CreatedAt:              now,
		DateTime:               in.DateTime,
		Name:                   in.Name,
		PhotoURI:               in.PhotoURI,
		IngredientsDescription: in.IngredientsDescription,
		Notes:                  in.Notes,
		NutritionSummary:       in.NutritionSummary,
		CaloriesEstimate:       in.CaloriesEstimate,
		ProteinGrams:           in.ProteinGrams,
		CarbsGrams:             in.CarbsGrams,
		FatGrams:               in.FatGrams,
		FiberGrams:             in.FiberGrams,
		GoodPoints:             in.GoodPoints,
		BadPoints:              in.BadPoints,
		Source:                 source,
	}
	if rec.DateTime == "" {
		rec.DateTime = now
	}
	if rec.GoodPoints == nil {
		rec.GoodPoints = []string{}
	}
	if rec.BadPoints == nil {
		rec.BadPoints = []string{}
	}
	if rec.Source == models.MealSourceManual && rec.NutritionSummary == "" {
		rec.NutritionSummary = "Added manually"
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		return nil, err
	}
	s.broadcast("meal.created", &rec)
	return &rec, nil
}

// UpdateMeal replaces every mutable field of the record with id. Returns
// (nil, nil) when the record does not exist.
func (s *MealService) UpdateMeal(ctx context.Context, id string, in MealInput) (*models.MealRecord, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	rec := *existing
	rec.Name = in.Name
	rec.PhotoURI = in.PhotoURI
	rec.IngredientsDescription = in.IngredientsDescription
	rec.Notes = in.Notes
	rec.NutritionSummary = in.NutritionSummary
	rec.CaloriesEstimate = in.CaloriesEstimate
	rec.ProteinGrams = in.ProteinGrams
	rec.CarbsGrams = in.CarbsGrams
	rec.FatGrams = in.FatGrams
	rec.FiberGrams = in.FiberGrams
	rec.GoodPoints = in.GoodPoints
	rec.BadPoints = in.BadPoints
	if rec.GoodPoints == nil {
		rec.GoodPoints = []string{}
	}
	if rec.BadPoints == nil {
		rec.BadPoints = []string{}
	}
	if in.DateTime != "" {
		rec.DateTime = in.DateTime
	}
	if err := s.store.Update(ctx, rec); err != nil {
		return nil, err
	}
	s.broadcast("meal.updated", &rec)
	return &rec, nil
}

func (s *MealService) DeleteMeal(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.broadcastID("meal.deleted", id)
	return nil
}

func (s *MealService) DeleteAllMeals(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return err
	}
	s.broadcastID("meal.cleared", "")
	return nil
}

func (s *MealService) GetMeal(ctx context.Context, id string) (*models.MealRecord, error) {
	return s.store.GetByID(ctx, id)
}

func (s *MealService) ListMeals(ctx context.Context) ([]models.MealRecord, error) {
	return s.store.GetAll(ctx)
}

func (s *MealService) ListRecentMeals(ctx context.Context, limit int) ([]models.MealRecord, error) {
	if limit <= 0 {
		limit = 3
	}
	return s.store.GetRecent(ctx, limit)
}

// ListMealsByDateRange answers calendar queries. Bounds are inclusive ISO
// strings in the same UTC representation records are stored with.
func (s *MealService) ListMealsByDateRange(ctx context.Context, startISO, endISO string) ([]models.MealRecord, error) {
	return s.store.GetByDateRange(ctx, startISO, endISO)
}

func (s *MealService) broadcast(event string, rec *models.MealRecord) {
	if s.hub != nil {
		s.hub.Broadcast(MealEvent{Type: event, Meal: rec})
	}
}

func (s *MealService) broadcastID(event, id string) {
	if s.hub != nil {
		s.hub.Broadcast(MealEvent{Type: event, MealID: id})
	}
}
