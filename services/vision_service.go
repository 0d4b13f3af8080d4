package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"foodvision/models"
)

// VisionService calls the remote vision endpoint that turns a meal photo
// into a structured nutrition estimate. The provider is an opaque black box;
// this layer only coerces numeric fields and defaults absent ones. When the
// provider returns no dish name, Rekognition labels fill it best-effort.
type VisionService struct {
	endpoint string
	apiKey   string
	client   *http.Client
	rek      *RekognitionService
}

func NewVisionService(endpoint, apiKey string, rek *RekognitionService) *VisionService {
	return &VisionService{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 30 * time.Second},
		rek:      rek,
	}
}

// visionResponse decodes loosely on purpose: providers have returned numbers
// as strings and lists as single strings, so every field is coerced.
type visionResponse struct {
	DishName               any `json:"dishName"`
	Name                   any `json:"name"`
	IngredientsDescription any `json:"ingredientsDescription"`
	NutritionSummary       any `json:"nutritionSummary"`
	CaloriesEstimate       any `json:"caloriesEstimate"`
	ProteinGrams           any `json:"proteinGrams"`
	CarbsGrams             any `json:"carbsGrams"`
	FatGrams               any `json:"fatGrams"`
	FiberGrams             any `json:"fiberGrams"`
	GoodPoints             any `json:"goodPoints"`
	BadPoints              any `json:"badPoints"`
}

// AnalyzeMeal sends a base64 image (raw or data-URI) to the vision endpoint
// and returns the parsed estimate.
func (s *VisionService) AnalyzeMeal(ctx context.Context, imageBase64 string) (*models.NutritionEstimate, error) {
	if s.endpoint == "" {
		return nil, errors.New("vision endpoint not configured")
	}

	payload, err := json.Marshal(map[string]string{"image": imageBase64})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vision payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call vision API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read vision response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision API error %d: %s", resp.StatusCode, string(body))
	}

	var vr visionResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("failed to parse vision JSON: %w", err)
	}

	est := &models.NutritionEstimate{
		DishName:               coerceString(vr.DishName),
		IngredientsDescription: coerceString(vr.IngredientsDescription),
		NutritionSummary:       coerceString(vr.NutritionSummary),
		CaloriesEstimate:       coerceFloat(vr.CaloriesEstimate),
		ProteinGrams:           coerceFloat(vr.ProteinGrams),
		CarbsGrams:             coerceFloat(vr.CarbsGrams),
		FatGrams:               coerceFloat(vr.FatGrams),
		FiberGrams:             coerceFloat(vr.FiberGrams),
		GoodPoints:             coerceStringList(vr.GoodPoints),
		BadPoints:              coerceStringList(vr.BadPoints),
	}
	if est.DishName == "" {
		est.DishName = coerceString(vr.Name)
	}
	if est.DishName == "" && s.rek != nil {
		if labels, err := s.rek.DetectDishLabels(ctx, imageBase64); err != nil {
			log.Printf("rekognition dish-name fallback failed: %v", err)
		} else if len(labels) > 0 {
			est.DishName = labels[0]
		}
	}
	if est.DishName == "" {
		est.DishName = "Scanned meal"
	}
	return est, nil
}

func coerceString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func coerceFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || f < 0 {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceStringList(v any) []string {
	switch list := v.(type) {
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(list); s != "" {
			return []string{s}
		}
	}
	return []string{}
}
