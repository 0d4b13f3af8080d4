package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"foodvision/models"
)

// FileStore keeps the whole collection as one JSON array in one file, for
// environments without an embedded database. Every mutation rewrites the
// blob; a corrupt blob is reset to an empty collection (data loss is
// preferred over permanent unavailability).
type FileStore struct {
	mu   sync.Mutex
	path string
}

// OpenFile prepares a file-backed store at path. A missing file means an
// empty collection, not an error; an unreadable or corrupt one is repaired
// immediately so later reads cannot fail the same way.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the collection. Must be called with mu held.
func (s *FileStore) load() ([]models.MealRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []models.MealRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read meal file: %w", err)
	}
	var recs []models.MealRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		log.Printf("meal file %s is corrupt, resetting to empty collection: %v", s.path, err)
		if err := s.save([]models.MealRecord{}); err != nil {
			return nil, err
		}
		return []models.MealRecord{}, nil
	}
	for i := range recs {
		recs[i].GoodPoints = emptyIfNil(recs[i].GoodPoints)
		recs[i].BadPoints = emptyIfNil(recs[i].BadPoints)
	}
	return recs, nil
}

// save rewrites the blob atomically via a temp file and rename, so a crash
// mid-write cannot leave a half-written collection behind.
func (s *FileStore) save(recs []models.MealRecord) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encode meal file: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write meal file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace meal file: %w", err)
	}
	return nil
}

func (s *FileStore) Insert(ctx context.Context, rec models.MealRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range recs {
		if existing.ID == rec.ID {
			return ErrDuplicateID
		}
	}
	rec.GoodPoints = emptyIfNil(rec.GoodPoints)
	rec.BadPoints = emptyIfNil(rec.BadPoints)
	return s.save(append(recs, rec))
}

func (s *FileStore) Update(ctx context.Context, rec models.MealRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load()
	if err != nil {
		return err
	}
	for i := range recs {
		if recs[i].ID == rec.ID {
			// id and createdAt are immutable regardless of what the caller
			// put on the incoming record.
			rec.CreatedAt = recs[i].CreatedAt
			rec.GoodPoints = emptyIfNil(rec.GoodPoints)
			rec.BadPoints = emptyIfNil(rec.BadPoints)
			recs[i] = rec
			return s.save(recs)
		}
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load()
	if err != nil {
		return err
	}
	for i := range recs {
		if recs[i].ID == id {
			return s.save(append(recs[:i], recs[i+1:]...))
		}
	}
	return nil
}

func (s *FileStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save([]models.MealRecord{})
}

func (s *FileStore) GetByID(ctx context.Context, id string) (*models.MealRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range recs {
		if recs[i].ID == id {
			rec := recs[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *FileStore) GetAll(ctx context.Context) ([]models.MealRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load()
	if err != nil {
		return nil, err
	}
	sortNewestFirst(recs)
	return recs, nil
}

func (s *FileStore) GetRecent(ctx context.Context, limit int) ([]models.MealRecord, error) {
	recs, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit >= 0 && limit < len(recs) {
		recs = recs[:limit]
	}
	return recs, nil
}

func (s *FileStore) GetByDateRange(ctx context.Context, startISO, endISO string) ([]models.MealRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]models.MealRecord, 0, len(recs))
	for _, rec := range recs {
		if rec.CreatedAt >= startISO && rec.CreatedAt <= endISO {
			out = append(out, rec)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *FileStore) GetAllDates(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load()
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(recs))
	for _, rec := range recs {
		dates = append(dates, rec.CreatedAt)
	}
	return dates, nil
}

func (s *FileStore) Close() error { return nil }

func sortNewestFirst(recs []models.MealRecord) {
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt > recs[j].CreatedAt
	})
}
