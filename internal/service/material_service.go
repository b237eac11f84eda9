package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"recicla/internal/cache"
	"recicla/internal/logger"
	"recicla/internal/model"
	"recicla/internal/repository"
)

const (
	catalogCacheKey = "materials:catalog"
	catalogCacheTTL = 10 * time.Minute
)

func ptr(s string) *string { return &s }

// catalog is the fixed reference list seeded into the database. Existing
// entries are never modified by the seeder.
var catalog = []model.Material{
	{Name: "Papel", Description: ptr("Jornais, revistas, caixas de papelão limpas")},
	{Name: "Plástico", Description: ptr("Garrafas PET, embalagens plásticas, sacolas")},
	{Name: "Metal", Description: ptr("Latas de alumínio, latas de aço, ferragens")},
	{Name: "Vidro", Description: ptr("Garrafas, potes de vidro (sem tampa)")},
	{Name: "Orgânico", Description: ptr("Restos de alimentos, podas de jardim")},
	{Name: "Eletrônico", Description: ptr("Celulares, computadores, pilhas, baterias")},
}

// MaterialService handles the read-only material catalog.
type MaterialService interface {
	ListMaterials(ctx context.Context) ([]model.Material, error)
	SeedMaterials(ctx context.Context) (created int, err error)
}

type materialService struct {
	materialRepo repository.MaterialRepository
	cache        *cache.Client
}

// NewMaterialService creates a new material service.
func NewMaterialService(materialRepo repository.MaterialRepository, cache *cache.Client) MaterialService {
	return &materialService{materialRepo: materialRepo, cache: cache}
}

// ListMaterials returns the catalog ordered by name, read through the cache.
func (s *materialService) ListMaterials(ctx context.Context) ([]model.Material, error) {
	if data, _ := s.cache.Get(ctx, catalogCacheKey); data != nil {
		var cached []model.Material
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	materials, err := s.materialRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}

	if payload, err := json.Marshal(materials); err == nil {
		_ = s.cache.Set(ctx, catalogCacheKey, payload, catalogCacheTTL)
	}
	return materials, nil
}

// SeedMaterials upserts the fixed catalog: missing entries are created,
// existing ones are left untouched. Safe to call any number of times.
func (s *materialService) SeedMaterials(ctx context.Context) (int, error) {
	created := 0
	for _, entry := range catalog {
		material := entry
		wasCreated, err := s.materialRepo.UpsertByName(ctx, &material)
		if err != nil {
			return created, fmt.Errorf("seed material %q: %w", entry.Name, err)
		}
		if wasCreated {
			created++
		}
	}

	_ = s.cache.Delete(ctx, catalogCacheKey)
	logger.Info("material catalog seeded", zap.Int("created", created), zap.Int("total", len(catalog)))
	return created, nil
}
