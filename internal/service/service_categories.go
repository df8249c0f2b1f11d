package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/models"
)

type categoryService struct {
	categories store.EntityStore
	envelope   *envelopeStamper

	logger *logger.Logger
}

func NewCategoryService(categories store.EntityStore, envelope *envelopeStamper, logger *logger.Logger) CategoryService {
	return &categoryService{
		categories: categories,
		envelope:   envelope,
		logger:     logger,
	}
}

func (c *categoryService) Create(ctx context.Context, category models.Category) (models.Category, error) {
	if strings.TrimSpace(category.Name) == "" {
		return models.Category{}, ErrEmptyCategoryName
	}

	category.ID = ""
	category.DeletedAt = nil
	if err := c.envelope.stamp(ctx, category.Meta()); err != nil {
		return models.Category{}, err
	}

	if err := c.categories.BulkUpsert(ctx, []models.Record{&category}); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (c *categoryService) List(ctx context.Context) ([]models.Category, error) {
	records, err := c.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(records))
	for _, rec := range records {
		category, ok := rec.(*models.Category)
		if !ok || category.Deleted() {
			continue
		}
		categories = append(categories, *category)
	}
	return categories, nil
}
