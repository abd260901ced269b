package services

import (
	"context"
	"errors"
	"fmt"

	"inventario/internal/models"
	"inventario/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo     repositories.CategoryRepository
	products repositories.ProductRepository
	tx       repositories.Transactor
	events   EventPublisher
}

// NewCategoryService creates a new CategoryService. events may be nil.
func NewCategoryService(repo repositories.CategoryRepository, products repositories.ProductRepository, tx repositories.Transactor, events EventPublisher) *CategoryService {
	return &CategoryService{
		repo:     repo,
		products: products,
		tx:       tx,
		events:   events,
	}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetAll(ctx)
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateCategory validates the input and stores a new category. A name that
// is already taken fails with repositories.ErrDuplicateKey.
func (s *CategoryService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if err := ValidateCategoryInput(&in); err != nil {
		return nil, err
	}

	category := &models.Category{Name: in.Name, Description: in.Description}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	notify(ctx, s.events, EventCategoryCreated, category.ID)
	return category, nil
}

// UpdateCategory replaces the mutable fields of an existing category.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	if err := ValidateCategoryInput(&in); err != nil {
		return nil, err
	}

	var category *models.Category
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		category, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		category.Name = in.Name
		category.Description = in.Description
		return s.repo.Update(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	notify(ctx, s.events, EventCategoryUpdated, category.ID)
	return category, nil
}

// DeleteCategory removes a category that no product references.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		count, err := s.products.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("category %d is used by %d products: %w", id, count, ErrHasDependents)
		}
		return s.repo.Delete(ctx, id)
	})
	if errors.Is(err, repositories.ErrForeignKey) {
		// A product was attached between the count and the delete.
		return fmt.Errorf("category %d: %w", id, ErrHasDependents)
	}
	if err != nil {
		return err
	}
	notify(ctx, s.events, EventCategoryDeleted, id)
	return nil
}
