package repository

import (
	"context"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uint64) (*model.Category, error)
	UpsertByName(ctx context.Context, name, description string) (*model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint64) (*model.Category, error) {
	var cat model.Category
	if err := r.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepository) UpsertByName(ctx context.Context, name, description string) (*model.Category, error) {
	cat := model.Category{Name: name, Description: description}
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		FirstOrCreate(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}
