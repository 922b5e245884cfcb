package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"gorm.io/gorm"
)

// AdFilter narrows ListActive. Zero values mean "no constraint".
type AdFilter struct {
	Keyword    string
	CategoryID uint64
	Location   string
	MinPrice   *uint
	MaxPrice   *uint
	EventDate  *time.Time
	AdType     model.AdType
}

type AdRepository interface {
	Create(ctx context.Context, ad *model.Ad) error
	Save(ctx context.Context, ad *model.Ad) error
	FindByID(ctx context.Context, id uint64) (*model.Ad, error)
	FindByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Ad, error)
	ListActive(ctx context.Context, f AdFilter, limit, offset int) ([]model.Ad, int64, error)
	ListByOwner(ctx context.Context, ownerUID string) ([]model.Ad, error)
}

type adRepository struct {
	db *gorm.DB
}

func NewAdRepository(db *gorm.DB) AdRepository {
	return &adRepository{db: db}
}

func (r *adRepository) Create(ctx context.Context, ad *model.Ad) error {
	return r.db.WithContext(ctx).Create(ad).Error
}

func (r *adRepository) Save(ctx context.Context, ad *model.Ad) error {
	return r.db.WithContext(ctx).Save(ad).Error
}

func (r *adRepository) FindByID(ctx context.Context, id uint64) (*model.Ad, error) {
	var ad model.Ad
	if err := r.db.WithContext(ctx).First(&ad, id).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *adRepository) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Ad, error) {
	byID := make(map[uint64]model.Ad, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	var ads []model.Ad
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ads).Error; err != nil {
		return nil, err
	}
	for _, ad := range ads {
		byID[ad.ID] = ad
	}
	return byID, nil
}

func (r *adRepository) ListActive(ctx context.Context, f AdFilter, limit, offset int) ([]model.Ad, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Ad{}).Where("is_active = ?", true)
	if f.Keyword != "" {
		kw := "%" + f.Keyword + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", kw, kw)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Location != "" {
		q = q.Where("location LIKE ?", "%"+f.Location+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.EventDate != nil {
		q = q.Where("event_date = ?", *f.EventDate)
	}
	if f.AdType != "" {
		q = q.Where("ad_type = ?", f.AdType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ads []model.Ad
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&ads).Error; err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

func (r *adRepository) ListByOwner(ctx context.Context, ownerUID string) ([]model.Ad, error) {
	var ads []model.Ad
	if err := r.db.WithContext(ctx).
		Where("owner_uid = ?", ownerUID).
		Order("created_at DESC, id DESC").
		Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

// IsNotFound reports whether err is GORM's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
