package service

import (
	"context"
	"strings"
	"time"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/repository"
)

type AdInput struct {
	Title              string
	Description        string
	Location           string
	ContactInfo        string
	ContactInfoVisible bool
	Price              *uint
	CategoryID         uint64
	AdType             model.AdType
	ImageURL           *string
	EventDate          *time.Time
	IsActive           *bool
}

type AdService interface {
	Create(ctx context.Context, ownerUID string, in AdInput) (*model.Ad, error)
	Update(ctx context.Context, id uint64, uid string, in AdInput) (*model.Ad, error)
	Get(ctx context.Context, id uint64, viewerUID string) (*model.Ad, error)
	List(ctx context.Context, f repository.AdFilter, limit, offset int) ([]model.Ad, int64, error)
	ListMine(ctx context.Context, uid string) ([]model.Ad, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

type adService struct {
	adRepo  repository.AdRepository
	catRepo repository.CategoryRepository
}

func NewAdService(adRepo repository.AdRepository, catRepo repository.CategoryRepository) AdService {
	return &adService{adRepo: adRepo, catRepo: catRepo}
}

func (s *adService) validate(ctx context.Context, in *AdInput) error {
	ve := &ValidationError{}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	if in.Title == "" || len(in.Title) > 255 {
		ve.add("title", "title is required and must be at most 255 characters")
	}
	if in.Description == "" {
		ve.add("description", "description is required")
	}
	if in.Location == "" {
		ve.add("location", "location is required")
	}
	if in.AdType == "" {
		in.AdType = model.AdTypeSale
	} else if !in.AdType.Valid() {
		ve.add("adType", "unknown ad type")
	}
	if in.CategoryID == 0 {
		ve.add("category", "category is required")
	} else if _, err := s.catRepo.FindByID(ctx, in.CategoryID); err != nil {
		if repository.IsNotFound(err) {
			ve.add("category", "unknown category")
		} else {
			return err
		}
	}
	return ve.orNil()
}

func (s *adService) Create(ctx context.Context, ownerUID string, in AdInput) (*model.Ad, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}
	ad := &model.Ad{
		OwnerUID:           ownerUID,
		Title:              in.Title,
		Description:        in.Description,
		Location:           in.Location,
		ContactInfo:        strings.TrimSpace(in.ContactInfo),
		ContactInfoVisible: in.ContactInfoVisible,
		Price:              in.Price,
		CategoryID:         in.CategoryID,
		AdType:             in.AdType,
		ImageURL:           in.ImageURL,
		EventDate:          in.EventDate,
		IsActive:           true,
	}
	if err := s.adRepo.Create(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

func (s *adService) Update(ctx context.Context, id uint64, uid string, in AdInput) (*model.Ad, error) {
	ad, err := s.adRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ad.OwnerUID != uid {
		return nil, ErrForbidden
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}
	ad.Title = in.Title
	ad.Description = in.Description
	ad.Location = in.Location
	ad.ContactInfo = strings.TrimSpace(in.ContactInfo)
	ad.ContactInfoVisible = in.ContactInfoVisible
	ad.Price = in.Price
	ad.CategoryID = in.CategoryID
	ad.AdType = in.AdType
	ad.ImageURL = in.ImageURL
	ad.EventDate = in.EventDate
	if in.IsActive != nil {
		ad.IsActive = *in.IsActive
	}
	if err := s.adRepo.Save(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// Get hides inactive ads from everyone but their owner.
func (s *adService) Get(ctx context.Context, id uint64, viewerUID string) (*model.Ad, error) {
	ad, err := s.adRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !ad.IsActive && ad.OwnerUID != viewerUID {
		return nil, ErrNotFound
	}
	return ad, nil
}

func (s *adService) List(ctx context.Context, f repository.AdFilter, limit, offset int) ([]model.Ad, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	f.Keyword = strings.TrimSpace(f.Keyword)
	f.Location = strings.TrimSpace(f.Location)
	return s.adRepo.ListActive(ctx, f, limit, offset)
}

func (s *adService) ListMine(ctx context.Context, uid string) ([]model.Ad, error) {
	return s.adRepo.ListByOwner(ctx, uid)
}

func (s *adService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.catRepo.List(ctx)
}
