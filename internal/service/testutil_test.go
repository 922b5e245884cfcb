package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubDirectory map[string]string

func (d stubDirectory) DisplayName(_ context.Context, uid string) (string, error) {
	if name, ok := d[uid]; ok {
		return name, nil
	}
	return "", errors.New("unknown user")
}

type fixture struct {
	db       *gorm.DB
	adRepo   repository.AdRepository
	catRepo  repository.CategoryRepository
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	convSvc  ConversationService
	msgSvc   *messageService
	clock    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Ad{},
		&model.Conversation{},
		&model.Message{},
	))

	f := &fixture{
		db:       db,
		adRepo:   repository.NewAdRepository(db),
		catRepo:  repository.NewCategoryRepository(db),
		convRepo: repository.NewConversationRepository(db),
		msgRepo:  repository.NewMessageRepository(db),
		clock:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.convSvc = NewConversationService(f.convRepo, f.msgRepo, f.adRepo, stubDirectory{
		"alice": "Alice",
		"bob":   "Bob",
	})
	f.msgSvc = &messageService{msgRepo: f.msgRepo, convRepo: f.convRepo, now: f.now}
	return f
}

// now hands out strictly increasing timestamps so every append and edit
// lands at a distinct instant.
func (f *fixture) now() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fixture) createAd(t *testing.T, owner, title string, active bool) *model.Ad {
	t.Helper()
	ad := &model.Ad{
		OwnerUID:    owner,
		Title:       title,
		Description: "description of " + title,
		Location:    "Chennai",
		CategoryID:  1,
		AdType:      model.AdTypeSale,
		IsActive:    active,
	}
	require.NoError(t, f.adRepo.Create(context.Background(), ad))
	return ad
}

func (f *fixture) createCategory(t *testing.T, name string) *model.Category {
	t.Helper()
	cat, err := f.catRepo.UpsertByName(context.Background(), name, "")
	require.NoError(t, err)
	return cat
}
