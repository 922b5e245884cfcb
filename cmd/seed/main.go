package main

import (
	"context"
	"time"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/config"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/db"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/logger"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/repository"
	"github.com/joho/godotenv"
)

type sampleAd struct {
	category    string
	title       string
	description string
	location    string
	adType      model.AdType
	price       *uint
}

func uintPtr(v uint) *uint { return &v }

func main() {
	_ = godotenv.Load()
	logger.Init("development")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}
	conn, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}
	if err := conn.AutoMigrate(
		&model.Category{},
		&model.Ad{},
		&model.Conversation{},
		&model.Message{},
	); err != nil {
		logger.Fatal().Err(err).Msg("auto migrate failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	catRepo := repository.NewCategoryRepository(conn)
	adRepo := repository.NewAdRepository(conn)

	categories := map[string]string{
		"Electronics": "Phones, computers and gadgets",
		"Furniture":   "Tables, chairs and home furnishing",
		"Jobs":        "Job offers and positions wanted",
		"Pet Corner":  "Pets and pet accessories",
		"Events":      "Concerts, markets and meetups",
	}
	catIDs := map[string]uint64{}
	for name, desc := range categories {
		cat, err := catRepo.UpsertByName(ctx, name, desc)
		if err != nil {
			logger.Fatal().Err(err).Str("category", name).Msg("category upsert failed")
		}
		catIDs[name] = cat.ID
		logger.Info().Str("category", name).Uint64("id", cat.ID).Msg("category ready")
	}

	existing, err := adRepo.ListByOwner(ctx, "seed-user")
	if err != nil {
		logger.Fatal().Err(err).Msg("seed check failed")
	}
	if len(existing) > 0 {
		logger.Info().Int("ads", len(existing)).Msg("sample ads already present; skipping")
		return
	}

	samples := []sampleAd{
		{"Electronics", "Used laptop, good battery", "13-inch laptop, 16GB RAM, light scratches on the lid.", "Chennai", model.AdTypeSale, uintPtr(450)},
		{"Furniture", "Oak dining table", "Seats six, solid oak, minor wear.", "Coimbatore", model.AdTypeSale, uintPtr(120)},
		{"Jobs", "Weekend barista wanted", "Small cafe looking for weekend help, experience preferred.", "Chennai", model.AdTypeJob, nil},
		{"Pet Corner", "Kittens looking for a home", "Two playful kittens, litter trained.", "Madurai", model.AdTypePet, nil},
		{"Events", "Flea market next Saturday", "Monthly flea market at the old harbour.", "Chennai", model.AdTypeEvent, nil},
	}
	for _, s := range samples {
		ad := &model.Ad{
			OwnerUID:    "seed-user",
			Title:       s.title,
			Description: s.description,
			Location:    s.location,
			CategoryID:  catIDs[s.category],
			AdType:      s.adType,
			Price:       s.price,
			IsActive:    true,
		}
		if err := adRepo.Create(ctx, ad); err != nil {
			logger.Fatal().Err(err).Str("title", s.title).Msg("ad insert failed")
		}
		logger.Info().Uint64("id", ad.ID).Str("title", s.title).Msg("ad seeded")
	}

	logger.Info().Msg("seed completed")
}
