package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/logger"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"google.golang.org/genai"
)

// Assistant answers buyer questions about an ad using Gemini, grounded
// in the ad's own fields.
type Assistant struct {
	model string
}

func NewAssistant(model string) *Assistant {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Assistant{model: model}
}

const systemPrompt = `You are a helpful assistant for a classifieds marketplace.
Answer the buyer's question concisely using only the ad data provided.
If the question cannot be answered from the ad, say so and suggest
contacting the seller through the site's messaging.`

func (a *Assistant) AskAd(ctx context.Context, ad *model.Ad, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errors.New("question is required")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return "", err
	}

	price := "not listed"
	if ad.Price != nil {
		price = fmt.Sprintf("%d", *ad.Price)
	}
	adData := fmt.Sprintf("Ad data:\nTitle: %s\nDescription: %s\nPrice: %s\nLocation: %s\nType: %s",
		ad.Title, ad.Description, price, ad.Location, ad.AdType)

	parts := []*genai.Part{
		genai.NewPartFromText(systemPrompt),
		genai.NewPartFromText(adData),
		genai.NewPartFromText("Question: " + question),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	temp := float32(0.5)
	cfg := &genai.GenerateContentConfig{
		Temperature: &temp,
	}

	start := time.Now()
	res, err := client.Models.GenerateContent(ctx, a.model, contents, cfg)
	if err != nil {
		logger.Error().Err(err).Str("model", a.model).Uint64("ad", ad.ID).Msg("gemini generate failed")
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	answer := strings.TrimSpace(res.Text())
	logger.Info().Str("model", a.model).Uint64("ad", ad.ID).
		Int64("ms", time.Since(start).Milliseconds()).Msg("gemini answer")
	if answer == "" {
		return "", errors.New("empty answer from model")
	}
	return answer, nil
}
