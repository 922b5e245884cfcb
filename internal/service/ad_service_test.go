package service

import (
	"context"
	"testing"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdService(f *fixture) AdService {
	return NewAdService(f.adRepo, f.catRepo)
}

func TestAdCreateValidation(t *testing.T) {
	f := newFixture(t)
	svc := newAdService(f)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", AdInput{})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "title")
	assert.Contains(t, ve.Fields, "description")
	assert.Contains(t, ve.Fields, "location")
	assert.Contains(t, ve.Fields, "category")

	_, err = svc.Create(ctx, "alice", AdInput{
		Title:       "Bike",
		Description: "A bike",
		Location:    "Chennai",
		CategoryID:  999,
	})
	ve, ok = AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "category")
}

func TestAdCreateDefaultsToSaleType(t *testing.T) {
	f := newFixture(t)
	svc := newAdService(f)
	ctx := context.Background()
	cat := f.createCategory(t, "Electronics")

	ad, err := svc.Create(ctx, "alice", AdInput{
		Title:       "Bike",
		Description: "A bike",
		Location:    "Chennai",
		CategoryID:  cat.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AdTypeSale, ad.AdType)
	assert.True(t, ad.IsActive)
	assert.Equal(t, "alice", ad.OwnerUID)
}

func TestAdUpdateOwnerOnly(t *testing.T) {
	f := newFixture(t)
	svc := newAdService(f)
	ctx := context.Background()
	cat := f.createCategory(t, "Electronics")
	ad := f.createAd(t, "alice", "Bike", true)

	in := AdInput{
		Title:       "Bike, price dropped",
		Description: "Still a bike",
		Location:    "Chennai",
		CategoryID:  cat.ID,
	}
	_, err := svc.Update(ctx, ad.ID, "bob", in)
	assert.ErrorIs(t, err, ErrForbidden)

	inactive := false
	in.IsActive = &inactive
	updated, err := svc.Update(ctx, ad.ID, "alice", in)
	require.NoError(t, err)
	assert.Equal(t, "Bike, price dropped", updated.Title)
	assert.False(t, updated.IsActive)

	_, err = svc.Update(ctx, 999, "alice", in)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdGetHidesInactiveFromNonOwners(t *testing.T) {
	f := newFixture(t)
	svc := newAdService(f)
	ctx := context.Background()
	ad := f.createAd(t, "alice", "Sold bike", false)

	_, err := svc.Get(ctx, ad.ID, "bob")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Get(ctx, ad.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, ad.ID, got.ID)
}

func TestAdListFilters(t *testing.T) {
	f := newFixture(t)
	svc := newAdService(f)
	ctx := context.Background()

	bike := f.createAd(t, "alice", "Mountain bike", true)
	f.createAd(t, "alice", "Office chair", true)
	f.createAd(t, "alice", "Hidden bike", false)

	ads, total, err := svc.List(ctx, repository.AdFilter{Keyword: "bike"}, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, ads, 1)
	assert.Equal(t, bike.ID, ads[0].ID)

	// keyword also matches descriptions
	ads, _, err = svc.List(ctx, repository.AdFilter{Keyword: "description of"}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, ads, 2)

	ads, total, err = svc.List(ctx, repository.AdFilter{}, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, ads, 2)
}

func TestContactVisibility(t *testing.T) {
	ad := &model.Ad{OwnerUID: "alice", ContactInfo: "alice@example.com"}
	assert.True(t, ad.ContactVisibleTo("alice"))
	assert.False(t, ad.ContactVisibleTo("bob"))

	ad.ContactInfoVisible = true
	assert.True(t, ad.ContactVisibleTo("bob"))
}
