package service

import (
	"context"
	"testing"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOrGetCreatesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ad := f.createAd(t, "alice", "Bike", true)

	first, err := f.convSvc.StartOrGet(ctx, ad.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", first.OwnerUID)
	assert.Equal(t, "bob", first.BuyerUID)

	second, err := f.convSvc.StartOrGet(ctx, ad.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, f.db.Model(&model.Conversation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStartOrGetOwnerGetsSignalNotConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ad := f.createAd(t, "alice", "Bike", true)

	_, err := f.convSvc.StartOrGet(ctx, ad.ID, "alice")
	assert.ErrorIs(t, err, ErrIsOwner)

	var count int64
	require.NoError(t, f.db.Model(&model.Conversation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStartOrGetMissingOrInactiveAd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.convSvc.StartOrGet(ctx, 999, "bob")
	assert.ErrorIs(t, err, ErrNotFound)

	inactive := f.createAd(t, "alice", "Sold bike", false)
	_, err = f.convSvc.StartOrGet(ctx, inactive.ID, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStartOrGetStampsOwnerAtCreation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ad := f.createAd(t, "alice", "Bike", true)

	cv, err := f.convSvc.StartOrGet(ctx, ad.ID, "bob")
	require.NoError(t, err)

	// the conversation keeps the owner it was created with even if the
	// ad later changes hands
	ad.OwnerUID = "mallory"
	require.NoError(t, f.adRepo.Save(ctx, ad))

	again, err := f.convRepo.FindByID(ctx, cv.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", again.OwnerUID)
}

func TestListByUserSummaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bike := f.createAd(t, "alice", "Bike", true)
	sofa := f.createAd(t, "alice", "Sofa", true)

	older, err := f.convSvc.StartOrGet(ctx, bike.ID, "bob")
	require.NoError(t, err)
	newer, err := f.convSvc.StartOrGet(ctx, sofa.ID, "bob")
	require.NoError(t, err)

	_, err = f.msgSvc.Append(ctx, older.ID, "bob", "Is this available?")
	require.NoError(t, err)

	summaries, err := f.convSvc.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// newest conversation first
	assert.Equal(t, newer.ID, summaries[0].Conversation.ID)
	assert.Equal(t, "Sofa", summaries[0].AdTitle)
	assert.Equal(t, "Bob", summaries[0].CounterpartName)
	assert.False(t, summaries[0].Unread)

	assert.Equal(t, older.ID, summaries[1].Conversation.ID)
	assert.Equal(t, "Bike", summaries[1].AdTitle)
	assert.True(t, summaries[1].Unread)

	// bob sees alice on the other side and nothing unread to him
	summaries, err = f.convSvc.ListByUser(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Alice", summaries[0].CounterpartName)
	assert.False(t, summaries[1].Unread)
}

func TestListByUserFallsBackToUIDForUnknownNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ad := f.createAd(t, "alice", "Bike", true)

	_, err := f.convSvc.StartOrGet(ctx, ad.ID, "stranger-uid")
	require.NoError(t, err)

	summaries, err := f.convSvc.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "stranger-uid", summaries[0].CounterpartName)
}

func TestDetailMarksReadAndReportsWatermark(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ad := f.createAd(t, "alice", "Bike", true)

	cv, err := f.convSvc.StartOrGet(ctx, ad.ID, "bob")
	require.NoError(t, err)
	m1, err := f.msgSvc.Append(ctx, cv.ID, "bob", "Is this available?")
	require.NoError(t, err)

	detail, err := f.convSvc.Detail(ctx, cv.ID, "alice")
	require.NoError(t, err)
	require.Len(t, detail.Messages, 1)
	assert.True(t, detail.Messages[0].IsRead)
	assert.Equal(t, "Bike", detail.AdTitle)
	assert.Equal(t, "Bob", detail.CounterpartName)
	require.NotNil(t, detail.Watermark)
	assert.True(t, detail.Watermark.Equal(m1.SentAt))

	// refetching the summary list no longer reports unread
	summaries, err := f.convSvc.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.False(t, summaries[0].Unread)
}

func TestDetailForbiddenForThirdParty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ad := f.createAd(t, "alice", "Bike", true)
	cv, err := f.convSvc.StartOrGet(ctx, ad.ID, "bob")
	require.NoError(t, err)

	_, err = f.convSvc.Detail(ctx, cv.ID, "carol")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.convSvc.Detail(ctx, 999, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByAdFiltersNonOwners(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ad := f.createAd(t, "alice", "Bike", true)
	_, err := f.convSvc.StartOrGet(ctx, ad.ID, "bob")
	require.NoError(t, err)
	_, err = f.convSvc.StartOrGet(ctx, ad.ID, "carol")
	require.NoError(t, err)

	convs, err := f.convSvc.ListByAd(ctx, ad.ID, "alice")
	require.NoError(t, err)
	assert.Len(t, convs, 2)

	// not the owner: empty, not an error
	convs, err = f.convSvc.ListByAd(ctx, ad.ID, "bob")
	require.NoError(t, err)
	assert.Empty(t, convs)

	_, err = f.convSvc.ListByAd(ctx, 999, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}
