package service

import (
	"context"
	"testing"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) startConversation(t *testing.T) *model.Conversation {
	t.Helper()
	ad := f.createAd(t, "alice", "Bike", true)
	cv, err := f.convSvc.StartOrGet(context.Background(), ad.ID, "bob")
	require.NoError(t, err)
	return cv
}

func TestAppendRejectsBlankContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cv := f.startConversation(t)

	_, err := f.msgSvc.Append(ctx, cv.ID, "bob", "   \n\t")
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "content")

	var count int64
	require.NoError(t, f.db.Model(&model.Message{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAppendTrimsAndStampsTimes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cv := f.startConversation(t)

	msg, err := f.msgSvc.Append(ctx, cv.ID, "bob", "  Is this available?  ")
	require.NoError(t, err)
	assert.Equal(t, "Is this available?", msg.Content)
	assert.True(t, msg.UpdatedAt.Equal(msg.SentAt))
	assert.False(t, msg.IsRead)
}

func TestParticipantIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cv := f.startConversation(t)

	msg, err := f.msgSvc.Append(ctx, cv.ID, "bob", "hello")
	require.NoError(t, err)

	_, err = f.msgSvc.Append(ctx, cv.ID, "carol", "let me in")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.msgSvc.Sync(ctx, cv.ID, "carol", nil)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.msgSvc.MarkRead(ctx, cv.ID, "carol")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.msgSvc.Edit(ctx, msg.ID, "carol", "hijacked")
	assert.ErrorIs(t, err, ErrForbidden)
	err = f.msgSvc.Delete(ctx, msg.ID, "carol")
	assert.ErrorIs(t, err, ErrForbidden)

	// both real participants stay functional
	_, err = f.msgSvc.Append(ctx, cv.ID, "alice", "hi bob")
	assert.NoError(t, err)
	_, err = f.msgSvc.Sync(ctx, cv.ID, "bob", nil)
	assert.NoError(t, err)
}

func TestEditOnlyBySender(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cv := f.startConversation(t)

	msg, err := f.msgSvc.Append(ctx, cv.ID, "bob", "original")
	require.NoError(t, err)

	_, err = f.msgSvc.Edit(ctx, msg.ID, "alice", "rewritten")
	assert.ErrorIs(t, err, ErrForbidden)
	got, err := f.msgRepo.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Content)

	edited, err := f.msgSvc.Edit(ctx, msg.ID, "bob", "fixed typo")
	require.NoError(t, err)
	assert.Equal(t, "fixed typo", edited.Content)
	assert.True(t, edited.SentAt.Equal(msg.SentAt))
	assert.True(t, edited.UpdatedAt.After(edited.SentAt))

	_, err = f.msgSvc.Edit(ctx, msg.ID, "bob", "  ")
	_, ok := AsValidation(err)
	assert.True(t, ok)

	_, err = f.msgSvc.Edit(ctx, 999, "bob", "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteOnlyBySender(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cv := f.startConversation(t)

	msg, err := f.msgSvc.Append(ctx, cv.ID, "bob", "oops")
	require.NoError(t, err)

	err = f.msgSvc.Delete(ctx, msg.ID, "alice")
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.msgSvc.Delete(ctx, msg.ID, "bob"))
	err = f.msgSvc.Delete(ctx, msg.ID, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkReadIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cv := f.startConversation(t)

	_, err := f.msgSvc.Append(ctx, cv.ID, "bob", "one")
	require.NoError(t, err)
	_, err = f.msgSvc.Append(ctx, cv.ID, "bob", "two")
	require.NoError(t, err)

	n, err := f.msgSvc.MarkRead(ctx, cv.ID, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = f.msgSvc.MarkRead(ctx, cv.ID, "alice")
	require.NoError(t, err)
	assert.Zero(t, n)
}

// The full polling round trip: bob asks, alice opens and replies, bob's
// incremental poll picks up only the reply.
func TestPollingFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cv := f.startConversation(t)

	m1, err := f.msgSvc.Append(ctx, cv.ID, "bob", "Is this available?")
	require.NoError(t, err)

	detail, err := f.convSvc.Detail(ctx, cv.ID, "alice")
	require.NoError(t, err)
	require.Len(t, detail.Messages, 1)
	assert.True(t, detail.Messages[0].IsRead)

	m2, err := f.msgSvc.Append(ctx, cv.ID, "alice", "Yes")
	require.NoError(t, err)

	wm := m1.SentAt
	res, err := f.msgSvc.Sync(ctx, cv.ID, "bob", &wm)
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, m2.ID, res.Messages[0].ID)
	assert.Equal(t, []uint64{m1.ID, m2.ID}, res.AllIDs)
	require.NotNil(t, res.Watermark)
	assert.True(t, res.Watermark.Equal(m2.SentAt))
}

func TestSyncResurfacesEditsAndAdvancesWatermark(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cv := f.startConversation(t)

	m1, err := f.msgSvc.Append(ctx, cv.ID, "bob", "first")
	require.NoError(t, err)
	m2, err := f.msgSvc.Append(ctx, cv.ID, "bob", "second")
	require.NoError(t, err)

	// alice has seen everything up to m2
	wm := m2.SentAt
	res, err := f.msgSvc.Sync(ctx, cv.ID, "alice", &wm)
	require.NoError(t, err)
	assert.Empty(t, res.Messages)
	require.NotNil(t, res.Watermark)
	assert.True(t, res.Watermark.Equal(wm))

	// bob edits the oldest message; its sent_at is behind the watermark
	// but updated_at is ahead, so alice sees it again
	edited, err := f.msgSvc.Edit(ctx, m1.ID, "bob", "first, corrected")
	require.NoError(t, err)

	res, err = f.msgSvc.Sync(ctx, cv.ID, "alice", &wm)
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, m1.ID, res.Messages[0].ID)
	assert.Equal(t, "first, corrected", res.Messages[0].Content)

	// the returned watermark covers the edit, so the next poll is clean
	require.NotNil(t, res.Watermark)
	assert.True(t, res.Watermark.Equal(edited.UpdatedAt))
	res, err = f.msgSvc.Sync(ctx, cv.ID, "alice", res.Watermark)
	require.NoError(t, err)
	assert.Empty(t, res.Messages)
}

func TestSyncNilWatermarkIsFullSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cv := f.startConversation(t)

	_, err := f.msgSvc.Append(ctx, cv.ID, "bob", "one")
	require.NoError(t, err)
	_, err = f.msgSvc.Append(ctx, cv.ID, "alice", "two")
	require.NoError(t, err)

	res, err := f.msgSvc.Sync(ctx, cv.ID, "bob", nil)
	require.NoError(t, err)
	assert.Len(t, res.Messages, 2)
	assert.Len(t, res.AllIDs, 2)

	_, err = f.msgSvc.Sync(ctx, 999, "bob", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
