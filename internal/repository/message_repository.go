package repository

import (
	"context"
	"time"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	Save(ctx context.Context, msg *model.Message) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*model.Message, error)
	ListByConversation(ctx context.Context, convID uint64) ([]model.Message, error)
	ListSince(ctx context.Context, convID uint64, after time.Time) ([]model.Message, error)
	ListIDs(ctx context.Context, convID uint64) ([]uint64, error)
	MarkRead(ctx context.Context, convID uint64, viewerUID string) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) Save(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Save(msg).Error
}

func (r *messageRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Message{}, id).Error
}

func (r *messageRepository) FindByID(ctx context.Context, id uint64) (*model.Message, error) {
	var msg model.Message
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// Ordering is sent_at ascending with id as the tie-breaker, so equal
// timestamps still come back in a stable insertion order.
func (r *messageRepository) ListByConversation(ctx context.Context, convID uint64) ([]model.Message, error) {
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Order("sent_at ASC, id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListSince surfaces both messages sent after the watermark and older
// messages edited after it, so polling clients reconcile edits too.
func (r *messageRepository) ListSince(ctx context.Context, convID uint64, after time.Time) ([]model.Message, error) {
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND (sent_at > ? OR updated_at > ?)", convID, after, after).
		Order("sent_at ASC, id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) ListIDs(ctx context.Context, convID uint64) ([]uint64, error) {
	var ids []uint64
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("conversation_id = ?", convID).
		Order("sent_at ASC, id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// MarkRead flips everything unread-to-viewer in one statement. Running it
// again with nothing left to flip touches zero rows.
func (r *messageRepository) MarkRead(ctx context.Context, convID uint64, viewerUID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("conversation_id = ? AND is_read = ? AND sender_uid <> ?", convID, false, viewerUID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
