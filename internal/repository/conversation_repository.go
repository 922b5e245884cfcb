package repository

import (
	"context"
	"errors"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"gorm.io/gorm"
)

// isUniqueViolation relies on GORM error translation (TranslateError) to
// normalize driver duplicate-key errors.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

type ConversationRepository interface {
	FindOrCreate(ctx context.Context, adID uint64, ownerUID, buyerUID string) (*model.Conversation, error)
	FindByID(ctx context.Context, id uint64) (*model.Conversation, error)
	FindByUser(ctx context.Context, uid string) ([]model.Conversation, error)
	FindByAd(ctx context.Context, adID uint64) ([]model.Conversation, error)
	UnreadConversations(ctx context.Context, convIDs []uint64, viewerUID string) (map[uint64]bool, error)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// FindOrCreate is the get-or-create for the (ad, buyer) pair. The unique
// index on (ad_id, buyer_uid) is the concurrency guard: when two first
// contacts race, one insert wins and the loser re-reads the winner's row.
func (r *conversationRepository) FindOrCreate(ctx context.Context, adID uint64, ownerUID, buyerUID string) (*model.Conversation, error) {
	cv := model.Conversation{AdID: adID, OwnerUID: ownerUID, BuyerUID: buyerUID}
	err := r.db.WithContext(ctx).
		Where("ad_id = ? AND buyer_uid = ?", adID, buyerUID).
		FirstOrCreate(&cv).Error
	if err == nil {
		return &cv, nil
	}
	if isUniqueViolation(err) {
		cv = model.Conversation{}
		if err := r.db.WithContext(ctx).
			Where("ad_id = ? AND buyer_uid = ?", adID, buyerUID).
			First(&cv).Error; err != nil {
			return nil, err
		}
		return &cv, nil
	}
	return nil, err
}

func (r *conversationRepository) FindByID(ctx context.Context, id uint64) (*model.Conversation, error) {
	var cv model.Conversation
	if err := r.db.WithContext(ctx).First(&cv, id).Error; err != nil {
		return nil, err
	}
	return &cv, nil
}

func (r *conversationRepository) FindByUser(ctx context.Context, uid string) ([]model.Conversation, error) {
	var list []model.Conversation
	if err := r.db.WithContext(ctx).
		Where("owner_uid = ? OR buyer_uid = ?", uid, uid).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *conversationRepository) FindByAd(ctx context.Context, adID uint64) ([]model.Conversation, error) {
	var list []model.Conversation
	if err := r.db.WithContext(ctx).
		Where("ad_id = ?", adID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UnreadConversations returns the subset of convIDs that still hold a
// message unread by viewerUID, as a membership set.
func (r *conversationRepository) UnreadConversations(ctx context.Context, convIDs []uint64, viewerUID string) (map[uint64]bool, error) {
	unread := make(map[uint64]bool, len(convIDs))
	if len(convIDs) == 0 {
		return unread, nil
	}
	var ids []uint64
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Distinct("conversation_id").
		Where("conversation_id IN ? AND is_read = ? AND sender_uid <> ?", convIDs, false, viewerUID).
		Pluck("conversation_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		unread[id] = true
	}
	return unread, nil
}
