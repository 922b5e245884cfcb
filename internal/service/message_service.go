package service

import (
	"context"
	"strings"
	"time"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/repository"
)

// SyncResult is one poll's worth of conversation state. AllIDs carries
// every message id currently in the conversation so clients can drop
// locally cached messages the sender deleted.
type SyncResult struct {
	Messages  []model.Message
	AllIDs    []uint64
	Watermark *time.Time
}

type MessageService interface {
	Append(ctx context.Context, convID uint64, uid, content string) (*model.Message, error)
	Edit(ctx context.Context, msgID uint64, uid, content string) (*model.Message, error)
	Delete(ctx context.Context, msgID uint64, uid string) error
	MarkRead(ctx context.Context, convID uint64, uid string) (int64, error)
	Sync(ctx context.Context, convID uint64, uid string, after *time.Time) (*SyncResult, error)
}

type messageService struct {
	msgRepo  repository.MessageRepository
	convRepo repository.ConversationRepository
	now      func() time.Time
}

func NewMessageService(msgRepo repository.MessageRepository, convRepo repository.ConversationRepository) MessageService {
	return &messageService{msgRepo: msgRepo, convRepo: convRepo, now: time.Now}
}

func (s *messageService) conversation(ctx context.Context, convID uint64, uid string) (*model.Conversation, error) {
	cv, err := s.convRepo.FindByID(ctx, convID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := authorizeParticipant(cv, uid); err != nil {
		return nil, err
	}
	return cv, nil
}

func (s *messageService) Append(ctx context.Context, convID uint64, uid, content string) (*model.Message, error) {
	if _, err := s.conversation(ctx, convID, uid); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, newFieldError("content", "content is required")
	}
	now := s.now()
	msg := &model.Message{
		ConversationID: convID,
		SenderUID:      uid,
		Content:        content,
		SentAt:         now,
		UpdatedAt:      now,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *messageService) Edit(ctx context.Context, msgID uint64, uid, content string) (*model.Message, error) {
	msg, err := s.msgRepo.FindByID(ctx, msgID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if msg.SenderUID != uid {
		return nil, ErrForbidden
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, newFieldError("content", "content is required")
	}
	msg.Content = content
	msg.UpdatedAt = s.now()
	if err := s.msgRepo.Save(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *messageService) Delete(ctx context.Context, msgID uint64, uid string) error {
	msg, err := s.msgRepo.FindByID(ctx, msgID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if msg.SenderUID != uid {
		return ErrForbidden
	}
	return s.msgRepo.Delete(ctx, msgID)
}

func (s *messageService) MarkRead(ctx context.Context, convID uint64, uid string) (int64, error) {
	if _, err := s.conversation(ctx, convID, uid); err != nil {
		return 0, err
	}
	return s.msgRepo.MarkRead(ctx, convID, uid)
}

// Sync answers one poll. With a nil watermark it is a full snapshot;
// otherwise it returns messages sent or edited after the watermark. The
// returned watermark is the max of sent/updated times seen, or the
// caller's own when nothing changed, so clients treat it as opaque.
func (s *messageService) Sync(ctx context.Context, convID uint64, uid string, after *time.Time) (*SyncResult, error) {
	if _, err := s.conversation(ctx, convID, uid); err != nil {
		return nil, err
	}

	var (
		msgs []model.Message
		err  error
	)
	if after == nil {
		msgs, err = s.msgRepo.ListByConversation(ctx, convID)
	} else {
		msgs, err = s.msgRepo.ListSince(ctx, convID, *after)
	}
	if err != nil {
		return nil, err
	}
	ids, err := s.msgRepo.ListIDs(ctx, convID)
	if err != nil {
		return nil, err
	}

	wm := watermarkOf(msgs)
	if wm == nil {
		wm = after
	}
	return &SyncResult{Messages: msgs, AllIDs: ids, Watermark: wm}, nil
}
