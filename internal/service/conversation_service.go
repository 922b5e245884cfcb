package service

import (
	"context"
	"time"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/logger"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/repository"
)

// UserDirectory resolves display names for uids. Identity is owned
// outside this core; in production it is backed by Firebase.
type UserDirectory interface {
	DisplayName(ctx context.Context, uid string) (string, error)
}

type ConversationSummary struct {
	Conversation    model.Conversation
	AdTitle         string
	CounterpartUID  string
	CounterpartName string
	Unread          bool
}

type ConversationDetail struct {
	Conversation    model.Conversation
	AdTitle         string
	CounterpartUID  string
	CounterpartName string
	Messages        []model.Message
	// Watermark is the starting point for subsequent incremental polls:
	// the max of sent/updated times across the snapshot, nil when empty.
	Watermark *time.Time
}

type ConversationService interface {
	StartOrGet(ctx context.Context, adID uint64, uid string) (*model.Conversation, error)
	ListByUser(ctx context.Context, uid string) ([]ConversationSummary, error)
	Detail(ctx context.Context, convID uint64, uid string) (*ConversationDetail, error)
	ListByAd(ctx context.Context, adID uint64, uid string) ([]model.Conversation, error)
}

type conversationService struct {
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	adRepo   repository.AdRepository
	users    UserDirectory
}

func NewConversationService(convRepo repository.ConversationRepository, msgRepo repository.MessageRepository, adRepo repository.AdRepository, users UserDirectory) ConversationService {
	return &conversationService{convRepo: convRepo, msgRepo: msgRepo, adRepo: adRepo, users: users}
}

// authorizeParticipant is the single authorization check for everything
// that touches conversation data. Failure is ErrForbidden, never a
// silently empty result.
func authorizeParticipant(cv *model.Conversation, uid string) error {
	if cv == nil || uid == "" || !cv.HasParticipant(uid) {
		return ErrForbidden
	}
	return nil
}

func (s *conversationService) StartOrGet(ctx context.Context, adID uint64, uid string) (*model.Conversation, error) {
	ad, err := s.adRepo.FindByID(ctx, adID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !ad.IsActive {
		return nil, ErrNotFound
	}
	if ad.OwnerUID == uid {
		return nil, ErrIsOwner
	}
	return s.convRepo.FindOrCreate(ctx, adID, ad.OwnerUID, uid)
}

func (s *conversationService) ListByUser(ctx context.Context, uid string) ([]ConversationSummary, error) {
	convs, err := s.convRepo.FindByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(convs) == 0 {
		return []ConversationSummary{}, nil
	}

	convIDs := make([]uint64, 0, len(convs))
	adIDs := make([]uint64, 0, len(convs))
	for _, cv := range convs {
		convIDs = append(convIDs, cv.ID)
		adIDs = append(adIDs, cv.AdID)
	}
	unread, err := s.convRepo.UnreadConversations(ctx, convIDs, uid)
	if err != nil {
		return nil, err
	}
	ads, err := s.adRepo.FindByIDs(ctx, adIDs)
	if err != nil {
		return nil, err
	}

	names := map[string]string{}
	out := make([]ConversationSummary, 0, len(convs))
	for _, cv := range convs {
		other := cv.Counterpart(uid)
		name, ok := names[other]
		if !ok {
			name = s.displayName(ctx, other)
			names[other] = name
		}
		out = append(out, ConversationSummary{
			Conversation:    cv,
			AdTitle:         ads[cv.AdID].Title,
			CounterpartUID:  other,
			CounterpartName: name,
			Unread:          unread[cv.ID],
		})
	}
	return out, nil
}

// Detail opens the conversation for uid: everything unread to them is
// marked read first, then the full snapshot is returned.
func (s *conversationService) Detail(ctx context.Context, convID uint64, uid string) (*ConversationDetail, error) {
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
	if _, err := s.msgRepo.MarkRead(ctx, convID, uid); err != nil {
		return nil, err
	}
	msgs, err := s.msgRepo.ListByConversation(ctx, convID)
	if err != nil {
		return nil, err
	}

	detail := &ConversationDetail{
		Conversation:   *cv,
		CounterpartUID: cv.Counterpart(uid),
		Messages:       msgs,
		Watermark:      watermarkOf(msgs),
	}
	detail.CounterpartName = s.displayName(ctx, detail.CounterpartUID)
	if ad, err := s.adRepo.FindByID(ctx, cv.AdID); err == nil {
		detail.AdTitle = ad.Title
	}
	return detail, nil
}

// ListByAd is a filter, not an authorization gate: non-owners get an
// empty list, and callers must not branch on it for access decisions.
func (s *conversationService) ListByAd(ctx context.Context, adID uint64, uid string) ([]model.Conversation, error) {
	ad, err := s.adRepo.FindByID(ctx, adID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ad.OwnerUID != uid {
		return []model.Conversation{}, nil
	}
	return s.convRepo.FindByAd(ctx, adID)
}

func (s *conversationService) displayName(ctx context.Context, uid string) string {
	if s.users == nil {
		return uid
	}
	name, err := s.users.DisplayName(ctx, uid)
	if err != nil || name == "" {
		if err != nil {
			logger.Warn().Err(err).Str("uid", uid).Msg("display name lookup failed")
		}
		return uid
	}
	return name
}

// watermarkOf picks the max of sent/updated times so a client polling
// from it sees each later send and each later edit exactly once.
func watermarkOf(msgs []model.Message) *time.Time {
	var wm *time.Time
	for i := range msgs {
		for _, ts := range []time.Time{msgs[i].SentAt, msgs[i].UpdatedAt} {
			if wm == nil || ts.After(*wm) {
				t := ts
				wm = &t
			}
		}
	}
	return wm
}
