package model

import "time"

type Message struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint64    `gorm:"column:conversation_id;index;not null" json:"conversationId"`
	SenderUID      string    `gorm:"column:sender_uid;size:128;index;not null" json:"senderUid"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	SentAt         time.Time `gorm:"column:sent_at;index" json:"sentAt"`
	// autoUpdateTime is off: updated_at moves only when the sender edits,
	// never on read-flag flips, or polling clients would see phantom edits.
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt"`
	IsRead    bool      `gorm:"column:is_read;default:false" json:"read"`
}

func (Message) TableName() string {
	return "messages"
}

// UnreadBy reports whether the message still counts as unread for uid.
// The single flag is enough because a conversation has exactly two
// participants: anything the other party sent and nobody opened yet.
func (m *Message) UnreadBy(uid string) bool {
	return !m.IsRead && m.SenderUID != uid
}
