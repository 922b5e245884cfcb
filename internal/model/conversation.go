package model

import "time"

// Conversation is the unique two-party thread between an ad's owner and
// one prospective buyer. OwnerUID is stamped from the ad when the row is
// created and never changes afterwards.
type Conversation struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	AdID      uint64    `gorm:"column:ad_id;index:idx_ad_buyer,unique" json:"adId"`
	OwnerUID  string    `gorm:"column:owner_uid;size:128;index" json:"ownerUid"`
	BuyerUID  string    `gorm:"column:buyer_uid;size:128;index:idx_ad_buyer,unique" json:"buyerUid"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// HasParticipant reports whether uid is one of the two parties.
func (c *Conversation) HasParticipant(uid string) bool {
	return uid == c.OwnerUID || uid == c.BuyerUID
}

// Counterpart returns the other party's uid relative to uid.
func (c *Conversation) Counterpart(uid string) string {
	if uid == c.OwnerUID {
		return c.BuyerUID
	}
	return c.OwnerUID
}
