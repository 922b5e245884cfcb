package model

import "time"

type AdType string

const (
	AdTypeJob     AdType = "job"
	AdTypePet     AdType = "pet"
	AdTypeSale    AdType = "sale"
	AdTypeService AdType = "service"
	AdTypeEvent   AdType = "event"
)

func (t AdType) Valid() bool {
	switch t {
	case AdTypeJob, AdTypePet, AdTypeSale, AdTypeService, AdTypeEvent:
		return true
	}
	return false
}

type Ad struct {
	ID                 uint64     `gorm:"primaryKey;autoIncrement"`
	OwnerUID           string     `gorm:"column:owner_uid;size:128;index;not null"`
	Title              string     `gorm:"size:255;not null"`
	Description        string     `gorm:"type:text;not null"`
	Price              *uint      `gorm:"column:price"`
	Location           string     `gorm:"size:255;not null"`
	ContactInfo        string     `gorm:"column:contact_info;size:255"`
	ContactInfoVisible bool       `gorm:"column:contact_info_visible;default:false"`
	CategoryID         uint64     `gorm:"column:category_id;index;not null"`
	AdType             AdType     `gorm:"column:ad_type;size:20;default:sale"`
	ImageURL           *string    `gorm:"column:image_url;size:512"`
	EventDate          *time.Time `gorm:"column:event_date"`
	IsActive           bool       `gorm:"column:is_active;default:true"`
	CreatedAt          time.Time  `gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime"`
}

func (Ad) TableName() string {
	return "ads"
}

// ContactVisibleTo reports whether uid may see the ad's contact info.
func (a *Ad) ContactVisibleTo(uid string) bool {
	return a.ContactInfoVisible || uid == a.OwnerUID
}
