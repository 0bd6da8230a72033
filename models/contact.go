package models

import (
	"time"
)

// Contact is a respondent message against one listing. Created and listed,
// never updated.
type Contact struct {
	ID        uint    `gorm:"primaryKey" json:"contactId"`
	ListingID uint    `gorm:"index;not null" json:"listingId"`
	Name      string  `gorm:"size:150" json:"name"`
	Email     string  `gorm:"size:200" json:"email"`
	Phone     *string `gorm:"size:30" json:"phone"`
	Message   *string `gorm:"size:500" json:"message"`

	CreatedAt time.Time `json:"createdAt"`
}
