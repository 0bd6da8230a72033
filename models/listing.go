package models

import (
	"time"
)

type Listing struct {
	ID uint `gorm:"primaryKey" json:"listingId"`

	Title       string `gorm:"size:200" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Company     string `gorm:"size:150" json:"company"`
	Location    string `gorm:"size:150" json:"location"`
	JobType     string `gorm:"size:100" json:"jobType"`

	BudgetMin *float64 `json:"budgetMin"`
	BudgetMax *float64 `json:"budgetMax"`

	PosterName  string `gorm:"size:200" json:"posterName"`
	PosterEmail string `gorm:"size:200" json:"posterEmail"`

	// Possession secret for the anonymous poster. Never serialized; the
	// public-create response is the only place the token leaves the server.
	ManageToken          string    `gorm:"uniqueIndex;size:200" json:"-"`
	ManageTokenExpiresAt time.Time `json:"-"`

	IsApproved bool `gorm:"default:false" json:"isApproved"`
	IsClosed   bool `gorm:"default:false" json:"isClosed"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`

	Contacts []Contact `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
	Reports  []Report  `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
}

// PubliclyVisible reports whether anonymous visitors may see the listing.
func (l *Listing) PubliclyVisible() bool {
	return l.IsApproved && !l.IsClosed
}

// TokenLive reports whether the manage token still grants access at now.
func (l *Listing) TokenLive(now time.Time) bool {
	return now.Before(l.ManageTokenExpiresAt)
}
