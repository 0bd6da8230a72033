package models

import (
	"time"
)

// Report is an abuse/quality complaint against one listing. Resolution is a
// reversible admin toggle, not a one-way ratchet.
type Report struct {
	ID            uint    `gorm:"primaryKey" json:"reportId"`
	ListingID     uint    `gorm:"index;not null" json:"listingId"`
	ReporterName  string  `gorm:"size:150" json:"reporterName"`
	ReporterEmail string  `gorm:"size:200" json:"reporterEmail"`
	Reason        string  `gorm:"size:150" json:"reason"`
	Description   *string `gorm:"size:1000" json:"description"`

	IsResolved bool       `gorm:"default:false" json:"isResolved"`
	CreatedAt  time.Time  `json:"createdAt"`
	ResolvedAt *time.Time `json:"resolvedAt"`
}
