package services

import (
	"time"

	"gorm.io/gorm"

	"jobboard-backend/models"
)

// ReportWithListing is the triage-queue row: a report joined with the owning
// listing's display fields.
type ReportWithListing struct {
	models.Report
	ListingTitle   string `json:"listingTitle"`
	ListingCompany string `json:"listingCompany"`
}

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// Create appends a report to a listing. The gate is approval only: a closed
// listing can still be reported. An unapproved listing is a not-found, same as
// an absent id.
func (s *ReportService) Create(listingID uint, report *models.Report) error {
	var listing models.Listing
	if err := s.DB.First(&listing, listingID).Error; err != nil {
		return err
	}
	if !listing.IsApproved {
		return gorm.ErrRecordNotFound
	}

	report.ListingID = listing.ID
	report.IsResolved = false
	report.ResolvedAt = nil
	report.CreatedAt = time.Now().UTC()
	return s.DB.Create(report).Error
}

func (s *ReportService) GetByListingID(listingID uint) ([]models.Report, error) {
	var listing models.Listing
	if err := s.DB.First(&listing, listingID).Error; err != nil {
		return nil, err
	}

	var reports []models.Report
	err := s.DB.
		Where("listing_id = ?", listingID).
		Order("created_at DESC, id DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// GetAll returns every report joined with its listing's title/company,
// unresolved first so the triage queue surfaces open items, then newest-first.
func (s *ReportService) GetAll() ([]ReportWithListing, error) {
	var reports []ReportWithListing
	err := s.DB.Model(&models.Report{}).
		Select("reports.*, listings.title AS listing_title, listings.company AS listing_company").
		Joins("JOIN listings ON listings.id = reports.listing_id").
		Order("reports.is_resolved ASC, reports.created_at DESC, reports.id DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// SetResolved toggles a report's resolution. Resolving stamps resolved_at;
// un-resolving clears it back to null.
func (s *ReportService) SetResolved(listingID, reportID uint, resolved bool) (*models.Report, error) {
	var report models.Report
	err := s.DB.
		Where("id = ? AND listing_id = ?", reportID, listingID).
		First(&report).Error
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"is_resolved": resolved}
	if resolved {
		now := time.Now().UTC()
		fields["resolved_at"] = now
	} else {
		fields["resolved_at"] = nil
	}

	if err := s.DB.Model(&report).Updates(fields).Error; err != nil {
		return nil, err
	}
	if err := s.DB.First(&report, report.ID).Error; err != nil {
		return nil, err
	}
	return &report, nil
}
