package services

import (
	"time"

	"gorm.io/gorm"

	"jobboard-backend/models"
)

type ContactService struct {
	DB *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{DB: db}
}

// Create appends a contact to a listing. The listing must be publicly visible
// at the instant of the call; anything else is a not-found, same as an absent
// id.
func (s *ContactService) Create(listingID uint, contact *models.Contact) error {
	var listing models.Listing
	if err := s.DB.First(&listing, listingID).Error; err != nil {
		return err
	}
	if !listing.PubliclyVisible() {
		return gorm.ErrRecordNotFound
	}

	contact.ListingID = listing.ID
	contact.CreatedAt = time.Now().UTC()
	return s.DB.Create(contact).Error
}

// GetByListingID returns a listing's contacts newest-first. Admin view only;
// the controller gates the caller.
func (s *ContactService) GetByListingID(listingID uint) ([]models.Contact, error) {
	var listing models.Listing
	if err := s.DB.First(&listing, listingID).Error; err != nil {
		return nil, err
	}

	var contacts []models.Contact
	err := s.DB.
		Where("listing_id = ?", listingID).
		Order("created_at DESC, id DESC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}
