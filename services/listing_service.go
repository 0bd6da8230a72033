package services

import (
	"errors"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"jobboard-backend/models"
)

// ErrTokenCollision is returned when token minting keeps hitting the unique
// index after several redraws. With 256-bit tokens this is effectively
// unreachable outside of tests.
var ErrTokenCollision = errors.New("manage token collision retries exhausted")

const maxMintAttempts = 5

type ListingService struct {
	DB *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{DB: db}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// Create persists a new listing, minting its manage token. Uniqueness is
// enforced by the index on manage_token; a duplicate-key error redraws the
// token instead of trusting a check-then-insert.
func (s *ListingService) Create(listing *models.Listing) error {
	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		token, err := generateManageToken()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		listing.ManageToken = token
		listing.ManageTokenExpiresAt = now.Add(manageTokenWindow)
		listing.CreatedAt = now

		err = s.DB.Create(listing).Error
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			return err
		}
		log.Printf("⚠️ manage token collision on attempt %d, redrawing", attempt+1)
		listing.ID = 0
	}
	return ErrTokenCollision
}

// GetAll returns listings newest-first. The admin view sees every state; the
// public view only approved, open listings.
func (s *ListingService) GetAll(adminView bool) ([]models.Listing, error) {
	query := s.DB.Order("created_at DESC, id DESC")
	if !adminView {
		query = query.Where("is_approved = ? AND is_closed = ?", true, false)
	}

	var listings []models.Listing
	if err := query.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// GetByID applies the same visibility filter as GetAll, so a hidden listing is
// indistinguishable from an absent one.
func (s *ListingService) GetByID(id uint, adminView bool) (*models.Listing, error) {
	var listing models.Listing
	if err := s.DB.First(&listing, id).Error; err != nil {
		return nil, err
	}
	if !adminView && !listing.PubliclyVisible() {
		return nil, gorm.ErrRecordNotFound
	}
	return &listing, nil
}

// Update applies a merge-patch field set to a listing by id (admin or
// same-request create path; the token path is UpdateByToken). The manage token
// is never touched here.
func (s *ListingService) Update(id uint, fields map[string]any) (*models.Listing, error) {
	var listing models.Listing
	if err := s.DB.First(&listing, id).Error; err != nil {
		return nil, err
	}

	fields["updated_at"] = time.Now().UTC()
	if err := s.DB.Model(&listing).Updates(fields).Error; err != nil {
		return nil, err
	}

	if err := s.DB.First(&listing, id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// SetApproval flips the moderation bit. Idempotent: repeating the same value
// only churns updated_at.
func (s *ListingService) SetApproval(id uint, approved bool) (*models.Listing, error) {
	return s.Update(id, map[string]any{"is_approved": approved})
}

func (s *ListingService) Delete(id uint) error {
	result := s.DB.Delete(&models.Listing{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ResolveToken looks up a listing by manage token. A wrong token and an
// expired one yield the identical not-found so a prober cannot tell them
// apart.
func (s *ListingService) ResolveToken(token string) (*models.Listing, error) {
	if token == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var listing models.Listing
	err := s.DB.
		Where("manage_token = ? AND manage_token_expires_at > ?", token, time.Now().UTC()).
		First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// UpdateByToken applies a merge-patch field set through the manage token. The
// liveness check, the content write and the expiry renewal happen in one
// conditional UPDATE, so a token that expires mid-race loses cleanly.
func (s *ListingService) UpdateByToken(token string, fields map[string]any) (*models.Listing, error) {
	if token == "" {
		return nil, gorm.ErrRecordNotFound
	}

	now := time.Now().UTC()
	fields["manage_token_expires_at"] = now.Add(manageTokenWindow)
	fields["updated_at"] = now

	result := s.DB.Model(&models.Listing{}).
		Where("manage_token = ? AND manage_token_expires_at > ?", token, now).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var listing models.Listing
	if err := s.DB.Where("manage_token = ?", token).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// DeleteByToken removes a listing through a live manage token. No renewal; the
// row (and its contacts/reports, via cascade) ceases to exist.
func (s *ListingService) DeleteByToken(token string) error {
	if token == "" {
		return gorm.ErrRecordNotFound
	}

	result := s.DB.
		Where("manage_token = ? AND manage_token_expires_at > ?", token, time.Now().UTC()).
		Delete(&models.Listing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
