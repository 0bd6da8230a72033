package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobboard-backend/middleware"
	"jobboard-backend/models"
	"jobboard-backend/services"
	"jobboard-backend/utils"
)

type ListingController struct {
	ListingSvc *services.ListingService
}

func NewListingController(svc *services.ListingService) *ListingController {
	return &ListingController{ListingSvc: svc}
}

type createListingPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	JobType     string   `json:"jobType"`
	BudgetMin   *float64 `json:"budgetMin"`
	BudgetMax   *float64 `json:"budgetMax"`
	PosterName  string   `json:"posterName"`
	PosterEmail string   `json:"posterEmail"`
	IsApproved  *bool    `json:"isApproved"`
}

type publicCreatePayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	JobType     string   `json:"jobType"`
	BudgetMin   *float64 `json:"budgetMin"`
	BudgetMax   *float64 `json:"budgetMax"`
	PosterName  string   `json:"posterName"`
	PosterEmail string   `json:"posterEmail"`
	AcceptTerms bool     `json:"acceptTerms"`
}

// updateListingPayload is a merge-patch: nil means "leave unchanged", so a
// field must be present in the JSON to take effect.
type updateListingPayload struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Company     *string  `json:"company"`
	Location    *string  `json:"location"`
	JobType     *string  `json:"jobType"`
	BudgetMin   *float64 `json:"budgetMin"`
	BudgetMax   *float64 `json:"budgetMax"`
	IsClosed    *bool    `json:"isClosed"`
	IsApproved  *bool    `json:"isApproved"`
}

type statusPayload struct {
	IsApproved *bool `json:"isApproved"`
}

func (p *updateListingPayload) fields() map[string]any {
	fields := map[string]any{}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Company != nil {
		fields["company"] = *p.Company
	}
	if p.Location != nil {
		fields["location"] = *p.Location
	}
	if p.JobType != nil {
		fields["job_type"] = *p.JobType
	}
	if p.BudgetMin != nil {
		fields["budget_min"] = *p.BudgetMin
	}
	if p.BudgetMax != nil {
		fields["budget_max"] = *p.BudgetMax
	}
	if p.IsClosed != nil {
		fields["is_closed"] = *p.IsClosed
	}
	return fields
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid listing id")
		return 0, false
	}
	return uint(id), true
}

// GetListings handles GET /api/listings. Admin sees every state; everyone
// else only approved, open listings.
func (lc *ListingController) GetListings(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	listings, err := lc.ListingSvc.GetAll(identity.IsAdmin())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load listings")
		return
	}
	c.JSON(http.StatusOK, listings)
}

// GetListing handles GET /api/listings/:id. A listing hidden from the
// caller's view 404s exactly like an absent one.
func (lc *ListingController) GetListing(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	identity := middleware.CurrentIdentity(c)

	listing, err := lc.ListingSvc.GetByID(id, identity.IsAdmin())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "listing not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load listing")
		return
	}
	c.JSON(http.StatusOK, listing)
}

// CreateListing handles POST /api/listings. Anyone may create; the listing
// enters the moderation queue unapproved unless an admin pre-approves it in
// the payload.
func (lc *ListingController) CreateListing(c *gin.Context) {
	var payload createListingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if strings.TrimSpace(payload.Title) == "" || strings.TrimSpace(payload.Description) == "" {
		utils.JSONError(c, http.StatusBadRequest, "title and description are required")
		return
	}

	identity := middleware.CurrentIdentity(c)

	listing := models.Listing{
		Title:       payload.Title,
		Description: payload.Description,
		Company:     payload.Company,
		Location:    payload.Location,
		JobType:     payload.JobType,
		BudgetMin:   payload.BudgetMin,
		BudgetMax:   payload.BudgetMax,
		PosterName:  payload.PosterName,
		PosterEmail: payload.PosterEmail,
		IsApproved:  identity.IsAdmin() && payload.IsApproved != nil && *payload.IsApproved,
	}

	if err := lc.ListingSvc.Create(&listing); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create listing")
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// CreatePublicListing handles POST /api/listings/public: the anonymous submit
// path. The response is the only place the manage token is ever exposed.
func (lc *ListingController) CreatePublicListing(c *gin.Context) {
	var payload publicCreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if !payload.AcceptTerms {
		utils.JSONError(c, http.StatusBadRequest, "terms must be accepted before posting")
		return
	}
	if strings.TrimSpace(payload.Title) == "" || strings.TrimSpace(payload.Description) == "" {
		utils.JSONError(c, http.StatusBadRequest, "title and description are required")
		return
	}
	if !utils.ValidEmail(payload.PosterEmail) {
		utils.JSONError(c, http.StatusBadRequest, "a valid poster email is required")
		return
	}

	listing := models.Listing{
		Title:       payload.Title,
		Description: payload.Description,
		Company:     payload.Company,
		Location:    payload.Location,
		JobType:     payload.JobType,
		BudgetMin:   payload.BudgetMin,
		BudgetMax:   payload.BudgetMax,
		PosterName:  payload.PosterName,
		PosterEmail: payload.PosterEmail,
	}

	if err := lc.ListingSvc.Create(&listing); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create listing")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":              "listing submitted for review",
		"listingId":            listing.ID,
		"manageToken":          listing.ManageToken,
		"manageTokenExpiresAt": listing.ManageTokenExpiresAt,
	})
}

// UpdateListing handles PUT /api/listings/:id. Merge-patch: absent fields are
// left untouched. A non-admin trying to flip isApproved gets a forbidden, not
// a silent drop.
func (lc *ListingController) UpdateListing(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload updateListingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	identity := middleware.CurrentIdentity(c)

	fields := payload.fields()
	if payload.IsApproved != nil {
		if !identity.IsAdmin() {
			utils.JSONError(c, http.StatusForbidden, "only admins may change approval")
			return
		}
		fields["is_approved"] = *payload.IsApproved
	}

	listing, err := lc.ListingSvc.Update(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "listing not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update listing")
		return
	}
	c.JSON(http.StatusOK, listing)
}

// UpdateListingStatus handles PUT /api/listings/:id/status (admin-only,
// enforced in routing).
func (lc *ListingController) UpdateListingStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload statusPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.IsApproved == nil {
		utils.JSONError(c, http.StatusBadRequest, "isApproved is required")
		return
	}

	listing, err := lc.ListingSvc.SetApproval(id, *payload.IsApproved)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "listing not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update listing status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "listing status updated",
		"listingId":  listing.ID,
		"isApproved": listing.IsApproved,
	})
}

// DeleteListing handles DELETE /api/listings/:id (admin-only, enforced in
// routing). Contacts and reports cascade.
func (lc *ListingController) DeleteListing(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := lc.ListingSvc.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "listing not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete listing")
		return
	}
	c.Status(http.StatusNoContent)
}
