package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobboard-backend/utils"
)

// The manage endpoints are the capability-token path: possession of a live
// token is the whole authorization, there is no account behind it. A wrong
// token, an expired token and a deleted listing all answer with the same 404.

// manageUpdatePayload is the token-holder merge-patch. Approval is not in the
// field set; moderation is admin-only and rides a different path entirely.
type manageUpdatePayload struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Company     *string  `json:"company"`
	Location    *string  `json:"location"`
	JobType     *string  `json:"jobType"`
	BudgetMin   *float64 `json:"budgetMin"`
	BudgetMax   *float64 `json:"budgetMax"`
	IsClosed    *bool    `json:"isClosed"`
}

func (p *manageUpdatePayload) fields() map[string]any {
	patch := updateListingPayload{
		Title:       p.Title,
		Description: p.Description,
		Company:     p.Company,
		Location:    p.Location,
		JobType:     p.JobType,
		BudgetMin:   p.BudgetMin,
		BudgetMax:   p.BudgetMax,
		IsClosed:    p.IsClosed,
	}
	return patch.fields()
}

// GetManagedListing handles GET /api/listings/manage/:token.
func (lc *ListingController) GetManagedListing(c *gin.Context) {
	listing, err := lc.ListingSvc.ResolveToken(c.Param("token"))
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

// UpdateManagedListing handles PUT /api/listings/manage/:token. Every
// successful write slides the token expiry 30 days out, so an actively
// managed listing never goes dark on its poster.
func (lc *ListingController) UpdateManagedListing(c *gin.Context) {
	var payload manageUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	listing, err := lc.ListingSvc.UpdateByToken(c.Param("token"), payload.fields())
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

// DeleteManagedListing handles DELETE /api/listings/manage/:token.
func (lc *ListingController) DeleteManagedListing(c *gin.Context) {
	if err := lc.ListingSvc.DeleteByToken(c.Param("token")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "listing not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete listing")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "listing deleted"})
}
