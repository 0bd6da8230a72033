package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobboard-backend/models"
	"jobboard-backend/services"
	"jobboard-backend/utils"
)

type ContactController struct {
	ContactSvc *services.ContactService
}

func NewContactController(svc *services.ContactService) *ContactController {
	return &ContactController{ContactSvc: svc}
}

type createContactPayload struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Message *string `json:"message"`
}

// CreateContact handles POST /api/listings/:id/contacts. Open to anonymous
// callers, but only against a listing that is approved and open right now; a
// closed or unapproved listing 404s like an absent one.
func (cc *ContactController) CreateContact(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload createContactPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if strings.TrimSpace(payload.Name) == "" {
		utils.JSONError(c, http.StatusBadRequest, "name is required")
		return
	}
	if !utils.ValidEmail(payload.Email) {
		utils.JSONError(c, http.StatusBadRequest, "a valid email is required")
		return
	}

	contact := models.Contact{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Message: payload.Message,
	}

	if err := cc.ContactSvc.Create(id, &contact); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "listing not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to save contact")
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// GetContacts handles GET /api/listings/:id/contacts (admin-only, enforced in
// routing).
func (cc *ContactController) GetContacts(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	contacts, err := cc.ContactSvc.GetByListingID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "listing not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load contacts")
		return
	}
	c.JSON(http.StatusOK, contacts)
}
