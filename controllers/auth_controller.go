package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"jobboard-backend/services"
	"jobboard-backend/utils"
)

const tokenDuration = 2 * time.Hour

type AuthController struct {
	UserSvc   *services.UserService
	JWTSecret string
}

func NewAuthController(svc *services.UserService, jwtSecret string) *AuthController {
	return &AuthController{UserSvc: svc, JWTSecret: jwtSecret}
}

type registerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func (ac *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if strings.TrimSpace(payload.Name) == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "name and password are required")
		return
	}
	if !utils.ValidEmail(payload.Email) {
		utils.JSONError(c, http.StatusBadRequest, "a valid email is required")
		return
	}

	user, err := ac.UserSvc.Register(payload.Name, payload.Email, payload.Password, payload.Role)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			utils.JSONError(c, http.StatusBadRequest, "email already registered")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to register")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "registration successful",
		"userId":  user.ID,
	})
}

// Login handles POST /api/auth/login. On success it issues the identity
// assertion the role resolver reads: a short-lived JWT carrying id, name,
// email and role.
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := ac.UserSvc.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to log in")
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(ac.JWTSecret))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to sign token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"token":   tokenStr,
		"user": gin.H{
			"userId": user.ID,
			"name":   user.Name,
			"email":  user.Email,
			"role":   user.Role,
		},
	})
}
