package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jobboard-backend/controllers"
	"jobboard-backend/models"
	"jobboard-backend/routes"
	"jobboard-backend/services"
)

const jwtSecret = "testsecret"

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Listing{}, &models.Contact{}, &models.Report{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	router := routes.SetupRouter(
		controllers.NewListingController(services.NewListingService(db)),
		controllers.NewContactController(services.NewContactService(db)),
		controllers.NewReportController(services.NewReportService(db)),
		controllers.NewAuthController(services.NewUserService(db), jwtSecret),
		jwtSecret,
	)
	return &testEnv{router: router, db: db}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}

func adminToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "1",
		"name": "Admin",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		t.Fatalf("sign admin token: %v", err)
	}
	return signed
}

func normalToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "2",
		"name": "Normal",
		"role": "normal",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		t.Fatalf("sign user token: %v", err)
	}
	return signed
}

type publicCreateResponse struct {
	Message              string    `json:"message"`
	ListingID            uint      `json:"listingId"`
	ManageToken          string    `json:"manageToken"`
	ManageTokenExpiresAt time.Time `json:"manageTokenExpiresAt"`
}

func submitListing(t *testing.T, e *testEnv) publicCreateResponse {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/listings/public", map[string]any{
		"title":       "Engineer",
		"description": "Build things",
		"company":     "Acme",
		"location":    "Remote",
		"jobType":     "full-time",
		"budgetMin":   1000.0,
		"budgetMax":   2000.0,
		"posterEmail": "a@b.com",
		"acceptTerms": true,
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("public submit status = %d, body %s", w.Code, w.Body.String())
	}
	var resp publicCreateResponse
	decodeBody(t, w, &resp)
	return resp
}

func listingPath(resp publicCreateResponse) string {
	return "/api/listings/" + strconv.FormatUint(uint64(resp.ListingID), 10)
}
