package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/kantorkita/hr-backend-go/internal/config"
	"github.com/kantorkita/hr-backend-go/internal/pkg/database"
	"github.com/kantorkita/hr-backend-go/internal/pkg/geocode"
	"github.com/kantorkita/hr-backend-go/internal/pkg/holiday"
	"github.com/kantorkita/hr-backend-go/internal/pkg/jwt"
	"github.com/kantorkita/hr-backend-go/internal/pkg/oauth"
	"github.com/kantorkita/hr-backend-go/internal/pkg/sse"
	"github.com/kantorkita/hr-backend-go/internal/pkg/storage"
	"github.com/kantorkita/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kantorkita/hr-backend-go/internal/service/attendance"
	authService "github.com/kantorkita/hr-backend-go/internal/service/auth"
	leaveService "github.com/kantorkita/hr-backend-go/internal/service/leave"
	masterService "github.com/kantorkita/hr-backend-go/internal/service/master"
	reportService "github.com/kantorkita/hr-backend-go/internal/service/report"
	userService "github.com/kantorkita/hr-backend-go/internal/service/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testHandlerDB *database.DB

const (
	handlerTestSecret   = "test-secret-key-for-jwt"
	handlerTestPassword = "password123"
)

func handlerTestInit(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if testHandlerDB != nil {
		return
	}

	var err error
	testHandlerDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)

	schema, err := os.ReadFile("../../../migrations/0001_init.sql")
	require.NoError(t, err)
	_, err = testHandlerDB.Exec(context.Background(), string(schema))
	require.NoError(t, err)
}

func truncateHandlerTables(t *testing.T, ctx context.Context) {
	tables := []string{"refresh_tokens", "leave_requests", "leave_allocations", "attendance_records", "announcements", "users", "positions"}
	for _, table := range tables {
		_, err := testHandlerDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createHandlerTestUser(t *testing.T, ctx context.Context, email, role string) string {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(handlerTestPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	var userID string
	err = testHandlerDB.QueryRow(ctx, `
		INSERT INTO users (full_name, email, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'active', NOW(), NOW())
		RETURNING id
	`, "Test "+role, email, string(hashedPassword), role).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func newTestRouter(t *testing.T) http.Handler {
	db := testHandlerDB
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h", "168h")
	hub := sse.NewHub()
	calendar := holiday.NewCalendar("")
	geocoder := geocode.NewClient("", "test-agent")
	googleService := oauth.NewGoogleService("", "", "")

	fileStorage, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	announcementRepo := postgresql.NewAnnouncementRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	allocationRepo := postgresql.NewAllocationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	authSvc := authService.NewAuthService(db, userRepo, refreshTokenRepo, jwtService, googleService)
	userSvc := userService.NewUserService(db, userRepo, positionRepo)
	masterSvc := masterService.NewMasterService(db, positionRepo, announcementRepo, hub)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, allocationRepo, userRepo, hub)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, calendar, geocoder, fileStorage)
	reportSvc := reportService.NewReportService(attendanceRepo)

	cfg := &config.Config{}
	cfg.App.Env = "test"

	return NewRouter(cfg, jwtService, Handlers{
		Auth:       NewAuthHandler(jwtService, authSvc),
		User:       NewUserHandler(userSvc),
		Master:     NewMasterHandler(masterSvc, masterSvc),
		Leave:      NewLeaveHandler(leaveSvc),
		Attendance: NewAttendanceHandler(attendanceSvc, fileStorage),
		Report:     NewReportHandler(reportSvc),
		Stream:     NewStreamHandler(jwtService, hub),
	})
}

func doLogin(t *testing.T, router http.Handler, email string) (accessToken string, refreshCookie *http.Cookie) {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": handlerTestPassword,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Data.AccessToken)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "refresh_token" {
			refreshCookie = c
		}
	}
	require.NotNil(t, refreshCookie, "login must set the refresh cookie")

	return resp.Data.AccessToken, refreshCookie
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	email := fmt.Sprintf("login-%d@example.com", time.Now().UnixNano())
	createHandlerTestUser(t, ctx, email, "staff")
	router := newTestRouter(t)

	accessToken, _ := doLogin(t, router, email)

	// The issued token opens the profile endpoint.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	email := fmt.Sprintf("wrongpw-%d@example.com", time.Now().UnixNano())
	createHandlerTestUser(t, ctx, email, "staff")
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"email": email, "password": "not-the-password"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_RefreshCookieLifetime(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	email := fmt.Sprintf("cookie-%d@example.com", time.Now().UnixNano())
	createHandlerTestUser(t, ctx, email, "staff")
	router := newTestRouter(t)

	_, refreshCookie := doLogin(t, router, email)

	// The cookie expires together with the refresh token itself.
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), refreshCookie.Expires, time.Minute)
}

func TestRefreshToken_Rotation(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	email := fmt.Sprintf("refresh-%d@example.com", time.Now().UnixNano())
	createHandlerTestUser(t, ctx, email, "staff")
	router := newTestRouter(t)

	_, refreshCookie := doLogin(t, router, email)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(refreshCookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The old cookie was revoked by the rotation.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(refreshCookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutes_RoleEnforcement(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	staffEmail := fmt.Sprintf("staff-%d@example.com", time.Now().UnixNano())
	adminEmail := fmt.Sprintf("admin-%d@example.com", time.Now().UnixNano())
	createHandlerTestUser(t, ctx, staffEmail, "staff")
	createHandlerTestUser(t, ctx, adminEmail, "admin")
	router := newTestRouter(t)

	staffToken, _ := doLogin(t, router, staffEmail)
	adminToken, _ := doLogin(t, router, adminEmail)

	newUser, _ := json.Marshal(map[string]interface{}{
		"full_name": "New Staff",
		"email":     fmt.Sprintf("new-%d@example.com", time.Now().UnixNano()),
		"password":  "password123",
		"role":      "staff",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(newUser))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+staffToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(newUser))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestProtectedRoute_RequiresToken(t *testing.T) {
	handlerTestInit(t)

	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
