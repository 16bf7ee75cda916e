package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelnest/internal/database"
	"hotelnest/internal/domain"
	"hotelnest/internal/middleware"
	"hotelnest/internal/modules/auth"
	"hotelnest/internal/modules/availability"
	"hotelnest/internal/modules/booking"
	"hotelnest/internal/modules/catalog"
	"hotelnest/internal/modules/review"
	jwtsvc "hotelnest/internal/pkg/jwt"
	"hotelnest/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
	hub    *availability.Hub
	roomID int64
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	// A pool of :memory: connections means separate databases.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.AutoMigrate(db), "Failed to migrate test database")

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	hub := availability.NewHub()
	t.Cleanup(hub.Close)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	catalogHandler := catalog.NewHandler(catalog.NewService(roomRepo, ledgerRepo, reviewRepo, hub))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, roomRepo, hub))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, bookingRepo, roomRepo, userRepo))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterPublicRoutes(v1)
	catalogHandler.RegisterPublicRoutes(v1)
	reviewHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Auth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		catalogHandler.RegisterProtectedRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
		reviewHandler.RegisterProtectedRoutes(protected)
	}

	// One room with a discounted rate for every flow below.
	discounted := 80.0
	room := &domain.Room{
		Name:          "Harbor View Standard",
		Location:      "Lisbon, Portugal",
		RoomType:      domain.RoomStandard,
		Capacity:      2,
		Beds:          1,
		SizeSqft:      280,
		Price:         100,
		DiscountPrice: &discounted,
		Amenities:     []string{"Wi-Fi", "Air conditioning"},
		Description:   "Bright standard room over the estuary.",
	}
	require.NoError(t, roomRepo.Create(context.Background(), room), "Failed to seed room")

	return &E2ETestSuite{
		router: r,
		db:     db,
		hub:    hub,
		roomID: room.ID,
	}
}

func (s *E2ETestSuite) makeRequest(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

func (s *E2ETestSuite) registerGuest(t *testing.T, email string) string {
	w := s.makeRequest(t, "POST", "/api/v1/auth/register", map[string]interface{}{
		"email":    email,
		"password": "Secret1",
		"name":     "Test Guest",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(domain.DateLayout)
}

// =============================================================================
// Flow 1: registration and authentication
// =============================================================================

func TestFlow_RegistrationAndAuth(t *testing.T) {
	suite := setupTestSuite(t)

	var token string

	t.Run("register", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/auth/register", map[string]interface{}{
			"email":    "guest@test.com",
			"password": "Secret1",
			"name":     "John Doe",
		}, "")

		require.Equal(t, http.StatusCreated, w.Code)
		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["token"])
	})

	t.Run("register duplicate email", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/auth/register", map[string]interface{}{
			"email":    "Guest@Test.com",
			"password": "Secret1",
			"name":     "John Again",
		}, "")

		require.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "EMAIL_EXISTS", resp.Error.Code)
	})

	t.Run("register weak password", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/auth/register", map[string]interface{}{
			"email":    "weak@test.com",
			"password": "secret1",
			"name":     "Weak",
		}, "")

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "WEAK_PASSWORD", resp.Error.Code)
	})

	t.Run("login", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "guest@test.com",
			"password": "Secret1",
		}, "")

		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		token, _ = resp.Data["token"].(string)
		require.NotEmpty(t, token)
	})

	t.Run("login wrong password", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "guest@test.com",
			"password": "WrongOne1",
		}, "")

		require.Equal(t, http.StatusUnauthorized, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
	})

	t.Run("me", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/v1/users/me", nil, token)

		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		user, _ := resp.Data["user"].(map[string]interface{})
		require.NotNil(t, user)
		assert.Equal(t, "guest@test.com", user["email"])
		assert.Equal(t, "guest", user["role"])
	})

	t.Run("me without token", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/v1/users/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// Flow 2: catalog browsing and availability
// =============================================================================

func TestFlow_CatalogAndAvailability(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.registerGuest(t, "browser@test.com")

	t.Run("list rooms", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/v1/rooms", nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		rooms, _ := resp.Data["rooms"].([]interface{})
		assert.Len(t, rooms, 1)
	})

	t.Run("price filter excludes room", func(t *testing.T) {
		// Effective price is the 80 discount, not the 100 base.
		w := suite.makeRequest(t, "GET", "/api/v1/rooms?minPrice=90", nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		rooms, _ := resp.Data["rooms"].([]interface{})
		assert.Empty(t, rooms)
	})

	t.Run("price filter includes room", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/v1/rooms?minPrice=50&maxPrice=90", nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		rooms, _ := resp.Data["rooms"].([]interface{})
		assert.Len(t, rooms, 1)
	})

	t.Run("room detail", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/rooms/%d", suite.roomID), nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		room, _ := resp.Data["room"].(map[string]interface{})
		require.NotNil(t, room)
		assert.Equal(t, "Harbor View Standard", room["name"])
	})

	t.Run("room not found", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/v1/rooms/9999", nil, "")

		require.Equal(t, http.StatusNotFound, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ROOM_NOT_FOUND", resp.Error.Code)
	})

	t.Run("reserve and release a date", func(t *testing.T) {
		date := futureDate(10)
		path := fmt.Sprintf("/api/v1/rooms/%d/book-date", suite.roomID)

		w := suite.makeRequest(t, "PATCH", path, map[string]interface{}{"date": date}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Ledger now reports the date as taken.
		w = suite.makeRequest(t, "GET",
			fmt.Sprintf("/api/v1/rooms/%d/availability?date=%s", suite.roomID, date), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, false, resp.Data["available"])

		// Second hold on the same date loses.
		w = suite.makeRequest(t, "PATCH", path, map[string]interface{}{"date": date}, token)
		require.Equal(t, http.StatusConflict, w.Code)
		resp = parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "DATE_TAKEN", resp.Error.Code)

		w = suite.makeRequest(t, "PATCH",
			fmt.Sprintf("/api/v1/rooms/%d/remove-date", suite.roomID),
			map[string]interface{}{"date": date}, token)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest(t, "GET",
			fmt.Sprintf("/api/v1/rooms/%d/availability?date=%s", suite.roomID, date), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		resp = parseResponse(t, w)
		assert.Equal(t, true, resp.Data["available"])
	})

	t.Run("availability with malformed date", func(t *testing.T) {
		w := suite.makeRequest(t, "GET",
			fmt.Sprintf("/api/v1/rooms/%d/availability?date=29-08-2026", suite.roomID), nil, "")

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_DATE", resp.Error.Code)
	})

	t.Run("book-date requires auth", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH",
			fmt.Sprintf("/api/v1/rooms/%d/book-date", suite.roomID),
			map[string]interface{}{"date": futureDate(11)}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// Flow 3: booking lifecycle
// =============================================================================

func TestFlow_BookingLifecycle(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.registerGuest(t, "booker@test.com")
	rival := suite.registerGuest(t, "rival@test.com")

	date := futureDate(5)
	var bookingID float64

	t.Run("create booking", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings", map[string]interface{}{
			"room_id":      suite.roomID,
			"booking_date": date,
			"guests":       2,
		}, token)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := parseResponse(t, w)
		b, _ := resp.Data["booking"].(map[string]interface{})
		require.NotNil(t, b)

		bookingID, _ = b["id"].(float64)
		require.NotZero(t, bookingID)
		// 80 discounted base plus one extra guest at 25%.
		assert.Equal(t, 100.0, b["total_price"])
		assert.Equal(t, "confirmed", b["status"])
		assert.NotEmpty(t, b["reference"])
	})

	t.Run("same date rejected for rival", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings", map[string]interface{}{
			"room_id":      suite.roomID,
			"booking_date": date,
			"guests":       1,
		}, rival)

		require.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "DATE_TAKEN", resp.Error.Code)
	})

	t.Run("guest count out of range", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings", map[string]interface{}{
			"room_id":      suite.roomID,
			"booking_date": futureDate(6),
			"guests":       4,
		}, token)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_GUESTS", resp.Error.Code)
	})

	t.Run("past date rejected", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings", map[string]interface{}{
			"room_id":      suite.roomID,
			"booking_date": futureDate(-1),
			"guests":       1,
		}, token)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_DATE", resp.Error.Code)
	})

	t.Run("list bookings", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/v1/bookings", nil, token)

		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		bookings, _ := resp.Data["bookings"].([]interface{})
		require.Len(t, bookings, 1)

		b, _ := bookings[0].(map[string]interface{})
		assert.Equal(t, date, b["booking_date"])
		assert.Equal(t, "Harbor View Standard", b["room_name"])
	})

	t.Run("rival cannot touch the booking", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH", fmt.Sprintf("/api/v1/bookings/%.0f", bookingID),
			map[string]interface{}{"booking_date": futureDate(8)}, rival)

		require.Equal(t, http.StatusForbidden, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "FORBIDDEN", resp.Error.Code)
	})

	t.Run("reschedule", func(t *testing.T) {
		newDate := futureDate(9)
		w := suite.makeRequest(t, "PATCH", fmt.Sprintf("/api/v1/bookings/%.0f", bookingID),
			map[string]interface{}{"booking_date": newDate}, token)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := parseResponse(t, w)
		b, _ := resp.Data["booking"].(map[string]interface{})
		require.NotNil(t, b)
		assert.Equal(t, newDate, b["booking_date"])

		// The old date is released, the rival can now take it.
		w = suite.makeRequest(t, "POST", "/api/v1/bookings", map[string]interface{}{
			"room_id":      suite.roomID,
			"booking_date": date,
			"guests":       1,
		}, rival)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("reschedule onto taken date", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH", fmt.Sprintf("/api/v1/bookings/%.0f", bookingID),
			map[string]interface{}{"booking_date": date}, token)

		require.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "DATE_TAKEN", resp.Error.Code)

		// The conflict must not leak the original hold.
		w = suite.makeRequest(t, "GET",
			fmt.Sprintf("/api/v1/rooms/%d/availability?date=%s", suite.roomID, futureDate(9)), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, parseResponse(t, w).Data["available"])
	})

	t.Run("cancel", func(t *testing.T) {
		w := suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/v1/bookings/%.0f", bookingID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Gone from the active list.
		w = suite.makeRequest(t, "GET", "/api/v1/bookings", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		bookings, _ := parseResponse(t, w).Data["bookings"].([]interface{})
		assert.Empty(t, bookings)

		// Its date is free again.
		w = suite.makeRequest(t, "GET",
			fmt.Sprintf("/api/v1/rooms/%d/availability?date=%s", suite.roomID, futureDate(9)), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, parseResponse(t, w).Data["available"])
	})

	t.Run("cancel twice", func(t *testing.T) {
		w := suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/v1/bookings/%.0f", bookingID), nil, token)

		require.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ALREADY_CANCELLED", resp.Error.Code)
	})

	t.Run("cancel window expired for same-day booking", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings", map[string]interface{}{
			"room_id":      suite.roomID,
			"booking_date": futureDate(0),
			"guests":       1,
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		b, _ := parseResponse(t, w).Data["booking"].(map[string]interface{})
		id, _ := b["id"].(float64)

		w = suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/v1/bookings/%.0f", id), nil, token)
		require.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "CANCEL_WINDOW_EXPIRED", resp.Error.Code)
	})
}

// =============================================================================
// Flow 4: reviews
// =============================================================================

func TestFlow_Reviews(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.registerGuest(t, "stayer@test.com")
	stranger := suite.registerGuest(t, "stranger@test.com")

	reviewPath := fmt.Sprintf("/api/v1/rooms/%d/review", suite.roomID)

	// The reviewer needs a stay on record.
	w := suite.makeRequest(t, "POST", "/api/v1/bookings", map[string]interface{}{
		"room_id":      suite.roomID,
		"booking_date": futureDate(3),
		"guests":       1,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("stranger is not eligible", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH", reviewPath, map[string]interface{}{
			"rating":  5,
			"comment": "Never actually stayed here",
		}, stranger)

		require.Equal(t, http.StatusForbidden, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "REVIEW_NOT_ELIGIBLE", resp.Error.Code)
	})

	t.Run("submit review", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH", reviewPath, map[string]interface{}{
			"rating":  4,
			"comment": "Lovely view, thin walls.",
		}, token)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := parseResponse(t, w)
		reviews, _ := resp.Data["reviews"].([]interface{})
		require.Len(t, reviews, 1)

		rv, _ := reviews[0].(map[string]interface{})
		assert.Equal(t, 4.0, rv["rating"])
		assert.Equal(t, "Test Guest", rv["name"])
	})

	t.Run("resubmission replaces the review", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH", reviewPath, map[string]interface{}{
			"rating":  5,
			"comment": "Walls fixed, upgrading to five.",
		}, token)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		reviews, _ := parseResponse(t, w).Data["reviews"].([]interface{})
		require.Len(t, reviews, 1)

		rv, _ := reviews[0].(map[string]interface{})
		assert.Equal(t, 5.0, rv["rating"])
		assert.Equal(t, "Walls fixed, upgrading to five.", rv["comment"])
	})

	t.Run("rating out of range", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH", reviewPath, map[string]interface{}{
			"rating":  6,
			"comment": "Too good",
		}, token)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_RATING", resp.Error.Code)
	})

	t.Run("list reviews and average", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/rooms/%d/reviews", suite.roomID), nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		reviews, _ := parseResponse(t, w).Data["reviews"].([]interface{})
		assert.Len(t, reviews, 1)

		w = suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/rooms/%d", suite.roomID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, 5.0, resp.Data["average_rating"])
	})
}
