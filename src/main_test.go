package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"ota/src/db"
	"ota/src/ident"
	"ota/src/models"
	"ota/src/types"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	DB     *gorm.DB
	Router *gin.Engine

	userID     uint
	activityID string
	scheduleID uint
}

func (s *TestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	logger = zerolog.Nop()

	dsn := "file:" + filepath.Join(s.T().TempDir(), "ota.db") + "?_busy_timeout=10000&_txlock=immediate"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.Require().NoError(gdb.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.Schedule{},
		&models.Booking{},
	))
	db.NewDB(gdb)
	setupCore(gdb)

	user := models.User{Name: "Grace", Email: "grace@example.com"}
	s.Require().NoError(gdb.Create(&user).Error)
	activity := models.Activity{
		ID:         "24050101",
		Title:      "Sunset Kayak Trip",
		Slug:       "sunset-kayak-trip",
		Location:   "Split",
		UnitPrice:  40,
		Status:     types.ACTIVITY_OPEN,
		SupplierID: user.ID,
	}
	s.Require().NoError(gdb.Create(&activity).Error)
	schedule := models.Schedule{
		ActivityID:  activity.ID,
		StartsAt:    time.Now().Add(48 * time.Hour),
		EndsAt:      time.Now().Add(50 * time.Hour),
		MaxCapacity: 12,
	}
	s.Require().NoError(gdb.Create(&schedule).Error)

	s.DB = gdb
	s.Router = setupRouter()
	s.userID = user.ID
	s.activityID = activity.ID
	s.scheduleID = schedule.ID
}

func (s *TestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *TestSuite) TestHealthzOK() {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *TestSuite) TestCreateBooking() {
	w := s.postJSON("/api/bookings", types.CreateBookingRequestBody{
		ScheduleID:   s.scheduleID,
		UserID:       s.userID,
		ActivityID:   s.activityID,
		Participants: 2,
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)

	var resp struct {
		Data models.Booking `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), uint(2), resp.Data.Participants)
	assert.Equal(s.T(), float32(80), resp.Data.TotalPrice)
	assert.Equal(s.T(), ident.DatePrefix(time.Now()), resp.Data.ID[:6])

	var schedule models.Schedule
	s.Require().NoError(s.DB.First(&schedule, s.scheduleID).Error)
	assert.Equal(s.T(), uint(2), schedule.CurrentBookings)
}

func (s *TestSuite) TestCreateBookingSoldOut() {
	s.Require().NoError(s.DB.Model(&models.Schedule{}).
		Where("id = ?", s.scheduleID).
		Update("current_bookings", 12).Error)

	w := s.postJSON("/api/bookings", types.CreateBookingRequestBody{
		ScheduleID:   s.scheduleID,
		UserID:       s.userID,
		ActivityID:   s.activityID,
		Participants: 1,
	})
	assert.Equal(s.T(), http.StatusConflict, w.Code)
	assert.Equal(s.T(), "capacity_exceeded", jsonField(w.Body.Bytes(), "reason"))
}

func (s *TestSuite) TestCreateBookingUnknownSchedule() {
	w := s.postJSON("/api/bookings", types.CreateBookingRequestBody{
		ScheduleID:   9999,
		UserID:       s.userID,
		ActivityID:   s.activityID,
		Participants: 1,
	})
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *TestSuite) TestCancelBooking() {
	b, err := bookingAllocator.Book(context.Background(), s.scheduleID, s.userID, s.activityID, 3)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/bookings/%s/cancel", b.ID), nil)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	assert.Equal(s.T(), http.StatusNoContent, w.Code)

	var schedule models.Schedule
	s.Require().NoError(s.DB.First(&schedule, s.scheduleID).Error)
	assert.Equal(s.T(), uint(0), schedule.CurrentBookings)
}

func (s *TestSuite) TestCreateActivityMintsSequentialIds() {
	body := types.CreateActivityRequestBody{
		Title:      "Wine Cellar Tasting",
		Location:   "Porto",
		UnitPrice:  25,
		SupplierID: s.userID,
		Publish:    true,
	}
	prefix := ident.DatePrefix(time.Now())

	w := s.postJSON("/api/activities", body)
	assert.Equal(s.T(), http.StatusCreated, w.Code)
	assert.Equal(s.T(), prefix+"01", jsonField(w.Body.Bytes(), "id"))

	body.Title = "Harbor Night Cruise"
	w = s.postJSON("/api/activities", body)
	assert.Equal(s.T(), http.StatusCreated, w.Code)
	assert.Equal(s.T(), prefix+"02", jsonField(w.Body.Bytes(), "id"))

	var activity models.Activity
	s.Require().NoError(s.DB.Where(&models.Activity{ID: prefix + "01"}).First(&activity).Error)
	assert.Equal(s.T(), "wine-cellar-tasting", activity.Slug)
	assert.Equal(s.T(), types.ACTIVITY_OPEN, activity.Status)
}

func (s *TestSuite) TestCatalogListsOpenActivities() {
	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), 1, resp.Count)
}

func jsonField(body []byte, key string) string {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	v, _ := m[key].(string)
	return v
}

func TestMainSuite(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
