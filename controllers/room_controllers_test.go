package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/hotel-reservation/controllers"
	"github.com/yeremiapane/hotel-reservation/events"
	"github.com/yeremiapane/hotel-reservation/models"
	"gorm.io/gorm"
)

type capturePublisher struct {
	mu  sync.Mutex
	got []events.Envelope
}

func (p *capturePublisher) Publish(_ context.Context, env events.Envelope) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, env)
}

func setupRoomRouter(db *gorm.DB, pub events.Publisher) *gin.Engine {
	router := gin.New()
	ctrl := controllers.NewRoomController(db, pub, "hotel-api-test")
	router.GET("/rooms", ctrl.GetAllRooms)
	router.GET("/rooms/:id", ctrl.GetRoomByID)
	router.POST("/rooms", ctrl.CreateRoom)
	router.PUT("/rooms/:id", ctrl.UpdateRoom)
	router.DELETE("/rooms/:id", ctrl.DeleteRoom)
	return router
}

func TestCreateRoom_AvailabilityDefaultsToTrue(t *testing.T) {
	db := setupTestDB(t)
	router := setupRoomRouter(db, nil)

	w, resp := doJSON(t, router, http.MethodPost, "/rooms", map[string]interface{}{
		"room_number":     "101",
		"room_type":       "DOUBLE",
		"price_per_night": 100.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var room models.Room
	decode(t, resp.Data, &room)
	assert.True(t, room.Available)
	assert.Equal(t, 100.0, room.PricePerNight)

	w, resp = doJSON(t, router, http.MethodPost, "/rooms", map[string]interface{}{
		"room_number":     "102",
		"room_type":       "SUITE",
		"price_per_night": 250.0,
		"available":       false,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, resp.Data, &room)
	assert.False(t, room.Available)

	var stored models.Room
	require.NoError(t, db.First(&stored, room.ID).Error)
	assert.False(t, stored.Available)
}

func TestCreateRoom_Errors(t *testing.T) {
	db := setupTestDB(t)
	router := setupRoomRouter(db, nil)
	seedRoom(t, db, "101", 100, true)

	w, _ := doJSON(t, router, http.MethodPost, "/rooms", map[string]interface{}{"room_type": "DOUBLE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/rooms", map[string]interface{}{"room_number": "103"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := doJSON(t, router, http.MethodPost, "/rooms", map[string]interface{}{
		"room_number": "101",
		"room_type":   "SINGLE",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, resp.Status)
}

func TestListRooms_AvailableFilter(t *testing.T) {
	db := setupTestDB(t)
	router := setupRoomRouter(db, nil)
	seedRoom(t, db, "101", 100, true)
	seedRoom(t, db, "102", 120, false)
	seedRoom(t, db, "103", 90, true)

	tests := []struct {
		query string
		code  int
		want  []string
	}{
		{"", http.StatusOK, []string{"101", "102", "103"}},
		{"?available=true", http.StatusOK, []string{"101", "103"}},
		{"?available=false", http.StatusOK, []string{"102"}},
		{"?available=maybe", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run("filter"+tt.query, func(t *testing.T) {
			w, resp := doJSON(t, router, http.MethodGet, "/rooms"+tt.query, nil)
			require.Equal(t, tt.code, w.Code)
			if tt.want == nil {
				return
			}
			var rooms []models.Room
			decode(t, resp.Data, &rooms)
			numbers := make([]string, 0, len(rooms))
			for _, r := range rooms {
				numbers = append(numbers, r.RoomNumber)
			}
			assert.Equal(t, tt.want, numbers)
		})
	}
}

func TestGetRoom_NotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupRoomRouter(db, nil)

	w, resp := doJSON(t, router, http.MethodGet, "/rooms/7", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Room not found", resp.Message)
}

func TestUpdateRoom_PublishesAvailabilityChange(t *testing.T) {
	db := setupTestDB(t)
	pub := &capturePublisher{}
	router := setupRoomRouter(db, pub)
	room := seedRoom(t, db, "101", 100, true)
	path := fmt.Sprintf("/rooms/%d", room.ID)

	// No availability in the body: the flag is left alone and nothing is published.
	w, resp := doJSON(t, router, http.MethodPut, path, map[string]interface{}{
		"room_number":     "101A",
		"room_type":       "DELUXE",
		"price_per_night": 150.0,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Room
	decode(t, resp.Data, &updated)
	assert.Equal(t, "101A", updated.RoomNumber)
	assert.Equal(t, 150.0, updated.PricePerNight)
	assert.True(t, updated.Available)
	assert.Empty(t, pub.got)

	w, resp = doJSON(t, router, http.MethodPut, path, map[string]interface{}{
		"room_number":     "101A",
		"room_type":       "DELUXE",
		"price_per_night": 150.0,
		"available":       false,
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, resp.Data, &updated)
	assert.False(t, updated.Available)

	require.Len(t, pub.got, 1)
	assert.Equal(t, events.EventRoomAvailability, pub.got[0].EventType)
	assert.Equal(t, fmt.Sprintf("room-%d", room.ID), pub.got[0].Key)
	assert.Equal(t, "hotel-api-test", pub.got[0].Producer)

	w, _ = doJSON(t, router, http.MethodPut, "/rooms/999", map[string]interface{}{
		"room_number": "X",
		"room_type":   "Y",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRoom(t *testing.T) {
	db := setupTestDB(t)
	router := setupRoomRouter(db, nil)
	room := seedRoom(t, db, "101", 100, true)

	w, resp := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/rooms/%d", room.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Status)

	w, resp = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/rooms/%d", room.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Room not found", resp.Message)
}
