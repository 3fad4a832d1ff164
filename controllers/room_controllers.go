package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-reservation/events"
	"github.com/yeremiapane/hotel-reservation/models"
	"github.com/yeremiapane/hotel-reservation/utils"
	"gorm.io/gorm"
)

type RoomController struct {
	DB        *gorm.DB
	Publisher events.Publisher
	Producer  string
}

func NewRoomController(db *gorm.DB, publisher events.Publisher, producer string) *RoomController {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &RoomController{DB: db, Publisher: publisher, Producer: producer}
}

type roomRequest struct {
	RoomNumber    string  `json:"room_number" binding:"required"`
	RoomType      string  `json:"room_type" binding:"required"`
	PricePerNight float64 `json:"price_per_night"`
	Available     *bool   `json:"available"` // optional, default true
}

// GetAllRooms -> all rooms, optionally filtered with ?available=true|false
func (rc *RoomController) GetAllRooms(c *gin.Context) {
	query := rc.DB.WithContext(c.Request.Context()).Order("id ASC")
	if raw, ok := c.GetQuery("available"); ok {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid available filter %q", raw))
			return
		}
		query = query.Where("available = ?", available)
	}

	rooms := []models.Room{}
	if err := query.Find(&rooms).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of rooms", rooms)
}

func (rc *RoomController) GetRoomByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var room models.Room
	if err := rc.DB.WithContext(c.Request.Context()).First(&room, id).Error; err != nil {
		rc.respondLookupError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Room detail", room)
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	room := models.Room{
		RoomNumber:    req.RoomNumber,
		RoomType:      req.RoomType,
		PricePerNight: req.PricePerNight,
		Available:     true,
	}
	if req.Available != nil {
		room.Available = *req.Available
	}

	// Duplicate room numbers surface as a constraint error from the store.
	if err := rc.DB.WithContext(c.Request.Context()).Create(&room).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New room created: %s (type=%s, available=%t)", room.RoomNumber, room.RoomType, room.Available)
	utils.RespondJSON(c, http.StatusCreated, "Room created successfully", room)
}

// UpdateRoom overwrites number, type, price and availability. Availability is only changed when
// the body carries it.
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var room models.Room
	if err := rc.DB.WithContext(c.Request.Context()).First(&room, id).Error; err != nil {
		rc.respondLookupError(c, err)
		return
	}

	wasAvailable := room.Available
	room.RoomNumber = req.RoomNumber
	room.RoomType = req.RoomType
	room.PricePerNight = req.PricePerNight
	if req.Available != nil {
		room.Available = *req.Available
	}

	if err := rc.DB.WithContext(c.Request.Context()).Save(&room).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if room.Available != wasAvailable {
		rc.Publisher.Publish(c.Request.Context(), events.NewEnvelope(rc.Producer, events.EventRoomAvailability,
			"room-"+strconv.FormatUint(uint64(room.ID), 10), map[string]interface{}{
				"room_id":     room.ID,
				"room_number": room.RoomNumber,
				"available":   room.Available,
			}))
	}

	utils.InfoLogger.Printf("Room %d updated: %s (available=%t)", room.ID, room.RoomNumber, room.Available)
	utils.RespondJSON(c, http.StatusOK, "Room updated successfully", room)
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result := rc.DB.WithContext(c.Request.Context()).Delete(&models.Room{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, ErrRoomNotFound)
		return
	}

	utils.InfoLogger.Printf("Room %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Room deleted successfully", nil)
}

func (rc *RoomController) respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, ErrRoomNotFound)
		return
	}
	utils.RespondError(c, http.StatusInternalServerError, err)
}
