package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-reservation/models"
	"github.com/yeremiapane/hotel-reservation/services"
	"github.com/yeremiapane/hotel-reservation/utils"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(service *services.ReservationService) *ReservationController {
	return &ReservationController{Service: service}
}

type createReservationRequest struct {
	RoomID       uint        `json:"room_id" binding:"required"`
	CustomerID   uint        `json:"customer_id" binding:"required"`
	CheckInDate  models.Date `json:"check_in_date"`
	CheckOutDate models.Date `json:"check_out_date"`
}

// GetAllReservations -> list, optionally ?status=CONFIRMED|CANCELLED|COMPLETED
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	reservations, err := rc.Service.ListReservations(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	reservation, err := rc.Service.GetReservation(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.CheckInDate.IsZero() || req.CheckOutDate.IsZero() {
		utils.RespondError(c, http.StatusBadRequest, ErrDatesRequired)
		return
	}

	reservation, replayed, err := rc.Service.CreateReservation(c.Request.Context(), services.CreateReservationInput{
		RoomID:         req.RoomID,
		CustomerID:     req.CustomerID,
		CheckInDate:    req.CheckInDate,
		CheckOutDate:   req.CheckOutDate,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if replayed {
		utils.RespondJSON(c, http.StatusOK, "Reservation already created", reservation)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation created successfully", reservation)
}

func (rc *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	reservation, err := rc.Service.CancelReservation(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled successfully.", reservation)
}

func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := rc.Service.DeleteReservation(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation deleted.", nil)
}
