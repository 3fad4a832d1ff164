package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/hotel-reservation/events"
	"github.com/yeremiapane/hotel-reservation/models"
	"github.com/yeremiapane/hotel-reservation/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Error kinds. Controllers map ErrInvalidInput to 400 and ErrNotFound to 404.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type ServiceError struct {
	Kind    error
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func (e *ServiceError) Unwrap() error { return e.Kind }

var (
	ErrInvalidReference    = &ServiceError{Kind: ErrInvalidInput, Message: "Invalid room or customer ID"}
	ErrRoomNotAvailable    = &ServiceError{Kind: ErrInvalidInput, Message: "Room is not available"}
	ErrInvalidDateRange    = &ServiceError{Kind: ErrInvalidInput, Message: "Invalid date range"}
	ErrInvalidStatus       = &ServiceError{Kind: ErrInvalidInput, Message: "Invalid reservation status"}
	ErrReservationNotFound = &ServiceError{Kind: ErrNotFound, Message: "Reservation not found"}
)

// IdempotencyStore maps a client supplied key to the reservation it created.
// Remember keeps an existing mapping; Replace overwrites it.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (uint, bool, error)
	Remember(ctx context.Context, key string, reservationID uint) error
	Replace(ctx context.Context, key string, reservationID uint) error
}

type CreateReservationInput struct {
	RoomID         uint
	CustomerID     uint
	CheckInDate    models.Date
	CheckOutDate   models.Date
	IdempotencyKey string
}

// ReservationService owns every write that couples a reservation to its room.
type ReservationService struct {
	db          *gorm.DB
	publisher   events.Publisher
	idempotency IdempotencyStore
	producer    string
}

type Option func(*ReservationService)

func WithPublisher(p events.Publisher) Option {
	return func(s *ReservationService) { s.publisher = p }
}

func WithIdempotencyStore(store IdempotencyStore) Option {
	return func(s *ReservationService) { s.idempotency = store }
}

func WithProducerName(name string) Option {
	return func(s *ReservationService) { s.producer = name }
}

func NewReservationService(db *gorm.DB, opts ...Option) *ReservationService {
	s := &ReservationService{
		db:        db,
		publisher: events.Nop{},
		producer:  "hotel-api",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateReservation validates the request, claims the room and stores a CONFIRMED reservation.
// The second return value is true when an idempotent replay returned an earlier reservation.
func (s *ReservationService) CreateReservation(ctx context.Context, in CreateReservationInput) (*models.Reservation, bool, error) {
	// stale is set when the key points at a reservation that has since been deleted.
	stale := false
	if in.IdempotencyKey != "" && s.idempotency != nil {
		id, found, err := s.idempotency.Lookup(ctx, in.IdempotencyKey)
		if err != nil {
			utils.ErrorLogger.Printf("Idempotency lookup for %q failed, creating normally: %v", in.IdempotencyKey, err)
		} else if found {
			existing, err := s.GetReservation(ctx, id)
			if err == nil {
				return existing, true, nil
			}
			if !errors.Is(err, ErrNotFound) {
				return nil, false, err
			}
			stale = true
		}
	}

	var reservation models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidReference
			}
			return err
		}

		var customer models.Customer
		if err := tx.First(&customer, in.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidReference
			}
			return err
		}

		if !room.Available {
			return ErrRoomNotAvailable
		}

		nights := in.CheckInDate.DaysUntil(in.CheckOutDate)
		if nights <= 0 {
			return ErrInvalidDateRange
		}

		// Guarded claim: a concurrent booking that committed first leaves zero rows to update.
		claim := tx.Model(&models.Room{}).
			Where("id = ? AND available = ?", room.ID, true).
			Update("available", false)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return ErrRoomNotAvailable
		}
		room.Available = false

		reservation = models.Reservation{
			RoomID:       room.ID,
			CustomerID:   customer.ID,
			CheckInDate:  in.CheckInDate,
			CheckOutDate: in.CheckOutDate,
			TotalPrice:   float64(nights) * room.PricePerNight,
			Status:       models.StatusConfirmed,
		}
		if err := tx.Omit(clause.Associations).Create(&reservation).Error; err != nil {
			return err
		}
		reservation.Room = room
		reservation.Customer = customer
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if in.IdempotencyKey != "" && s.idempotency != nil {
		remember := s.idempotency.Remember
		if stale {
			remember = s.idempotency.Replace
		}
		if err := remember(ctx, in.IdempotencyKey, reservation.ID); err != nil {
			utils.ErrorLogger.Printf("Failed to remember idempotency key %q: %v", in.IdempotencyKey, err)
		}
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"reservation_id": reservation.ID,
		"room_id":        reservation.RoomID,
		"customer_id":    reservation.CustomerID,
		"nights":         reservation.Nights(),
		"total_price":    reservation.TotalPrice,
	}).Info("Reservation created")

	s.publish(ctx, events.EventReservationCreated, reservationKey(reservation.ID), reservation)
	s.publishRoom(ctx, reservation.Room)
	return &reservation, false, nil
}

// CancelReservation marks the reservation CANCELLED and frees its room. It does not look at the
// previous status, so cancelling twice is harmless and leaves the room available.
func (s *ReservationService) CancelReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Room").Preload("Customer").First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		if err := tx.Model(&reservation).Omit(clause.Associations).Update("status", models.StatusCancelled).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Room{}).Where("id = ?", reservation.RoomID).Update("available", true).Error; err != nil {
			return err
		}
		reservation.Status = models.StatusCancelled
		reservation.Room.Available = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d cancelled, room %d available again", reservation.ID, reservation.RoomID)

	s.publish(ctx, events.EventReservationCancelled, reservationKey(reservation.ID), reservation)
	s.publishRoom(ctx, reservation.Room)
	return &reservation, nil
}

// DeleteReservation removes the record only. A deleted CONFIRMED reservation keeps its room
// unavailable; cancel first to release it.
func (s *ReservationService) DeleteReservation(ctx context.Context, id uint) error {
	var reservation models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		return tx.Delete(&models.Reservation{}, reservation.ID).Error
	})
	if err != nil {
		return err
	}

	if reservation.Status.HoldsRoom() {
		utils.InfoLogger.Printf("Reservation %d deleted while %s; room %d stays unavailable", reservation.ID, reservation.Status, reservation.RoomID)
	} else {
		utils.InfoLogger.Printf("Reservation %d deleted", reservation.ID)
	}

	s.publish(ctx, events.EventReservationDeleted, reservationKey(reservation.ID), map[string]interface{}{
		"id":      reservation.ID,
		"room_id": reservation.RoomID,
		"status":  reservation.Status,
	})
	return nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.WithContext(ctx).Preload("Room").Preload("Customer").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

// ListReservations returns every reservation, optionally filtered by status.
func (s *ReservationService) ListReservations(ctx context.Context, status string) ([]models.Reservation, error) {
	query := s.db.WithContext(ctx).Preload("Room").Preload("Customer").Order("id ASC")
	if status != "" {
		parsed, err := models.ParseReservationStatus(status)
		if err != nil {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", parsed)
	}

	reservations := []models.Reservation{}
	if err := query.Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (s *ReservationService) publish(ctx context.Context, eventType, key string, data interface{}) {
	s.publisher.Publish(ctx, events.NewEnvelope(s.producer, eventType, key, data))
}

func (s *ReservationService) publishRoom(ctx context.Context, room models.Room) {
	s.publish(ctx, events.EventRoomAvailability, "room-"+strconv.FormatUint(uint64(room.ID), 10), map[string]interface{}{
		"room_id":     room.ID,
		"room_number": room.RoomNumber,
		"available":   room.Available,
	})
}

func reservationKey(id uint) string {
	return "reservation-" + strconv.FormatUint(uint64(id), 10)
}
