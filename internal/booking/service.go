package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"travel-agency-api/internal/client"
	apperrors "travel-agency-api/internal/errors"
	"travel-agency-api/internal/queue"
	"travel-agency-api/internal/utils"
	"travel-agency-api/internal/worker"
)

// EventPublisher is the slice of the queue publisher the service needs.
type EventPublisher interface {
	Publish(event queue.BookingEvent) error
}

type Service interface {
	GetBooking(ctx context.Context, id uint64, userID string) (*BookingWithRelations, error)
	ListBookings(ctx context.Context, userID string) ([]BookingWithRelations, error)
	ListByClient(ctx context.Context, clientID uint64, userID string) ([]BookingWithRelations, error)
	CreateBooking(ctx context.Context, userID string, record *Booking, related *Relations) (*BookingWithRelations, error)
	UpdateBooking(ctx context.Context, id uint64, userID string, fields map[string]any, related *RelationUpdates) (*BookingWithRelations, error)
	DeleteBooking(ctx context.Context, id uint64, userID string) error
}

type DefaultService struct {
	repository BookingRepository
	clients    client.ClientRepository
	publisher  EventPublisher
	pool       *worker.WorkerPool
}

// NewService wires the booking service. publisher and pool may be nil,
// in which case lifecycle events are skipped.
func NewService(repository BookingRepository, clients client.ClientRepository, publisher EventPublisher, pool *worker.WorkerPool) *DefaultService {
	return &DefaultService{repository: repository, clients: clients, publisher: publisher, pool: pool}
}

func (s *DefaultService) GetBooking(ctx context.Context, id uint64, userID string) (*BookingWithRelations, error) {
	record, err := s.repository.FindOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Booking not found", err)
		}
		return nil, apperrors.Internal(err)
	}

	related, err := s.repository.FindRelations(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &BookingWithRelations{Booking: *record, Relations: *related}, nil
}

func (s *DefaultService) ListBookings(ctx context.Context, userID string) ([]BookingWithRelations, error) {
	bookings, err := s.repository.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	result := make([]BookingWithRelations, 0, len(bookings))
	for _, record := range bookings {
		related, err := s.repository.FindRelations(ctx, record.ID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		result = append(result, BookingWithRelations{Booking: record, Relations: *related})
	}
	return result, nil
}

func (s *DefaultService) ListByClient(ctx context.Context, clientID uint64, userID string) ([]BookingWithRelations, error) {
	// ownership gate: listing through a client someone else owns is a 404
	if _, err := s.clients.FindByID(ctx, clientID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Client not found", err)
		}
		return nil, apperrors.Internal(err)
	}

	bookings, err := s.repository.FindAllByClient(ctx, clientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	result := make([]BookingWithRelations, 0, len(bookings))
	for _, record := range bookings {
		related, err := s.repository.FindRelations(ctx, record.ID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		result = append(result, BookingWithRelations{Booking: record, Relations: *related})
	}
	return result, nil
}

func (s *DefaultService) CreateBooking(ctx context.Context, userID string, record *Booking, related *Relations) (*BookingWithRelations, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("Missing user", nil)
	}
	if _, err := s.clients.FindByID(ctx, record.ClientID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Client not found", err)
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.repository.Create(ctx, record, related); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.publishEvent(queue.EventBookingCreated, record, userID)

	stored, err := s.repository.FindRelations(ctx, record.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &BookingWithRelations{Booking: *record, Relations: *stored}, nil
}

// date fields that may arrive as date strings on partial updates
var dateFields = []string{
	"travelDate",
	"clientFinalPaymentDate",
	"supplierFinalPaymentDate",
	"bookingDate",
	"invoicedDate",
	"paymentDate",
}

func (s *DefaultService) UpdateBooking(ctx context.Context, id uint64, userID string, fields map[string]any, related *RelationUpdates) (*BookingWithRelations, error) {
	if _, err := s.repository.FindOwned(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Booking not found", err)
		}
		return nil, apperrors.Internal(err)
	}

	for _, key := range dateFields {
		if raw, ok := fields[key]; ok {
			if ts, ok := utils.ToUnixTimestamp(raw); ok {
				fields[key] = ts
			}
		}
	}
	columns := utils.CamelToSnakeMap(fields)
	delete(columns, "client_id") // bookings never move between clients

	if err := s.repository.Update(ctx, id, columns, related); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Booking not found", err)
		}
		return nil, apperrors.Internal(err)
	}

	return s.GetBooking(ctx, id, userID)
}

func (s *DefaultService) DeleteBooking(ctx context.Context, id uint64, userID string) error {
	record, err := s.repository.FindOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Booking not found", err)
		}
		return apperrors.Internal(err)
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Booking not found", err)
		}
		return apperrors.Internal(err)
	}

	s.publishEvent(queue.EventBookingDeleted, record, userID)
	return nil
}

func (s *DefaultService) publishEvent(eventType string, record *Booking, userID string) {
	if s.publisher == nil || s.pool == nil {
		return
	}
	event := queue.BookingEvent{
		Type:          eventType,
		BookingID:     record.ID,
		ClientID:      record.ClientID,
		UserID:        userID,
		ReferenceCode: record.ReferenceCode,
		OccurredAt:    time.Now().Unix(),
	}
	s.pool.Submit(func(ctx context.Context) error {
		if err := s.publisher.Publish(event); err != nil {
			log.Printf("[ERROR] publishing %s event for booking %d: %v", event.Type, event.BookingID, err)
		}
		return nil
	})
}
