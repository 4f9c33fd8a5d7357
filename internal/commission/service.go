package commission

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"travel-agency-api/internal/booking"
	"travel-agency-api/internal/client"
	apperrors "travel-agency-api/internal/errors"
	"travel-agency-api/internal/utils"
)

type Service interface {
	CreateCommission(ctx context.Context, userID string, input *CreateInput) (*Commission, error)
	ListCommissions(ctx context.Context, userID string) ([]Commission, error)
	GetCommission(ctx context.Context, id uint64, userID string) (*Commission, error)
	UpdateCommission(ctx context.Context, id uint64, userID string, fields map[string]any) (*Commission, error)
	DeleteCommission(ctx context.Context, id uint64, userID string) error
	ReportRows(ctx context.Context, userID string) ([]map[string]any, error)
}

// CreateInput is what the caller provides; everything else on the record
// is snapshotted from the booking and client or computed.
type CreateInput struct {
	BookingID   uint64
	Rate        float64
	Commission  float64
	Invoiced    bool
	Paid        bool
	PaymentDate *int64
}

type DefaultService struct {
	repository CommissionRepository
	bookings   booking.BookingRepository
	clients    client.ClientRepository
}

func NewService(repository CommissionRepository, bookings booking.BookingRepository, clients client.ClientRepository) *DefaultService {
	return &DefaultService{repository: repository, bookings: bookings, clients: clients}
}

// rateAmount computes the earned amount from a commission base and a
// percentage rate.
func rateAmount(commission, rate float64) float64 {
	return commission * (rate / 100)
}

func (s *DefaultService) CreateCommission(ctx context.Context, userID string, input *CreateInput) (*Commission, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("Missing user", nil)
	}

	bookingRecord, err := s.bookings.FindOwned(ctx, input.BookingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Booking not found", err)
		}
		return nil, apperrors.Internal(err)
	}
	clientRecord, err := s.clients.FindByID(ctx, bookingRecord.ClientID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Client not found", err)
		}
		return nil, apperrors.Internal(err)
	}

	record := Commission{
		BookingID:            bookingRecord.ID,
		UserID:               userID,
		ClientID:             clientRecord.ID,
		ClientName:           clientRecord.ClientName,
		BookingTravelDate:    bookingRecord.TravelDate,
		FinalPaymentDate:     bookingRecord.ClientFinalPaymentDate,
		Rate:                 input.Rate,
		Commission:           input.Commission,
		CommissionRateAmount: rateAmount(input.Commission, input.Rate),
		Invoiced:             input.Invoiced,
		Paid:                 input.Paid,
		PaymentDate:          input.PaymentDate,
	}
	if err := s.repository.Create(ctx, &record); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &record, nil
}

func (s *DefaultService) ListCommissions(ctx context.Context, userID string) ([]Commission, error) {
	commissions, err := s.repository.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if commissions == nil {
		commissions = []Commission{}
	}
	return commissions, nil
}

func (s *DefaultService) GetCommission(ctx context.Context, id uint64, userID string) (*Commission, error) {
	record, err := s.repository.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Commission not found", err)
		}
		return nil, apperrors.Internal(err)
	}
	return record, nil
}

func (s *DefaultService) UpdateCommission(ctx context.Context, id uint64, userID string, fields map[string]any) (*Commission, error) {
	// the computed amount only moves when both inputs move together;
	// drop both key spellings so a caller-supplied value never lands
	delete(fields, "commissionRateAmount")
	delete(fields, "commission_rate_amount")
	rate, hasRate := asFloat(fields["rate"])
	base, hasCommission := asFloat(fields["commission"])
	if hasRate && hasCommission {
		fields["commissionRateAmount"] = rateAmount(base, rate)
	}

	if raw, ok := fields["paymentDate"]; ok {
		if ts, ok := utils.ToUnixTimestamp(raw); ok {
			fields["paymentDate"] = ts
		}
	}

	record, err := s.repository.Update(ctx, id, userID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Commission not found", err)
		}
		return nil, apperrors.Internal(err)
	}
	return record, nil
}

func (s *DefaultService) DeleteCommission(ctx context.Context, id uint64, userID string) error {
	if err := s.repository.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Commission not found", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

// ReportRows returns the caller's commissions as camelCase maps, the row
// shape the report endpoints serialize.
func (s *DefaultService) ReportRows(ctx context.Context, userID string) ([]map[string]any, error) {
	rows, err := s.repository.FindAllRowsByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	result := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		result = append(result, utils.SnakeToCamelMap(row))
	}
	return result, nil
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
