package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-agency-api/internal/booking"
)

// stubBookingRepository satisfies the repository with nothing due.
type stubBookingRepository struct{}

func (stubBookingRepository) FindOwned(ctx context.Context, id uint64, userID string) (*booking.Booking, error) {
	return nil, nil
}

func (stubBookingRepository) FindRelations(ctx context.Context, bookingID uint64) (*booking.Relations, error) {
	return nil, nil
}

func (stubBookingRepository) FindAllByClient(ctx context.Context, clientID uint64) ([]booking.Booking, error) {
	return nil, nil
}

func (stubBookingRepository) FindAllByUser(ctx context.Context, userID string) ([]booking.Booking, error) {
	return nil, nil
}

func (stubBookingRepository) Create(ctx context.Context, record *booking.Booking, related *booking.Relations) error {
	return nil
}

func (stubBookingRepository) Update(ctx context.Context, bookingID uint64, columns map[string]any, related *booking.RelationUpdates) error {
	return nil
}

func (stubBookingRepository) Delete(ctx context.Context, bookingID uint64) error {
	return nil
}

func (stubBookingRepository) FindUpcomingFinalPayments(ctx context.Context, from, until int64) ([]booking.UpcomingFinalPayment, error) {
	return nil, nil
}

func TestStop_CancelsPendingSweep(t *testing.T) {
	s := NewPaymentScheduler(stubBookingRepository{}, nil, nil)
	s.Start()
	require.NotNil(t, s.timer)

	s.Stop()

	// an already-cancelled timer reports false on a second Stop
	assert.False(t, s.timer.Stop())
}
