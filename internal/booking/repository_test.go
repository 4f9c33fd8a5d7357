package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"travel-agency-api/internal/client"
	"travel-agency-api/internal/user"
)

func setupTestDb(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory database
	sqlDb, err := db.DB()
	require.NoError(t, err)
	sqlDb.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&user.User{}, &client.Client{},
		&Booking{}, &Confirmation{}, &PersonDetail{}, &SignificantDate{}, &EmailAddress{}, &PhoneNumber{},
	))
	return db
}

func seedClient(t *testing.T, db *gorm.DB, userID string) uint64 {
	record := client.Client{UserID: userID, ClientName: "Ada Lovelace"}
	require.NoError(t, client.NewRepository(db).Create(context.Background(), &record))
	return record.ID
}

func TestCreateBooking_AggregateInsert(t *testing.T) {
	db := setupTestDb(t)
	repo := NewRepository(db)
	clientID := seedClient(t, db, "user-1")

	record := Booking{ClientID: clientID, ReferenceCode: "TRIP-1", Amount: 1200}
	related := Relations{
		Confirmations:    []Confirmation{{ConfirmationNumber: "CF-9", Supplier: "Air Canada"}},
		PersonDetails:    []PersonDetail{{Name: "Ada Lovelace", DateOfBirth: 100}, {Name: "Charles Babbage"}},
		SignificantDates: []SignificantDate{{Date: 200}},
		EmailAddresses:   []EmailAddress{{Email: "ada@example.com"}},
		PhoneNumbers:     []PhoneNumber{{Phone: "555-0100"}},
	}
	err := repo.Create(context.Background(), &record, &related)

	require.NoError(t, err)
	assert.NotZero(t, record.ID)
	assert.NotZero(t, record.DateCreated)

	stored, err := repo.FindRelations(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Confirmations, 1)
	assert.Len(t, stored.PersonDetails, 2)
	assert.Len(t, stored.SignificantDates, 1)
	assert.Len(t, stored.EmailAddresses, 1)
	assert.Len(t, stored.PhoneNumbers, 1)
	assert.Equal(t, record.ID, stored.Confirmations[0].BookingID)
}

func TestCreateBooking_RollsBackOnDependentFailure(t *testing.T) {
	db := setupTestDb(t)
	repo := NewRepository(db)
	clientID := seedClient(t, db, "user-1")

	record := Booking{ClientID: clientID, ReferenceCode: "TRIP-1"}
	// duplicate explicit ids force the dependent insert to fail
	related := Relations{
		PersonDetails: []PersonDetail{{ID: 1, Name: "Ada"}, {ID: 1, Name: "Charles"}},
	}
	err := repo.Create(context.Background(), &record, &related)
	require.Error(t, err)

	// the booking insert was rolled back with it
	var count int64
	db.Model(&Booking{}).Count(&count)
	assert.Zero(t, count)
}

func TestFindOwned_OwnershipThroughClient(t *testing.T) {
	db := setupTestDb(t)
	repo := NewRepository(db)
	clientID := seedClient(t, db, "user-1")

	record := Booking{ClientID: clientID, ReferenceCode: "TRIP-1"}
	require.NoError(t, repo.Create(context.Background(), &record, nil))

	found, err := repo.FindOwned(context.Background(), record.ID, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "TRIP-1", found.ReferenceCode)

	// foreign owner and missing booking are the same failure
	_, err = repo.FindOwned(context.Background(), record.ID, "user-2")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.FindOwned(context.Background(), 9999, "user-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindAllByUser_OwnerScoped(t *testing.T) {
	db := setupTestDb(t)
	repo := NewRepository(db)
	ownClient := seedClient(t, db, "user-1")
	foreignClient := seedClient(t, db, "user-2")

	require.NoError(t, repo.Create(context.Background(), &Booking{ClientID: ownClient, ReferenceCode: "TRIP-1"}, nil))
	require.NoError(t, repo.Create(context.Background(), &Booking{ClientID: ownClient, ReferenceCode: "TRIP-2"}, nil))
	require.NoError(t, repo.Create(context.Background(), &Booking{ClientID: foreignClient, ReferenceCode: "TRIP-3"}, nil))

	bookings, err := repo.FindAllByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
	for _, record := range bookings {
		assert.Equal(t, ownClient, record.ClientID)
	}

	bookings, err = repo.FindAllByUser(context.Background(), "user-3")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestFindRelations_EmptyCollections(t *testing.T) {
	db := setupTestDb(t)
	repo := NewRepository(db)
	clientID := seedClient(t, db, "user-1")

	record := Booking{ClientID: clientID}
	require.NoError(t, repo.Create(context.Background(), &record, nil))

	related, err := repo.FindRelations(context.Background(), record.ID)

	require.NoError(t, err)
	// empty slices, not nil, so the API serializes [] instead of null
	assert.NotNil(t, related.Confirmations)
	assert.Empty(t, related.Confirmations)
	assert.NotNil(t, related.PhoneNumbers)
	assert.Empty(t, related.PhoneNumbers)
}

func TestUpdateBooking_PartialColumnsAndUpserts(t *testing.T) {
	db := setupTestDb(t)
	repo := NewRepository(db)
	clientID := seedClient(t, db, "user-1")

	record := Booking{ClientID: clientID, ReferenceCode: "TRIP-1", Amount: 1200, Notes: "window seat"}
	related := Relations{
		Confirmations: []Confirmation{{ConfirmationNumber: "CF-1", Supplier: "Old Air"}},
		PhoneNumbers:  []PhoneNumber{{Phone: "555-0100"}},
	}
	require.NoError(t, repo.Create(context.Background(), &record, &related))

	existing := related.Confirmations[0]
	existing.ConfirmationNumber = "CF-2"
	updatedEntries := []Confirmation{existing, {ConfirmationNumber: "CF-NEW", Supplier: "New Air"}}

	err := repo.Update(context.Background(), record.ID,
		map[string]any{"amount": 1500.0},
		&RelationUpdates{Confirmations: &updatedEntries},
	)
	require.NoError(t, err)

	updated, err := repo.FindOwned(context.Background(), record.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, updated.Amount)
	assert.Equal(t, "window seat", updated.Notes)

	stored, err := repo.FindRelations(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Confirmations, 2)
	numbers := []string{stored.Confirmations[0].ConfirmationNumber, stored.Confirmations[1].ConfirmationNumber}
	assert.Contains(t, numbers, "CF-2")
	assert.Contains(t, numbers, "CF-NEW")
	// collections absent from the payload stay untouched
	assert.Len(t, stored.PhoneNumbers, 1)
}

func TestUpdateBooking_MissingRow(t *testing.T) {
	repo := NewRepository(setupTestDb(t))

	err := repo.Update(context.Background(), 9999, map[string]any{"amount": 1.0}, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteBooking_RemovesAggregate(t *testing.T) {
	db := setupTestDb(t)
	repo := NewRepository(db)
	clientID := seedClient(t, db, "user-1")

	record := Booking{ClientID: clientID}
	related := Relations{
		Confirmations:  []Confirmation{{ConfirmationNumber: "CF-1"}},
		EmailAddresses: []EmailAddress{{Email: "ada@example.com"}},
	}
	require.NoError(t, repo.Create(context.Background(), &record, &related))

	require.NoError(t, repo.Delete(context.Background(), record.ID))

	_, err := repo.FindOwned(context.Background(), record.ID, "user-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	db.Model(&Confirmation{}).Where("booking_id = ?", record.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&EmailAddress{}).Where("booking_id = ?", record.ID).Count(&count)
	assert.Zero(t, count)

	assert.ErrorIs(t, repo.Delete(context.Background(), record.ID), gorm.ErrRecordNotFound)
}

func TestFindUpcomingFinalPayments(t *testing.T) {
	db := setupTestDb(t)
	repo := NewRepository(db)

	owner := user.User{ID: "user-1", Name: "Grace", Email: "grace@example.com"}
	require.NoError(t, user.NewRepository(db).Create(context.Background(), &owner))
	clientID := seedClient(t, db, "user-1")

	due := Booking{ClientID: clientID, ReferenceCode: "DUE", ClientFinalPaymentDate: 500}
	paid := Booking{ClientID: clientID, ReferenceCode: "PAID", ClientFinalPaymentDate: 500, Paid: true}
	farOff := Booking{ClientID: clientID, ReferenceCode: "LATER", ClientFinalPaymentDate: 5000}
	require.NoError(t, repo.Create(context.Background(), &due, nil))
	require.NoError(t, repo.Create(context.Background(), &paid, nil))
	require.NoError(t, repo.Create(context.Background(), &farOff, nil))

	rows, err := repo.FindUpcomingFinalPayments(context.Background(), 0, 1000)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "DUE", rows[0].ReferenceCode)
	assert.Equal(t, "Ada Lovelace", rows[0].ClientName)
	assert.Equal(t, "grace@example.com", rows[0].UserEmail)
	assert.Equal(t, "Grace", rows[0].UserName)
}
