package booking

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	FindOwned(ctx context.Context, id uint64, userID string) (*Booking, error)
	FindRelations(ctx context.Context, bookingID uint64) (*Relations, error)
	FindAllByClient(ctx context.Context, clientID uint64) ([]Booking, error)
	FindAllByUser(ctx context.Context, userID string) ([]Booking, error)
	Create(ctx context.Context, record *Booking, related *Relations) error
	Update(ctx context.Context, bookingID uint64, columns map[string]any, related *RelationUpdates) error
	Delete(ctx context.Context, bookingID uint64) error
	FindUpcomingFinalPayments(ctx context.Context, from, until int64) ([]UpcomingFinalPayment, error)
}

type BookingRepositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *BookingRepositoryImpl {
	return &BookingRepositoryImpl{db: db}
}

// FindOwned resolves the booking and its ownership in one query by
// joining through the client. A booking that does not exist and a booking
// owned by someone else are indistinguishable to the caller: both come
// back as gorm.ErrRecordNotFound.
func (r *BookingRepositoryImpl) FindOwned(ctx context.Context, id uint64, userID string) (*Booking, error) {
	var record Booking
	err := r.db.WithContext(ctx).
		Joins("JOIN clients ON clients.id = bookings.client_id AND clients.user_id = ?", userID).
		Where("bookings.id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindRelations loads the five dependent collections concurrently. Any
// fetch failing fails the whole read.
func (r *BookingRepositoryImpl) FindRelations(ctx context.Context, bookingID uint64) (*Relations, error) {
	related := Relations{
		Confirmations:    []Confirmation{},
		PersonDetails:    []PersonDetail{},
		SignificantDates: []SignificantDate{},
		EmailAddresses:   []EmailAddress{},
		PhoneNumbers:     []PhoneNumber{},
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return r.db.WithContext(groupCtx).Where("booking_id = ?", bookingID).Find(&related.Confirmations).Error
	})
	group.Go(func() error {
		return r.db.WithContext(groupCtx).Where("booking_id = ?", bookingID).Find(&related.PersonDetails).Error
	})
	group.Go(func() error {
		return r.db.WithContext(groupCtx).Where("booking_id = ?", bookingID).Find(&related.SignificantDates).Error
	})
	group.Go(func() error {
		return r.db.WithContext(groupCtx).Where("booking_id = ?", bookingID).Find(&related.EmailAddresses).Error
	})
	group.Go(func() error {
		return r.db.WithContext(groupCtx).Where("booking_id = ?", bookingID).Find(&related.PhoneNumbers).Error
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &related, nil
}

func (r *BookingRepositoryImpl) FindAllByClient(ctx context.Context, clientID uint64) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date_created DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindAllByUser lists every booking under the caller's clients.
func (r *BookingRepositoryImpl) FindAllByUser(ctx context.Context, userID string) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Joins("JOIN clients ON clients.id = bookings.client_id AND clients.user_id = ?", userID).
		Order("bookings.date_created DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// Create inserts the booking and its dependent collections in a single
// transaction, so a failed dependent insert leaves no partial aggregate
// behind.
func (r *BookingRepositoryImpl) Create(ctx context.Context, record *Booking, related *Relations) error {
	record.DateCreated = time.Now().Unix()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if related == nil {
			return nil
		}

		if len(related.Confirmations) > 0 {
			for i := range related.Confirmations {
				related.Confirmations[i].BookingID = record.ID
			}
			if err := tx.Create(&related.Confirmations).Error; err != nil {
				return err
			}
		}
		if len(related.PersonDetails) > 0 {
			for i := range related.PersonDetails {
				related.PersonDetails[i].BookingID = record.ID
			}
			if err := tx.Create(&related.PersonDetails).Error; err != nil {
				return err
			}
		}
		if len(related.SignificantDates) > 0 {
			for i := range related.SignificantDates {
				related.SignificantDates[i].BookingID = record.ID
			}
			if err := tx.Create(&related.SignificantDates).Error; err != nil {
				return err
			}
		}
		if len(related.EmailAddresses) > 0 {
			for i := range related.EmailAddresses {
				related.EmailAddresses[i].BookingID = record.ID
			}
			if err := tx.Create(&related.EmailAddresses).Error; err != nil {
				return err
			}
		}
		if len(related.PhoneNumbers) > 0 {
			for i := range related.PhoneNumbers {
				related.PhoneNumbers[i].BookingID = record.ID
			}
			if err := tx.Create(&related.PhoneNumbers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// booking columns that partial updates may never touch
var protectedColumns = []string{"id", "date_created"}

// Update applies a partial update to the booking row and upserts the
// dependent collections in one transaction. Columns arrive already
// converted to snake_case. Collections absent from the payload are left
// alone; present entries with an id are updated in place, entries without
// one are inserted.
func (r *BookingRepositoryImpl) Update(ctx context.Context, bookingID uint64, columns map[string]any, related *RelationUpdates) error {
	for _, col := range protectedColumns {
		delete(columns, col)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(columns) > 0 {
			result := tx.Model(&Booking{}).Where("id = ?", bookingID).Updates(columns)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		if related == nil {
			return nil
		}

		if related.Confirmations != nil {
			entries := *related.Confirmations
			for i := range entries {
				entries[i].BookingID = bookingID
			}
			if err := upsert(tx, entries); err != nil {
				return err
			}
		}
		if related.PersonDetails != nil {
			entries := *related.PersonDetails
			for i := range entries {
				entries[i].BookingID = bookingID
			}
			if err := upsert(tx, entries); err != nil {
				return err
			}
		}
		if related.SignificantDates != nil {
			entries := *related.SignificantDates
			for i := range entries {
				entries[i].BookingID = bookingID
			}
			if err := upsert(tx, entries); err != nil {
				return err
			}
		}
		if related.EmailAddresses != nil {
			entries := *related.EmailAddresses
			for i := range entries {
				entries[i].BookingID = bookingID
			}
			if err := upsert(tx, entries); err != nil {
				return err
			}
		}
		if related.PhoneNumbers != nil {
			entries := *related.PhoneNumbers
			for i := range entries {
				entries[i].BookingID = bookingID
			}
			if err := upsert(tx, entries); err != nil {
				return err
			}
		}
		return nil
	})
}

type dependent interface {
	pk() uint64
}

func (c Confirmation) pk() uint64    { return c.ID }
func (p PersonDetail) pk() uint64    { return p.ID }
func (s SignificantDate) pk() uint64 { return s.ID }
func (e EmailAddress) pk() uint64    { return e.ID }
func (p PhoneNumber) pk() uint64     { return p.ID }

// upsert writes a dependent batch: fresh entries (zero id) are inserted,
// the rest replace their existing rows by primary key. The split keeps
// zero ids out of the upsert batch so autoincrement still applies.
func upsert[T dependent](tx *gorm.DB, entries []T) error {
	var inserts, updates []T
	for _, entry := range entries {
		if entry.pk() == 0 {
			inserts = append(inserts, entry)
		} else {
			updates = append(updates, entry)
		}
	}

	if len(inserts) > 0 {
		if err := tx.Create(&inserts).Error; err != nil {
			return err
		}
	}
	if len(updates) > 0 {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&updates).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the dependent collections first and the booking row
// last, all in one transaction. The aggregate either disappears entirely
// or not at all.
func (r *BookingRepositoryImpl) Delete(ctx context.Context, bookingID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&Confirmation{}, &PersonDetail{}, &SignificantDate{}, &EmailAddress{}, &PhoneNumber{},
		} {
			if err := tx.Where("booking_id = ?", bookingID).Delete(model).Error; err != nil {
				return err
			}
		}
		result := tx.Where("id = ?", bookingID).Delete(&Booking{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// FindUpcomingFinalPayments lists unpaid bookings whose client final
// payment date falls inside [from, until], joined out to the client name
// and the owning user's contact details.
func (r *BookingRepositoryImpl) FindUpcomingFinalPayments(ctx context.Context, from, until int64) ([]UpcomingFinalPayment, error) {
	var rows []UpcomingFinalPayment
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Select(
			"bookings.id AS booking_id",
			"bookings.reference_code",
			"bookings.client_final_payment_date",
			"clients.client_name",
			"users.name AS user_name",
			"users.email AS user_email",
		).
		Joins("JOIN clients ON clients.id = bookings.client_id").
		Joins("JOIN users ON users.id = clients.user_id").
		Where("bookings.paid = ?", false).
		Where("bookings.client_final_payment_date BETWEEN ? AND ?", from, until).
		Order("bookings.client_final_payment_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
