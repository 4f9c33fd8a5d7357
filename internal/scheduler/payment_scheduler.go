package scheduler

import (
	"context"
	"log"
	"time"

	"travel-agency-api/internal/booking"
	"travel-agency-api/internal/email"
	"travel-agency-api/internal/worker"
)

// reminders cover final payments due within this window
const reminderWindow = 7 * 24 * time.Hour

// PaymentScheduler runs once a day and emails each user a reminder for
// every unpaid booking whose client final payment date falls within the
// next week.
type PaymentScheduler struct {
	bookings booking.BookingRepository
	sender   email.Sender
	pool     *worker.WorkerPool
	timer    *time.Timer
	ticker   *time.Ticker
}

func NewPaymentScheduler(bookings booking.BookingRepository, sender email.Sender, pool *worker.WorkerPool) *PaymentScheduler {
	return &PaymentScheduler{
		bookings: bookings,
		sender:   sender,
		pool:     pool,
	}
}

// Start runs one sweep immediately, then schedules a sweep shortly after
// midnight every day.
func (s *PaymentScheduler) Start() {
	log.Println("Payment reminder scheduler started")

	s.SendDueReminders()

	now := time.Now()
	nextRun := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 1, 0, 0, now.Location())
	log.Printf("Next reminder sweep scheduled for %s", nextRun.Format("2006-01-02 15:04:05"))

	s.timer = time.AfterFunc(time.Until(nextRun), func() {
		s.SendDueReminders()

		s.ticker = time.NewTicker(24 * time.Hour)
		go func() {
			for range s.ticker.C {
				s.SendDueReminders()
			}
		}()
	})
}

// Stop cancels the pending midnight timer and the daily ticker, so no
// sweep fires after shutdown.
func (s *PaymentScheduler) Stop() {
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.ticker != nil {
		s.ticker.Stop()
	}
	log.Println("Payment reminder scheduler stopped")
}

// SendDueReminders finds the bookings due and hands one email per
// booking to the worker pool. A failed send never stops the sweep.
func (s *PaymentScheduler) SendDueReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	rows, err := s.bookings.FindUpcomingFinalPayments(ctx, now.Unix(), now.Add(reminderWindow).Unix())
	if err != nil {
		log.Printf("[ERROR] finding upcoming final payments: %v", err)
		return
	}
	if len(rows) == 0 {
		return
	}
	log.Printf("Sending %d final payment reminders", len(rows))

	for _, row := range rows {
		reminder := email.PaymentReminder{
			UserName:         row.UserName,
			UserEmail:        row.UserEmail,
			ClientName:       row.ClientName,
			ReferenceCode:    row.ReferenceCode,
			BookingID:        row.BookingID,
			FinalPaymentDate: time.Unix(row.ClientFinalPaymentDate, 0).UTC(),
		}
		s.pool.Submit(func(ctx context.Context) error {
			if err := s.sender.SendFinalPaymentReminder(reminder); err != nil {
				log.Printf("[ERROR] sending reminder for booking %d: %v", reminder.BookingID, err)
			}
			return nil
		})
	}
}
