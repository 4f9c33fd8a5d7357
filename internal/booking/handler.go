package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "travel-agency-api/internal/errors"
	"travel-agency-api/internal/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Input DTOs accept dates as either unix numbers or date strings.

type BookingInput struct {
	ClientID                 uint64           `json:"clientId" binding:"required"`
	TravelDate               utils.Timestamp  `json:"travelDate"`
	ClientFinalPaymentDate   utils.Timestamp  `json:"clientFinalPaymentDate"`
	SupplierFinalPaymentDate utils.Timestamp  `json:"supplierFinalPaymentDate"`
	BookingDate              utils.Timestamp  `json:"bookingDate"`
	InvoicedDate             utils.Timestamp  `json:"invoicedDate"`
	ReferenceCode            string           `json:"referenceCode"`
	Amount                   float64          `json:"amount"`
	Notes                    string           `json:"notes"`
	Invoiced                 bool             `json:"invoiced"`
	Paid                     bool             `json:"paid"`
	PaymentDate              *utils.Timestamp `json:"paymentDate"`
}

type ConfirmationInput struct {
	ID                 uint64 `json:"id"`
	ConfirmationNumber string `json:"confirmationNumber"`
	Supplier           string `json:"supplier"`
}

type PersonDetailInput struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	DateOfBirth utils.Timestamp `json:"dateOfBirth"`
}

type SignificantDateInput struct {
	ID   uint64          `json:"id"`
	Date utils.Timestamp `json:"date"`
}

type EmailAddressInput struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

type PhoneNumberInput struct {
	ID    uint64 `json:"id"`
	Phone string `json:"phone"`
}

type RelatedDataInput struct {
	Confirmations    *[]ConfirmationInput    `json:"confirmations"`
	PersonDetails    *[]PersonDetailInput    `json:"personDetails"`
	SignificantDates *[]SignificantDateInput `json:"significantDates"`
	EmailAddresses   *[]EmailAddressInput    `json:"emailAddresses"`
	PhoneNumbers     *[]PhoneNumberInput     `json:"phoneNumbers"`
}

type CreateBookingRequest struct {
	Booking     *BookingInput     `json:"booking" binding:"required"`
	RelatedData *RelatedDataInput `json:"relatedData"`
}

type UpdateBookingRequest struct {
	Booking     map[string]any    `json:"booking"`
	RelatedData *RelatedDataInput `json:"relatedData"`
}

func (in *BookingInput) toModel() *Booking {
	return &Booking{
		ClientID:                 in.ClientID,
		TravelDate:               in.TravelDate.Int64(),
		ClientFinalPaymentDate:   in.ClientFinalPaymentDate.Int64(),
		SupplierFinalPaymentDate: in.SupplierFinalPaymentDate.Int64(),
		BookingDate:              in.BookingDate.Int64(),
		InvoicedDate:             in.InvoicedDate.Int64(),
		ReferenceCode:            in.ReferenceCode,
		Amount:                   in.Amount,
		Notes:                    in.Notes,
		Invoiced:                 in.Invoiced,
		Paid:                     in.Paid,
		PaymentDate:              in.PaymentDate.Int64Ptr(),
	}
}

func (in *RelatedDataInput) toRelations() *Relations {
	related := &Relations{
		Confirmations:    []Confirmation{},
		PersonDetails:    []PersonDetail{},
		SignificantDates: []SignificantDate{},
		EmailAddresses:   []EmailAddress{},
		PhoneNumbers:     []PhoneNumber{},
	}
	if in == nil {
		return related
	}
	updates := in.toUpdates()
	if updates.Confirmations != nil {
		related.Confirmations = *updates.Confirmations
	}
	if updates.PersonDetails != nil {
		related.PersonDetails = *updates.PersonDetails
	}
	if updates.SignificantDates != nil {
		related.SignificantDates = *updates.SignificantDates
	}
	if updates.EmailAddresses != nil {
		related.EmailAddresses = *updates.EmailAddresses
	}
	if updates.PhoneNumbers != nil {
		related.PhoneNumbers = *updates.PhoneNumbers
	}
	return related
}

func (in *RelatedDataInput) toUpdates() *RelationUpdates {
	if in == nil {
		return nil
	}
	updates := &RelationUpdates{}
	if in.Confirmations != nil {
		entries := make([]Confirmation, 0, len(*in.Confirmations))
		for _, e := range *in.Confirmations {
			entries = append(entries, Confirmation{ID: e.ID, ConfirmationNumber: e.ConfirmationNumber, Supplier: e.Supplier})
		}
		updates.Confirmations = &entries
	}
	if in.PersonDetails != nil {
		entries := make([]PersonDetail, 0, len(*in.PersonDetails))
		for _, e := range *in.PersonDetails {
			entries = append(entries, PersonDetail{ID: e.ID, Name: e.Name, DateOfBirth: e.DateOfBirth.Int64()})
		}
		updates.PersonDetails = &entries
	}
	if in.SignificantDates != nil {
		entries := make([]SignificantDate, 0, len(*in.SignificantDates))
		for _, e := range *in.SignificantDates {
			entries = append(entries, SignificantDate{ID: e.ID, Date: e.Date.Int64()})
		}
		updates.SignificantDates = &entries
	}
	if in.EmailAddresses != nil {
		entries := make([]EmailAddress, 0, len(*in.EmailAddresses))
		for _, e := range *in.EmailAddresses {
			entries = append(entries, EmailAddress{ID: e.ID, Email: e.Email})
		}
		updates.EmailAddresses = &entries
	}
	if in.PhoneNumbers != nil {
		entries := make([]PhoneNumber, 0, len(*in.PhoneNumbers))
		for _, e := range *in.PhoneNumbers {
			entries = append(entries, PhoneNumber{ID: e.ID, Phone: e.Phone})
		}
		updates.PhoneNumbers = &entries
	}
	return updates
}

func (h *Handler) CreateBooking(ctx *gin.Context) {
	var form CreateBookingRequest
	if err := ctx.ShouldBindJSON(&form); err != nil {
		ctx.Error(apperrors.BadRequest("Invalid payload", err))
		return
	}

	record, err := h.service.CreateBooking(
		ctx.Request.Context(),
		ctx.GetString("user_id"),
		form.Booking.toModel(),
		form.RelatedData.toRelations(),
	)
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, record)
}

func (h *Handler) GetBooking(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		ctx.Error(apperrors.BadRequest("Invalid booking id", err))
		return
	}

	record, err := h.service.GetBooking(ctx.Request.Context(), id, ctx.GetString("user_id"))
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

func (h *Handler) ListBookings(ctx *gin.Context) {
	bookings, err := h.service.ListBookings(ctx.Request.Context(), ctx.GetString("user_id"))
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, bookings)
}

func (h *Handler) ListByClient(ctx *gin.Context) {
	clientID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		ctx.Error(apperrors.BadRequest("Invalid client id", err))
		return
	}

	bookings, err := h.service.ListByClient(ctx.Request.Context(), clientID, ctx.GetString("user_id"))
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, bookings)
}

func (h *Handler) UpdateBooking(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		ctx.Error(apperrors.BadRequest("Invalid booking id", err))
		return
	}

	var form UpdateBookingRequest
	if err := ctx.ShouldBindJSON(&form); err != nil {
		ctx.Error(apperrors.BadRequest("Invalid payload", err))
		return
	}
	if form.Booking == nil {
		form.Booking = map[string]any{}
	}

	record, err := h.service.UpdateBooking(
		ctx.Request.Context(),
		id,
		ctx.GetString("user_id"),
		form.Booking,
		form.RelatedData.toUpdates(),
	)
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

func (h *Handler) DeleteBooking(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		ctx.Error(apperrors.BadRequest("Invalid booking id", err))
		return
	}

	if err := h.service.DeleteBooking(ctx.Request.Context(), id, ctx.GetString("user_id")); err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}
