package client

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

type CreateClientRequest struct {
	ClientName          string           `json:"clientName" binding:"required"`
	ClientEmail         string           `json:"clientEmail" binding:"omitempty,email"`
	ClientPhone         string           `json:"clientPhone" binding:"omitempty,phone"`
	ClientPostalCode    string           `json:"clientPostalCode"`
	ClientStreetAddress string           `json:"clientStreetAddress"`
	ClientCity          string           `json:"clientCity"`
	ClientProvince      string           `json:"clientProvince"`
	ClientCountry       string           `json:"clientCountry"`
	Notes               string           `json:"notes"`
	PaymentDate         *utils.Timestamp `json:"paymentDate"`
	FinalPaymentDate    *utils.Timestamp `json:"finalPaymentDate"`
}

func (h *Handler) CreateClient(ctx *gin.Context) {
	var form CreateClientRequest
	if err := ctx.ShouldBindJSON(&form); err != nil {
		ctx.Error(apperrors.BadRequest("Invalid payload", err))
		return
	}

	record := Client{
		UserID:              ctx.GetString("user_id"),
		ClientName:          form.ClientName,
		ClientEmail:         form.ClientEmail,
		ClientPhone:         form.ClientPhone,
		ClientPostalCode:    form.ClientPostalCode,
		ClientStreetAddress: form.ClientStreetAddress,
		ClientCity:          form.ClientCity,
		ClientProvince:      form.ClientProvince,
		ClientCountry:       form.ClientCountry,
		Notes:               form.Notes,
		PaymentDate:         form.PaymentDate.Int64Ptr(),
		FinalPaymentDate:    form.FinalPaymentDate.Int64Ptr(),
	}
	if err := h.service.CreateClient(ctx.Request.Context(), &record); err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusCreated, record)
}

func (h *Handler) ListClients(ctx *gin.Context) {
	clients, err := h.service.ListClients(ctx.Request.Context(), ctx.GetString("user_id"))
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, clients)
}

func (h *Handler) GetClient(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		ctx.Error(apperrors.BadRequest("Invalid client id", err))
		return
	}

	record, err := h.service.GetClient(ctx.Request.Context(), id, ctx.GetString("user_id"))
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

func (h *Handler) UpdateClient(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		ctx.Error(apperrors.BadRequest("Invalid client id", err))
		return
	}

	var fields map[string]any
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		ctx.Error(apperrors.BadRequest("Invalid payload", err))
		return
	}

	record, err := h.service.UpdateClient(ctx.Request.Context(), id, ctx.GetString("user_id"), fields)
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

func (h *Handler) DeleteClient(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		ctx.Error(apperrors.BadRequest("Invalid client id", err))
		return
	}

	if err := h.service.DeleteClient(ctx.Request.Context(), id, ctx.GetString("user_id")); err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}
