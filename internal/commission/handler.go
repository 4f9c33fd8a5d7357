package commission

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	apperrors "travel-agency-api/internal/errors"
	"travel-agency-api/internal/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type CreateCommissionRequest struct {
	BookingID   uint64           `json:"bookingId" binding:"required"`
	Rate        float64          `json:"rate"`
	Commission  float64          `json:"commission"`
	Invoiced    bool             `json:"invoiced"`
	Paid        bool             `json:"paid"`
	PaymentDate *utils.Timestamp `json:"paymentDate"`
}

func (h *Handler) CreateCommission(ctx *gin.Context) {
	var form CreateCommissionRequest
	if err := ctx.ShouldBindJSON(&form); err != nil {
		ctx.Error(apperrors.BadRequest("Invalid payload", err))
		return
	}

	record, err := h.service.CreateCommission(ctx.Request.Context(), ctx.GetString("user_id"), &CreateInput{
		BookingID:   form.BookingID,
		Rate:        form.Rate,
		Commission:  form.Commission,
		Invoiced:    form.Invoiced,
		Paid:        form.Paid,
		PaymentDate: form.PaymentDate.Int64Ptr(),
	})
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, record)
}

func (h *Handler) ListCommissions(ctx *gin.Context) {
	commissions, err := h.service.ListCommissions(ctx.Request.Context(), ctx.GetString("user_id"))
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, commissions)
}

func (h *Handler) GetCommission(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		ctx.Error(apperrors.BadRequest("Invalid commission id", err))
		return
	}

	record, err := h.service.GetCommission(ctx.Request.Context(), id, ctx.GetString("user_id"))
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

func (h *Handler) UpdateCommission(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		ctx.Error(apperrors.BadRequest("Invalid commission id", err))
		return
	}

	var fields map[string]any
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		ctx.Error(apperrors.BadRequest("Invalid payload", err))
		return
	}

	record, err := h.service.UpdateCommission(ctx.Request.Context(), id, ctx.GetString("user_id"), fields)
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

func (h *Handler) DeleteCommission(ctx *gin.Context) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		ctx.Error(apperrors.BadRequest("Invalid commission id", err))
		return
	}

	if err := h.service.DeleteCommission(ctx.Request.Context(), id, ctx.GetString("user_id")); err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Commission deleted"})
}

var reportHeaders = []any{
	"ID", "Client", "Travel Date", "Final Payment Date",
	"Rate (%)", "Commission", "Amount", "Invoiced", "Paid",
}

// ExportReport streams the caller's commissions as an .xlsx workbook.
// With ?format=json the same rows come back as a JSON array instead.
func (h *Handler) ExportReport(ctx *gin.Context) {
	rows, err := h.service.ReportRows(ctx.Request.Context(), ctx.GetString("user_id"))
	if err != nil {
		ctx.Error(err)
		return
	}

	if ctx.Query("format") == "json" {
		ctx.JSON(http.StatusOK, rows)
		return
	}

	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Commissions"
	file.SetSheetName("Sheet1", sheet)
	if err := file.SetSheetRow(sheet, "A1", &reportHeaders); err != nil {
		ctx.Error(apperrors.Internal(err))
		return
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			ctx.Error(apperrors.Internal(err))
			return
		}
		values := []any{
			row["id"],
			row["clientName"],
			formatReportDate(row["bookingTravelDate"]),
			formatReportDate(row["finalPaymentDate"]),
			row["rate"],
			row["commission"],
			row["commissionRateAmount"],
			row["invoiced"],
			row["paid"],
		}
		if err := file.SetSheetRow(sheet, cell, &values); err != nil {
			ctx.Error(apperrors.Internal(err))
			return
		}
	}

	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="commissions-%s.xlsx"`, time.Now().UTC().Format("2006-01-02")))
	if err := file.Write(ctx.Writer); err != nil {
		log.Printf("[ERROR] writing commission report: %v", err)
	}
}

// formatReportDate renders a unix-seconds column value as a calendar
// date. Zero and non-numeric values come out empty.
func formatReportDate(value any) string {
	unix, ok := utils.ToUnixTimestamp(value)
	if !ok || unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).UTC().Format("2006-01-02")
}
