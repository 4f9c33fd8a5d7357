package commission

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "travel-agency-api/internal/errors"
	"travel-agency-api/internal/middleware"
)

// mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateCommission(ctx context.Context, userID string, input *CreateInput) (*Commission, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Commission), args.Error(1)
}

func (m *MockService) ListCommissions(ctx context.Context, userID string) ([]Commission, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Commission), args.Error(1)
}

func (m *MockService) GetCommission(ctx context.Context, id uint64, userID string) (*Commission, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Commission), args.Error(1)
}

func (m *MockService) UpdateCommission(ctx context.Context, id uint64, userID string, fields map[string]any) (*Commission, error) {
	args := m.Called(ctx, id, userID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Commission), args.Error(1)
}

func (m *MockService) DeleteCommission(ctx context.Context, id uint64, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockService) ReportRows(ctx context.Context, userID string) ([]map[string]any, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func setupRouter(handler *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
	})
	router.GET("/commissions", handler.ListCommissions)
	router.POST("/commissions", handler.CreateCommission)
	router.GET("/commissions/report", handler.ExportReport)
	router.GET("/commissions/:id", handler.GetCommission)
	router.PATCH("/commissions/:id", handler.UpdateCommission)
	router.DELETE("/commissions/:id", handler.DeleteCommission)
	return router
}

// TestCreateCommission_Success tests successful commission creation
func TestCreateCommission_Success(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	record := &Commission{ID: 3, BookingID: 9, ClientName: "Ada Lovelace", CommissionRateAmount: 25}
	mockService.On("CreateCommission", mock.Anything, "user-1", mock.MatchedBy(func(input *CreateInput) bool {
		return input.BookingID == 9 && input.Rate == 10 && input.Commission == 250
	})).Return(record, nil)

	body, _ := json.Marshal(map[string]any{"bookingId": 9, "rate": 10, "commission": 250})
	req := httptest.NewRequest("POST", "/commissions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]any
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Ada Lovelace", response["clientName"])
	assert.Equal(t, 25.0, response["commissionRateAmount"])
	mockService.AssertExpectations(t)
}

// TestCreateCommission_MissingBooking tests validation of the booking reference
func TestCreateCommission_MissingBooking(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	body, _ := json.Marshal(map[string]any{"rate": 10})
	req := httptest.NewRequest("POST", "/commissions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateCommission")
}

// TestGetCommission_NotFound tests the 404 for missing or foreign rows
func TestGetCommission_NotFound(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	mockService.On("GetCommission", mock.Anything, uint64(42), "user-1").
		Return(nil, apperrors.NotFound("Commission not found", nil))

	req := httptest.NewRequest("GET", "/commissions/42", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Commission not found", response["error"])
}

// TestExportReport_Xlsx tests the workbook output is readable
func TestExportReport_Xlsx(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	rows := []map[string]any{{
		"id":                   int64(1),
		"clientName":           "Ada Lovelace",
		"bookingTravelDate":    int64(1729123200),
		"finalPaymentDate":     int64(0),
		"rate":                 10.0,
		"commission":           250.0,
		"commissionRateAmount": 25.0,
		"invoiced":             false,
		"paid":                 true,
	}}
	mockService.On("ReportRows", mock.Anything, "user-1").Return(rows, nil)

	req := httptest.NewRequest("GET", "/commissions/report", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.Bytes())

	workbook, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer workbook.Close()

	name, err := workbook.GetCellValue("Commissions", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", name)
	date, err := workbook.GetCellValue("Commissions", "C2")
	require.NoError(t, err)
	assert.Equal(t, "2024-10-17", date)
	// zero dates render empty
	finalDate, err := workbook.GetCellValue("Commissions", "D2")
	require.NoError(t, err)
	assert.Equal(t, "", finalDate)
}

// TestExportReport_JSON tests the json variant keeps camelCase keys
func TestExportReport_JSON(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	rows := []map[string]any{{"clientName": "Ada Lovelace", "commissionRateAmount": 25.0}}
	mockService.On("ReportRows", mock.Anything, "user-1").Return(rows, nil)

	req := httptest.NewRequest("GET", "/commissions/report?format=json", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response []map[string]any
	json.Unmarshal(w.Body.Bytes(), &response)
	require.Len(t, response, 1)
	assert.Equal(t, "Ada Lovelace", response[0]["clientName"])
}

// TestDeleteCommission_Success tests deletion of an owned commission
func TestDeleteCommission_Success(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	mockService.On("DeleteCommission", mock.Anything, uint64(5), "user-1").Return(nil)

	req := httptest.NewRequest("DELETE", "/commissions/5", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
