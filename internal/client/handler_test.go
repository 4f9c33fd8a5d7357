package client

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

	apperrors "travel-agency-api/internal/errors"
	"travel-agency-api/internal/middleware"
)

// mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateClient(ctx context.Context, record *Client) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockService) ListClients(ctx context.Context, userID string) ([]Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Client), args.Error(1)
}

func (m *MockService) GetClient(ctx context.Context, id uint64, userID string) (*Client, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Client), args.Error(1)
}

func (m *MockService) UpdateClient(ctx context.Context, id uint64, userID string, fields map[string]any) (*Client, error) {
	args := m.Called(ctx, id, userID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Client), args.Error(1)
}

func (m *MockService) DeleteClient(ctx context.Context, id uint64, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func setupRouter(handler *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
	})
	router.GET("/clients", handler.ListClients)
	router.POST("/clients", handler.CreateClient)
	router.GET("/clients/:id", handler.GetClient)
	router.PATCH("/clients/:id", handler.UpdateClient)
	router.DELETE("/clients/:id", handler.DeleteClient)
	return router
}

// TestCreateClient_Success tests successful client creation
func TestCreateClient_Success(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	mockService.On("CreateClient", mock.Anything, mock.MatchedBy(func(record *Client) bool {
		return record.ClientName == "Ada Lovelace" && record.UserID == "user-1"
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*Client).ID = 7
	})

	body, _ := json.Marshal(map[string]any{
		"clientName":  "Ada Lovelace",
		"clientEmail": "ada@example.com",
		"paymentDate": "2024-10-17",
	})
	req := httptest.NewRequest("POST", "/clients", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response Client
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, uint64(7), response.ID)
	mockService.AssertExpectations(t)
}

// TestCreateClient_MissingName tests validation of the required name
func TestCreateClient_MissingName(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	body, _ := json.Marshal(map[string]any{"clientEmail": "ada@example.com"})
	req := httptest.NewRequest("POST", "/clients", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateClient")
}

// TestGetClient_NotFound tests the 404 shape for missing or foreign rows
func TestGetClient_NotFound(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	mockService.On("GetClient", mock.Anything, uint64(42), "user-1").
		Return(nil, apperrors.NotFound("Client not found", nil))

	req := httptest.NewRequest("GET", "/clients/42", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Client not found", response["error"])
}

// TestListClients_Success tests listing the caller's clients
func TestListClients_Success(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	mockService.On("ListClients", mock.Anything, "user-1").
		Return([]Client{{ID: 1, ClientName: "Ada Lovelace"}}, nil)

	req := httptest.NewRequest("GET", "/clients", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response []Client
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response, 1)
	mockService.AssertExpectations(t)
}

// TestUpdateClient_PassesFields tests the partial payload reaches the service untouched
func TestUpdateClient_PassesFields(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	updated := &Client{ID: 5, ClientCity: "Paris"}
	mockService.On("UpdateClient", mock.Anything, uint64(5), "user-1",
		map[string]any{"clientCity": "Paris"}).Return(updated, nil)

	body, _ := json.Marshal(map[string]any{"clientCity": "Paris"})
	req := httptest.NewRequest("PATCH", "/clients/5", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

// TestDeleteClient_InvalidID tests the id param guard
func TestDeleteClient_InvalidID(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	req := httptest.NewRequest("DELETE", "/clients/abc", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "DeleteClient")
}
