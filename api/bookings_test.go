package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tourdesk/internal/domain"
	"tourdesk/internal/repository"
	"tourdesk/internal/service/booking"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Create(ctx context.Context, userID, packageID string) (*booking.Projection, error) {
	args := m.Called(ctx, userID, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Projection), args.Error(1)
}

func (m *MockBookingUseCase) Get(ctx context.Context, id string) (*booking.Projection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Projection), args.Error(1)
}

func (m *MockBookingUseCase) List(ctx context.Context, filter repository.BookingFilter) ([]booking.Projection, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Projection), args.Error(1)
}

func (m *MockBookingUseCase) UpdateStatus(ctx context.Context, id, rawStatus string) (*domain.Booking, error) {
	args := m.Called(ctx, id, rawStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingUseCase) AdminList(ctx context.Context, filter repository.BookingFilter) ([]booking.Projection, booking.Stats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, booking.Stats{}, args.Error(2)
	}
	return args.Get(0).([]booking.Projection), args.Get(1).(booking.Stats), args.Error(2)
}

func (m *MockBookingUseCase) StalePending(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]string{"packageId": "pkg-1"})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(ContextUserID, "user-1")

	proj := &booking.Projection{
		ID:          "b-1",
		UserID:      "user-1",
		PackageID:   "pkg-1",
		PackageName: "Goa Getaway",
		Status:      string(domain.BookingStatusPending),
		TotalAmount: 20000,
	}
	mockService.On("Create", c.Request.Context(), "user-1", "pkg-1").Return(proj, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "Booking created successfully", env.Message)

	var got booking.Projection
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "b-1", got.ID)
	assert.Equal(t, string(domain.BookingStatusPending), got.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_PackageNotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]string{"packageId": "missing"})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(ContextUserID, "user-1")

	mockService.On("Create", c.Request.Context(), "user-1", "missing").
		Return(nil, domain.ErrNotFound)

	handler.create(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestBookingHandler_list_DefaultsToCaller(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/bookings", nil)
	c.Set(ContextUserID, "user-1")

	expectedFilter := repository.BookingFilter{UserID: "user-1"}
	mockService.On("List", c.Request.Context(), expectedFilter).
		Return([]booking.Projection{{ID: "b-1"}, {ID: "b-2"}}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	var data struct {
		Bookings []booking.Projection `json:"bookings"`
		Count    int                  `json:"count"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.Count)
	assert.Len(t, data.Bookings, 2)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_list_StatusFilter(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/bookings?status=confirmed&userId=user-2", nil)
	c.Set(ContextUserID, "user-1")

	expectedFilter := repository.BookingFilter{UserID: "user-2", Status: domain.BookingStatusConfirmed}
	mockService.On("List", c.Request.Context(), expectedFilter).
		Return([]booking.Projection{}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_updateStatus(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "b-1"}}
	body, _ := json.Marshal(map[string]string{"status": "confirmed"})
	c.Request = httptest.NewRequest("PATCH", "/bookings/b-1", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	updated := &domain.Booking{
		ID:        "b-1",
		Status:    domain.BookingStatusConfirmed,
		UpdatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
	mockService.On("UpdateStatus", c.Request.Context(), "b-1", "confirmed").Return(updated, nil)

	handler.updateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)

	var data struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		UpdatedAt string `json:"updatedAt"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "b-1", data.ID)
	assert.Equal(t, "confirmed", data.Status)
	assert.Equal(t, "2026-02-01T10:00:00Z", data.UpdatedAt)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_updateStatus_Rejected(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "b-1"}}
	body, _ := json.Marshal(map[string]string{"status": "archived"})
	c.Request = httptest.NewRequest("PATCH", "/bookings/b-1", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("UpdateStatus", c.Request.Context(), "b-1", "archived").
		Return(nil, domain.ErrInvalidArgument)

	handler.updateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
}

func TestBookingHandler_remove(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "b-1"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/b-1", nil)

	mockService.On("Delete", c.Request.Context(), "b-1").Return(nil)

	handler.remove(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Booking deleted successfully", env.Message)

	mockService.AssertExpectations(t)
}
