package get_event_type_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

type stubService struct {
	req *models.GetEventTypeBookingsRequest
	err error
}

func (s *stubService) GetEventTypeBookings(_ context.Context, req *models.GetEventTypeBookingsRequest) (*models.BookingListResponse, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}, {ID: 2}}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *stubService, target string, withUser bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/event-types/{eventTypeId}/bookings", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), 100))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OwnerListsBookings(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, "/event-types/10/bookings?from=2025-06-01T00:00:00Z&status=pending&includeInactive=true", true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.req)
	assert.Equal(t, int64(10), svc.req.EventTypeID)
	assert.Equal(t, int64(100), svc.req.UserID)
	require.NotNil(t, svc.req.From)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *svc.req.From)
	assert.Nil(t, svc.req.To)
	require.NotNil(t, svc.req.Status)
	assert.Equal(t, "pending", *svc.req.Status)
	assert.True(t, svc.req.IncludeInactive)

	var got []models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		withUser   bool
		err        error
		wantStatus int
		wantCalled bool
	}{
		{name: "bad id", target: "/event-types/abc/bookings", withUser: true, wantStatus: http.StatusBadRequest},
		{name: "no user", target: "/event-types/10/bookings", wantStatus: http.StatusUnauthorized},
		{name: "bad from", target: "/event-types/10/bookings?from=yesterday", withUser: true, wantStatus: http.StatusBadRequest},
		{name: "bad includeInactive", target: "/event-types/10/bookings?includeInactive=maybe", withUser: true, wantStatus: http.StatusBadRequest},
		{name: "not the owner", target: "/event-types/10/bookings", withUser: true, err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden, wantCalled: true},
		{name: "not found", target: "/event-types/10/bookings", withUser: true, err: bookings.ErrEventTypeNotFound, wantStatus: http.StatusNotFound, wantCalled: true},
		{name: "unknown status", target: "/event-types/10/bookings?status=lost", withUser: true, err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantCalled: true},
		{name: "internal", target: "/event-types/10/bookings", withUser: true, err: errors.New("db down"), wantStatus: http.StatusInternalServerError, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.err}
			rec := serve(svc, tt.target, tt.withUser)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, svc.req != nil)
		})
	}
}
