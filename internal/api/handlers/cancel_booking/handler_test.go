package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

type stubService struct {
	bookingID int64
	req       *models.CancelBookingRequest
	err       error
}

func (s *stubService) Cancel(_ context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.bookingID, s.req = bookingID, req
	return s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *stubService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/cancel", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/12/cancel", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 5))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, `{"cancellationReason":"sick"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), svc.bookingID)
	require.NotNil(t, svc.req)
	assert.Equal(t, int64(5), svc.req.UserID)
	assert.Equal(t, "sick", svc.req.CancellationReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "already cancelled", err: bookings.ErrCannotCancel, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.err}, `{}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
