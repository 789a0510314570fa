package release_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	reserveSlot "github.com/m04kA/SMC-SchedulingService/internal/usecase/reserve_slot"
)

type stubUseCase struct {
	req *reserveSlot.ReleaseRequest
	err error
}

func (s *stubUseCase) Release(_ context.Context, req *reserveSlot.ReleaseRequest) error {
	s.req = req
	return s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "released", wantStatus: http.StatusNoContent},
		{name: "expired", err: reserveSlot.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "bad id", err: reserveSlot.ErrInvalidInput, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.err}
			r := mux.NewRouter()
			r.HandleFunc("/event-types/{eventTypeId}/reservations/{reservationId}", NewHandler(uc, nopLogger{}).Handle)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/event-types/2/reservations/abc", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, int64(2), uc.req.EventTypeID)
			assert.Equal(t, "abc", uc.req.ReservationID)
		})
	}
}
