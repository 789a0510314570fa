package get_event_type

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/service/schedules"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedules/models"
)

type stubService struct {
	resp *models.EventTypeResponse
	err  error
}

func (s *stubService) GetEventType(_ context.Context, _ int64) (*models.EventTypeResponse, error) {
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *stubService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/event-types/{eventTypeId}", NewHandler(svc, nopLogger{}).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(&stubService{resp: &models.EventTypeResponse{ID: 4, Kind: "group"}}, "/event-types/4")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.EventTypeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(4), body.ID)
	assert.Equal(t, "group", body.Kind)

	assert.Equal(t, http.StatusNotFound, serve(&stubService{err: schedules.ErrEventTypeNotFound}, "/event-types/4").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/event-types/four").Code)
}
