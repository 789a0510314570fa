package get_event_type_bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(3, 9, "2025-06-01T00:00:00Z", "2025-07-01T00:00:00Z", "confirmed", "true")
	require.NoError(t, err)

	assert.Equal(t, int64(3), req.EventTypeID)
	assert.Equal(t, int64(9), req.UserID)
	require.NotNil(t, req.From)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *req.From)
	require.NotNil(t, req.Status)
	assert.Equal(t, "confirmed", *req.Status)
	assert.True(t, req.IncludeInactive)

	empty, err := ToServiceRequest(3, 9, "", "", "", "")
	require.NoError(t, err)
	assert.Nil(t, empty.From)
	assert.Nil(t, empty.Status)
	assert.False(t, empty.IncludeInactive)

	_, err = ToServiceRequest(3, 9, "yesterday", "", "", "")
	assert.Error(t, err)

	_, err = ToServiceRequest(3, 9, "", "", "", "maybe")
	assert.Error(t, err)
}
