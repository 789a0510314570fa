package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/snapshot"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakeBookingRepo struct {
	created []*domain.Booking
	err     error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	saved := *b
	saved.ID = int64(len(f.created) + 1)
	saved.CreatedAt = now
	saved.UpdatedAt = now
	f.created = append(f.created, &saved)
	return &saved, nil
}

type fakeEventTypeRepo struct {
	eventType *domain.EventType
	err       error
}

func (f *fakeEventTypeRepo) GetByID(_ context.Context, _ int64) (*domain.EventType, error) {
	return f.eventType, f.err
}

type fakeLoader struct {
	snap *snapshot.Snapshot
}

func (f *fakeLoader) Load(_ context.Context, _ *domain.EventType, _, _, _ time.Time) (*snapshot.Snapshot, error) {
	if f.snap == nil {
		return &snapshot.Snapshot{}, nil
	}
	return f.snap, nil
}

type fakeReservations struct {
	released []string
}

func (f *fakeReservations) Release(_ context.Context, _ int64, id string) error {
	f.released = append(f.released, id)
	return nil
}

type fakeTxManager struct {
	calls int
	err   error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeMetrics struct {
	reasons []string
}

func (f *fakeMetrics) IncConflict(reason string) {
	f.reasons = append(f.reasons, reason)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	now    = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
)

func schedule(tz string) *domain.AvailabilitySchedule {
	windows := make([]domain.WeeklyWindow, 0, 5)
	for day := time.Monday; day <= time.Friday; day++ {
		windows = append(windows, domain.WeeklyWindow{
			DayOfWeek: day,
			StartTime: types.MustTimeString("09:00"),
			EndTime:   types.MustTimeString("17:00"),
		})
	}
	return &domain.AvailabilitySchedule{
		ID:                  1,
		Timezone:            tz,
		WeeklyWindows:       windows,
		SlotIntervalMinutes: 30,
	}
}

func oneOnOne() *domain.EventType {
	return &domain.EventType{
		ID:              10,
		OwnerID:         100,
		ScheduleID:      1,
		Kind:            domain.KindOneOnOne,
		DurationMinutes: 30,
		IsActive:        true,
		Schedule:        schedule("UTC"),
	}
}

type deps struct {
	bookings     *fakeBookingRepo
	reservations *fakeReservations
	tx           *fakeTxManager
	metrics      *fakeMetrics
}

func newUseCase(eventType *domain.EventType, snap *snapshot.Snapshot) (*UseCase, *deps) {
	d := &deps{
		bookings:     &fakeBookingRepo{},
		reservations: &fakeReservations{},
		tx:           &fakeTxManager{},
		metrics:      &fakeMetrics{},
	}
	uc := NewUseCase(
		d.bookings,
		&fakeEventTypeRepo{eventType: eventType},
		&fakeLoader{snap: snap},
		d.reservations,
		availability.NewIANAConverter(),
		d.tx,
		d.metrics,
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: now}
	return uc, d
}

func request(starts ...time.Time) *Request {
	return &Request{
		UserID:        7,
		EventTypeID:   10,
		StartTimes:    starts,
		AttendeeName:  "Ada Lovelace",
		AttendeeEmail: "ada@example.com",
	}
}

func TestExecute_Single(t *testing.T) {
	uc, d := newUseCase(oneOnOne(), nil)

	req := request(monday.Add(10 * time.Hour))
	req.ReservationID = ptr.Ptr("hold-1")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Nil(t, resp.SeriesID)
	b := resp.Bookings[0]
	assert.Equal(t, monday.Add(10*time.Hour), b.StartTime)
	assert.Equal(t, monday.Add(10*time.Hour+30*time.Minute), b.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.Equal(t, "UTC", b.Timezone)

	assert.Equal(t, 1, d.tx.calls)
	assert.Equal(t, []string{"hold-1"}, d.reservations.released)
}

func TestExecute_Series(t *testing.T) {
	eventType := oneOnOne()
	eventType.RequiresConfirmation = true
	uc, d := newUseCase(eventType, nil)

	resp, err := uc.Execute(context.Background(), request(
		monday.Add(10*time.Hour),
		monday.AddDate(0, 0, 7).Add(10*time.Hour),
	))
	require.NoError(t, err)

	require.NotNil(t, resp.SeriesID)
	require.Len(t, d.bookings.created, 2)
	for _, b := range d.bookings.created {
		assert.Equal(t, domain.StatusPending, b.Status)
		require.NotNil(t, b.SeriesID)
		assert.Equal(t, *resp.SeriesID, *b.SeriesID)
	}
}

func TestExecute_Conflict(t *testing.T) {
	booked := &domain.Booking{
		ID:        1,
		StartTime: monday.Add(10 * time.Hour),
		EndTime:   monday.Add(10*time.Hour + 30*time.Minute),
		Status:    domain.StatusConfirmed,
	}
	uc, d := newUseCase(oneOnOne(), &snapshot.Snapshot{Bookings: []*domain.Booking{booked}})

	req := request(monday.Add(9*time.Hour), monday.Add(10*time.Hour))
	req.ReservationID = ptr.Ptr("hold-1")

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Len(t, conflict.Result.Conflicts, 1)
	assert.Equal(t, 1, conflict.Result.Conflicts[0].Index)
	assert.Equal(t, domain.ReasonSlotAlreadyBooked, conflict.Result.Conflicts[0].Reason)
	assert.NotEmpty(t, conflict.Result.Conflicts[0].Alternatives)

	assert.Empty(t, d.bookings.created)
	assert.Empty(t, d.reservations.released)
	assert.Equal(t, []string{string(domain.ReasonSlotAlreadyBooked)}, d.metrics.reasons)
}

func TestExecute_Holds(t *testing.T) {
	start := monday.Add(10 * time.Hour)
	hold := domain.SlotReservation{
		ID:            "hold-1",
		EventTypeID:   10,
		Start:         start,
		End:           start.Add(30 * time.Minute),
		SpotsReserved: 1,
		Status:        domain.ReservationPending,
		ExpiresAt:     now.Add(10 * time.Minute),
	}
	snap := &snapshot.Snapshot{Reservations: []domain.SlotReservation{hold}}

	t.Run("held by someone else", func(t *testing.T) {
		uc, d := newUseCase(oneOnOne(), snap)

		_, err := uc.Execute(context.Background(), request(start))

		var conflict *ConflictError
		require.True(t, errors.As(err, &conflict))
		require.Len(t, conflict.Result.Conflicts, 1)
		assert.Equal(t, "slot already booked (held)", conflict.Result.Conflicts[0].Message)
		assert.Equal(t, "1 of 1 requested slots have conflicts", conflict.Result.Message)
		assert.Empty(t, d.bookings.created)
	})

	t.Run("own hold", func(t *testing.T) {
		uc, d := newUseCase(oneOnOne(), snap)

		req := request(start)
		req.ReservationID = ptr.Ptr("hold-1")

		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Len(t, d.bookings.created, 1)
		assert.Equal(t, []string{"hold-1"}, d.reservations.released)
	})
}

func TestExecute_FullDay(t *testing.T) {
	eventType := &domain.EventType{
		ID:                  10,
		ScheduleID:          1,
		Kind:                domain.KindFullDay,
		MaxAttendeesPerSlot: ptr.Ptr(5),
		IsActive:            true,
		Schedule:            schedule("Europe/Berlin"),
	}
	uc, d := newUseCase(eventType, nil)

	// noon in Berlin on Monday
	_, err := uc.Execute(context.Background(), request(monday.Add(10*time.Hour)))
	require.NoError(t, err)

	require.Len(t, d.bookings.created, 1)
	assert.Equal(t, time.Date(2024, 6, 9, 22, 0, 0, 0, time.UTC), d.bookings.created[0].StartTime)
	assert.Equal(t, time.Date(2024, 6, 10, 22, 0, 0, 0, time.UTC), d.bookings.created[0].EndTime)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{
			name:   "missing user",
			mutate: func(r *Request) { r.UserID = 0 },
		},
		{
			name:   "no start times",
			mutate: func(r *Request) { r.StartTimes = nil },
		},
		{
			name:   "blank attendee name",
			mutate: func(r *Request) { r.AttendeeName = "  " },
		},
		{
			name:   "bad email",
			mutate: func(r *Request) { r.AttendeeEmail = "not-an-email" },
		},
		{
			name:   "unknown timezone",
			mutate: func(r *Request) { r.Timezone = "Nowhere/City" },
		},
		{
			name: "overlapping series",
			mutate: func(r *Request) {
				r.StartTimes = []time.Time{monday.Add(10 * time.Hour), monday.Add(10*time.Hour + 15*time.Minute)}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, d := newUseCase(oneOnOne(), nil)

			req := request(monday.Add(10 * time.Hour))
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, d.bookings.created)
		})
	}
}

func TestExecute_CreateFailure(t *testing.T) {
	uc, d := newUseCase(oneOnOne(), nil)
	d.bookings.err = errors.New("insert failed")

	_, err := uc.Execute(context.Background(), request(monday.Add(10*time.Hour)))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, d.reservations.released)
}

func TestExecute_SerializationFailure(t *testing.T) {
	uc, d := newUseCase(oneOnOne(), nil)
	d.tx.err = fmt.Errorf("%w: %w", txmanager.ErrSerialization, &pq.Error{Code: "40001"})

	_, err := uc.Execute(context.Background(), request(monday.Add(10*time.Hour)))
	assert.ErrorIs(t, err, ErrConcurrentBooking)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Empty(t, d.bookings.created)
}
