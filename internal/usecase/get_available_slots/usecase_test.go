package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-SchedulingService/internal/service/snapshot"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakeEventTypeRepo struct {
	eventType *domain.EventType
	err       error
}

func (f *fakeEventTypeRepo) GetByID(_ context.Context, _ int64) (*domain.EventType, error) {
	return f.eventType, f.err
}

type fakeLoader struct {
	snap     *snapshot.Snapshot
	err      error
	from, to time.Time
}

func (f *fakeLoader) Load(_ context.Context, _ *domain.EventType, from, to, _ time.Time) (*snapshot.Snapshot, error) {
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	if f.snap == nil {
		return &snapshot.Snapshot{}, nil
	}
	return f.snap, nil
}

type fakeMetrics struct {
	observed map[string]int
}

func (f *fakeMetrics) ObserveSlots(kind string, count int) {
	if f.observed == nil {
		f.observed = make(map[string]int)
	}
	f.observed[kind] += count
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

func schedule(autoDetect bool) *domain.AvailabilitySchedule {
	windows := make([]domain.WeeklyWindow, 0, 5)
	for day := time.Monday; day <= time.Friday; day++ {
		windows = append(windows, domain.WeeklyWindow{
			DayOfWeek: day,
			StartTime: types.MustTimeString("09:00"),
			EndTime:   types.MustTimeString("17:00"),
		})
	}
	return &domain.AvailabilitySchedule{
		ID:                        1,
		Timezone:                  "UTC",
		WeeklyWindows:             windows,
		SlotIntervalMinutes:       30,
		AutoDetectInviteeTimezone: autoDetect,
	}
}

func oneOnOne(s *domain.AvailabilitySchedule) *domain.EventType {
	return &domain.EventType{
		ID:              10,
		OwnerID:         100,
		ScheduleID:      s.ID,
		Kind:            domain.KindOneOnOne,
		DurationMinutes: 30,
		IsActive:        true,
		Schedule:        s,
	}
}

func newUseCase(repo EventTypeRepository, loader SnapshotLoader, m Metrics) *UseCase {
	uc := NewUseCase(repo, loader, availability.NewIANAConverter(), m, 31, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_OneOnOne(t *testing.T) {
	booked := &domain.Booking{
		ID:        1,
		StartTime: monday.Add(10 * time.Hour),
		EndTime:   monday.Add(10*time.Hour + 30*time.Minute),
		Status:    domain.StatusConfirmed,
	}
	loader := &fakeLoader{snap: &snapshot.Snapshot{Bookings: []*domain.Booking{booked}}}
	m := &fakeMetrics{}
	uc := newUseCase(&fakeEventTypeRepo{eventType: oneOnOne(schedule(false))}, loader, m)

	resp, err := uc.Execute(context.Background(), &Request{EventTypeID: 10, StartDate: monday, EndDate: monday})
	require.NoError(t, err)

	require.Len(t, resp.Days, 1)
	assert.Equal(t, "2024-06-10", resp.Days[0].Date)
	assert.Len(t, resp.Days[0].Slots, 15)
	assert.Equal(t, "UTC", resp.Timezone)
	assert.Equal(t, 15, m.observed[string(domain.KindOneOnOne)])

	for _, s := range resp.Days[0].Slots {
		assert.False(t, s.Start.Equal(booked.StartTime))
		assert.Nil(t, s.MaxCapacity)
	}

	assert.Equal(t, monday, loader.from)
	assert.Equal(t, monday.AddDate(0, 0, 1), loader.to)
}

func TestExecute_GroupsByDisplayDate(t *testing.T) {
	uc := newUseCase(&fakeEventTypeRepo{eventType: oneOnOne(schedule(true))}, &fakeLoader{}, &fakeMetrics{})

	resp, err := uc.Execute(context.Background(), &Request{
		EventTypeID: 10,
		StartDate:   monday,
		EndDate:     monday,
		Timezone:    "Asia/Tokyo",
	})
	require.NoError(t, err)

	// 09:00-17:00 UTC is 18:00-02:00 in Tokyo
	require.Len(t, resp.Days, 2)
	assert.Equal(t, "Asia/Tokyo", resp.Timezone)
	assert.Equal(t, "2024-06-10", resp.Days[0].Date)
	assert.Len(t, resp.Days[0].Slots, 12)
	assert.Equal(t, "2024-06-11", resp.Days[1].Date)
	assert.Len(t, resp.Days[1].Slots, 4)
}

func TestExecute_FullDay(t *testing.T) {
	s := schedule(false)
	eventType := &domain.EventType{
		ID:                  20,
		ScheduleID:          s.ID,
		Kind:                domain.KindFullDay,
		MaxAttendeesPerSlot: ptr.Ptr(2),
		IsActive:            true,
		Schedule:            s,
	}
	bookings := []*domain.Booking{
		{ID: 1, StartTime: monday.Add(9 * time.Hour), EndTime: monday.Add(17 * time.Hour), Status: domain.StatusConfirmed},
		{ID: 2, StartTime: monday.Add(9 * time.Hour), EndTime: monday.Add(17 * time.Hour), Status: domain.StatusPending},
	}
	loader := &fakeLoader{snap: &snapshot.Snapshot{Bookings: bookings}}
	uc := newUseCase(&fakeEventTypeRepo{eventType: eventType}, loader, &fakeMetrics{})

	resp, err := uc.Execute(context.Background(), &Request{EventTypeID: 20, StartDate: monday, EndDate: monday.AddDate(0, 0, 1)})
	require.NoError(t, err)

	require.Len(t, resp.Days, 2)
	full := resp.Days[0].Slots[0]
	assert.True(t, full.IsFullDay)
	assert.False(t, full.IsAvailable)
	require.NotNil(t, full.RemainingSpots)
	assert.Equal(t, 0, *full.RemainingSpots)

	free := resp.Days[1].Slots[0]
	assert.True(t, free.IsAvailable)
	require.NotNil(t, free.RemainingSpots)
	assert.Equal(t, 2, *free.RemainingSpots)
}

func TestExecute_Errors(t *testing.T) {
	inactive := oneOnOne(schedule(false))
	inactive.IsActive = false
	noSchedule := oneOnOne(schedule(false))
	noSchedule.Schedule = nil

	tests := []struct {
		name    string
		req     *Request
		repo    *fakeEventTypeRepo
		loader  *fakeLoader
		wantErr error
	}{
		{
			name:    "missing event type id",
			req:     &Request{StartDate: monday, EndDate: monday},
			repo:    &fakeEventTypeRepo{},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "end before start",
			req:     &Request{EventTypeID: 10, StartDate: monday, EndDate: monday.AddDate(0, 0, -1)},
			repo:    &fakeEventTypeRepo{},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "range too large",
			req:     &Request{EventTypeID: 10, StartDate: monday, EndDate: monday.AddDate(0, 0, 31)},
			repo:    &fakeEventTypeRepo{},
			wantErr: ErrRangeTooLarge,
		},
		{
			name:    "unknown timezone",
			req:     &Request{EventTypeID: 10, StartDate: monday, EndDate: monday, Timezone: "Mars/Olympus"},
			repo:    &fakeEventTypeRepo{},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "event type not found",
			req:     &Request{EventTypeID: 10, StartDate: monday, EndDate: monday},
			repo:    &fakeEventTypeRepo{err: eventTypeRepo.ErrEventTypeNotFound},
			wantErr: ErrEventTypeNotFound,
		},
		{
			name:    "inactive event type",
			req:     &Request{EventTypeID: 10, StartDate: monday, EndDate: monday},
			repo:    &fakeEventTypeRepo{eventType: inactive},
			wantErr: ErrEventTypeNotFound,
		},
		{
			name:    "no schedule",
			req:     &Request{EventTypeID: 10, StartDate: monday, EndDate: monday},
			repo:    &fakeEventTypeRepo{eventType: noSchedule},
			wantErr: ErrScheduleNotFound,
		},
		{
			name:    "repository failure",
			req:     &Request{EventTypeID: 10, StartDate: monday, EndDate: monday},
			repo:    &fakeEventTypeRepo{err: errors.New("db down")},
			wantErr: ErrInternal,
		},
		{
			name:    "snapshot failure",
			req:     &Request{EventTypeID: 10, StartDate: monday, EndDate: monday},
			repo:    &fakeEventTypeRepo{eventType: oneOnOne(schedule(false))},
			loader:  &fakeLoader{err: snapshot.ErrLoadBookings},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := tt.loader
			if loader == nil {
				loader = &fakeLoader{}
			}
			uc := newUseCase(tt.repo, loader, &fakeMetrics{})

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
