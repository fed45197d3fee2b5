package calendar

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fleetdesk/driver-portal/models"
)

// fakeStore scripts the AvailabilityStore contract for tests.
type fakeStore struct {
	queryFn  func(ctx context.Context, driverID uint, from, to time.Time) ([]models.AvailabilityBlock, error)
	createFn func(ctx context.Context, driverID uint, date time.Time, startTime, endTime string, available bool, note string) (*models.AvailabilityBlock, error)
}

func (f *fakeStore) QueryRange(ctx context.Context, driverID uint, from, to time.Time) ([]models.AvailabilityBlock, error) {
	if f.queryFn == nil {
		return nil, nil
	}
	return f.queryFn(ctx, driverID, from, to)
}

func (f *fakeStore) Create(ctx context.Context, driverID uint, date time.Time, startTime, endTime string, available bool, note string) (*models.AvailabilityBlock, error) {
	if f.createFn == nil {
		return &models.AvailabilityBlock{
			Model:     gorm.Model{ID: 1},
			DriverID:  driverID,
			Date:      date,
			StartTime: startTime,
			EndTime:   endTime,
			Available: available,
			Note:      note,
		}, nil
	}
	return f.createFn(ctx, driverID, date, startTime, endTime, available, note)
}

func strptr(s string) *string { return &s }

func patternOf(days []string, start, end *string) *models.WorkingPattern {
	p := &models.WorkingPattern{DriverID: 1, StartTime: start, EndTime: end}
	p.SetWorkingDays(days)
	return p
}

// newTestSession pins "now" so weekday and is-today checks are stable.
func newTestSession(pattern *models.WorkingPattern, store AvailabilityStore, now time.Time) *Session {
	s := NewSession(1, pattern, store)
	s.now = func() time.Time { return now }
	s.GoToToday()
	return s
}

func TestNavigateInverse(t *testing.T) {
	now := date(2024, time.January, 3) // a Wednesday
	s := newTestSession(patternOf(nil, nil, nil), &fakeStore{}, now)

	start := s.CurrentWeek()
	s.Navigate(Next)
	assert.Equal(t, start.Start.AddDate(0, 0, 7), s.CurrentWeek().Start)
	s.Navigate(Prev)
	assert.Equal(t, start, s.CurrentWeek())
}

func TestGoToTodayLandsOnMonday(t *testing.T) {
	for day := 1; day <= 7; day++ {
		now := date(2024, time.January, day)
		s := newTestSession(patternOf(nil, nil, nil), &fakeStore{}, now)

		// Wander off before coming back.
		s.Navigate(Prev)
		s.Navigate(Prev)
		s.GoToToday()

		week := s.CurrentWeek()
		assert.Equal(t, time.Monday, week.Start.Weekday())
		assert.True(t, week.Contains(now), "today %s not in [%s, %s]", now, week.Start, week.End)
	}
}

func TestLoadWeekQueriesDisplayedWindow(t *testing.T) {
	now := date(2024, time.January, 3)
	var gotFrom, gotTo time.Time
	store := &fakeStore{
		queryFn: func(_ context.Context, _ uint, from, to time.Time) ([]models.AvailabilityBlock, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	}
	s := newTestSession(patternOf(nil, nil, nil), store, now)
	require.NoError(t, s.LoadWeek(context.Background()))
	assert.Equal(t, date(2024, time.January, 1), gotFrom)
	assert.Equal(t, date(2024, time.January, 7), gotTo)
}

func TestLoadWeekIdempotent(t *testing.T) {
	now := date(2024, time.January, 3)
	blocks := []models.AvailabilityBlock{{
		Model: gorm.Model{ID: 7}, DriverID: 1,
		Date: date(2024, time.January, 3), StartTime: "09:00", EndTime: "12:00",
	}}
	store := &fakeStore{
		queryFn: func(context.Context, uint, time.Time, time.Time) ([]models.AvailabilityBlock, error) {
			return blocks, nil
		},
	}
	s := newTestSession(patternOf([]string{"wednesday"}, nil, nil), store, now)

	require.NoError(t, s.LoadWeek(context.Background()))
	first := s.Week()
	require.NoError(t, s.LoadWeek(context.Background()))
	assert.Equal(t, first, s.Week())
}

func TestLoadWeekErrorKeepsPreviousBlocks(t *testing.T) {
	now := date(2024, time.January, 3)
	failing := false
	store := &fakeStore{
		queryFn: func(context.Context, uint, time.Time, time.Time) ([]models.AvailabilityBlock, error) {
			if failing {
				return nil, errors.New("store down")
			}
			return []models.AvailabilityBlock{{
				Model: gorm.Model{ID: 3}, DriverID: 1,
				Date: date(2024, time.January, 3), StartTime: "09:00", EndTime: "12:00",
			}}, nil
		},
	}
	s := newTestSession(patternOf([]string{"wednesday"}, nil, nil), store, now)

	require.NoError(t, s.LoadWeek(context.Background()))
	day, err := s.DayAvailability(2)
	require.NoError(t, err)
	require.Equal(t, StatusBlocked, day.Status)

	failing = true
	err = s.LoadWeek(context.Background())
	require.Error(t, err)

	// The transient failure must not blank the calendar.
	day, err = s.DayAvailability(2)
	require.NoError(t, err)
	assert.Equal(t, StatusBlocked, day.Status)
	assert.Len(t, day.Blocks, 1)
}

func TestLastNavigationWins(t *testing.T) {
	now := date(2024, time.January, 3)
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	staleBlock := models.AvailabilityBlock{
		Model: gorm.Model{ID: 1}, DriverID: 1,
		Date: date(2024, time.January, 3), StartTime: "09:00", EndTime: "12:00", Note: "stale",
	}
	freshBlock := models.AvailabilityBlock{
		Model: gorm.Model{ID: 2}, DriverID: 1,
		Date: date(2024, time.January, 10), StartTime: "09:00", EndTime: "12:00", Note: "fresh",
	}

	store := &fakeStore{
		queryFn: func(context.Context, uint, time.Time, time.Time) ([]models.AvailabilityBlock, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				close(started)
				<-release // slow response for the abandoned week
				return []models.AvailabilityBlock{staleBlock}, nil
			}
			return []models.AvailabilityBlock{freshBlock}, nil
		},
	}
	s := newTestSession(patternOf([]string{"wednesday"}, nil, nil), store, now)

	firstDone := make(chan error, 1)
	go func() { firstDone <- s.LoadWeek(context.Background()) }()
	<-started

	s.Navigate(Next)
	require.NoError(t, s.LoadWeek(context.Background()))

	close(release)
	require.NoError(t, <-firstDone) // superseded, discarded without error

	// The displayed week is the navigated-to one; the slow first response
	// must not have overwritten its blocks.
	day, err := s.DayAvailability(2) // Wednesday 2024-01-10
	require.NoError(t, err)
	require.Len(t, day.Blocks, 1)
	assert.Equal(t, "fresh", day.Blocks[0].Note)
	assert.Equal(t, StatusBlocked, day.Status)
}

func TestNavigationInvalidatesOutstandingLoad(t *testing.T) {
	now := date(2024, time.January, 3)
	started := make(chan struct{})
	release := make(chan struct{})
	store := &fakeStore{
		queryFn: func(context.Context, uint, time.Time, time.Time) ([]models.AvailabilityBlock, error) {
			close(started)
			<-release
			return []models.AvailabilityBlock{{
				Model: gorm.Model{ID: 1}, DriverID: 1,
				Date: date(2024, time.January, 3), StartTime: "09:00", EndTime: "12:00",
			}}, nil
		},
	}
	s := newTestSession(patternOf([]string{"wednesday"}, nil, nil), store, now)

	done := make(chan error, 1)
	go func() { done <- s.LoadWeek(context.Background()) }()
	<-started
	s.Navigate(Next) // abandons the week being loaded
	close(release)
	require.NoError(t, <-done)

	day, err := s.DayAvailability(2)
	require.NoError(t, err)
	assert.Empty(t, day.Blocks, "result for an abandoned window must be discarded")
}

func TestSubmitBlockAppearsWithoutReload(t *testing.T) {
	now := date(2024, time.January, 1)
	var queries int32
	store := &fakeStore{
		queryFn: func(context.Context, uint, time.Time, time.Time) ([]models.AvailabilityBlock, error) {
			atomic.AddInt32(&queries, 1)
			return nil, nil
		},
	}
	s := newTestSession(patternOf([]string{"wednesday"}, nil, nil), store, now)
	require.NoError(t, s.LoadWeek(context.Background()))

	editor := NewBlockEditor(store, DefaultEditorConfig())
	editor.now = func() time.Time { return now }

	block, err := s.SubmitBlock(context.Background(), editor, date(2024, time.January, 3), "09:00", "12:00", "Holiday")
	require.NoError(t, err)
	require.NotNil(t, block)

	day, err := s.DayAvailability(2)
	require.NoError(t, err)
	require.Len(t, day.Blocks, 1)
	assert.Equal(t, "Holiday", day.Blocks[0].Note)
	assert.Equal(t, StatusBlocked, day.Status)
	assert.EqualValues(t, 1, atomic.LoadInt32(&queries), "no fresh range query expected")
}

func TestSubmitBlockRejectsConcurrentSubmission(t *testing.T) {
	now := date(2024, time.January, 1)
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	store := &fakeStore{
		createFn: func(_ context.Context, driverID uint, d time.Time, start, end string, available bool, note string) (*models.AvailabilityBlock, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				close(started)
				<-release
			}
			return &models.AvailabilityBlock{Model: gorm.Model{ID: 9}, DriverID: driverID, Date: d, StartTime: start, EndTime: end, Available: available, Note: note}, nil
		},
	}
	s := newTestSession(patternOf([]string{"wednesday"}, nil, nil), store, now)
	editor := NewBlockEditor(store, DefaultEditorConfig())
	editor.now = func() time.Time { return now }

	done := make(chan error, 1)
	go func() {
		_, err := s.SubmitBlock(context.Background(), editor, date(2024, time.January, 3), "09:00", "12:00", "")
		done <- err
	}()
	<-started

	_, err := s.SubmitBlock(context.Background(), editor, date(2024, time.January, 3), "09:00", "12:00", "")
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-done)

	// Once the first finishes, submitting works again.
	_, err = s.SubmitBlock(context.Background(), editor, date(2024, time.January, 4), "09:00", "12:00", "")
	assert.NoError(t, err)
}

func TestSubmitBlockFailureLeavesWeekUntouched(t *testing.T) {
	now := date(2024, time.January, 1)
	store := &fakeStore{
		createFn: func(context.Context, uint, time.Time, string, string, bool, string) (*models.AvailabilityBlock, error) {
			return nil, errors.New("store down")
		},
	}
	s := newTestSession(patternOf([]string{"wednesday"}, nil, nil), store, now)
	require.NoError(t, s.LoadWeek(context.Background()))

	editor := NewBlockEditor(store, DefaultEditorConfig())
	editor.now = func() time.Time { return now }

	_, err := s.SubmitBlock(context.Background(), editor, date(2024, time.January, 3), "09:00", "12:00", "")
	require.Error(t, err)

	day, derr := s.DayAvailability(2)
	require.NoError(t, derr)
	assert.Empty(t, day.Blocks)
	assert.Equal(t, StatusAvailable, day.Status)
}

func TestDayAvailabilityIndexRange(t *testing.T) {
	s := newTestSession(patternOf(nil, nil, nil), &fakeStore{}, date(2024, time.January, 1))
	_, err := s.DayAvailability(-1)
	assert.Error(t, err)
	_, err = s.DayAvailability(7)
	assert.Error(t, err)
}
