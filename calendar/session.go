package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fleetdesk/driver-portal/models"
)

// ErrSubmitInFlight is returned when a block submission is attempted while
// an earlier one for the same session has not finished.
var ErrSubmitInFlight = errors.New("a block submission is already in progress")

// Session is one driver's open calendar view. It carries the single piece
// of navigation state (the week's Monday) plus the blocks loaded for that
// week; everything else is derived on demand. One session belongs to one
// viewer, so a single mutex is all the coordination it needs.
type Session struct {
	mu      sync.Mutex
	driver  uint
	pattern *models.WorkingPattern
	store   AvailabilityStore

	weekStart  time.Time
	blocks     []models.AvailabilityBlock
	loaded     bool
	loading    bool
	submitting bool
	seq        uint64 // token of the most recent window request

	now func() time.Time
}

// NewSession opens a calendar session on the week containing "now". A nil
// pattern is treated as an unconfigured one (every day not working).
func NewSession(driverID uint, pattern *models.WorkingPattern, store AvailabilityStore) *Session {
	if pattern == nil {
		pattern = &models.WorkingPattern{DriverID: driverID}
	}
	s := &Session{driver: driverID, pattern: pattern, store: store, now: time.Now}
	s.weekStart = MondayOf(s.now())
	return s
}

// CurrentWeek returns the displayed window.
func (s *Session) CurrentWeek() WeekWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewWeek(s.weekStart)
}

// Navigate moves one week back or forward. There are no bounds; any past
// or future week may be viewed. Moving invalidates an in-flight load for
// the window being left.
func (s *Session) Navigate(dir Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dir == Prev {
		s.weekStart = s.weekStart.AddDate(0, 0, -7)
	} else {
		s.weekStart = s.weekStart.AddDate(0, 0, 7)
	}
	s.seq++
}

// GoToToday resets the view to the week containing the current date.
func (s *Session) GoToToday() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weekStart = MondayOf(s.now())
	s.seq++
}

// SetWeek jumps to the week containing the given date.
func (s *Session) SetWeek(date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weekStart = MondayOf(date)
	s.seq++
}

// Loading reports whether a window request is outstanding.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LoadWeek fetches the blocks for the displayed window. It is the only
// suspension point of the calendar. If the view navigates away while the
// request is outstanding, the late result is discarded rather than applied
// to the wrong week ("last navigation wins"). On a fetch error the
// previously loaded week is kept so a transient failure does not blank the
// calendar.
func (s *Session) LoadWeek(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	token := s.seq
	win := NewWeek(s.weekStart)
	s.loading = true
	s.mu.Unlock()

	blocks, err := s.store.QueryRange(ctx, s.driver, win.Start, win.End)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		// A newer navigation superseded this request.
		return nil
	}
	s.loading = false
	if err != nil {
		return fmt.Errorf("unable to load availability for this week: %w", err)
	}
	s.blocks = blocks
	s.loaded = true
	return nil
}

// DayAvailability resolves the date occupying slot index (0 = Monday ...
// 6 = Sunday) of the displayed week.
func (s *Session) DayAvailability(index int) (DayAvailability, error) {
	if index < 0 || index > 6 {
		return DayAvailability{}, fmt.Errorf("day index %d out of range", index)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	win := NewWeek(s.weekStart)
	return resolveDay(s.pattern, s.blocks, win.Day(index), s.now()), nil
}

// Week resolves all seven days of the displayed window.
func (s *Session) Week() []DayAvailability {
	s.mu.Lock()
	defer s.mu.Unlock()
	win := NewWeek(s.weekStart)
	days := make([]DayAvailability, 7)
	for i := range days {
		days[i] = resolveDay(s.pattern, s.blocks, win.Day(i), s.now())
	}
	return days
}

// SubmitBlock runs the editor and, on success, folds the stored block into
// the loaded collection so it shows up without re-querying the range. Only
// one submission may be in flight at a time; a second attempt fails with
// ErrSubmitInFlight until the first completes.
func (s *Session) SubmitBlock(ctx context.Context, editor *BlockEditor, date time.Time, startTime, endTime, note string) (*models.AvailabilityBlock, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.submitting = true
	s.mu.Unlock()

	block, err := editor.CreateBlock(ctx, s.driver, date, startTime, endTime, note)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		return nil, err
	}
	s.blocks = append(s.blocks, *block)
	return block, nil
}

// AppendBlock makes a block created elsewhere visible in the current view.
// Blocks for dates outside the window are harmless: day resolution filters
// by exact date.
func (s *Session) AppendBlock(block models.AvailabilityBlock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = append(s.blocks, block)
}
