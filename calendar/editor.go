package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/fleetdesk/driver-portal/models"
	"github.com/fleetdesk/driver-portal/utils"
)

var (
	ErrMissingDate      = errors.New("date is required")
	ErrPastDate         = errors.New("date cannot be in the past")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
)

// EditorConfig holds the prefill values a fresh editor session shows.
// They are UX defaults only and carry no meaning in the model.
type EditorConfig struct {
	DefaultStart string
	DefaultEnd   string
}

func DefaultEditorConfig() EditorConfig {
	return EditorConfig{DefaultStart: "09:00", DefaultEnd: "17:00"}
}

// BlockEditor validates and submits new availability blocks. It holds no
// durable state: validation happens here, persistence in the store.
type BlockEditor struct {
	store AvailabilityStore
	cfg   EditorConfig
	now   func() time.Time
}

func NewBlockEditor(store AvailabilityStore, cfg EditorConfig) *BlockEditor {
	return &BlockEditor{store: store, cfg: cfg, now: time.Now}
}

func (e *BlockEditor) Config() EditorConfig {
	return e.cfg
}

// CreateBlock validates the input and, if it passes, persists a block-out
// (Available = false) through the store. "Today" is the caller's local
// calendar day, so a block for today is still accepted near midnight.
func (e *BlockEditor) CreateBlock(ctx context.Context, driverID uint, date time.Time, startTime, endTime, note string) (*models.AvailabilityBlock, error) {
	if date.IsZero() {
		return nil, ErrMissingDate
	}
	if utils.DateOnly(date).Before(utils.DateOnly(e.now())) {
		return nil, ErrPastDate
	}
	start, err := utils.ParseClock(startTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	end, err := utils.ParseClock(endTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}
	return e.store.Create(ctx, driverID, utils.DateOnly(date), startTime, endTime, false, note)
}

// IsValidationError reports whether err is one of the editor's input
// errors, as opposed to a store failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingDate) || errors.Is(err, ErrPastDate) || errors.Is(err, ErrInvalidTimeRange)
}
